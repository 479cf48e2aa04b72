package repository

import (
	"testing"

	"github.com/foodgram-next/internal/models"
)

func TestIngredientRepositorySearchPrefixFirst(t *testing.T) {
	db := openRepositoryTestDB(t)
	createTestIngredient(t, db, "sugar brown", "g")
	createTestIngredient(t, db, "brown rice", "g")
	createTestIngredient(t, db, "salt", "g")

	items, total, err := NewIngredientRepository(db).List(IngredientListFilter{Name: "brown"})
	if err != nil {
		t.Fatalf("list ingredients failed: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("want 2 matches got total=%d len=%d", total, len(items))
	}
	if items[0].Name != "brown rice" {
		t.Fatalf("prefix match should be first, got %s", items[0].Name)
	}
}

func TestIngredientRepositorySearchEscapesWildcards(t *testing.T) {
	db := openRepositoryTestDB(t)
	createTestIngredient(t, db, "milk 3%", "ml")
	createTestIngredient(t, db, "milk 35", "ml")

	items, _, err := NewIngredientRepository(db).List(IngredientListFilter{Name: "3%"})
	if err != nil {
		t.Fatalf("list ingredients failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "milk 3%" {
		t.Fatalf("wildcard should be literal, got %+v", items)
	}
}

func TestIngredientRepositoryBulkCreateSkipsDuplicates(t *testing.T) {
	db := openRepositoryTestDB(t)
	createTestIngredient(t, db, "salt", "g")

	repo := NewIngredientRepository(db)
	inserted, err := repo.BulkCreate([]models.Ingredient{
		{Name: "salt", MeasurementUnit: "g"},
		{Name: "salt", MeasurementUnit: "pinch"},
		{Name: "pepper", MeasurementUnit: "g"},
	})
	if err != nil {
		t.Fatalf("bulk create failed: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("inserted want 2 got %d", inserted)
	}
	all, err := repo.ListAll()
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("total want 3 got %d", len(all))
	}
}
