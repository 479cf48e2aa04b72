package repository

import (
	"errors"
	"testing"

	"github.com/foodgram-next/internal/models"
)

func TestMembershipRepositoryLifecycle(t *testing.T) {
	db := openRepositoryTestDB(t)
	user := createTestUser(t, db, "reader")
	author := createTestUser(t, db, "writer")
	recipe := createTestRecipe(t, db, author, "Суп", nil)
	other := createTestRecipe(t, db, author, "Салат", nil)

	repo := NewMembershipRepository(db)
	for _, kind := range []models.MembershipKind{models.MembershipFavorite, models.MembershipShoppingCart} {
		row, err := repo.Create(kind, user.ID, recipe.ID)
		if err != nil {
			t.Fatalf("%s create failed: %v", kind, err)
		}
		if row.ID == 0 {
			t.Fatalf("%s row id should be assigned", kind)
		}
		if _, err := repo.Create(kind, user.ID, recipe.ID); err == nil {
			t.Fatalf("%s duplicate create should fail", kind)
		}

		ids, err := repo.RecipeIDsIn(kind, user.ID, []uint{recipe.ID, other.ID})
		if err != nil {
			t.Fatalf("%s recipe ids failed: %v", kind, err)
		}
		if _, ok := ids[recipe.ID]; !ok || len(ids) != 1 {
			t.Fatalf("%s recipe ids mismatch: %+v", kind, ids)
		}

		deleted, err := repo.Delete(kind, user.ID, recipe.ID)
		if err != nil {
			t.Fatalf("%s delete failed: %v", kind, err)
		}
		if deleted != 1 {
			t.Fatalf("%s delete rows want 1 got %d", kind, deleted)
		}
		deleted, err = repo.Delete(kind, user.ID, recipe.ID)
		if err != nil {
			t.Fatalf("%s second delete failed: %v", kind, err)
		}
		if deleted != 0 {
			t.Fatalf("%s second delete rows want 0 got %d", kind, deleted)
		}
	}
}

func TestMembershipRepositoryKindsAreIndependent(t *testing.T) {
	db := openRepositoryTestDB(t)
	user := createTestUser(t, db, "reader")
	recipe := createTestRecipe(t, db, user, "Суп", nil)

	repo := NewMembershipRepository(db)
	if _, err := repo.Create(models.MembershipFavorite, user.ID, recipe.ID); err != nil {
		t.Fatalf("create favorite failed: %v", err)
	}
	inCart, err := repo.Exists(models.MembershipShoppingCart, user.ID, recipe.ID)
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if inCart {
		t.Fatalf("favorite should not imply shopping cart")
	}
}

func TestMembershipRepositoryUnknownKind(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewMembershipRepository(db)
	if _, err := repo.Exists(models.MembershipKind("wishlist"), 1, 1); !errors.Is(err, ErrUnknownMembershipKind) {
		t.Fatalf("want ErrUnknownMembershipKind got %v", err)
	}
}

func TestMembershipRepositoryCountByRecipes(t *testing.T) {
	db := openRepositoryTestDB(t)
	first := createTestUser(t, db, "first")
	second := createTestUser(t, db, "second")
	popular := createTestRecipe(t, db, first, "Борщ", nil)
	quiet := createTestRecipe(t, db, first, "Каша", nil)

	repo := NewMembershipRepository(db)
	for _, userID := range []uint{first.ID, second.ID} {
		if _, err := repo.Create(models.MembershipFavorite, userID, popular.ID); err != nil {
			t.Fatalf("create favorite failed: %v", err)
		}
	}

	counts, err := repo.CountByRecipes(models.MembershipFavorite, []uint{popular.ID, quiet.ID})
	if err != nil {
		t.Fatalf("count by recipes failed: %v", err)
	}
	if counts[popular.ID] != 2 {
		t.Fatalf("popular favorites want 2 got %d", counts[popular.ID])
	}
	if counts[quiet.ID] != 0 {
		t.Fatalf("quiet favorites want 0 got %d", counts[quiet.ID])
	}
}
