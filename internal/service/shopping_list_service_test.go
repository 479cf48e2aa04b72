package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

type stubShoppingListRepo struct {
	rows map[uint][]repository.ShoppingListRow
	err  error
}

func (s stubShoppingListRepo) ListRows(ctx context.Context, userID uint) ([]repository.ShoppingListRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows[userID], nil
}

const shoppingListHeaderLine = "Ваш список покупок:\n"

func TestBuildShoppingListEmptyCart(t *testing.T) {
	got := buildList(nil, false)
	if got != shoppingListHeaderLine {
		t.Fatalf("empty cart want header only got %q", got)
	}
}

func TestBuildShoppingListSingleIngredient(t *testing.T) {
	got := buildList([]repository.ShoppingListRow{{Name: "Flour", Amount: 200, MeasurementUnit: "g"}}, false)
	want := shoppingListHeaderLine + "Flour - 200 (g).\n"
	if got != want {
		t.Fatalf("want %q got %q", want, got)
	}
}

func TestBuildShoppingListSumsAcrossRecipes(t *testing.T) {
	got := buildList([]repository.ShoppingListRow{
		{Name: "Sugar", Amount: 50, MeasurementUnit: "g"},
		{Name: "Sugar", Amount: 75, MeasurementUnit: "g"},
	}, false)
	want := shoppingListHeaderLine + "Sugar - 125 (g).\n"
	if got != want {
		t.Fatalf("want %q got %q", want, got)
	}
}

func TestBuildShoppingListSortsByName(t *testing.T) {
	got := buildList([]repository.ShoppingListRow{
		{Name: "Яблоко", Amount: 1, MeasurementUnit: "шт"},
		{Name: "Банан", Amount: 2, MeasurementUnit: "шт"},
		{Name: "Ананас", Amount: 3, MeasurementUnit: "шт"},
	}, false)
	want := shoppingListHeaderLine +
		"Ананас - 3 (шт).\n" +
		"Банан - 2 (шт).\n" +
		"Яблоко - 1 (шт).\n"
	if got != want {
		t.Fatalf("want %q got %q", want, got)
	}
}

func TestBuildShoppingListOrdinalComparison(t *testing.T) {
	got := buildList([]repository.ShoppingListRow{
		{Name: "apple", Amount: 1, MeasurementUnit: "kg"},
		{Name: "Banana", Amount: 1, MeasurementUnit: "kg"},
	}, false)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 3 || lines[1] != "Banana - 1 (kg)." {
		t.Fatalf("uppercase should sort before lowercase, got %q", got)
	}
}

func TestBuildShoppingListLastUnitWins(t *testing.T) {
	rows := []repository.ShoppingListRow{
		{Name: "Milk", Amount: 200, MeasurementUnit: "ml"},
		{Name: "Milk", Amount: 1, MeasurementUnit: "l"},
	}
	got := buildList(rows, false)
	want := shoppingListHeaderLine + "Milk - 201 (l).\n"
	if got != want {
		t.Fatalf("want %q got %q", want, got)
	}

	grouped := buildList(rows, true)
	wantGrouped := shoppingListHeaderLine + "Milk - 1 (l).\n" + "Milk - 200 (ml).\n"
	if grouped != wantGrouped {
		t.Fatalf("group by unit want %q got %q", wantGrouped, grouped)
	}
}

func TestShoppingListExportIdempotentAndIsolated(t *testing.T) {
	repo := stubShoppingListRepo{rows: map[uint][]repository.ShoppingListRow{
		1: {{Name: "Salt", Amount: 5, MeasurementUnit: "g"}},
		2: {{Name: "Pepper", Amount: 2, MeasurementUnit: "g"}},
	}}
	svc := NewShoppingListService(repo, config.ShoppingListConfig{})

	first, err := svc.Export(context.Background(), 1)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	second, err := svc.Export(context.Background(), 1)
	if err != nil {
		t.Fatalf("second export failed: %v", err)
	}
	if first.Content != second.Content {
		t.Fatalf("export should be idempotent: %q vs %q", first.Content, second.Content)
	}
	if first.Filename != "shopping_list.txt" {
		t.Fatalf("filename want shopping_list.txt got %s", first.Filename)
	}

	other, err := svc.Export(context.Background(), 2)
	if err != nil {
		t.Fatalf("export other failed: %v", err)
	}
	if strings.Contains(other.Content, "Salt") || !strings.Contains(other.Content, "Pepper") {
		t.Fatalf("exports should be isolated per user, got %q", other.Content)
	}

	empty, err := svc.Export(context.Background(), 3)
	if err != nil {
		t.Fatalf("empty export failed: %v", err)
	}
	if empty.Content != shoppingListHeaderLine || empty.Items != 0 {
		t.Fatalf("empty cart export mismatch: %+v", empty)
	}
}

func TestShoppingListExportPropagatesStoreFailure(t *testing.T) {
	svc := NewShoppingListService(stubShoppingListRepo{err: errors.New("db down")}, config.ShoppingListConfig{})
	result, err := svc.Export(context.Background(), 1)
	if !errors.Is(err, ErrShoppingListFailure) {
		t.Fatalf("want ErrShoppingListFailure got %v", err)
	}
	if result != nil {
		t.Fatalf("failure should not return partial output")
	}
}

func TestShoppingListExportFromDatabase(t *testing.T) {
	db := openServiceTestDB(t)
	user := models.User{Email: "buyer@example.com", Username: "buyer", PasswordHash: "x", Status: "active"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	sugar := models.Ingredient{Name: "Sugar", MeasurementUnit: "g"}
	if err := db.Create(&sugar).Error; err != nil {
		t.Fatalf("create ingredient failed: %v", err)
	}
	recipes := repository.NewRecipeRepository(db)
	memberships := repository.NewMembershipRepository(db)
	for _, amount := range []int{50, 75} {
		recipe := models.Recipe{
			AuthorID:    user.ID,
			Name:        "Cake",
			Text:        "bake",
			CookingTime: 30,
			Ingredients: []models.RecipeIngredient{{IngredientID: sugar.ID, Amount: amount}},
		}
		if err := recipes.Create(&recipe); err != nil {
			t.Fatalf("create recipe failed: %v", err)
		}
		if _, err := memberships.Create(models.MembershipShoppingCart, user.ID, recipe.ID); err != nil {
			t.Fatalf("add to cart failed: %v", err)
		}
	}

	svc := NewShoppingListService(repository.NewShoppingListRepository(db), config.ShoppingListConfig{})
	result, err := svc.Export(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	want := shoppingListHeaderLine + "Sugar - 125 (g).\n"
	if result.Content != want {
		t.Fatalf("want %q got %q", want, result.Content)
	}
}

func buildList(rows []repository.ShoppingListRow, groupByUnit bool) string {
	return RenderShoppingList(AggregateShoppingList(rows, groupByUnit))
}
