package service

import (
	"context"
	"errors"
	"testing"

	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

func TestMembershipServiceToggle(t *testing.T) {
	db := openServiceTestDB(t)
	author := createServiceUser(t, db, "author")
	user := createServiceUser(t, db, "user")
	flour := createServiceIngredient(t, db, "мука", "г")
	tag := createServiceTag(t, db, "Обед", "lunch")
	recipes := newRecipeServiceForTest(t, db)
	recipe, err := recipes.Create(context.Background(), author.ID, RecipeInput{
		Tags:        []uint{tag.ID},
		Ingredients: []RecipeIngredientInput{{ID: flour.ID, Amount: 100}},
		Image:       encodeTestPNG(t, 2, 2),
		Name:        "Хлеб",
		Text:        "Испечь",
		CookingTime: 40,
	})
	if err != nil {
		t.Fatalf("create recipe failed: %v", err)
	}

	svc := NewMembershipService(repository.NewRecipeRepository(db), repository.NewMembershipRepository(db), recipes.images)
	for _, kind := range []models.MembershipKind{models.MembershipFavorite, models.MembershipShoppingCart} {
		short, err := svc.Add(kind, user.ID, recipe.ID)
		if err != nil {
			t.Fatalf("%s add failed: %v", kind, err)
		}
		if short.ID != recipe.ID || short.Name != "Хлеб" || short.CookingTime != 40 || short.Image == "" {
			t.Fatalf("%s short view mismatch: %+v", kind, short)
		}
		if _, err := svc.Add(kind, user.ID, recipe.ID); !errors.Is(err, ErrAlreadyInList) {
			t.Fatalf("%s second add want ErrAlreadyInList got %v", kind, err)
		}
		if err := svc.Remove(kind, user.ID, recipe.ID); err != nil {
			t.Fatalf("%s remove failed: %v", kind, err)
		}
		if err := svc.Remove(kind, user.ID, recipe.ID); !errors.Is(err, ErrNotInList) {
			t.Fatalf("%s second remove want ErrNotInList got %v", kind, err)
		}
	}

	if _, err := svc.Add(models.MembershipFavorite, user.ID, 9999); !errors.Is(err, ErrRecipeNotFound) {
		t.Fatalf("missing recipe want ErrRecipeNotFound got %v", err)
	}
	if _, err := svc.Add(models.MembershipKind("wishlist"), user.ID, recipe.ID); !errors.Is(err, ErrUnknownListKind) {
		t.Fatalf("unknown kind want ErrUnknownListKind got %v", err)
	}
}

func TestMembershipServiceClear(t *testing.T) {
	db := openServiceTestDB(t)
	author := createServiceUser(t, db, "author")
	user := createServiceUser(t, db, "user")
	flour := createServiceIngredient(t, db, "мука", "г")
	tag := createServiceTag(t, db, "Обед", "lunch")
	recipes := newRecipeServiceForTest(t, db)

	var ids []uint
	for _, name := range []string{"Хлеб", "Блины"} {
		recipe, err := recipes.Create(context.Background(), author.ID, RecipeInput{
			Tags:        []uint{tag.ID},
			Ingredients: []RecipeIngredientInput{{ID: flour.ID, Amount: 100}},
			Image:       encodeTestPNG(t, 2, 2),
			Name:        name,
			Text:        "Испечь",
			CookingTime: 30,
		})
		if err != nil {
			t.Fatalf("create recipe failed: %v", err)
		}
		ids = append(ids, recipe.ID)
	}

	svc := NewMembershipService(repository.NewRecipeRepository(db), repository.NewMembershipRepository(db), recipes.images)
	for _, id := range ids {
		if _, err := svc.Add(models.MembershipShoppingCart, user.ID, id); err != nil {
			t.Fatalf("add to cart failed: %v", err)
		}
	}
	if _, err := svc.Add(models.MembershipFavorite, user.ID, ids[0]); err != nil {
		t.Fatalf("add favorite failed: %v", err)
	}
	if _, err := svc.Add(models.MembershipShoppingCart, author.ID, ids[0]); err != nil {
		t.Fatalf("add author cart failed: %v", err)
	}

	removed, err := svc.Clear(models.MembershipShoppingCart, user.ID)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if removed != 2 {
		t.Fatalf("want 2 removed got %d", removed)
	}
	if err := svc.Remove(models.MembershipShoppingCart, user.ID, ids[0]); !errors.Is(err, ErrNotInList) {
		t.Fatalf("cart entry must be gone, got %v", err)
	}
	if err := svc.Remove(models.MembershipFavorite, user.ID, ids[0]); err != nil {
		t.Fatalf("favorites must survive clear: %v", err)
	}
	if err := svc.Remove(models.MembershipShoppingCart, author.ID, ids[0]); err != nil {
		t.Fatalf("other users' carts must survive clear: %v", err)
	}

	removed, err = svc.Clear(models.MembershipShoppingCart, user.ID)
	if err != nil || removed != 0 {
		t.Fatalf("clearing an empty cart want 0,nil got %d,%v", removed, err)
	}
	if _, err := svc.Clear(models.MembershipKind("wishlist"), user.ID); !errors.Is(err, ErrUnknownListKind) {
		t.Fatalf("unknown kind want ErrUnknownListKind got %v", err)
	}
}
