package service

import (
	"context"
	"errors"
	"testing"

	"github.com/foodgram-next/internal/repository"
)

func TestSubscriptionServiceLifecycle(t *testing.T) {
	db := openServiceTestDB(t)
	reader := createServiceUser(t, db, "reader")
	author := createServiceUser(t, db, "author")
	flour := createServiceIngredient(t, db, "мука", "г")
	tag := createServiceTag(t, db, "Обед", "lunch")
	recipes := newRecipeServiceForTest(t, db)
	for _, name := range []string{"Хлеб", "Булка", "Пирог"} {
		if _, err := recipes.Create(context.Background(), author.ID, RecipeInput{
			Tags:        []uint{tag.ID},
			Ingredients: []RecipeIngredientInput{{ID: flour.ID, Amount: 100}},
			Image:       encodeTestPNG(t, 2, 2),
			Name:        name,
			Text:        "text",
			CookingTime: 30,
		}); err != nil {
			t.Fatalf("create recipe %s failed: %v", name, err)
		}
	}

	svc := NewSubscriptionService(
		repository.NewUserRepository(db),
		repository.NewSubscriptionRepository(db),
		repository.NewRecipeRepository(db),
		recipes.images,
	)

	if _, err := svc.Subscribe(reader.ID, reader.ID, 0); !errors.Is(err, ErrSelfSubscribe) {
		t.Fatalf("self subscribe want ErrSelfSubscribe got %v", err)
	}
	if _, err := svc.Subscribe(reader.ID, 9999, 0); !errors.Is(err, ErrAuthorNotFound) {
		t.Fatalf("missing author want ErrAuthorNotFound got %v", err)
	}

	view, err := svc.Subscribe(reader.ID, author.ID, 2)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if !view.IsSubscribed || view.RecipesCount != 3 || len(view.Recipes) != 2 {
		t.Fatalf("unexpected subscription view: %+v", view)
	}
	if _, err := svc.Subscribe(reader.ID, author.ID, 0); !errors.Is(err, ErrAlreadySubscribed) {
		t.Fatalf("second subscribe want ErrAlreadySubscribed got %v", err)
	}

	list, total, err := svc.List(reader.ID, 1, 10, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(list) != 1 || len(list[0].Recipes) != 3 {
		t.Fatalf("unexpected subscription list: total=%d %+v", total, list)
	}

	if err := svc.Unsubscribe(reader.ID, author.ID); err != nil {
		t.Fatalf("unsubscribe failed: %v", err)
	}
	if err := svc.Unsubscribe(reader.ID, author.ID); !errors.Is(err, ErrNotSubscribed) {
		t.Fatalf("second unsubscribe want ErrNotSubscribed got %v", err)
	}
}
