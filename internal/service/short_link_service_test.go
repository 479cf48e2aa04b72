package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/repository"
)

func TestShortLinkServiceGetOrCreateIsIdempotent(t *testing.T) {
	db := openServiceTestDB(t)
	author := createServiceUser(t, db, "author")
	if err := db.Exec("INSERT INTO recipes (author_id, name, text, cooking_time, created_at, updated_at) VALUES (?, 'Суп', 'text', 10, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)", author.ID).Error; err != nil {
		t.Fatalf("insert recipe failed: %v", err)
	}
	var recipeID uint
	if err := db.Raw("SELECT id FROM recipes LIMIT 1").Scan(&recipeID).Error; err != nil {
		t.Fatalf("load recipe id failed: %v", err)
	}

	svc := NewShortLinkService(repository.NewShortLinkRepository(db), repository.NewRecipeRepository(db), config.ShortLinkConfig{
		BaseURL:     "https://foodgram.example/",
		FrontendURL: "https://foodgram.example",
		CodeLength:  6,
	})
	ctx := context.Background()

	first, err := svc.GetOrCreate(ctx, recipeID)
	if err != nil {
		t.Fatalf("get or create failed: %v", err)
	}
	if !strings.HasPrefix(first, "https://foodgram.example/s/") {
		t.Fatalf("unexpected short url %s", first)
	}
	code := strings.TrimPrefix(first, "https://foodgram.example/s/")
	if len(code) != 6 {
		t.Fatalf("code length want 6 got %d (%s)", len(code), code)
	}
	second, err := svc.GetOrCreate(ctx, recipeID)
	if err != nil {
		t.Fatalf("second get or create failed: %v", err)
	}
	if second != first {
		t.Fatalf("short link should be stable, want %s got %s", first, second)
	}

	resolved, err := svc.Resolve(ctx, code)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved != recipeID {
		t.Fatalf("resolve want %d got %d", recipeID, resolved)
	}
	if got := svc.FrontendURL(recipeID); got != "https://foodgram.example/recipes/"+strconv.FormatUint(uint64(recipeID), 10) {
		t.Fatalf("unexpected frontend url %s", got)
	}

	if _, err := svc.Resolve(ctx, "nope00"); !errors.Is(err, ErrShortLinkNotFound) {
		t.Fatalf("unknown code want ErrShortLinkNotFound got %v", err)
	}
	if _, err := svc.GetOrCreate(ctx, 9999); !errors.Is(err, ErrRecipeNotFound) {
		t.Fatalf("missing recipe want ErrRecipeNotFound got %v", err)
	}
}

func TestShortLinkServiceExhaustsOnCollisions(t *testing.T) {
	db := openServiceTestDB(t)
	author := createServiceUser(t, db, "author")
	for _, name := range []string{"Суп", "Каша"} {
		if err := db.Exec("INSERT INTO recipes (author_id, name, text, cooking_time, created_at, updated_at) VALUES (?, ?, 'text', 10, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)", author.ID, name).Error; err != nil {
			t.Fatalf("insert recipe failed: %v", err)
		}
	}
	var ids []uint
	if err := db.Raw("SELECT id FROM recipes ORDER BY id").Scan(&ids).Error; err != nil {
		t.Fatalf("load recipe ids failed: %v", err)
	}

	svc := NewShortLinkService(repository.NewShortLinkRepository(db), repository.NewRecipeRepository(db), config.ShortLinkConfig{BaseURL: "http://localhost"})
	attempts := 0
	svc.generate = func(length int) (string, error) {
		attempts++
		return "AAAAAA", nil
	}
	ctx := context.Background()
	if _, err := svc.GetOrCreate(ctx, ids[0]); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	attempts = 0
	if _, err := svc.GetOrCreate(ctx, ids[1]); !errors.Is(err, ErrShortLinkExhausted) {
		t.Fatalf("colliding codes want ErrShortLinkExhausted got %v", err)
	}
	if attempts != maxShortCodeAttempts {
		t.Fatalf("attempts want %d got %d", maxShortCodeAttempts, attempts)
	}
}

func TestGenerateShortCodeAlphabet(t *testing.T) {
	code, err := generateShortCode(32)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(code) != 32 {
		t.Fatalf("length want 32 got %d", len(code))
	}
	for _, r := range code {
		if !strings.ContainsRune(shortLinkAlphabet, r) {
			t.Fatalf("unexpected rune %q in %s", r, code)
		}
	}
}
