package cache

import (
	"context"
	"testing"
	"time"

	"github.com/foodgram-next/internal/models"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	UseClient(nil, "")
	ctx := context.Background()

	if err := SetShortLink(ctx, &ShortLinkEntry{Code: "abc123", RecipeID: 7}, time.Minute); err != nil {
		t.Fatalf("set short link failed: %v", err)
	}
	entry, hit, err := GetShortLink(ctx, "abc123")
	if err != nil {
		t.Fatalf("get short link failed: %v", err)
	}
	if hit || entry != nil {
		t.Fatalf("disabled cache should miss, got %+v", entry)
	}
	if err := Ping(ctx); err != nil {
		t.Fatalf("ping on disabled cache should be nil, got %v", err)
	}
}

func TestBuildKeyUsesPrefix(t *testing.T) {
	UseClient(nil, "foodgram")
	if got := buildKey(shortLinks.key("Ab12Cd")); got != "foodgram:short_link:Ab12Cd" {
		t.Fatalf("key mismatch, got %s", got)
	}
	if got := buildKey(userTokens.key(3)); got != "foodgram:auth:user:3" {
		t.Fatalf("key mismatch, got %s", got)
	}
}

func TestTokenStateAccepts(t *testing.T) {
	state := &TokenState{Subject: 1, Active: true, TokenVersion: 2, NotBefore: 1000}
	if !state.Accepts(2, 1000) {
		t.Fatalf("token issued at boundary should pass")
	}
	if state.Accepts(1, 2000) {
		t.Fatalf("stale token version should fail")
	}
	if state.Accepts(2, 999) || state.Accepts(2, 0) {
		t.Fatalf("token issued before not_before should fail")
	}
	if !(&TokenState{TokenVersion: 0}).Accepts(0, 0) {
		t.Fatalf("state without not_before accepts any iat")
	}
}

func TestResolveUserFallsBackToFetch(t *testing.T) {
	UseClient(nil, "")
	calls := 0
	fetch := func(id uint) (*models.User, error) {
		calls++
		if id != 5 {
			return nil, nil
		}
		invalid := time.Unix(500, 0)
		return &models.User{ID: 5, Status: "Active", TokenVersion: 3, TokenInvalidBefore: &invalid}, nil
	}
	state, err := ResolveUser(context.Background(), 5, fetch)
	if err != nil || state == nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !state.Active || state.TokenVersion != 3 || state.NotBefore != 500 {
		t.Fatalf("unexpected state: %+v", state)
	}
	missing, err := ResolveUser(context.Background(), 9, fetch)
	if err != nil || missing != nil {
		t.Fatalf("missing user should resolve to nil, got %+v err=%v", missing, err)
	}
	if calls != 2 {
		t.Fatalf("disabled cache should always fetch, calls=%d", calls)
	}
}

func TestAdminTokenStateDisabled(t *testing.T) {
	state := AdminTokenState(&models.Admin{ID: 2, Disabled: true, IsSuper: true})
	if state.Active || !state.IsSuper {
		t.Fatalf("unexpected admin state: %+v", state)
	}
}
