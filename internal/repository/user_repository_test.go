package repository

import (
	"testing"

	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/models"
)

func TestUserRepositoryGetByEmailCaseInsensitive(t *testing.T) {
	db := openRepositoryTestDB(t)
	createTestUser(t, db, "cook")

	user, err := NewUserRepository(db).GetByEmail("  COOK@Example.com ")
	if err != nil {
		t.Fatalf("get by email failed: %v", err)
	}
	if user == nil || user.Username != "cook" {
		t.Fatalf("user should be found by email, got %+v", user)
	}
}

func TestUserRepositoryBatchDisableRevokesTokens(t *testing.T) {
	db := openRepositoryTestDB(t)
	user := createTestUser(t, db, "cook")

	repo := NewUserRepository(db)
	if err := repo.BatchUpdateStatus([]uint{user.ID}, constants.UserStatusDisabled); err != nil {
		t.Fatalf("batch update failed: %v", err)
	}
	var got models.User
	if err := db.First(&got, user.ID).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if got.Status != constants.UserStatusDisabled {
		t.Fatalf("status want disabled got %s", got.Status)
	}
	if got.TokenVersion != user.TokenVersion+1 {
		t.Fatalf("token version should be bumped")
	}
	if got.TokenInvalidBefore == nil {
		t.Fatalf("token invalid before should be set")
	}
}

func TestUserRepositoryListKeyword(t *testing.T) {
	db := openRepositoryTestDB(t)
	createTestUser(t, db, "anna")
	createTestUser(t, db, "boris")

	users, total, err := NewUserRepository(db).List(UserListFilter{Keyword: "bor"})
	if err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if total != 1 || len(users) != 1 || users[0].Username != "boris" {
		t.Fatalf("keyword filter mismatch: total=%d users=%+v", total, users)
	}
}
