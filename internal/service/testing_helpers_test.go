package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func createServiceUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "hash",
		Status:       "active",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func createServiceIngredient(t *testing.T, db *gorm.DB, name, unit string) models.Ingredient {
	t.Helper()
	ingredient := models.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(&ingredient).Error; err != nil {
		t.Fatalf("create ingredient failed: %v", err)
	}
	return ingredient
}

func createServiceTag(t *testing.T, db *gorm.DB, name, slug string) models.Tag {
	t.Helper()
	tag := models.Tag{Name: name, Slug: slug}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("create tag failed: %v", err)
	}
	return tag
}

func newRecipeServiceForTest(t *testing.T, db *gorm.DB) *RecipeService {
	t.Helper()
	images, _ := newTestImageService(t, config.UploadConfig{MaxSize: 1 << 20})
	return NewRecipeService(
		repository.NewRecipeRepository(db),
		repository.NewTagRepository(db),
		repository.NewIngredientRepository(db),
		repository.NewMembershipRepository(db),
		repository.NewSubscriptionRepository(db),
		repository.NewShortLinkRepository(db),
		images,
	)
}
