package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/foodgram-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openRepositoryTestDB(t *testing.T) *gorm.DB {
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

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
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

func createTestIngredient(t *testing.T, db *gorm.DB, name, unit string) models.Ingredient {
	t.Helper()
	ingredient := models.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(&ingredient).Error; err != nil {
		t.Fatalf("create ingredient failed: %v", err)
	}
	return ingredient
}

func createTestTag(t *testing.T, db *gorm.DB, name, slug string) models.Tag {
	t.Helper()
	tag := models.Tag{Name: name, Slug: slug}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("create tag failed: %v", err)
	}
	return tag
}

type testRecipeItem struct {
	ingredient models.Ingredient
	amount     int
}

func createTestRecipe(t *testing.T, db *gorm.DB, author models.User, name string, tags []models.Tag, items ...testRecipeItem) models.Recipe {
	t.Helper()
	recipe := models.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Text:        "text",
		CookingTime: 10,
		Tags:        tags,
	}
	for _, item := range items {
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			IngredientID: item.ingredient.ID,
			Amount:       item.amount,
		})
	}
	if err := NewRecipeRepository(db).Create(&recipe); err != nil {
		t.Fatalf("create recipe failed: %v", err)
	}
	return recipe
}
