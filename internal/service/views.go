package service

import (
	"github.com/foodgram-next/internal/models"
)

// UserView 对外展示的用户信息
type UserView struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
	Avatar       string `json:"avatar"`
}

// TagView 标签
type TagView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// RecipeIngredientView 菜谱中的食材及用量
type RecipeIngredientView struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeView 菜谱详情
type RecipeView struct {
	ID               uint                   `json:"id"`
	Tags             []TagView              `json:"tags"`
	Author           UserView               `json:"author"`
	Ingredients      []RecipeIngredientView `json:"ingredients"`
	IsFavorited      bool                   `json:"is_favorited"`
	IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
	Name             string                 `json:"name"`
	Image            string                 `json:"image"`
	Text             string                 `json:"text"`
	CookingTime      int                    `json:"cooking_time"`
}

// RecipeShortView 菜谱摘要，用于收藏/购物车/订阅列表
type RecipeShortView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// SubscriptionView 订阅作者及其菜谱
type SubscriptionView struct {
	UserView
	Recipes      []RecipeShortView `json:"recipes"`
	RecipesCount int64             `json:"recipes_count"`
}

func toTagViews(tags []models.Tag) []TagView {
	result := make([]TagView, 0, len(tags))
	for _, tag := range tags {
		result = append(result, TagView{ID: tag.ID, Name: tag.Name, Slug: tag.Slug})
	}
	return result
}

func toUserView(user *models.User, isSubscribed bool, images *ImageService) UserView {
	if user == nil {
		return UserView{}
	}
	return UserView{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
		Avatar:       images.URL(user.Avatar),
	}
}

func toRecipeShortView(recipe *models.Recipe, images *ImageService) RecipeShortView {
	return RecipeShortView{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       images.URL(recipe.Image),
		CookingTime: recipe.CookingTime,
	}
}
