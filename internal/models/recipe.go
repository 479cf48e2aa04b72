package models

import "time"

// Recipe 菜谱
type Recipe struct {
	ID          uint               `gorm:"primarykey" json:"id"`
	AuthorID    uint               `gorm:"not null;index" json:"author_id"`
	Name        string             `gorm:"type:varchar(256);not null;index" json:"name"`
	Text        string             `gorm:"type:text;not null" json:"text"`
	Image       string             `gorm:"type:varchar(255);default:''" json:"-"` // 图片存储 key
	CookingTime int                `gorm:"not null" json:"cooking_time"`          // 分钟，>=1
	CreatedAt   time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Author      *User              `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Tags        []Tag              `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
}

// TableName 指定表名
func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient 菜谱-食材关联，amount 为正整数
type RecipeIngredient struct {
	ID           uint        `gorm:"primarykey" json:"-"`
	RecipeID     uint        `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"-"`
	IngredientID uint        `gorm:"not null;uniqueIndex:idx_recipe_ingredient;index" json:"ingredient_id"`
	Amount       int         `gorm:"not null" json:"amount"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:RESTRICT" json:"ingredient,omitempty"`
}

// TableName 指定表名
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
