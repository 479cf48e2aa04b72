package models

import (
	"time"

	"github.com/foodgram-next/internal/constants"
)

// MembershipKind 用户-菜谱清单类型：每个 (user, recipe) 至多一条，可创建可删除
type MembershipKind string

const (
	MembershipFavorite     MembershipKind = constants.MembershipKindFavorite
	MembershipShoppingCart MembershipKind = constants.MembershipKindShoppingCart
)

// Valid 判断清单类型是否受支持
func (k MembershipKind) Valid() bool {
	return k == MembershipFavorite || k == MembershipShoppingCart
}

// TableName 返回清单对应的数据表
func (k MembershipKind) TableName() string {
	switch k {
	case MembershipFavorite:
		return Favorite{}.TableName()
	case MembershipShoppingCart:
		return ShoppingCartEntry{}.TableName()
	default:
		return ""
	}
}

// Membership 清单记录通用行
type Membership struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	RecipeID  uint      `json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Favorite 收藏
type Favorite struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_favorite_user_recipe;index" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe    *Recipe   `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (Favorite) TableName() string {
	return "favorites"
}

// ShoppingCartEntry 购物车条目，表示用户打算采购该菜谱全部食材
type ShoppingCartEntry struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_cart_user_recipe;index" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe    *Recipe   `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (ShoppingCartEntry) TableName() string {
	return "shopping_cart_entries"
}
