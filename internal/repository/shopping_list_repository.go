package repository

import (
	"context"

	"github.com/foodgram-next/internal/models"

	"gorm.io/gorm"
)

// ShoppingListRepository 购物清单读取接口
type ShoppingListRepository interface {
	ListRows(ctx context.Context, userID uint) ([]ShoppingListRow, error)
}

// GormShoppingListRepository GORM 实现
type GormShoppingListRepository struct {
	db *gorm.DB
}

// NewShoppingListRepository 创建购物清单仓库
func NewShoppingListRepository(db *gorm.DB) *GormShoppingListRepository {
	return &GormShoppingListRepository{db: db}
}

// ListRows 读取用户购物车内全部菜谱的食材行，单条 SELECT 保证快照一致，按 (名称, 条目 ID) 排序
func (r *GormShoppingListRepository) ListRows(ctx context.Context, userID uint) ([]ShoppingListRow, error) {
	rows := make([]ShoppingListRow, 0)
	cartTable := models.MembershipShoppingCart.TableName()
	err := r.db.WithContext(ctx).
		Table(cartTable).
		Select("ingredients.name AS name, recipe_ingredients.amount AS amount, ingredients.measurement_unit AS measurement_unit").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = " + cartTable + ".recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where(cartTable+".user_id = ?", userID).
		Order("ingredients.name ASC, recipe_ingredients.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
