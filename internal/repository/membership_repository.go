package repository

import (
	"errors"

	"github.com/foodgram-next/internal/models"

	"gorm.io/gorm"
)

// ErrUnknownMembershipKind 未知的清单类型
var ErrUnknownMembershipKind = errors.New("unknown membership kind")

// MembershipRepository 收藏/购物车通用数据访问接口
type MembershipRepository interface {
	Exists(kind models.MembershipKind, userID, recipeID uint) (bool, error)
	Create(kind models.MembershipKind, userID, recipeID uint) (*models.Membership, error)
	Delete(kind models.MembershipKind, userID, recipeID uint) (int64, error)
	RecipeIDsIn(kind models.MembershipKind, userID uint, recipeIDs []uint) (map[uint]struct{}, error)
	CountByUser(kind models.MembershipKind, userID uint) (int64, error)
	CountByRecipes(kind models.MembershipKind, recipeIDs []uint) (map[uint]int64, error)
	ClearByUser(kind models.MembershipKind, userID uint) (int64, error)
}

// GormMembershipRepository GORM 实现，按 kind 选择数据表
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository 创建清单仓库
func NewMembershipRepository(db *gorm.DB) *GormMembershipRepository {
	return &GormMembershipRepository{db: db}
}

func (r *GormMembershipRepository) table(kind models.MembershipKind) (*gorm.DB, error) {
	if !kind.Valid() {
		return nil, ErrUnknownMembershipKind
	}
	return r.db.Table(kind.TableName()), nil
}

// Exists 判断 (user, recipe) 是否在清单中
func (r *GormMembershipRepository) Exists(kind models.MembershipKind, userID, recipeID uint) (bool, error) {
	query, err := r.table(kind)
	if err != nil {
		return false, err
	}
	var count int64
	if err := query.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 写入清单记录，唯一索引保证同一 (user, recipe) 至多一条
func (r *GormMembershipRepository) Create(kind models.MembershipKind, userID, recipeID uint) (*models.Membership, error) {
	query, err := r.table(kind)
	if err != nil {
		return nil, err
	}
	row := &models.Membership{UserID: userID, RecipeID: recipeID}
	if err := query.Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Delete 移除清单记录，返回删除行数
func (r *GormMembershipRepository) Delete(kind models.MembershipKind, userID, recipeID uint) (int64, error) {
	query, err := r.table(kind)
	if err != nil {
		return 0, err
	}
	result := query.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.Membership{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// RecipeIDsIn 返回给定菜谱中已在用户清单内的 ID 集合
func (r *GormMembershipRepository) RecipeIDsIn(kind models.MembershipKind, userID uint, recipeIDs []uint) (map[uint]struct{}, error) {
	result := make(map[uint]struct{}, len(recipeIDs))
	if userID == 0 || len(recipeIDs) == 0 {
		return result, nil
	}
	query, err := r.table(kind)
	if err != nil {
		return nil, err
	}
	var ids []uint
	if err := query.Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = struct{}{}
	}
	return result, nil
}

// CountByUser 统计用户清单条目数
func (r *GormMembershipRepository) CountByUser(kind models.MembershipKind, userID uint) (int64, error) {
	query, err := r.table(kind)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := query.Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByRecipes 按菜谱统计清单条目数
func (r *GormMembershipRepository) CountByRecipes(kind models.MembershipKind, recipeIDs []uint) (map[uint]int64, error) {
	result := make(map[uint]int64, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}
	query, err := r.table(kind)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		RecipeID uint
		Total    int64
	}
	if err := query.Select("recipe_id, COUNT(*) AS total").
		Where("recipe_id IN ?", recipeIDs).
		Group("recipe_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.RecipeID] = row.Total
	}
	return result, nil
}

// ClearByUser 清空用户清单
func (r *GormMembershipRepository) ClearByUser(kind models.MembershipKind, userID uint) (int64, error) {
	query, err := r.table(kind)
	if err != nil {
		return 0, err
	}
	result := query.Where("user_id = ?", userID).Delete(&models.Membership{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
