package repository

import (
	"strings"

	"github.com/foodgram-next/internal/models"

	"gorm.io/gorm"
)

// ShortLinkRepository 短链数据访问接口
type ShortLinkRepository interface {
	GetByCode(code string) (*models.ShortLink, error)
	GetByRecipeID(recipeID uint) (*models.ShortLink, error)
	CodeExists(code string) (bool, error)
	Create(link *models.ShortLink) error
}

// GormShortLinkRepository GORM 实现
type GormShortLinkRepository struct {
	db *gorm.DB
}

// NewShortLinkRepository 创建短链仓库
func NewShortLinkRepository(db *gorm.DB) *GormShortLinkRepository {
	return &GormShortLinkRepository{db: db}
}

// GetByCode 根据短码获取（区分大小写）
func (r *GormShortLinkRepository) GetByCode(code string) (*models.ShortLink, error) {
	return firstOrNil[models.ShortLink](r.db.Where("code = ?", strings.TrimSpace(code)))
}

// GetByRecipeID 根据菜谱获取短链
func (r *GormShortLinkRepository) GetByRecipeID(recipeID uint) (*models.ShortLink, error) {
	return firstOrNil[models.ShortLink](r.db.Where("recipe_id = ?", recipeID))
}

// CodeExists 判断短码是否已占用
func (r *GormShortLinkRepository) CodeExists(code string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.ShortLink{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建短链
func (r *GormShortLinkRepository) Create(link *models.ShortLink) error {
	return r.db.Omit("Recipe").Create(link).Error
}
