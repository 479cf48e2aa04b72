package repository

import (
	"strings"

	"github.com/foodgram-next/internal/models"

	"gorm.io/gorm"
)

// TagRepository 标签数据访问接口
type TagRepository interface {
	List() ([]models.Tag, error)
	GetByID(id uint) (*models.Tag, error)
	GetBySlug(slug string) (*models.Tag, error)
	GetByIDs(ids []uint) ([]models.Tag, error)
	Create(tag *models.Tag) error
	Update(tag *models.Tag) error
	Delete(id uint) error
	CountRecipes(id uint) (int64, error)
}

// GormTagRepository GORM 实现
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository 创建标签仓库
func NewTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// List 获取全部标签，按名称排序
func (r *GormTagRepository) List() ([]models.Tag, error) {
	tags := make([]models.Tag, 0)
	if err := r.db.Order("name ASC, id ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetByID 根据 ID 获取标签
func (r *GormTagRepository) GetByID(id uint) (*models.Tag, error) {
	return firstOrNil[models.Tag](r.db, id)
}

// GetBySlug 根据 slug 获取标签
func (r *GormTagRepository) GetBySlug(slug string) (*models.Tag, error) {
	return firstOrNil[models.Tag](r.db.Where("slug = ?", strings.TrimSpace(slug)))
}

// GetByIDs 批量获取标签，结果按 ID 升序
func (r *GormTagRepository) GetByIDs(ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	var tags []models.Tag
	if err := r.db.Where("id IN ?", ids).Order("id ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Create 创建标签
func (r *GormTagRepository) Create(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

// Update 更新标签
func (r *GormTagRepository) Update(tag *models.Tag) error {
	return r.db.Save(tag).Error
}

// Delete 删除标签，同时移除菜谱关联
func (r *GormTagRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tag{}, id).Error
	})
}

// CountRecipes 统计使用该标签的菜谱数
func (r *GormTagRepository) CountRecipes(id uint) (int64, error) {
	var count int64
	if err := r.db.Table("recipe_tags").Where("tag_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
