package repository

import (
	"strings"

	"github.com/foodgram-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IngredientRepository 食材数据访问接口
type IngredientRepository interface {
	List(filter IngredientListFilter) ([]models.Ingredient, int64, error)
	ListAll() ([]models.Ingredient, error)
	GetByID(id uint) (*models.Ingredient, error)
	GetByIDs(ids []uint) ([]models.Ingredient, error)
	GetByNameUnit(name, unit string) (*models.Ingredient, error)
	Create(ingredient *models.Ingredient) error
	Update(ingredient *models.Ingredient) error
	Delete(id uint) error
	CountUsage(id uint) (int64, error)
	BulkCreate(ingredients []models.Ingredient) (int64, error)
}

// GormIngredientRepository GORM 实现
type GormIngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository 创建食材仓库
func NewIngredientRepository(db *gorm.DB) *GormIngredientRepository {
	return &GormIngredientRepository{db: db}
}

// List 按名称搜索食材，前缀命中排在包含命中之前
func (r *GormIngredientRepository) List(filter IngredientListFilter) ([]models.Ingredient, int64, error) {
	query := r.db.Model(&models.Ingredient{})

	order := clause.OrderBy{Expression: clause.Expr{SQL: "name ASC, id ASC", WithoutParentheses: true}}
	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Scopes(matchAny(containsPattern(name), "name"))
		order = clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN " + caseInsensitiveLike(r.db, "name") + " THEN 0 ELSE 1 END, name ASC, id ASC",
			Vars:               []interface{}{prefixPattern(name)},
			WithoutParentheses: true,
		}}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Scopes(paginate(filter.Page, filter.PageSize))

	ingredients := make([]models.Ingredient, 0)
	if err := query.Order(order).Find(&ingredients).Error; err != nil {
		return nil, 0, err
	}
	return ingredients, total, nil
}

// ListAll 全量导出
func (r *GormIngredientRepository) ListAll() ([]models.Ingredient, error) {
	ingredients := make([]models.Ingredient, 0)
	if err := r.db.Order("name ASC, id ASC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// GetByID 根据 ID 获取食材
func (r *GormIngredientRepository) GetByID(id uint) (*models.Ingredient, error) {
	return firstOrNil[models.Ingredient](r.db, id)
}

// GetByIDs 批量获取食材
func (r *GormIngredientRepository) GetByIDs(ids []uint) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return []models.Ingredient{}, nil
	}
	var ingredients []models.Ingredient
	if err := r.db.Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// GetByNameUnit 根据名称与单位获取食材
func (r *GormIngredientRepository) GetByNameUnit(name, unit string) (*models.Ingredient, error) {
	return firstOrNil[models.Ingredient](r.db.Where("name = ? AND measurement_unit = ?", name, unit))
}

// Create 创建食材
func (r *GormIngredientRepository) Create(ingredient *models.Ingredient) error {
	return r.db.Create(ingredient).Error
}

// Update 更新食材
func (r *GormIngredientRepository) Update(ingredient *models.Ingredient) error {
	return r.db.Save(ingredient).Error
}

// Delete 删除食材
func (r *GormIngredientRepository) Delete(id uint) error {
	return r.db.Delete(&models.Ingredient{}, id).Error
}

// CountUsage 统计引用该食材的菜谱条目数
func (r *GormIngredientRepository) CountUsage(id uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.RecipeIngredient{}).Where("ingredient_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// BulkCreate 批量导入，(name, measurement_unit) 已存在的跳过，返回实际写入数量
func (r *GormIngredientRepository) BulkCreate(ingredients []models.Ingredient) (int64, error) {
	if len(ingredients) == 0 {
		return 0, nil
	}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&ingredients, 200)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
