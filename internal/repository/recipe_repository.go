package repository

import (
	"strings"

	"github.com/foodgram-next/internal/models"

	"gorm.io/gorm"
)

// RecipeRepository 菜谱数据访问接口
type RecipeRepository interface {
	List(filter RecipeListFilter) ([]models.Recipe, int64, error)
	GetByID(id uint) (*models.Recipe, error)
	Exists(id uint) (bool, error)
	Create(recipe *models.Recipe) error
	Update(recipe *models.Recipe) error
	Delete(id uint) error
	CountByAuthor(authorID uint) (int64, error)
	CountByAuthors(authorIDs []uint) (map[uint]int64, error)
	ListByAuthor(authorID uint, limit int) ([]models.Recipe, error)
	WithTx(tx *gorm.DB) *GormRecipeRepository
}

// GormRecipeRepository GORM 实现
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository 创建菜谱仓库
func NewRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormRecipeRepository) WithTx(tx *gorm.DB) *GormRecipeRepository {
	if tx == nil {
		return r
	}
	return &GormRecipeRepository{db: tx}
}

// recipeTagRow recipe_tags 关联行
type recipeTagRow struct {
	RecipeID uint
	TagID    uint
}

func (recipeTagRow) TableName() string {
	return "recipe_tags"
}

func preloadRecipeDetails(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id ASC") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_ingredients.id ASC") }).
		Preload("Ingredients.Ingredient")
}

// List 菜谱列表，按创建时间倒序
func (r *GormRecipeRepository) List(filter RecipeListFilter) ([]models.Recipe, int64, error) {
	query := r.db.Model(&models.Recipe{})

	if filter.AuthorID != 0 {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if slugs := normalizeSlugs(filter.TagSlugs); len(slugs) > 0 {
		sub := r.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", slugs)
		query = query.Where("recipes.id IN (?)", sub)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Scopes(matchAny(containsPattern(search), "recipes.name"))
	}
	if filter.ViewerID != 0 {
		if filter.OnlyFavorited {
			sub := r.db.Table(models.MembershipFavorite.TableName()).Select("recipe_id").Where("user_id = ?", filter.ViewerID)
			query = query.Where("recipes.id IN (?)", sub)
		}
		if filter.OnlyInShoppingCart {
			sub := r.db.Table(models.MembershipShoppingCart.TableName()).Select("recipe_id").Where("user_id = ?", filter.ViewerID)
			query = query.Where("recipes.id IN (?)", sub)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.WithDetails {
		query = preloadRecipeDetails(query)
	}
	query = query.Scopes(paginate(filter.Page, filter.PageSize))

	recipes := make([]models.Recipe, 0)
	if err := query.Order("recipes.created_at DESC, recipes.id DESC").Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

func normalizeSlugs(raw []string) []string {
	result := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, item := range raw {
		slug := strings.TrimSpace(item)
		if slug == "" {
			continue
		}
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		result = append(result, slug)
	}
	return result
}

// GetByID 根据 ID 获取菜谱（含作者、标签、食材）
func (r *GormRecipeRepository) GetByID(id uint) (*models.Recipe, error) {
	return firstOrNil[models.Recipe](preloadRecipeDetails(r.db), id)
}

// Exists 判断菜谱是否存在
func (r *GormRecipeRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建菜谱及其标签、食材关联
func (r *GormRecipeRepository) Create(recipe *models.Recipe) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		ingredients := recipe.Ingredients
		tags := recipe.Tags
		recipe.Ingredients = nil
		recipe.Tags = nil
		defer func() {
			recipe.Ingredients = ingredients
			recipe.Tags = tags
		}()

		if err := tx.Omit("Author").Create(recipe).Error; err != nil {
			return err
		}
		if err := replaceRecipeTags(tx, recipe.ID, tags); err != nil {
			return err
		}
		return replaceRecipeIngredients(tx, recipe.ID, ingredients)
	})
}

// Update 更新菜谱字段，并整体替换标签与食材
func (r *GormRecipeRepository) Update(recipe *models.Recipe) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":         recipe.Name,
			"text":         recipe.Text,
			"image":        recipe.Image,
			"cooking_time": recipe.CookingTime,
		}
		if err := tx.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Updates(updates).Error; err != nil {
			return err
		}
		if err := replaceRecipeTags(tx, recipe.ID, recipe.Tags); err != nil {
			return err
		}
		return replaceRecipeIngredients(tx, recipe.ID, recipe.Ingredients)
	})
}

func replaceRecipeTags(tx *gorm.DB, recipeID uint, tags []models.Tag) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&recipeTagRow{}).Error; err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}
	rows := make([]recipeTagRow, 0, len(tags))
	for _, tag := range tags {
		rows = append(rows, recipeTagRow{RecipeID: recipeID, TagID: tag.ID})
	}
	return tx.Create(&rows).Error
}

func replaceRecipeIngredients(tx *gorm.DB, recipeID uint, items []models.RecipeIngredient) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	rows := make([]models.RecipeIngredient, 0, len(items))
	for _, item := range items {
		rows = append(rows, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: item.IngredientID,
			Amount:       item.Amount,
		})
	}
	return tx.Omit("Ingredient").Create(&rows).Error
}

// Delete 删除菜谱并级联清理清单、关联与短链
func (r *GormRecipeRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, kind := range []models.MembershipKind{models.MembershipFavorite, models.MembershipShoppingCart} {
			if err := tx.Table(kind.TableName()).Where("recipe_id = ?", id).Delete(&models.Membership{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.ShortLink{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&recipeTagRow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
}

// CountByAuthor 统计作者菜谱数
func (r *GormRecipeRepository) CountByAuthor(authorID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Recipe{}).Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByAuthors 批量统计作者菜谱数
func (r *GormRecipeRepository) CountByAuthors(authorIDs []uint) (map[uint]int64, error) {
	result := make(map[uint]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return result, nil
	}
	var rows []struct {
		AuthorID uint
		Total    int64
	}
	err := r.db.Model(&models.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.AuthorID] = row.Total
	}
	return result, nil
}

// ListByAuthor 获取作者最新菜谱，limit<=0 表示不限制
func (r *GormRecipeRepository) ListByAuthor(authorID uint, limit int) ([]models.Recipe, error) {
	query := r.db.Where("author_id = ?", authorID).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	recipes := make([]models.Recipe, 0)
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}
