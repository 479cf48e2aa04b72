package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

const maxRecipeNameLength = 256

// RecipeService 菜谱服务
type RecipeService struct {
	recipeRepo       repository.RecipeRepository
	tagRepo          repository.TagRepository
	ingredientRepo   repository.IngredientRepository
	membershipRepo   repository.MembershipRepository
	subscriptionRepo repository.SubscriptionRepository
	shortLinkRepo    repository.ShortLinkRepository
	images           *ImageService
}

// NewRecipeService 创建菜谱服务
func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	tagRepo repository.TagRepository,
	ingredientRepo repository.IngredientRepository,
	membershipRepo repository.MembershipRepository,
	subscriptionRepo repository.SubscriptionRepository,
	shortLinkRepo repository.ShortLinkRepository,
	images *ImageService,
) *RecipeService {
	return &RecipeService{
		recipeRepo:       recipeRepo,
		tagRepo:          tagRepo,
		ingredientRepo:   ingredientRepo,
		membershipRepo:   membershipRepo,
		subscriptionRepo: subscriptionRepo,
		shortLinkRepo:    shortLinkRepo,
		images:           images,
	}
}

// RecipeIngredientInput 菜谱食材用量
type RecipeIngredientInput struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount"`
}

// RecipeInput 创建/更新菜谱参数，更新时 Image 为空表示保留原图
type RecipeInput struct {
	Tags        []uint
	Ingredients []RecipeIngredientInput
	Image       string
	Name        string
	Text        string
	CookingTime int
}

// RecipeListQuery 菜谱列表查询
type RecipeListQuery struct {
	Page             int
	PageSize         int
	AuthorID         uint
	TagSlugs         []string
	ViewerID         uint
	IsFavorited      bool
	IsInShoppingCart bool
}

// AdminRecipeView 后台菜谱列表项
type AdminRecipeView struct {
	RecipeView
	FavoritesCount int64 `json:"favorites_count"`
}

// List 菜谱列表
func (s *RecipeService) List(query RecipeListQuery) ([]RecipeView, int64, error) {
	recipes, total, err := s.recipeRepo.List(repository.RecipeListFilter{
		Page:               query.Page,
		PageSize:           query.PageSize,
		AuthorID:           query.AuthorID,
		TagSlugs:           query.TagSlugs,
		ViewerID:           query.ViewerID,
		OnlyFavorited:      query.IsFavorited,
		OnlyInShoppingCart: query.IsInShoppingCart,
		WithDetails:        true,
	})
	if err != nil {
		return nil, 0, err
	}
	views, err := s.buildViews(recipes, query.ViewerID)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// Get 获取菜谱详情
func (s *RecipeService) Get(id, viewerID uint) (*RecipeView, error) {
	recipe, err := s.recipeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}
	views, err := s.buildViews([]models.Recipe{*recipe}, viewerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Create 创建菜谱，图片必填
func (s *RecipeService) Create(ctx context.Context, authorID uint, input RecipeInput) (*RecipeView, error) {
	if strings.TrimSpace(input.Image) == "" {
		return nil, newValidationError("image", "validation.required")
	}
	recipe, err := s.prepareRecipe(input)
	if err != nil {
		return nil, err
	}
	key, err := s.images.SaveDataURI(ctx, constants.ImageSceneRecipe, input.Image)
	if err != nil {
		return nil, err
	}
	recipe.AuthorID = authorID
	recipe.Image = key
	if err := s.recipeRepo.Create(recipe); err != nil {
		s.images.ScheduleCleanup(ctx, key, "recipe_create_failed")
		return nil, err
	}
	logger.Infow("recipe_created", "recipe_id", recipe.ID, "author_id", authorID)
	return s.Get(recipe.ID, authorID)
}

// Update 更新菜谱，仅作者可操作；标签与食材整体替换
func (s *RecipeService) Update(ctx context.Context, actorID, id uint, input RecipeInput) (*RecipeView, error) {
	current, err := s.recipeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrRecipeNotFound
	}
	if current.AuthorID != actorID {
		return nil, ErrRecipeForbidden
	}
	recipe, err := s.prepareRecipe(input)
	if err != nil {
		return nil, err
	}
	recipe.ID = current.ID
	recipe.AuthorID = current.AuthorID
	recipe.Image = current.Image

	newKey := ""
	if strings.TrimSpace(input.Image) != "" {
		newKey, err = s.images.SaveDataURI(ctx, constants.ImageSceneRecipe, input.Image)
		if err != nil {
			return nil, err
		}
		recipe.Image = newKey
	}
	if err := s.recipeRepo.Update(recipe); err != nil {
		if newKey != "" {
			s.images.ScheduleCleanup(ctx, newKey, "recipe_update_failed")
		}
		return nil, err
	}
	if newKey != "" && current.Image != newKey {
		s.images.ScheduleCleanup(ctx, current.Image, "recipe_image_replaced")
	}
	return s.Get(id, actorID)
}

// Delete 删除菜谱，仅作者可操作
func (s *RecipeService) Delete(ctx context.Context, actorID, id uint) error {
	recipe, err := s.recipeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if recipe == nil {
		return ErrRecipeNotFound
	}
	if recipe.AuthorID != actorID {
		return ErrRecipeForbidden
	}
	return s.deleteRecipe(ctx, recipe)
}

// AdminList 后台菜谱列表，附带收藏数
func (s *RecipeService) AdminList(filter repository.RecipeListFilter) ([]AdminRecipeView, int64, error) {
	filter.WithDetails = true
	filter.ViewerID = 0
	recipes, total, err := s.recipeRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.buildViews(recipes, 0)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]uint, 0, len(recipes))
	for _, recipe := range recipes {
		ids = append(ids, recipe.ID)
	}
	counts, err := s.membershipRepo.CountByRecipes(models.MembershipFavorite, ids)
	if err != nil {
		return nil, 0, err
	}
	result := make([]AdminRecipeView, 0, len(views))
	for _, view := range views {
		result = append(result, AdminRecipeView{RecipeView: view, FavoritesCount: counts[view.ID]})
	}
	return result, total, nil
}

// AdminGet 后台菜谱详情
func (s *RecipeService) AdminGet(id uint) (*AdminRecipeView, error) {
	view, err := s.Get(id, 0)
	if err != nil {
		return nil, err
	}
	counts, err := s.membershipRepo.CountByRecipes(models.MembershipFavorite, []uint{id})
	if err != nil {
		return nil, err
	}
	return &AdminRecipeView{RecipeView: *view, FavoritesCount: counts[id]}, nil
}

// AdminDelete 后台删除菜谱，不校验作者
func (s *RecipeService) AdminDelete(ctx context.Context, id uint) error {
	recipe, err := s.recipeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if recipe == nil {
		return ErrRecipeNotFound
	}
	return s.deleteRecipe(ctx, recipe)
}

func (s *RecipeService) deleteRecipe(ctx context.Context, recipe *models.Recipe) error {
	var code string
	if s.shortLinkRepo != nil {
		link, err := s.shortLinkRepo.GetByRecipeID(recipe.ID)
		if err != nil {
			return err
		}
		if link != nil {
			code = link.Code
		}
	}
	if err := s.recipeRepo.Delete(recipe.ID); err != nil {
		return err
	}
	if code != "" {
		if err := cache.DelShortLink(ctx, code); err != nil {
			logger.Warnw("short_link_cache_delete_failed", "code", code, "error", err)
		}
	}
	s.images.ScheduleCleanup(ctx, recipe.Image, "recipe_deleted")
	logger.Infow("recipe_deleted", "recipe_id", recipe.ID, "author_id", recipe.AuthorID)
	return nil
}

// prepareRecipe 校验输入并组装模型（不含图片）
func (s *RecipeService) prepareRecipe(input RecipeInput) (*models.Recipe, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, newValidationError("name", "validation.required")
	}
	if utf8.RuneCountInString(name) > maxRecipeNameLength {
		return nil, newValidationError("name", "validation.too_long", maxRecipeNameLength)
	}
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, newValidationError("text", "validation.required")
	}
	if input.CookingTime < 1 {
		return nil, newValidationError("cooking_time", "validation.min_value", 1)
	}

	tags, err := s.resolveTags(input.Tags)
	if err != nil {
		return nil, err
	}
	items, err := s.resolveIngredients(input.Ingredients)
	if err != nil {
		return nil, err
	}
	return &models.Recipe{
		Name:        name,
		Text:        text,
		CookingTime: input.CookingTime,
		Tags:        tags,
		Ingredients: items,
	}, nil
}

func (s *RecipeService) resolveTags(ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, newValidationError("tags", "validation.recipe_tags_required")
	}
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return nil, newValidationError("tags", "validation.recipe_tags_duplicate")
		}
		seen[id] = struct{}{}
	}
	tags, err := s.tagRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, newValidationError("tags", "validation.recipe_tag_not_found")
	}
	return tags, nil
}

func (s *RecipeService) resolveIngredients(items []RecipeIngredientInput) ([]models.RecipeIngredient, error) {
	if len(items) == 0 {
		return nil, newValidationError("ingredients", "validation.recipe_ingredients_required")
	}
	ids := make([]uint, 0, len(items))
	seen := make(map[uint]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			return nil, newValidationError("ingredients", "validation.recipe_ingredients_duplicate")
		}
		if item.Amount < 1 {
			return nil, newValidationError("ingredients", "validation.min_value", 1)
		}
		seen[item.ID] = struct{}{}
		ids = append(ids, item.ID)
	}
	found, err := s.ingredientRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, newValidationError("ingredients", "validation.recipe_ingredient_not_found")
	}
	result := make([]models.RecipeIngredient, 0, len(items))
	for _, item := range items {
		result = append(result, models.RecipeIngredient{IngredientID: item.ID, Amount: item.Amount})
	}
	return result, nil
}

// buildViews 组装菜谱视图，补齐当前用户的收藏/购物车/订阅标记
func (s *RecipeService) buildViews(recipes []models.Recipe, viewerID uint) ([]RecipeView, error) {
	recipeIDs := make([]uint, 0, len(recipes))
	authorIDs := make([]uint, 0, len(recipes))
	for _, recipe := range recipes {
		recipeIDs = append(recipeIDs, recipe.ID)
		authorIDs = append(authorIDs, recipe.AuthorID)
	}
	favorited, err := s.membershipRepo.RecipeIDsIn(models.MembershipFavorite, viewerID, recipeIDs)
	if err != nil {
		return nil, err
	}
	inCart, err := s.membershipRepo.RecipeIDsIn(models.MembershipShoppingCart, viewerID, recipeIDs)
	if err != nil {
		return nil, err
	}
	subscribed := map[uint]struct{}{}
	if viewerID != 0 {
		subscribed, err = s.subscriptionRepo.AuthorIDsIn(viewerID, authorIDs)
		if err != nil {
			return nil, err
		}
	}

	views := make([]RecipeView, 0, len(recipes))
	for i := range recipes {
		recipe := &recipes[i]
		_, isFavorited := favorited[recipe.ID]
		_, isInCart := inCart[recipe.ID]
		_, isSubscribed := subscribed[recipe.AuthorID]
		views = append(views, RecipeView{
			ID:               recipe.ID,
			Tags:             toTagViews(recipe.Tags),
			Author:           toUserView(recipe.Author, isSubscribed, s.images),
			Ingredients:      toRecipeIngredientViews(recipe.Ingredients),
			IsFavorited:      isFavorited,
			IsInShoppingCart: isInCart,
			Name:             recipe.Name,
			Image:            s.images.URL(recipe.Image),
			Text:             recipe.Text,
			CookingTime:      recipe.CookingTime,
		})
	}
	return views, nil
}

func toRecipeIngredientViews(items []models.RecipeIngredient) []RecipeIngredientView {
	result := make([]RecipeIngredientView, 0, len(items))
	for _, item := range items {
		view := RecipeIngredientView{ID: item.IngredientID, Amount: item.Amount}
		if item.Ingredient != nil {
			view.Name = item.Ingredient.Name
			view.MeasurementUnit = item.Ingredient.MeasurementUnit
		}
		result = append(result, view)
	}
	return result
}
