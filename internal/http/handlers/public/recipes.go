package public

import (
	"strconv"
	"strings"

	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/service"

	handlershared "github.com/foodgram-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// RecipeRequest 创建/更新菜谱请求，字段校验由 service 层完成
type RecipeRequest struct {
	Tags        []uint                          `json:"tags"`
	Ingredients []service.RecipeIngredientInput `json:"ingredients"`
	Image       string                          `json:"image"`
	Name        string                          `json:"name"`
	Text        string                          `json:"text"`
	CookingTime int                             `json:"cooking_time"`
}

func (r RecipeRequest) toInput() service.RecipeInput {
	return service.RecipeInput{
		Tags:        r.Tags,
		Ingredients: r.Ingredients,
		Image:       r.Image,
		Name:        r.Name,
		Text:        r.Text,
		CookingTime: r.CookingTime,
	}
}

var recipeWriteErrorRules = handlershared.ConcatMappedErrors(recipeErrorRules, imageErrorRules)

// ListRecipes 菜谱列表，登录后可按收藏/购物车过滤
func (h *Handler) ListRecipes(c *gin.Context) {
	page, pageSize := h.readPagination(c)
	query := service.RecipeListQuery{
		Page:             page,
		PageSize:         pageSize,
		TagSlugs:         c.QueryArray("tags"),
		ViewerID:         optionalUserID(c),
		IsFavorited:      parseFlag(c.Query("is_favorited")),
		IsInShoppingCart: parseFlag(c.Query("is_in_shopping_cart")),
	}
	if raw := strings.TrimSpace(c.Query("author")); raw != "" {
		authorID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		query.AuthorID = uint(authorID)
	}

	recipes, total, err := h.RecipeService.List(query)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.SuccessWithPage(c, recipes, response.NewPage(c, page, pageSize, total))
}

// GetRecipe 菜谱详情
func (h *Handler) GetRecipe(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}
	recipe, err := h.RecipeService.Get(id, optionalUserID(c))
	if err != nil {
		respondWithMappedError(c, err, recipeErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, recipe)
}

// CreateRecipe 发布菜谱
func (h *Handler) CreateRecipe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	recipe, err := h.RecipeService.Create(c.Request.Context(), userID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, recipeWriteErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, recipe)
}

// UpdateRecipe 作者更新菜谱，image 为空时保留原图
func (h *Handler) UpdateRecipe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	recipe, err := h.RecipeService.Update(c.Request.Context(), userID, id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, recipeWriteErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, recipe)
}

// DeleteRecipe 作者删除菜谱
func (h *Handler) DeleteRecipe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}
	if err := h.RecipeService.Delete(c.Request.Context(), userID, id); err != nil {
		respondWithMappedError(c, err, recipeErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, nil)
}

// GetRecipeLink 获取菜谱短链，同一菜谱重复调用返回同一地址
func (h *Handler) GetRecipeLink(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}
	url, err := h.ShortLinkService.GetOrCreate(c.Request.Context(), id)
	if err != nil {
		respondWithMappedError(c, err, shortLinkErrorRules, response.CodeInternal, "error.short_link_failed")
		return
	}
	response.Success(c, gin.H{"short-link": url})
}

func parseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
