package admin

import (
	"strconv"
	"strings"

	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetAdminRecipes 后台菜谱列表，按名称搜索并附带收藏数
func (h *Handler) GetAdminRecipes(c *gin.Context) {
	page, pageSize := readPage(c)

	filter := repository.RecipeListFilter{
		Page:        page,
		PageSize:    pageSize,
		TagSlugs:    c.QueryArray("tags"),
		Search:      strings.TrimSpace(c.Query("keyword")),
		WithDetails: true,
	}
	if raw := strings.TrimSpace(c.Query("author")); raw != "" {
		authorID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		filter.AuthorID = uint(authorID)
	}

	items, total, err := h.RecipeService.AdminList(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.SuccessWithPage(c, items, response.NewPage(c, page, pageSize, total))
}

// GetAdminRecipe 后台菜谱详情
func (h *Handler) GetAdminRecipe(c *gin.Context) {
	id, ok := parseIDParam(c, "error.recipe_not_found")
	if !ok {
		return
	}
	item, err := h.RecipeService.AdminGet(id)
	if err != nil {
		respondWithMappedError(c, err, recipeErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, item)
}

// DeleteAdminRecipe 后台删除菜谱
func (h *Handler) DeleteAdminRecipe(c *gin.Context) {
	id, ok := parseIDParam(c, "error.recipe_not_found")
	if !ok {
		return
	}
	if err := h.RecipeService.AdminDelete(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, err, recipeErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	logOperation(c, "admin_recipe_deleted", "recipe_id", id)
	response.Success(c, nil)
}
