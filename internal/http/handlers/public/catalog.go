package public

import (
	"strings"

	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/service"

	handlershared "github.com/foodgram-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

var tagErrorRules = []mappedHandlerError{
	{Target: service.ErrTagNotFound, Code: response.CodeNotFound, Key: "error.tag_not_found"},
}

var ingredientErrorRules = []mappedHandlerError{
	{Target: service.ErrIngredientNotFound, Code: response.CodeNotFound, Key: "error.ingredient_not_found"},
}

// ListTags 标签列表，不分页
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.TagService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, tags)
}

// GetTag 标签详情
func (h *Handler) GetTag(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id", "error.tag_not_found")
	if !ok {
		return
	}
	tag, err := h.TagService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, tagErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, tag)
}

// ListIngredients 食材列表，name 前缀匹配优先
func (h *Handler) ListIngredients(c *gin.Context) {
	items, err := h.IngredientService.Search(strings.TrimSpace(c.Query("name")))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, items)
}

// GetIngredient 食材详情
func (h *Handler) GetIngredient(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id", "error.ingredient_not_found")
	if !ok {
		return
	}
	item, err := h.IngredientService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, ingredientErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, item)
}
