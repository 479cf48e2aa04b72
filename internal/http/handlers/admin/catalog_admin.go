package admin

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/repository"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

const ingredientExportFilename = "ingredients.csv"

type tagPayload struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ingredientPayload struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// ====================  标签管理  ====================

// GetAdminTags 标签列表
func (h *Handler) GetAdminTags(c *gin.Context) {
	tags, err := h.TagService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, tags)
}

// CreateTag 创建标签
func (h *Handler) CreateTag(c *gin.Context) {
	var req tagPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	tag, err := h.TagService.Create(service.TagInput{Name: req.Name, Slug: req.Slug})
	if err != nil {
		respondWithMappedError(c, err, tagErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, tag)
}

// UpdateTag 更新标签
func (h *Handler) UpdateTag(c *gin.Context) {
	id, ok := parseIDParam(c, "error.tag_not_found")
	if !ok {
		return
	}
	var req tagPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	tag, err := h.TagService.Update(id, service.TagInput{Name: req.Name, Slug: req.Slug})
	if err != nil {
		respondWithMappedError(c, err, tagErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, tag)
}

// DeleteTag 删除标签，被菜谱引用时拒绝
func (h *Handler) DeleteTag(c *gin.Context) {
	id, ok := parseIDParam(c, "error.tag_not_found")
	if !ok {
		return
	}
	if err := h.TagService.Delete(id); err != nil {
		respondWithMappedError(c, err, tagErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, nil)
}

// ====================  食材管理  ====================

// GetAdminIngredients 食材分页列表
func (h *Handler) GetAdminIngredients(c *gin.Context) {
	page, pageSize := readPage(c)

	items, total, err := h.IngredientService.List(repository.IngredientListFilter{
		Page:     page,
		PageSize: pageSize,
		Name:     strings.TrimSpace(c.Query("name")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.SuccessWithPage(c, items, response.NewPage(c, page, pageSize, total))
}

// GetAdminIngredient 食材详情
func (h *Handler) GetAdminIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "error.ingredient_not_found")
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

// CreateIngredient 创建食材
func (h *Handler) CreateIngredient(c *gin.Context) {
	var req ingredientPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.IngredientService.Create(service.IngredientInput{Name: req.Name, MeasurementUnit: req.MeasurementUnit})
	if err != nil {
		respondWithMappedError(c, err, ingredientErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, item)
}

// UpdateIngredient 更新食材
func (h *Handler) UpdateIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "error.ingredient_not_found")
	if !ok {
		return
	}
	var req ingredientPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.IngredientService.Update(id, service.IngredientInput{Name: req.Name, MeasurementUnit: req.MeasurementUnit})
	if err != nil {
		respondWithMappedError(c, err, ingredientErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, item)
}

// DeleteIngredient 删除食材，被菜谱引用时拒绝
func (h *Handler) DeleteIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "error.ingredient_not_found")
	if !ok {
		return
	}
	if err := h.IngredientService.Delete(id); err != nil {
		respondWithMappedError(c, err, ingredientErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, nil)
}

// ImportIngredients 通过 multipart 字段 file 导入 CSV，重复项跳过
func (h *Handler) ImportIngredients(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.file_required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.file_required", err)
		return
	}
	defer file.Close()

	result, err := h.IngredientService.ImportCSV(file)
	if err != nil {
		respondWithMappedError(c, err, ingredientErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	logOperation(c, "admin_ingredients_imported",
		"filename", fileHeader.Filename,
		"total", result.Total,
		"inserted", result.Inserted,
		"skipped", result.Skipped,
	)
	response.Success(c, result)
}

// ExportIngredients 导出全部食材为 CSV 附件
func (h *Handler) ExportIngredients(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.IngredientService.ExportCSV(&buf); err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+ingredientExportFilename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
