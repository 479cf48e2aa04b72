package admin

import (
	"strings"
	"time"

	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// userListQuery 时间参数使用 RFC3339
type userListQuery struct {
	Keyword     string     `form:"keyword"`
	Status      string     `form:"status"`
	CreatedFrom *time.Time `form:"created_from" time_format:"2006-01-02T15:04:05Z07:00"`
	CreatedTo   *time.Time `form:"created_to" time_format:"2006-01-02T15:04:05Z07:00"`
}

type userStatusBatch struct {
	UserIDs []uint `json:"user_ids" binding:"required,min=1"`
	Status  string `json:"status" binding:"required"`
}

// GetAdminUsers 用户列表，支持关键字、状态、注册时间筛选
func (h *Handler) GetAdminUsers(c *gin.Context) {
	var q userListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	page, pageSize := readPage(c)
	users, total, err := h.UserService.AdminList(repository.UserListFilter{
		Page:        page,
		PageSize:    pageSize,
		Keyword:     strings.TrimSpace(q.Keyword),
		Status:      strings.TrimSpace(q.Status),
		CreatedFrom: q.CreatedFrom,
		CreatedTo:   q.CreatedTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.SuccessWithPage(c, users, response.NewPage(c, page, pageSize, total))
}

// GetAdminUser 用户详情带菜谱数、订阅者数、收藏数
func (h *Handler) GetAdminUser(c *gin.Context) {
	id, ok := parseIDParam(c, "error.user_not_found")
	if !ok {
		return
	}
	if detail, err := h.UserService.AdminDetail(id); err != nil {
		respondWithMappedError(c, err, userErrorRules, response.CodeInternal, "error.internal_error")
	} else {
		response.Success(c, detail)
	}
}

// BatchUpdateUserStatus 禁用或恢复一批用户，禁用后其令牌立即失效
func (h *Handler) BatchUpdateUserStatus(c *gin.Context) {
	var batch userStatusBatch
	if err := c.ShouldBindJSON(&batch); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.UserService.BatchUpdateStatus(batch.UserIDs, batch.Status); err != nil {
		respondWithMappedError(c, err, userErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	logOperation(c, "admin_users_status_updated", "user_ids", batch.UserIDs, "status", batch.Status)
	response.Success(c, gin.H{"updated": len(batch.UserIDs)})
}
