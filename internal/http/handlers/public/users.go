package public

import (
	"strconv"
	"strings"

	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/service"

	handlershared "github.com/foodgram-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// UpdateAvatarRequest 更新头像请求，avatar 为 data URI
type UpdateAvatarRequest struct {
	Avatar string `json:"avatar"`
}

// SetPasswordRequest 修改密码请求
type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// ListUsers 用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	page, pageSize := h.readPagination(c)
	users, total, err := h.UserService.List(page, pageSize, optionalUserID(c))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.SuccessWithPage(c, users, response.NewPage(c, page, pageSize, total))
}

// GetUser 用户资料
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id", "error.user_not_found")
	if !ok {
		return
	}
	user, err := h.UserService.Get(id, optionalUserID(c))
	if err != nil {
		respondWithMappedError(c, err, userErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, user)
}

// GetCurrentUser 当前登录用户
func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserService.Get(userID, userID)
	if err != nil {
		respondWithMappedError(c, err, userErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, user)
}

// UpdateAvatar 上传头像
func (h *Handler) UpdateAvatar(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	url, err := h.UserService.UpdateAvatar(c.Request.Context(), userID, req.Avatar)
	if err != nil {
		respondWithMappedError(c, err, handlershared.ConcatMappedErrors(userErrorRules, imageErrorRules), response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, gin.H{"avatar": url})
}

// DeleteAvatar 删除头像
func (h *Handler) DeleteAvatar(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.UserService.DeleteAvatar(c.Request.Context(), userID); err != nil {
		respondWithMappedError(c, err, userErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, nil)
}

// SetPassword 修改密码，成功后需重新登录
func (h *Handler) SetPassword(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.UserAuthService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, userErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	requestLog(c).Infow("user_password_changed", "user_id", userID)
	response.Success(c, nil)
}

// ListSubscriptions 当前用户的订阅列表
func (h *Handler) ListSubscriptions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	recipesLimit, err := parseRecipesLimit(c)
	if err != nil {
		respondWithMappedError(c, err, subscriptionErrorRules, response.CodeBadRequest, "error.bad_request")
		return
	}
	page, pageSize := h.readPagination(c)
	items, total, err := h.SubscriptionService.List(userID, page, pageSize, recipesLimit)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.SuccessWithPage(c, items, response.NewPage(c, page, pageSize, total))
}

// Subscribe 订阅作者
func (h *Handler) Subscribe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	authorID, ok := handlershared.ParseIDParam(c, "id", "error.author_not_found")
	if !ok {
		return
	}
	recipesLimit, err := parseRecipesLimit(c)
	if err != nil {
		respondWithMappedError(c, err, subscriptionErrorRules, response.CodeBadRequest, "error.bad_request")
		return
	}
	view, err := h.SubscriptionService.Subscribe(userID, authorID, recipesLimit)
	if err != nil {
		respondWithMappedError(c, err, subscriptionErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, view)
}

// Unsubscribe 取消订阅
func (h *Handler) Unsubscribe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	authorID, ok := handlershared.ParseIDParam(c, "id", "error.author_not_found")
	if !ok {
		return
	}
	if err := h.SubscriptionService.Unsubscribe(userID, authorID); err != nil {
		respondWithMappedError(c, err, subscriptionErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, nil)
}

// parseRecipesLimit 解析 recipes_limit，缺省返回 0（不截断）
func parseRecipesLimit(c *gin.Context) (int, error) {
	raw := strings.TrimSpace(c.Query("recipes_limit"))
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, service.ErrInvalidRecipeLimit
	}
	return limit, nil
}
