package admin

import (
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/models"

	"github.com/gin-gonic/gin"
)

func authzFailed(c *gin.Context, err error) {
	respondWithMappedError(c, err, authzErrorRules, response.CodeInternal, "error.authz_failed")
}

// GetAuthzMe 当前管理员的角色快照，前端据此裁剪菜单
func (h *Handler) GetAuthzMe(c *gin.Context) {
	self, ok := getAdminID(c)
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(self)
	if err != nil {
		authzFailed(c, err)
		return
	}
	response.Success(c, gin.H{"admin_id": self, "is_super": c.GetBool("admin_is_super"), "roles": roles})
}

func (h *Handler) ListAuthzRoles(c *gin.Context) {
	if roles, err := h.AuthzService.ListRoles(); err != nil {
		authzFailed(c, err)
	} else {
		response.Success(c, roles)
	}
}

func (h *Handler) GetAuthzAdminRoles(c *gin.Context) {
	target, ok := h.targetAdmin(c)
	if !ok {
		return
	}
	if roles, err := h.AuthzService.GetAdminRoles(target.ID); err != nil {
		authzFailed(c, err)
	} else {
		response.Success(c, roles)
	}
}

// SetAuthzAdminRoles 用请求中的角色整体替换
func (h *Handler) SetAuthzAdminRoles(c *gin.Context) {
	target, ok := h.targetAdmin(c)
	if !ok {
		return
	}
	var body struct {
		Roles []string `json:"roles"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthzService.SetAdminRoles(target.ID, body.Roles); err != nil {
		authzFailed(c, err)
		return
	}
	logOperation(c, "admin_roles_replaced", "target_admin_id", target.ID, "target_username", target.Username, "roles", body.Roles)
	response.Success(c, nil)
}

// targetAdmin 路径 :id 对应的管理员，失败时已写入响应
func (h *Handler) targetAdmin(c *gin.Context) (*models.Admin, bool) {
	id, ok := parseIDParam(c, "error.admin_not_found")
	if !ok {
		return nil, false
	}
	found, err := h.AdminRepo.GetByID(id)
	switch {
	case err != nil:
		respondError(c, response.CodeInternal, "error.internal_error", err)
	case found == nil:
		respondError(c, response.CodeNotFound, "error.admin_not_found", nil)
	default:
		return found, true
	}
	return nil, false
}
