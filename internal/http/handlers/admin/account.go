package admin

import (
	"time"

	"github.com/foodgram-next/internal/constants"
	handlershared "github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/models"

	"github.com/gin-gonic/gin"
)

type adminCredentials struct {
	Username string                      `json:"username" binding:"required"`
	Password string                      `json:"password" binding:"required"`
	Captcha  handlershared.CaptchaFields `json:"captcha_payload"`
}

type passwordChange struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// adminView 对外展示的管理员字段，不含密码哈希
type adminView struct {
	ID          uint       `json:"id"`
	Username    string     `json:"username"`
	IsSuper     bool       `json:"is_super"`
	Disabled    bool       `json:"disabled"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	Roles       []string   `json:"roles,omitempty"`
}

func viewAdmin(a *models.Admin, roles []string) adminView {
	return adminView{
		ID:          a.ID,
		Username:    a.Username,
		IsSuper:     a.IsSuper,
		Disabled:    a.Disabled,
		LastLoginAt: a.LastLoginAt,
		CreatedAt:   a.CreatedAt,
		Roles:       roles,
	}
}

func accountFailed(c *gin.Context, err error) {
	respondWithMappedError(c, err, adminAccountErrorRules, response.CodeInternal, "error.internal_error")
}

// AdminLogin 用户名密码登录，开启验证码时需附带 captcha_payload
func (h *Handler) AdminLogin(c *gin.Context) {
	var creds adminCredentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !handlershared.VerifyCaptcha(c, h.CaptchaService, constants.CaptchaSceneLogin, creds.Captcha) {
		return
	}
	admin, token, expiresAt, err := h.AuthService.Login(creds.Username, creds.Password)
	if err != nil {
		accountFailed(c, err)
		return
	}
	requestLog(c).Infow("admin_login", "admin_id", admin.ID)
	response.Success(c, gin.H{
		"token":      token,
		"user":       viewAdmin(admin, nil),
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// UpdateAdminPassword 修改自己的密码，旧令牌随之失效
func (h *Handler) UpdateAdminPassword(c *gin.Context) {
	self, ok := getAdminID(c)
	if !ok {
		return
	}
	var change passwordChange
	if err := c.ShouldBindJSON(&change); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthService.ChangePassword(self, change.OldPassword, change.NewPassword); err != nil {
		accountFailed(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *Handler) ListAdmins(c *gin.Context) {
	admins, err := h.AuthService.ListAdmins()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	views := make([]adminView, 0, len(admins))
	for i := range admins {
		roles, err := h.AuthzService.GetAdminRoles(admins[i].ID)
		if err != nil {
			authzFailed(c, err)
			return
		}
		views = append(views, viewAdmin(&admins[i], roles))
	}
	response.Success(c, views)
}

// CreateAdmin 新管理员没有任何角色
func (h *Handler) CreateAdmin(c *gin.Context) {
	var creds adminCredentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	created, err := h.AuthService.CreateAdmin(creds.Username, creds.Password)
	if err != nil {
		accountFailed(c, err)
		return
	}
	logOperation(c, "admin_created", "admin_id", created.ID)
	response.Success(c, viewAdmin(created, nil))
}

// SetAdminDisabled 不能停用自己
func (h *Handler) SetAdminDisabled(c *gin.Context) {
	self, ok := getAdminID(c)
	if !ok {
		return
	}
	target, ok := parseIDParam(c, "error.admin_not_found")
	if !ok {
		return
	}
	var body struct {
		Disabled bool `json:"disabled"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthService.SetAdminDisabled(self, target, body.Disabled); err != nil {
		accountFailed(c, err)
		return
	}
	logOperation(c, "admin_disabled_updated", "admin_id", target, "disabled", body.Disabled)
	response.Success(c, nil)
}
