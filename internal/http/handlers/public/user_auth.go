package public

import (
	"time"

	"github.com/foodgram-next/internal/constants"
	handlershared "github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Email     string                      `json:"email" binding:"required"`
	Username  string                      `json:"username" binding:"required"`
	FirstName string                      `json:"first_name" binding:"required"`
	LastName  string                      `json:"last_name" binding:"required"`
	Password  string                      `json:"password" binding:"required"`
	Captcha   handlershared.CaptchaFields `json:"captcha_payload"`
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Email    string                      `json:"email" binding:"required"`
	Password string                      `json:"password" binding:"required"`
	Captcha  handlershared.CaptchaFields `json:"captcha_payload"`
}

// UserRegister 用户注册
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !handlershared.VerifyCaptcha(c, h.CaptchaService, constants.CaptchaSceneRegister, req.Captcha) {
		return
	}

	user, err := h.UserAuthService.Register(service.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		respondWithMappedError(c, err, registerErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	requestLog(c).Infow("user_registered", "user_id", user.ID)

	response.Success(c, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	})
}

// UserLogin 用户登录，签发 Token
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !handlershared.VerifyCaptcha(c, h.CaptchaService, constants.CaptchaSceneLogin, req.Captcha) {
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password)
	if err != nil {
		respondWithMappedError(c, err, loginErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	requestLog(c).Infow("user_login", "user_id", user.ID)

	response.Success(c, gin.H{
		"auth_token": token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// UserLogout 注销当前用户全部 Token
func (h *Handler) UserLogout(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.UserAuthService.Logout(userID); err != nil {
		respondWithMappedError(c, err, userErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, nil)
}
