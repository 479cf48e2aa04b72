package public

import (
	"errors"

	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCaptchaConfig 前端据此决定登录/注册表单是否显示验证码
func (h *Handler) GetCaptchaConfig(c *gin.Context) {
	response.Success(c, h.CaptchaService.PublicSetting())
}

// GetImageCaptcha 生成一张 base64 图片验证码
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	var err error = service.ErrCaptchaConfigInvalid
	var challenge *service.CaptchaImageChallenge
	if h.CaptchaService != nil {
		challenge, err = h.CaptchaService.GenerateImageChallenge()
	}
	switch {
	case err == nil:
		response.Success(c, gin.H{"captcha_id": challenge.CaptchaID, "image_base64": challenge.ImageBase64})
	case errors.Is(err, service.ErrCaptchaConfigInvalid):
		respondError(c, response.CodeBadRequest, "error.captcha_config_invalid", err)
	default:
		respondError(c, response.CodeInternal, "error.internal_error", err)
	}
}
