package shared

import (
	"strings"

	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CaptchaFields 登录、注册请求体中的图形验证码字段
type CaptchaFields struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// CaptchaErrorRules 验证码错误映射
var CaptchaErrorRules = []MappedError{
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrCaptchaConfigInvalid, Code: response.CodeInternal, Key: "error.captcha_config_invalid"},
}

// VerifyCaptcha 校验失败时已写入响应；未注入验证码服务视为关闭
func VerifyCaptcha(c *gin.Context, svc *service.CaptchaService, scene string, fields CaptchaFields) bool {
	if svc == nil {
		return true
	}
	err := svc.Verify(scene, service.CaptchaVerifyPayload{
		CaptchaID:   strings.TrimSpace(fields.CaptchaID),
		CaptchaCode: strings.TrimSpace(fields.CaptchaCode),
	})
	if err != nil {
		RespondWithMappedError(c, err, CaptchaErrorRules, response.CodeInternal, "error.internal_error")
		return false
	}
	return true
}
