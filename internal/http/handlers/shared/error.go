package shared

import (
	"errors"
	"slices"

	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/i18n"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MappedError errors.Is 命中 Target 时以 Code 与 Key 对应的文案响应
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// localizedError 自带 i18n 键与参数的错误，如字段校验和密码策略
type localizedError interface {
	error
	Key() string
	Args() []interface{}
}

// RequestLog 带 request_id 的 logger
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c != nil {
		if id := c.GetString("request_id"); id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError err 非 nil 时记录到错误日志，客户端只看到翻译后的文案
func RespondError(c *gin.Context, code int, key string, err error) {
	msg := i18n.T(i18n.ResolveLocale(c), key)
	if err != nil {
		RequestLog(c).Errorw("handler_error", "code", code, "key", key, "path", c.FullPath(), "error", err)
	}
	response.Error(c, code, msg)
}

// RespondWithMappedError 依次尝试本地化错误、映射规则，最后落到 fallback
func RespondWithMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	var localized localizedError
	if errors.As(err, &localized) {
		msg := i18n.Sprintf(i18n.ResolveLocale(c), localized.Key(), localized.Args()...)
		var field *service.ValidationError
		if errors.As(err, &field) {
			response.ErrorWithData(c, response.CodeBadRequest, msg, gin.H{"field": field.Field})
		} else {
			response.Error(c, response.CodeBadRequest, msg)
		}
		return
	}
	if i := slices.IndexFunc(rules, func(rule MappedError) bool { return errors.Is(err, rule.Target) }); i >= 0 {
		RespondError(c, rules[i].Code, rules[i].Key, nil)
		return
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// ConcatMappedErrors 保持各组顺序拼接
func ConcatMappedErrors(groups ...[]MappedError) []MappedError {
	return slices.Concat(groups...)
}
