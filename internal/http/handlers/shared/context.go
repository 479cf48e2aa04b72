package shared

import (
	"strconv"
	"strings"

	"github.com/foodgram-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 鉴权中间件写入上下文的键
const (
	UserIDKey   = "user_id"
	AdminIDKey  = "admin_id"
	UsernameKey = "username"
)

// Subject 当前账号 ID，匿名请求为 0
func Subject(c *gin.Context, key string) uint {
	return c.GetUint(key)
}

// RequireSubject 未登录时写入 401
func RequireSubject(c *gin.Context, key string) (uint, bool) {
	if id := c.GetUint(key); id > 0 {
		return id, true
	}
	RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
	return 0, false
}

// ParseIDParam 路径参数必须是正整数，否则按资源不存在处理
func ParseIDParam(c *gin.Context, name, notFoundKey string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 0)
	if err != nil || id == 0 {
		RespondError(c, response.CodeNotFound, notFoundKey, nil)
		return 0, false
	}
	return uint(id), true
}
