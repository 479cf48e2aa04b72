package router

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/i18n"
	"github.com/foodgram-next/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// LoginThrottle 登录尝试计数器，超过阈值后锁定 BlockSeconds
type LoginThrottle struct {
	client        *redis.Client
	namespace     string
	windowSeconds int
	maxAttempts   int
	blockSeconds  int
}

// ThrottleKeyFunc 从请求中提取计数主体
type ThrottleKeyFunc func(*gin.Context) string

// 第一次计数设置窗口；超限时把剩余时间延长到锁定时长
var loginThrottleScript = redis.NewScript(`
local attempts = redis.call("INCR", KEYS[1])
if attempts == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
if attempts == tonumber(ARGV[2]) + 1 and tonumber(ARGV[3]) > 0 then
	redis.call("EXPIRE", KEYS[1], ARGV[3])
end
return {attempts, redis.call("TTL", KEYS[1])}
`)

// NewLoginThrottle 按登录限流配置创建计数器，client 为 nil 时放行所有请求
func NewLoginThrottle(client *redis.Client, namespace string, cfg config.LoginRateLimitConfig) *LoginThrottle {
	return &LoginThrottle{
		client:        client,
		namespace:     strings.TrimSpace(namespace),
		windowSeconds: cfg.WindowSeconds,
		maxAttempts:   cfg.MaxAttempts,
		blockSeconds:  cfg.BlockSeconds,
	}
}

func (t *LoginThrottle) enabled() bool {
	return t != nil && t.client != nil && t.windowSeconds > 0 && t.maxAttempts > 0
}

// Middleware 返回挂在登录接口前的限流中间件
func (t *LoginThrottle) Middleware(keyFunc ThrottleKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !t.enabled() {
			c.Next()
			return
		}

		subject := ""
		if keyFunc != nil {
			subject = strings.TrimSpace(keyFunc(c))
		}
		if subject == "" {
			subject = c.ClientIP()
		}
		key := subject
		if t.namespace != "" {
			key = t.namespace + ":" + subject
		}

		attempts, ttl, err := t.hit(c, key)
		if err != nil {
			logger.Warnw("login_throttle_unavailable", "key", key, "error", err)
			response.Error(c, response.CodeUnavailable, i18n.T(i18n.ResolveLocale(c), "error.rate_limit_unavailable"))
			c.Abort()
			return
		}
		if attempts <= int64(t.maxAttempts) {
			c.Next()
			return
		}

		wait := int(ttl)
		if wait < 1 {
			wait = t.blockSeconds
		}
		if wait < 1 {
			wait = t.windowSeconds
		}
		c.Header("Retry-After", strconv.Itoa(wait))
		response.Error(c, response.CodeTooManyRequests, i18n.Sprintf(i18n.ResolveLocale(c), "error.login_too_many", wait))
		c.Abort()
	}
}

func (t *LoginThrottle) hit(c *gin.Context, key string) (int64, int64, error) {
	values, err := loginThrottleScript.Run(c.Request.Context(), t.client, []string{key},
		t.windowSeconds, t.maxAttempts, t.blockSeconds).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(values) < 2 {
		return 0, 0, redis.Nil
	}
	return values[0], values[1], nil
}

// ThrottleByIP 仅按客户端 IP 计数
func ThrottleByIP(c *gin.Context) string {
	return c.ClientIP()
}

// ThrottleByLoginField 按登录名 + IP 计数，请求体会被还原供后续绑定
func ThrottleByLoginField(field string) ThrottleKeyFunc {
	return func(c *gin.Context) string {
		login := strings.ToLower(peekJSONString(c, field))
		if login == "" {
			return c.ClientIP()
		}
		return login + "|" + c.ClientIP()
	}
}

func peekJSONString(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	raw, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	var value string
	if err := json.Unmarshal(payload[field], &value); err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}
