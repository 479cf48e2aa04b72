package router

import (
	"errors"
	"strings"

	"github.com/foodgram-next/internal/authz"
	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/i18n"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/repository"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const adminIsSuperContextKey = "admin_is_super"

var errAuthScheme = errors.New("unsupported authorization scheme")

// authFailure 鉴权失败时的 i18n 文案 key
type authFailure string

func (f authFailure) abort(c *gin.Context) {
	response.Unauthorized(c, i18n.T(i18n.ResolveLocale(c), string(f)))
	c.Abort()
}

// bearerToken 从 Authorization 头中取出令牌，scheme 区分大小写
func bearerToken(header string, schemes ...string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return "", errAuthScheme
	}
	for _, allowed := range schemes {
		if scheme == allowed {
			return token, nil
		}
	}
	return "", errAuthScheme
}

// parseHS256 只接受 HS256 签名且受众匹配的令牌
func parseHS256(secret, audience, raw string, claims jwt.Claims) error {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithIssuedAt(),
	)
	token, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return jwt.ErrTokenInvalidClaims
	}
	return nil
}

func issuedAtUnix(claims jwt.RegisteredClaims) int64 {
	if claims.IssuedAt == nil {
		return 0
	}
	return claims.IssuedAt.Unix()
}

// checkState 账号状态与令牌版本校验，返回空串表示通过
func checkState(state *cache.TokenState, version uint64, issuedAt int64, disabledKey authFailure) authFailure {
	switch {
	case state == nil:
		return "error.token_invalid"
	case !state.Active:
		return disabledKey
	case !state.Accepts(version, issuedAt):
		return "error.token_revoked"
	}
	return ""
}

// JWTAuthMiddleware 管理端鉴权，只接受 Bearer
func JWTAuthMiddleware(secretKey string, adminRepo repository.AdminRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretKey == "" {
			authFailure("error.jwt_secret_missing").abort(c)
			return
		}
		header := c.GetHeader("Authorization")
		if header == "" {
			authFailure("error.auth_header_missing").abort(c)
			return
		}
		raw, err := bearerToken(header, "Bearer")
		if err != nil {
			authFailure("error.auth_header_invalid").abort(c)
			return
		}
		claims := &service.JWTClaims{}
		if err := parseHS256(secretKey, service.AdminTokenAudience, raw, claims); err != nil || claims.AdminID == 0 || adminRepo == nil {
			authFailure("error.token_invalid").abort(c)
			return
		}

		state, err := cache.ResolveAdmin(c.Request.Context(), claims.AdminID, adminRepo.GetByID)
		if err != nil {
			logger.Warnw("admin_auth_state_load_failed", "admin_id", claims.AdminID, "error", err)
		}
		if failure := checkState(state, claims.TokenVersion, issuedAtUnix(claims.RegisteredClaims), "error.admin_disabled"); failure != "" {
			failure.abort(c)
			return
		}

		c.Set("admin_id", claims.AdminID)
		c.Set("username", claims.Username)
		c.Set(adminIsSuperContextKey, state.IsSuper)
		c.Next()
	}
}

// AdminRBACMiddleware 按路由模板与方法做 casbin 校验，超级管理员直接放行
func AdminRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("admin_rbac_service_unavailable")
			authFailure("error.unauthorized").abort(c)
			return
		}
		if c.GetBool(adminIsSuperContextKey) {
			c.Next()
			return
		}
		adminID := c.GetUint("admin_id")
		if adminID == 0 {
			authFailure("error.unauthorized").abort(c)
			return
		}

		resource := strings.TrimSpace(c.FullPath())
		if resource == "" {
			resource = c.Request.URL.Path
		}
		allowed, err := authzService.EnforceAdmin(adminID, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("admin_rbac_enforce_failed",
				"admin_id", adminID,
				"method", c.Request.Method,
				"resource", resource,
				"error", err,
			)
			authFailure("error.unauthorized").abort(c)
			return
		}
		if !allowed {
			logger.Warnw("admin_rbac_permission_denied",
				"admin_id", adminID,
				"method", c.Request.Method,
				"resource", authz.NormalizeObject(resource),
			)
			response.Forbidden(c, i18n.T(i18n.ResolveLocale(c), "error.forbidden"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserJWTAuthMiddleware 必须登录的用户路由
func UserJWTAuthMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			authFailure("error.auth_header_missing").abort(c)
			return
		}
		if failure := authenticateUser(c, secretKey, userRepo); failure != "" {
			failure.abort(c)
			return
		}
		c.Next()
	}
}

// OptionalUserAuthMiddleware 匿名请求放行；一旦携带 Authorization 就必须有效
func OptionalUserAuthMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if failure := authenticateUser(c, secretKey, userRepo); failure != "" {
				failure.abort(c)
				return
			}
		}
		c.Next()
	}
}

// authenticateUser 用户令牌支持 Token 与 Bearer 两种前缀，成功后写入 user_id
func authenticateUser(c *gin.Context, secretKey string, userRepo repository.UserRepository) authFailure {
	if secretKey == "" {
		return "error.jwt_secret_missing"
	}
	raw, err := bearerToken(c.GetHeader("Authorization"), "Token", "Bearer")
	if err != nil {
		return "error.auth_header_invalid"
	}
	claims := &service.UserJWTClaims{}
	if err := parseHS256(secretKey, service.UserTokenAudience, raw, claims); err != nil || claims.UserID == 0 || userRepo == nil {
		return "error.token_invalid"
	}

	state, err := cache.ResolveUser(c.Request.Context(), claims.UserID, userRepo.GetByID)
	if err != nil {
		logger.Warnw("user_auth_state_load_failed", "user_id", claims.UserID, "error", err)
	}
	if failure := checkState(state, claims.TokenVersion, issuedAtUnix(claims.RegisteredClaims), "error.user_disabled"); failure != "" {
		return failure
	}
	c.Set("user_id", claims.UserID)
	c.Set("user_email", claims.Email)
	return ""
}
