package router

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/foodgram-next/internal/authz"
	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/provider"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// healthHandler 数据库不可用时返回 503；Redis 只报告状态，不影响结果
func healthHandler(c *provider.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthCheckTimeout)
		defer cancel()

		status, code := "ok", http.StatusOK
		database := "up"
		if err := pingDatabase(checkCtx, c); err != nil {
			logger.Warnw("health_db_ping_failed", "error", err)
			status, code, database = "degraded", http.StatusServiceUnavailable, "down"
		}
		redis := "disabled"
		if cache.Enabled() {
			redis = "up"
			if err := cache.Ping(checkCtx); err != nil {
				logger.Warnw("health_redis_ping_failed", "error", err)
				redis = "down"
			}
		}
		ctx.JSON(code, gin.H{"status": status, "database": database, "redis": redis})
	}
}

func pingDatabase(ctx context.Context, c *provider.Container) error {
	if c == nil || c.DB == nil {
		return nil
	}
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// permissionItem 后台权限目录项，供角色配置界面勾选
type permissionItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// permissionCatalog 从已注册的后台路由生成，登录接口除外
func permissionCatalog(routes gin.RoutesInfo) []permissionItem {
	seen := map[string]bool{}
	items := []permissionItem{}
	for _, route := range routes {
		method := strings.ToUpper(route.Method)
		if method == http.MethodOptions || method == http.MethodHead {
			continue
		}
		object := authz.NormalizeObject(route.Path)
		if !strings.HasPrefix(object, "/admin/") || object == "/admin/login" {
			continue
		}
		key := method + ":" + object
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, permissionItem{Module: permissionModule(object), Method: method, Object: object, Permission: key})
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		if a.Object != b.Object {
			return a.Object < b.Object
		}
		return a.Method < b.Method
	})
	return items
}

// permissionModule /admin/ingredients/:id -> ingredients
func permissionModule(object string) string {
	segments := strings.Split(strings.Trim(object, "/"), "/")
	if len(segments) >= 2 && segments[0] == "admin" {
		return segments[1]
	}
	return segments[0]
}
