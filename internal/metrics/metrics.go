// Package metrics 暴露 Prometheus 指标。
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foodgram_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// result: ok / empty / error
	ShoppingListExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_shopping_list_exports_total",
			Help: "Total number of shopping list exports",
		},
		[]string{"result"},
	)

	// action: add / remove
	MembershipTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_membership_toggles_total",
			Help: "Total number of favorite and shopping cart toggles",
		},
		[]string{"kind", "action"},
	)

	ImageCleanupTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_image_cleanup_total",
			Help: "Total number of processed image cleanup tasks",
		},
		[]string{"result"},
	)
)

// RecordShoppingListExport 记录一次购物清单导出
func RecordShoppingListExport(result string) {
	ShoppingListExportsTotal.WithLabelValues(result).Inc()
}

// RecordMembershipToggle 记录收藏/购物车变更
func RecordMembershipToggle(kind, action string) {
	MembershipTogglesTotal.WithLabelValues(kind, action).Inc()
}

// RecordImageCleanup 记录图片清理结果：ok / error / invalid / unavailable / skipped
func RecordImageCleanup(result string) {
	ImageCleanupTotal.WithLabelValues(result).Inc()
}

// RecordHTTPRequest 记录 HTTP 请求
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// GinMiddleware 按路由模板统计请求，未匹配路由归为 unmatched
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// Handler 返回 /metrics 处理器
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
