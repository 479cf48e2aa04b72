package shared

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// NormalizePagination 归一化分页参数。
func NormalizePagination(page, pageSize int) (int, int) {
	return NormalizePaginationWith(page, pageSize, defaultPageSize, maxPageSize)
}

// NormalizePaginationWith 按指定默认值与上限归一化分页参数。
func NormalizePaginationWith(page, pageSize, fallback, max int) (int, int) {
	if fallback <= 0 {
		fallback = defaultPageSize
	}
	if max <= 0 {
		max = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = fallback
	}
	if pageSize > max {
		pageSize = max
	}
	return page, pageSize
}

// ReadPageQuery 读取 page 与每页条数，limit 优先于 page_size。
func ReadPageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(strings.TrimSpace(c.DefaultQuery("page", "1")))
	rawSize := strings.TrimSpace(c.Query("limit"))
	if rawSize == "" {
		rawSize = strings.TrimSpace(c.Query("page_size"))
	}
	pageSize, _ := strconv.Atoi(rawSize)
	return page, pageSize
}
