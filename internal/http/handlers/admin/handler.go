package admin

import (
	"strings"

	handlershared "github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// Handler 管理后台：管理员账号、角色、标签、食材与内容审核
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.RequireSubject(c, handlershared.AdminIDKey)
}

// logOperation 后台写操作日志，自动附带操作人
func logOperation(c *gin.Context, event string, kv ...interface{}) {
	fields := append([]interface{}{
		"operator_admin_id", handlershared.Subject(c, handlershared.AdminIDKey),
		"operator_username", strings.TrimSpace(c.GetString(handlershared.UsernameKey)),
	}, kv...)
	requestLog(c).Infow(event, fields...)
}

// readPage 后台列表统一使用默认分页上限
func readPage(c *gin.Context) (int, int) {
	return handlershared.NormalizePagination(handlershared.ReadPageQuery(c))
}

func parseIDParam(c *gin.Context, notFoundKey string) (uint, bool) {
	return handlershared.ParseIDParam(c, "id", notFoundKey)
}
