package public

import (
	handlershared "github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/provider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 用户侧 API：账号、菜谱、标签、食材、订阅、收藏与购物车
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.RequireSubject(c, handlershared.UserIDKey)
}

// optionalUserID 匿名访问时为 0，用于计算 is_favorited 等字段
func optionalUserID(c *gin.Context) uint {
	return handlershared.Subject(c, handlershared.UserIDKey)
}

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	handlershared.RespondWithMappedError(c, err, rules, fallbackCode, fallbackKey)
}

func parseRecipeID(c *gin.Context) (uint, bool) {
	return handlershared.ParseIDParam(c, "id", "error.recipe_not_found")
}

// readPagination page/limit，默认值与上限来自 pagination 配置
func (h *Handler) readPagination(c *gin.Context) (int, int) {
	page, limit := handlershared.ReadPageQuery(c)
	var fallback, ceiling int
	if h != nil && h.Config != nil {
		fallback, ceiling = h.Config.Pagination.RecipePageSize, h.Config.Pagination.MaxPageSize
	}
	return handlershared.NormalizePaginationWith(page, limit, fallback, ceiling)
}
