package public

import (
	"net/http"
	"strings"

	"github.com/foodgram-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// RedirectShortLink 短链跳转到前端菜谱页
func (h *Handler) RedirectShortLink(c *gin.Context) {
	recipeID, ok := h.resolveShortLink(c)
	if !ok {
		return
	}
	c.Redirect(http.StatusFound, h.ShortLinkService.FrontendURL(recipeID))
}

// ResolveShortLink 短链解析为菜谱 ID
func (h *Handler) ResolveShortLink(c *gin.Context) {
	recipeID, ok := h.resolveShortLink(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{"recipe_id": recipeID})
}

func (h *Handler) resolveShortLink(c *gin.Context) (uint, bool) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		respondError(c, response.CodeNotFound, "error.short_link_not_found", nil)
		return 0, false
	}
	recipeID, err := h.ShortLinkService.Resolve(c.Request.Context(), code)
	if err != nil {
		respondWithMappedError(c, err, shortLinkErrorRules, response.CodeInternal, "error.internal_error")
		return 0, false
	}
	return recipeID, true
}
