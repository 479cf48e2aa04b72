package public

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/i18n"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

const shoppingListContentType = "text/plain; charset=utf-8"

// AddFavorite 加入收藏
func (h *Handler) AddFavorite(c *gin.Context) {
	h.addToList(c, models.MembershipFavorite)
}

// RemoveFavorite 取消收藏
func (h *Handler) RemoveFavorite(c *gin.Context) {
	h.removeFromList(c, models.MembershipFavorite)
}

// AddToShoppingCart 加入购物车
func (h *Handler) AddToShoppingCart(c *gin.Context) {
	h.addToList(c, models.MembershipShoppingCart)
}

// RemoveFromShoppingCart 移出购物车
func (h *Handler) RemoveFromShoppingCart(c *gin.Context) {
	h.removeFromList(c, models.MembershipShoppingCart)
}

// ClearShoppingCart 一次性移出购物车中的全部菜谱
func (h *Handler) ClearShoppingCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	removed, err := h.MembershipService.Clear(models.MembershipShoppingCart, userID)
	if err != nil {
		respondWithMappedError(c, err, membershipErrorRules(models.MembershipShoppingCart), response.CodeInternal, "error.internal_error")
		return
	}
	requestLog(c).Infow("shopping_cart_cleared", "user_id", userID, "removed", removed)
	response.Success(c, gin.H{"removed": removed})
}

func (h *Handler) addToList(c *gin.Context, kind models.MembershipKind) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	recipeID, ok := parseRecipeID(c)
	if !ok {
		return
	}
	view, err := h.MembershipService.Add(kind, userID, recipeID)
	if err != nil {
		respondWithMappedError(c, err, membershipErrorRules(kind), response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, view)
}

func (h *Handler) removeFromList(c *gin.Context, kind models.MembershipKind) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	recipeID, ok := parseRecipeID(c)
	if !ok {
		return
	}
	if err := h.MembershipService.Remove(kind, userID, recipeID); err != nil {
		respondWithMappedError(c, err, membershipErrorRules(kind), response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, nil)
}

// DownloadShoppingCart 导出购物清单为纯文本附件，不走统一响应包装
func (h *Handler) DownloadShoppingCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	export, err := h.ShoppingListService.Export(c.Request.Context(), userID)
	if err != nil {
		// 附件接口失败时返回真实 5xx
		key := "error.internal_error"
		if errors.Is(err, service.ErrShoppingListFailure) {
			key = "error.shopping_list_failed"
		}
		requestLog(c).Errorw("shopping_list_export_failed", "user_id", userID, "error", err)
		response.Failure(c, http.StatusInternalServerError, response.CodeInternal, i18n.T(i18n.ResolveLocale(c), key))
		return
	}
	requestLog(c).Infow("shopping_list_exported", "user_id", userID, "items", export.Items)

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename))
	c.Data(http.StatusOK, shoppingListContentType, []byte(export.Content))
}
