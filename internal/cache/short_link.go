package cache

import (
	"context"
	"time"
)

// ShortLinkEntry 短码到菜谱的映射
type ShortLinkEntry struct {
	Code     string `json:"code"`
	RecipeID uint   `json:"recipe_id"`
}

var shortLinks = slot[string, ShortLinkEntry]{prefix: "short_link", ttl: 24 * time.Hour}

// GetShortLink 按短码读取
func GetShortLink(ctx context.Context, code string) (*ShortLinkEntry, bool, error) {
	return shortLinks.load(ctx, code)
}

// SetShortLink 写入映射，RecipeID 为 0 的条目忽略
func SetShortLink(ctx context.Context, entry *ShortLinkEntry, ttl time.Duration) error {
	if entry == nil || entry.RecipeID == 0 {
		return nil
	}
	return shortLinks.store(ctx, entry.Code, entry, ttl)
}

// DelShortLink 菜谱删除时清理
func DelShortLink(ctx context.Context, code string) error {
	return shortLinks.drop(ctx, code)
}
