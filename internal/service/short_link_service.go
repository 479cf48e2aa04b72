package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

const (
	shortLinkAlphabet      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	defaultShortCodeLength = 6
	maxShortCodeAttempts   = 10
)

// ShortLinkService 菜谱短链服务
type ShortLinkService struct {
	repo       repository.ShortLinkRepository
	recipeRepo repository.RecipeRepository
	cfg        config.ShortLinkConfig
	generate   func(length int) (string, error)
}

// NewShortLinkService 创建短链服务
func NewShortLinkService(repo repository.ShortLinkRepository, recipeRepo repository.RecipeRepository, cfg config.ShortLinkConfig) *ShortLinkService {
	return &ShortLinkService{
		repo:       repo,
		recipeRepo: recipeRepo,
		cfg:        cfg,
		generate:   generateShortCode,
	}
}

// GetOrCreate 获取菜谱短链，不存在时生成；同一菜谱始终返回同一 code
func (s *ShortLinkService) GetOrCreate(ctx context.Context, recipeID uint) (string, error) {
	exists, err := s.recipeRepo.Exists(recipeID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrRecipeNotFound
	}
	link, err := s.repo.GetByRecipeID(recipeID)
	if err != nil {
		return "", err
	}
	if link != nil {
		return s.ShortURL(link.Code), nil
	}

	for attempt := 0; attempt < maxShortCodeAttempts; attempt++ {
		code, err := s.generate(s.codeLength())
		if err != nil {
			return "", err
		}
		taken, err := s.repo.CodeExists(code)
		if err != nil {
			return "", err
		}
		if taken {
			continue
		}
		link = &models.ShortLink{Code: code, RecipeID: recipeID}
		if err := s.repo.Create(link); err != nil {
			if !isUniqueViolation(err) {
				return "", err
			}
			// 并发请求已为该菜谱生成短链
			existing, getErr := s.repo.GetByRecipeID(recipeID)
			if getErr != nil {
				return "", getErr
			}
			if existing != nil {
				return s.ShortURL(existing.Code), nil
			}
			continue
		}
		s.cacheLink(ctx, link)
		return s.ShortURL(link.Code), nil
	}
	return "", ErrShortLinkExhausted
}

// Resolve 解析短链 code 为菜谱 ID，优先读缓存
func (s *ShortLinkService) Resolve(ctx context.Context, code string) (uint, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return 0, ErrShortLinkNotFound
	}
	entry, hit, err := cache.GetShortLink(ctx, code)
	if err != nil {
		logger.Warnw("short_link_cache_get_failed", "code", code, "error", err)
	}
	if hit && entry != nil {
		return entry.RecipeID, nil
	}
	link, err := s.repo.GetByCode(code)
	if err != nil {
		return 0, err
	}
	if link == nil {
		return 0, ErrShortLinkNotFound
	}
	s.cacheLink(ctx, link)
	return link.RecipeID, nil
}

// ShortURL 拼接短链完整地址
func (s *ShortLinkService) ShortURL(code string) string {
	return strings.TrimRight(s.cfg.BaseURL, "/") + "/s/" + code
}

// FrontendURL 返回短链跳转的前端菜谱页地址
func (s *ShortLinkService) FrontendURL(recipeID uint) string {
	return fmt.Sprintf("%s/recipes/%d", strings.TrimRight(s.cfg.FrontendURL, "/"), recipeID)
}

func (s *ShortLinkService) cacheLink(ctx context.Context, link *models.ShortLink) {
	ttl := time.Duration(s.cfg.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		return
	}
	if err := cache.SetShortLink(ctx, &cache.ShortLinkEntry{Code: link.Code, RecipeID: link.RecipeID}, ttl); err != nil {
		logger.Warnw("short_link_cache_set_failed", "code", link.Code, "error", err)
	}
}

func (s *ShortLinkService) codeLength() int {
	if s.cfg.CodeLength <= 0 {
		return defaultShortCodeLength
	}
	return s.cfg.CodeLength
}

func generateShortCode(length int) (string, error) {
	var builder strings.Builder
	builder.Grow(length)
	max := big.NewInt(int64(len(shortLinkAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		builder.WriteByte(shortLinkAlphabet[n.Int64()])
	}
	return builder.String(), nil
}
