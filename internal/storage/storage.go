// Package storage 提供图片对象存储，支持本地磁盘与 MinIO/S3。
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/constants"
)

// ErrInvalidKey 非法对象 key
var ErrInvalidKey = errors.New("invalid storage key")

// Storage 图片存储后端
type Storage interface {
	Save(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// New 根据配置创建存储后端
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", constants.StorageDriverLocal:
		return NewLocalStorage(cfg.Local)
	case constants.StorageDriverMinio:
		return NewMinioStorage(ctx, cfg.Minio)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}

// CleanKey 规范化对象 key，拒绝绝对路径与上级目录
func CleanKey(key string) (string, error) {
	trimmed := strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	if trimmed == "" || strings.HasPrefix(trimmed, "/") {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(trimmed)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}

func joinURL(base, key string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return "/" + key
	}
	return base + "/" + key
}
