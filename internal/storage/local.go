package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/foodgram-next/internal/config"
)

// LocalStorage 本地磁盘存储，对外通过 public_url 静态路径访问
type LocalStorage struct {
	dir       string
	publicURL string
}

// NewLocalStorage 创建本地存储
func NewLocalStorage(cfg config.LocalStorageConfig) (*LocalStorage, error) {
	dir := strings.TrimSpace(cfg.Dir)
	if dir == "" {
		dir = "./media"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	publicURL := strings.TrimSpace(cfg.PublicURL)
	if publicURL == "" {
		publicURL = "/media"
	}
	return &LocalStorage{dir: dir, publicURL: publicURL}, nil
}

// Dir 存储根目录
func (s *LocalStorage) Dir() string {
	return s.dir
}

// PublicPath 静态访问路径前缀
func (s *LocalStorage) PublicPath() string {
	return s.publicURL
}

// Save 写入文件
func (s *LocalStorage) Save(ctx context.Context, key string, data []byte, contentType string) error {
	cleaned, err := CleanKey(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	target := filepath.Join(s.dir, filepath.FromSlash(cleaned))
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0644)
}

// Delete 删除文件，文件不存在视为成功
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	cleaned, err := CleanKey(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.dir, filepath.FromSlash(cleaned)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// URL 返回访问地址
func (s *LocalStorage) URL(key string) string {
	if strings.TrimSpace(key) == "" {
		return ""
	}
	return joinURL(s.publicURL, key)
}
