package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/queue"
	"github.com/foodgram-next/internal/storage"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageService 图片服务：解析 base64 data URI、校验并写入存储
type ImageService struct {
	cfg         config.UploadConfig
	store       storage.Storage
	queueClient *queue.Client
}

// NewImageService 创建图片服务
func NewImageService(cfg config.UploadConfig, store storage.Storage, queueClient *queue.Client) *ImageService {
	return &ImageService{cfg: cfg, store: store, queueClient: queueClient}
}

// URL 返回图片访问地址，空 key 返回空串
func (s *ImageService) URL(key string) string {
	if s == nil || s.store == nil || strings.TrimSpace(key) == "" {
		return ""
	}
	return s.store.URL(key)
}

// SaveDataURI 保存 data:image/...;base64,... 格式图片，返回存储 key
func (s *ImageService) SaveDataURI(ctx context.Context, scene, raw string) (string, error) {
	if s == nil || s.store == nil {
		return "", ErrStorageUnavailable
	}
	data, err := decodeDataURI(raw)
	if err != nil {
		return "", err
	}
	if s.cfg.MaxSize > 0 && int64(len(data)) > s.cfg.MaxSize {
		return "", ErrImageTooLarge
	}

	contentType := http.DetectContentType(data)
	if !s.isAllowedType(contentType) {
		return "", ErrImageTypeNotAllowed
	}
	width, height, err := decodeImageDimensions(bytes.NewReader(data), contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageInvalid, err)
	}
	if s.cfg.MaxWidth > 0 && width > s.cfg.MaxWidth {
		return "", ErrImageDimensions
	}
	if s.cfg.MaxHeight > 0 && height > s.cfg.MaxHeight {
		return "", ErrImageDimensions
	}

	key := buildImageKey(scene, imageExtensions[contentType], time.Now())
	if err := s.store.Save(ctx, key, data, contentType); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return key, nil
}

// ScheduleCleanup 异步删除旧图片；队列未启用时同步删除，失败仅记录日志
func (s *ImageService) ScheduleCleanup(ctx context.Context, key, reason string) {
	key = strings.TrimSpace(key)
	if s == nil || key == "" {
		return
	}
	if s.queueClient != nil && s.queueClient.Enabled() {
		err := s.queueClient.EnqueueImageCleanup(queue.ImageCleanupPayload{Key: key, Reason: reason})
		if err == nil {
			return
		}
		logger.Warnw("image_cleanup_enqueue_failed", "key", key, "error", err)
	}
	if err := s.Delete(ctx, key); err != nil {
		logger.Warnw("image_cleanup_inline_failed", "key", key, "reason", reason, "error", err)
	}
}

// Delete 删除图片对象
func (s *ImageService) Delete(ctx context.Context, key string) error {
	if s == nil || s.store == nil {
		return ErrStorageUnavailable
	}
	if strings.TrimSpace(key) == "" {
		return nil
	}
	return s.store.Delete(ctx, key)
}

func (s *ImageService) isAllowedType(contentType string) bool {
	if _, ok := imageExtensions[contentType]; !ok {
		return false
	}
	if len(s.cfg.AllowedTypes) == 0 {
		return true
	}
	for _, t := range s.cfg.AllowedTypes {
		if strings.EqualFold(strings.TrimSpace(t), contentType) {
			return true
		}
	}
	return false
}

func decodeDataURI(raw string) ([]byte, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, ErrImageInvalid
	}
	payload := trimmed
	if strings.HasPrefix(trimmed, "data:") {
		idx := strings.Index(trimmed, ",")
		if idx < 0 {
			return nil, ErrImageInvalid
		}
		meta := trimmed[len("data:"):idx]
		if !strings.HasSuffix(meta, ";base64") || !strings.HasPrefix(meta, "image/") {
			return nil, ErrImageInvalid
		}
		payload = trimmed[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return nil, ErrImageInvalid
		}
	}
	if len(data) == 0 {
		return nil, ErrImageInvalid
	}
	return data, nil
}

func buildImageKey(scene, ext string, now time.Time) string {
	normalized := strings.ToLower(strings.TrimSpace(scene))
	switch normalized {
	case constants.ImageSceneRecipe, constants.ImageSceneAvatar:
	default:
		normalized = constants.ImageSceneRecipe
	}
	return fmt.Sprintf("%s/%s/%s/%s%s", normalized, now.Format("2006"), now.Format("01"), uuid.New().String(), ext)
}

func decodeImageDimensions(src io.ReadSeeker, contentType string) (int, int, error) {
	if strings.EqualFold(contentType, "image/webp") {
		width, height, err := decodeWebPDimensions(src)
		if err != nil {
			return 0, 0, fmt.Errorf("无法解析 WebP 图片: %w", err)
		}
		return width, height, nil
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return 0, 0, err
	}
	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return 0, 0, fmt.Errorf("无法解析图片: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

func decodeWebPDimensions(src io.ReadSeeker) (int, int, error) {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return 0, 0, err
	}

	header := make([]byte, 12)
	if _, err := io.ReadFull(src, header); err != nil {
		return 0, 0, err
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WEBP" {
		return 0, 0, fmt.Errorf("无效的 WebP 文件头")
	}

	for {
		chunkHeader := make([]byte, 8)
		if _, err := io.ReadFull(src, chunkHeader); err != nil {
			return 0, 0, err
		}
		chunkType := string(chunkHeader[0:4])
		chunkSize := binary.LittleEndian.Uint32(chunkHeader[4:8])

		switch chunkType {
		case "VP8X", "VP8 ", "VP8L":
			data := make([]byte, chunkSize)
			if _, err := io.ReadFull(src, data); err != nil {
				return 0, 0, err
			}
			return webpChunkDimensions(chunkType, data)
		}

		skip := int64(chunkSize)
		if chunkSize%2 == 1 {
			skip++
		}
		if _, err := src.Seek(skip, io.SeekCurrent); err != nil {
			return 0, 0, err
		}
	}
}

func webpChunkDimensions(chunkType string, data []byte) (int, int, error) {
	switch chunkType {
	case "VP8X":
		if len(data) < 10 {
			return 0, 0, fmt.Errorf("VP8X chunk 长度不足")
		}
		width := 1 + int(data[4]) + int(data[5])<<8 + int(data[6])<<16
		height := 1 + int(data[7]) + int(data[8])<<8 + int(data[9])<<16
		return width, height, nil
	case "VP8 ":
		if len(data) < 10 {
			return 0, 0, fmt.Errorf("VP8 chunk 长度不足")
		}
		width := int(binary.LittleEndian.Uint16(data[6:8]) & 0x3FFF)
		height := int(binary.LittleEndian.Uint16(data[8:10]) & 0x3FFF)
		return width, height, nil
	default:
		if len(data) < 5 {
			return 0, 0, fmt.Errorf("VP8L chunk 长度不足")
		}
		if data[0] != 0x2f {
			return 0, 0, fmt.Errorf("VP8L 签名无效")
		}
		bits := binary.LittleEndian.Uint32(data[1:5])
		width := int(bits&0x3FFF) + 1
		height := int((bits>>14)&0x3FFF) + 1
		return width, height, nil
	}
}
