package worker

import (
	"context"
	"errors"

	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/metrics"
	"github.com/foodgram-next/internal/provider"
	"github.com/foodgram-next/internal/queue"
	"github.com/foodgram-next/internal/service"
	"github.com/foodgram-next/internal/storage"

	"github.com/hibiken/asynq"
)

// ImageDeleter 删除存储中的图片对象
type ImageDeleter interface {
	Delete(ctx context.Context, key string) error
}

// Consumer 处理队列中的后台任务
type Consumer struct {
	images ImageDeleter
}

// NewConsumer 从容器取出任务所需的服务
func NewConsumer(c *provider.Container) *Consumer {
	consumer := &Consumer{}
	if c != nil && c.ImageService != nil {
		consumer.images = c.ImageService
	}
	return consumer
}

func (c *Consumer) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TaskImageCleanup, c.handleImageCleanup)
}

func (c *Consumer) handleImageCleanup(ctx context.Context, task *asynq.Task) error {
	payload, err := queue.ParseImageCleanupPayload(task.Payload())
	if err != nil {
		logger.Warnw("worker_image_cleanup_bad_payload", "error", err)
		metrics.RecordImageCleanup("invalid")
		return errors.Join(err, asynq.SkipRetry)
	}
	if payload.Key == "" || c.images == nil {
		metrics.RecordImageCleanup("skipped")
		return nil
	}

	result, retryErr := cleanupOutcome(c.images.Delete(ctx, payload.Key))
	metrics.RecordImageCleanup(result)
	if result == "ok" {
		logger.Debugw("worker_image_cleanup_done", "key", payload.Key, "reason", payload.Reason)
	} else {
		logger.Warnw("worker_image_cleanup_"+result, "key", payload.Key, "reason", payload.Reason, "error", retryErr)
	}
	return retryErr
}

// cleanupOutcome 非法 key 直接丢弃，其余失败交给 asynq 重试
func cleanupOutcome(err error) (string, error) {
	switch {
	case err == nil:
		return "ok", nil
	case errors.Is(err, storage.ErrInvalidKey):
		return "invalid", nil
	case errors.Is(err, service.ErrStorageUnavailable):
		return "unavailable", err
	default:
		return "error", err
	}
}
