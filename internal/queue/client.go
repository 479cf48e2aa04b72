package queue

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/logger"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault

	defaultConcurrency       = 10
	defaultImageCleanupDelay = 30 * time.Second
	imageCleanupMaxRetry     = 5
)

// Client 图片清理等后台任务的投递端，未启用时所有投递为空操作
type Client struct {
	inner        *asynq.Client
	cleanupDelay time.Duration
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	delay := defaultImageCleanupDelay
	if cfg.ImageCleanupDelaySeconds > 0 {
		delay = time.Duration(cfg.ImageCleanupDelaySeconds) * time.Second
	}
	return &Client{
		inner:        asynq.NewClient(RedisOpt(cfg)),
		cleanupDelay: delay,
	}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.inner != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.inner.Close()
}

// EnqueueImageCleanup 延迟删除图片对象；同一 key 在任务未完成前只保留一条
func (c *Client) EnqueueImageCleanup(payload ImageCleanupPayload, opts ...asynq.Option) error {
	if !c.Enabled() || strings.TrimSpace(payload.Key) == "" {
		return nil
	}
	task, err := NewImageCleanupTask(payload)
	if err != nil {
		return err
	}
	options := []asynq.Option{
		asynq.Queue(DefaultQueue),
		asynq.MaxRetry(imageCleanupMaxRetry),
		asynq.ProcessIn(c.cleanupDelay),
		asynq.TaskID(TaskImageCleanup + ":" + strings.TrimSpace(payload.Key)),
	}
	if _, err := c.inner.Enqueue(task, append(options, opts...)...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return err
	}
	return nil
}

// ServerConfig 生成 worker 端配置，日志接入 zap
func ServerConfig(cfg *config.QueueConfig) asynq.Config {
	serverCfg := asynq.Config{
		Concurrency: defaultConcurrency,
		Queues:      map[string]int{DefaultQueue: 1},
		Logger:      logger.SW("component", "asynq"),
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			logger.Warnw("queue_task_failed",
				"type", task.Type(),
				"retried", retried,
				"max_retry", maxRetry,
				"error", err,
			)
		}),
	}
	if cfg == nil {
		return serverCfg
	}
	if cfg.Concurrency > 0 {
		serverCfg.Concurrency = cfg.Concurrency
	}
	if len(cfg.Queues) > 0 {
		serverCfg.Queues = cfg.Queues
	}
	return serverCfg
}

// RedisOpt 由队列配置生成 asynq 的 Redis 连接参数
func RedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}
