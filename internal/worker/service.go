package worker

import (
	"context"
	"errors"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/queue"

	"github.com/hibiken/asynq"
)

var errQueueDisabled = errors.New("worker requires queue.enabled")

// Service 把 asynq.Server 包装成 app.Service，生命周期跟随 ctx
type Service struct {
	server  *asynq.Server
	handler asynq.Handler
}

func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	switch {
	case cfg == nil || !cfg.Enabled:
		return nil, errQueueDisabled
	case consumer == nil:
		return nil, errors.New("worker consumer is nil")
	}
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		server:  asynq.NewServer(queue.RedisOpt(cfg), queue.ServerConfig(cfg)),
		handler: mux,
	}, nil
}

func (s *Service) Name() string { return "worker" }

// Start 非阻塞启动 asynq 后等待 ctx 取消
func (s *Service) Start(ctx context.Context) error {
	if err := s.server.Start(s.handler); err != nil {
		return err
	}
	logger.Infow("worker_started")
	<-ctx.Done()
	return nil
}

// Stop asynq.Shutdown 会等进行中的任务结束；ctx 先到期则直接返回
func (s *Service) Stop(ctx context.Context) error {
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		s.server.Shutdown()
	}()
	select {
	case <-finished:
		logger.Infow("worker_stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
