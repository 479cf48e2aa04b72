package app

import (
	"errors"
	"fmt"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/provider"
	"github.com/foodgram-next/internal/router"
	"github.com/foodgram-next/internal/worker"
)

// BuildRunner 按启动模式组装 HTTP 与 worker 服务
func BuildRunner(cfg *config.Config, mode Mode) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if mode == ModeWorker && !cfg.Queue.Enabled {
		return nil, fmt.Errorf("mode %s requires queue.enabled", mode)
	}

	container := provider.NewContainer(cfg)

	var services []Service
	if mode.servesHTTP() {
		services = append(services, NewHTTPService(cfg.Server, router.SetupRouter(cfg, container)))
	}
	if mode.runsWorker(cfg.Queue.Enabled) {
		workerService, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
		if err != nil {
			return nil, err
		}
		services = append(services, workerService)
	}
	if len(services) == 0 {
		return nil, fmt.Errorf("mode %s started no services", mode)
	}
	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = opts.withDefaults()
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}
	opts.Logger.Infow("app_start",
		"addr", opts.Config.Server.Host+":"+opts.Config.Server.Port,
		"mode", opts.Mode,
		"queue_enabled", opts.Config.Queue.Enabled,
	)
	return runUntilSignal(runner, opts)
}
