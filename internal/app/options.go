package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/logger"

	"go.uber.org/zap"
)

// Mode 进程启动模式
type Mode string

const (
	ModeAll    Mode = "all"
	ModeAPI    Mode = "api"
	ModeWorker Mode = "worker"
)

// ParseMode 解析 -mode 参数，空串视为 all
func ParseMode(raw string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case "":
		return ModeAll, nil
	case ModeAll, ModeAPI, ModeWorker:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want all, api or worker)", raw)
	}
}

func (m Mode) servesHTTP() bool {
	return m == ModeAll || m == ModeAPI
}

// worker 模式必须有队列；all 模式下队列关闭时只跑 HTTP
func (m Mode) runsWorker(queueEnabled bool) bool {
	return m == ModeWorker || (m == ModeAll && queueEnabled)
}

// Options 应用启动选项
type Options struct {
	Config  *config.Config
	Logger  *zap.SugaredLogger
	Signals []os.Signal
	Mode    Mode
}

func (o Options) shutdownTimeout() time.Duration {
	if o.Config != nil && o.Config.Server.ShutdownTimeoutSeconds > 0 {
		return time.Duration(o.Config.Server.ShutdownTimeoutSeconds) * time.Second
	}
	return 10 * time.Second
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = logger.S()
	}
	if o.Mode == "" {
		o.Mode = ModeAll
	}
	return o
}
