package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/foodgram-next/internal/app"
	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiGreen = "\033[32m"
)

func main() {
	printStartupBanner()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	for name, secret := range map[string]string{
		"jwt":      cfg.JWT.SecretKey,
		"user_jwt": cfg.UserJWT.SecretKey,
	} {
		if !isWeakSecret(secret) {
			continue
		}
		if cfg.Server.Mode == "release" {
			stdLog.Fatalf("%s secret 过弱或仍为默认值，请在生产环境中配置强随机密钥", name)
		}
		stdLog.Printf("警告: %s secret 过弱或仍为默认值，建议在生产环境中更换", name)
	}

	// 初始化数据库
	gormLog := logger.NewGormLogger(cfg.Server.Mode, time.Duration(cfg.Log.SlowQueryMillis)*time.Millisecond)
	db, err := models.Connect(cfg.Database, gormLog)
	if err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	// 预置标签与首个管理员
	adminPass := os.Getenv("FG_DEFAULT_ADMIN_PASSWORD")
	skipAdmin := cfg.Server.Mode == "release" && adminPass == ""
	if skipAdmin {
		stdLog.Printf("警告: 未设置 FG_DEFAULT_ADMIN_PASSWORD，已跳过默认管理员初始化")
	}
	if err := models.Seed(db, models.SeedOptions{
		AdminUsername: os.Getenv("FG_DEFAULT_ADMIN_USERNAME"),
		AdminPassword: adminPass,
		SkipAdmin:     skipAdmin,
	}); err != nil {
		stdLog.Printf("警告: 初始数据写入失败: %v", err)
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 解析命令行参数
	var rawMode string
	flag.StringVar(&rawMode, "mode", string(app.ModeAll), "启动模式: all (默认), api, worker")
	flag.Parse()
	mode, err := app.ParseMode(rawMode)
	if err != nil {
		stdLog.Fatalf("启动参数错误: %v", err)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiGreen + ansiBold + "Foodgram API 启动中" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
