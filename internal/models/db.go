package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/foodgram-next/internal/config"

	"github.com/glebarez/sqlite" // 纯 Go 实现，无需 cgo
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB 进程内共享的连接，由 Connect 设置
var DB *gorm.DB

// tables 迁移顺序：被引用的表在前
var tables = []interface{}{
	&Admin{},
	&User{},
	&Tag{},
	&Ingredient{},
	&Recipe{},
	&RecipeIngredient{},
	&Favorite{},
	&ShoppingCartEntry{},
	&Subscription{},
	&ShortLink{},
}

// Connect 打开数据库并配置连接池
func Connect(cfg config.DatabaseConfig, log gormlogger.Interface) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver := strings.ToLower(strings.TrimSpace(cfg.Driver)); driver {
	case "", "sqlite":
		dialector = sqlite.Open(sqliteDSN(cfg.DSN))
	case "postgres", "postgresql":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: log})
	if err != nil {
		return nil, err
	}
	if err := tunePool(db, cfg.Pool); err != nil {
		return nil, err
	}
	DB = db
	return db, nil
}

// sqliteDSN 每个新连接都通过 DSN 打开外键约束，菜谱级联删除依赖它
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

func tunePool(db *gorm.DB, pool config.DatabasePoolConfig) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	// <=0 沿用 database/sql 默认值
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetimeSeconds > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetimeSeconds) * time.Second)
	}
	if pool.ConnMaxIdleTimeSeconds > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(pool.ConnMaxIdleTimeSeconds) * time.Second)
	}
	return nil
}

// Migrate 建表或补齐缺失的列与索引
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(tables...)
}
