package models

import (
	"errors"
	"strings"

	"github.com/foodgram-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	fallbackAdminUsername = "admin"
	fallbackAdminPassword = "admin123"
)

// builtinTags 首次启动写入，slug 冲突时保留已有记录
var builtinTags = []Tag{
	{Name: "Завтрак", Slug: "breakfast"},
	{Name: "Обед", Slug: "lunch"},
	{Name: "Ужин", Slug: "dinner"},
}

// SeedOptions 初始数据参数；SkipAdmin 为 true 时不创建管理员
type SeedOptions struct {
	AdminUsername string
	AdminPassword string
	SkipAdmin     bool
}

// Seed 写入预置标签与首个超级管理员
func Seed(db *gorm.DB, opts SeedOptions) error {
	if db == nil {
		return errors.New("db is nil")
	}
	tags := append([]Tag(nil), builtinTags...)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tags).Error; err != nil {
		return err
	}
	if opts.SkipAdmin {
		return nil
	}
	return seedAdmin(db, opts.AdminUsername, opts.AdminPassword)
}

// seedAdmin 表中已有管理员时什么也不做
func seedAdmin(db *gorm.DB, username, password string) error {
	var exists int64
	if err := db.Model(&Admin{}).Limit(1).Count(&exists).Error; err != nil {
		return err
	}
	if exists > 0 {
		return nil
	}

	username = strings.TrimSpace(username)
	if username == "" {
		username = fallbackAdminUsername
	}
	if password == "" {
		password = fallbackAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := db.Create(&Admin{Username: username, PasswordHash: string(hash), IsSuper: true}).Error; err != nil {
		return err
	}
	logger.Warnw("seed_admin_created",
		"username", username,
		"default_password", password == fallbackAdminPassword,
	)
	return nil
}
