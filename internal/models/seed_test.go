package models

import (
	"testing"

	"github.com/foodgram-next/internal/config"
)

func TestConnectRejectsUnknownDriver(t *testing.T) {
	if _, err := Connect(config.DatabaseConfig{Driver: "mysql"}, nil); err == nil {
		t.Fatalf("unknown driver must fail")
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	dsn := "file:seed_twice?mode=memory&cache=shared"
	db, err := Connect(config.DatabaseConfig{Driver: "sqlite", DSN: dsn}, nil)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	opts := SeedOptions{AdminUsername: "chef", AdminPassword: "s3cret-pass"}
	for i := 0; i < 2; i++ {
		if err := Seed(db, opts); err != nil {
			t.Fatalf("seed #%d failed: %v", i, err)
		}
	}

	var tags, admins int64
	db.Model(&Tag{}).Count(&tags)
	db.Model(&Admin{}).Count(&admins)
	if tags != int64(len(builtinTags)) || admins != 1 {
		t.Fatalf("want %d tags and 1 admin, got %d / %d", len(builtinTags), tags, admins)
	}
	var admin Admin
	if err := db.First(&admin).Error; err != nil {
		t.Fatalf("load admin failed: %v", err)
	}
	if admin.Username != "chef" || !admin.IsSuper || admin.PasswordHash == "s3cret-pass" {
		t.Fatalf("unexpected seeded admin: %+v", admin)
	}
}

func TestSeedSkipAdmin(t *testing.T) {
	db, err := Connect(config.DatabaseConfig{DSN: "file:seed_skip?mode=memory&cache=shared"}, nil)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := Seed(db, SeedOptions{SkipAdmin: true}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	var admins int64
	db.Model(&Admin{}).Count(&admins)
	if admins != 0 {
		t.Fatalf("admin must not be created, got %d", admins)
	}
}
