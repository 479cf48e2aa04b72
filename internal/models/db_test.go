package models

import (
	"context"
	"testing"

	"github.com/foodgram-next/internal/config"
)

func TestSqliteDSNAddsForeignKeys(t *testing.T) {
	cases := map[string]string{
		"foodgram.db":                     "foodgram.db?_pragma=foreign_keys(1)",
		"file:x?mode=memory&cache=shared": "file:x?mode=memory&cache=shared&_pragma=foreign_keys(1)",
		"app.db?_pragma=foreign_keys(0)":  "app.db?_pragma=foreign_keys(0)",
	}
	for in, want := range cases {
		if got := sqliteDSN(in); got != want {
			t.Fatalf("sqliteDSN(%q) want %q got %q", in, want, got)
		}
	}
}

func TestConnectEnablesForeignKeysOnEveryConnection(t *testing.T) {
	db, err := Connect(config.DatabaseConfig{
		DSN:  "file:fk_pool?mode=memory&cache=shared",
		Pool: config.DatabasePoolConfig{MaxOpenConns: 3, MaxIdleConns: 3},
	}, nil)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db failed: %v", err)
	}
	ctx := context.Background()
	// 同时持有多个连接，确保不是同一个连接被复用
	for i := 0; i < 3; i++ {
		conn, err := sqlDB.Conn(ctx)
		if err != nil {
			t.Fatalf("conn #%d failed: %v", i, err)
		}
		defer conn.Close()
		var enabled int
		if err := conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil {
			t.Fatalf("pragma #%d failed: %v", i, err)
		}
		if enabled != 1 {
			t.Fatalf("connection #%d has foreign keys off", i)
		}
	}
}

func TestConnectZeroPoolKeepsMemoryDatabase(t *testing.T) {
	db, err := Connect(config.DatabaseConfig{DSN: "file:zero_pool?mode=memory&cache=shared"}, nil)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := db.Create(&Tag{Name: "Перекус", Slug: "snack"}).Error; err != nil {
		t.Fatalf("insert after migrate failed: %v", err)
	}
}
