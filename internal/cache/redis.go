package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/foodgram-next/internal/config"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "fg"

// backend 当前生效的连接与键前缀；client 为 nil 表示缓存关闭
type backend struct {
	client *redis.Client
	prefix string
}

var current atomic.Pointer[backend]

func active() *backend {
	if b := current.Load(); b != nil {
		return b
	}
	return &backend{prefix: defaultPrefix}
}

func install(client *redis.Client, prefix string) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	current.Store(&backend{client: client, prefix: prefix})
}

// InitRedis 按配置建立连接；未启用时缓存全部退化为空操作
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		install(nil, "")
		return nil
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	install(redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		Password: cfg.Password,
		DB:       cfg.DB,
	}), cfg.Prefix)
	return nil
}

// UseClient 注入外部客户端，测试用
func UseClient(client *redis.Client, prefix string) {
	install(client, prefix)
}

func Enabled() bool {
	return active().client != nil
}

// Client 缓存关闭时返回 nil
func Client() *redis.Client {
	return active().client
}

func Ping(ctx context.Context) error {
	if c := Client(); c != nil {
		return c.Ping(ctx).Err()
	}
	return nil
}

// Close 关闭连接并切换为禁用状态
func Close() error {
	old := current.Swap(&backend{prefix: active().prefix})
	if old == nil || old.client == nil {
		return nil
	}
	return old.client.Close()
}

// GetJSON 命中时把值解码到 dest
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	c := Client()
	if c == nil {
		return false, nil
	}
	raw, err := c.Get(ctx, buildKey(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	c := Client()
	if c == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, buildKey(key), payload, ttl).Err()
}

func Del(ctx context.Context, key string) error {
	c := Client()
	if c == nil {
		return nil
	}
	return c.Del(ctx, buildKey(key)).Err()
}

func buildKey(key string) string {
	prefix := active().prefix
	if key = strings.TrimSpace(key); key == "" {
		return prefix
	}
	return prefix + ":" + key
}
