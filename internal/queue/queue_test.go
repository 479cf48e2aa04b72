package queue

import (
	"testing"

	"github.com/foodgram-next/internal/config"
)

func TestImageCleanupTaskRoundTrip(t *testing.T) {
	task, err := NewImageCleanupTask(ImageCleanupPayload{Key: " recipes/2026/10/a.png ", Reason: "replaced"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskImageCleanup {
		t.Fatalf("task type want %s got %s", TaskImageCleanup, task.Type())
	}
	payload, err := ParseImageCleanupPayload(task.Payload())
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if payload.Key != "recipes/2026/10/a.png" || payload.Reason != "replaced" {
		t.Fatalf("payload mismatch: %+v", payload)
	}
}

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueImageCleanup(ImageCleanupPayload{Key: "a.png"}); err != nil {
		t.Fatalf("disabled enqueue should be noop, got %v", err)
	}
}

func TestServerConfigDefaults(t *testing.T) {
	cfg := ServerConfig(&config.QueueConfig{})
	if cfg.Concurrency != defaultConcurrency {
		t.Fatalf("concurrency want %d got %d", defaultConcurrency, cfg.Concurrency)
	}
	if cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("default queue weight want 1 got %d", cfg.Queues[DefaultQueue])
	}
	if cfg.Logger == nil || cfg.ErrorHandler == nil {
		t.Fatalf("logger and error handler must be set")
	}

	custom := ServerConfig(&config.QueueConfig{Concurrency: 3, Queues: map[string]int{"images": 2}})
	if custom.Concurrency != 3 || custom.Queues["images"] != 2 {
		t.Fatalf("custom config ignored: %+v", custom.Queues)
	}
}

func TestRedisOpt(t *testing.T) {
	opt := RedisOpt(&config.QueueConfig{Host: " redis ", Port: 6380, DB: 2, Password: "pw"})
	if opt.Addr != "redis:6380" || opt.DB != 2 || opt.Password != "pw" {
		t.Fatalf("redis opt mismatch: %+v", opt)
	}
	if RedisOpt(nil).Addr != "127.0.0.1:6379" {
		t.Fatalf("nil config must fall back to localhost")
	}
	if RedisOpt(&config.QueueConfig{}).Addr != "127.0.0.1:6379" {
		t.Fatalf("empty config must fall back to localhost")
	}
}
