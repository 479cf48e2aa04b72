package cache

import (
	"context"
	"fmt"
	"time"
)

// slot 一类缓存值：固定前缀 + 标识，值以 JSON 存储
type slot[K comparable, V any] struct {
	prefix string
	ttl    time.Duration
}

func (s slot[K, V]) key(id K) string {
	return fmt.Sprintf("%s:%v", s.prefix, id)
}

func (s slot[K, V]) load(ctx context.Context, id K) (*V, bool, error) {
	var zero K
	if id == zero {
		return nil, false, nil
	}
	value := new(V)
	hit, err := GetJSON(ctx, s.key(id), value)
	if err != nil || !hit {
		return nil, hit, err
	}
	return value, true, nil
}

// store ttl<=0 时使用 slot 默认过期时间
func (s slot[K, V]) store(ctx context.Context, id K, value *V, ttl time.Duration) error {
	var zero K
	if id == zero || value == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = s.ttl
	}
	return SetJSON(ctx, s.key(id), value, ttl)
}

func (s slot[K, V]) drop(ctx context.Context, id K) error {
	var zero K
	if id == zero {
		return nil
	}
	return Del(ctx, s.key(id))
}
