package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/suPer8Hu/krishi-mitra/internal/logger"
)

// Redis stores values as JSON under prefix+key and lets Redis expire them.
// Any Redis error is treated as a miss.
type Redis[V any] struct {
	client *redis.Client
	prefix string
	log    *logger.Logger
}

func NewRedis[V any](client *redis.Client, prefix string, log *logger.Logger) *Redis[V] {
	return &Redis[V]{client: client, prefix: prefix, log: log}
}

func (r *Redis[V]) Get(ctx context.Context, key string) (V, bool) {
	var v V
	b, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("cache get failed", "key", r.prefix+key, "error", err)
		}
		return v, false
	}
	if err := json.Unmarshal(b, &v); err != nil {
		r.log.Warn("cache decode failed", "key", r.prefix+key, "error", err)
		return v, false
	}
	return v, true
}

func (r *Redis[V]) Put(ctx context.Context, key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	b, err := json.Marshal(value)
	if err != nil {
		r.log.Warn("cache encode failed", "key", r.prefix+key, "error", err)
		return
	}
	if err := r.client.Set(ctx, r.prefix+key, b, ttl).Err(); err != nil {
		r.log.Warn("cache put failed", "key", r.prefix+key, "error", err)
	}
}
