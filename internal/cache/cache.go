// Package cache holds short-lived copies of external data (weather, mandi
// prices) so repeated questions do not hit the upstream APIs.
package cache

import (
	"context"
	"time"
)

// Cache is safe for concurrent use. Get never returns an expired value.
type Cache[V any] interface {
	Get(ctx context.Context, key string) (V, bool)
	Put(ctx context.Context, key string, value V, ttl time.Duration)
}
