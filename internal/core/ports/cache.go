package ports

import (
	"context"
	"time"
)

// Cache is a JSON value cache. A miss is (false, nil), not an error.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
