package providers

import (
	"context"
)

// CacheProvider is the caching port used by the read-through adapters.
// Values are opaque byte slices; callers own the serialization.
type CacheProvider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
