package providers

import (
	"context"
)

// CacheProvider is the read-through cache sitting in front of place storage.
// Values are opaque byte slices; callers own the serialization.
type CacheProvider interface {
	// Get retrieves a value, returning an error on a missing key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value that expires after the given number of seconds.
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error
}
