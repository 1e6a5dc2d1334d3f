package services

import (
	"context"
	"time"
)

// Cache stores generated text that is expensive to regenerate, such as the
// narrator's world description.
type Cache interface {
	// Ping tests the cache connection
	Ping(ctx context.Context) error

	// Set stores a value. A zero expiration keeps it forever.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Get returns "" and no error when the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Del deletes one or more keys
	Del(ctx context.Context, keys ...string) error

	// Close closes the cache connection
	Close() error
}
