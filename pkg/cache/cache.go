// Package cache stores computed layouts so repeated requests skip the engine.
//
// Three backends implement [Cache]:
//   - [FileCache]: JSON files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, for disabled caching and tests
//
// Keys come from a [Keyer] so that every backend agrees on naming. Wrap a
// keyer with [NewScopedKeyer] to give a tenant or deployment its own namespace.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	// TTLLayout is how long computed layouts stay cached. Layouts are pure
	// functions of their input, so a long TTL only bounds disk usage.
	TTLLayout = 7 * 24 * time.Hour

	// TTLFilter is how long pseudoknot filtering results stay cached.
	TTLFilter = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key-value store with per-entry expiry.
//
// Get reports a miss with ok == false and a nil error. A ttl of zero on Set
// means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}
