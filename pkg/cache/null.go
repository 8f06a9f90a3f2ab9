package cache

import (
	"context"
	"time"
)

// NullCache is the backend behind --no-cache and backend = "none". Every
// lookup misses and every write is dropped, so the pipeline always runs the
// layout engine.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache {
	return &NullCache{}
}

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (*NullCache) Delete(context.Context, string) error { return nil }

// Clear has nothing to remove; it lets "rnalayout cache clear" treat every
// backend alike.
func (*NullCache) Clear(context.Context) error { return nil }

func (*NullCache) Close() error { return nil }

var (
	_ Cache   = (*NullCache)(nil)
	_ Clearer = (*NullCache)(nil)
)
