// Package provider defines the in-process tier a StringCache may keep in
// front of redis.
//
// A provider only ever holds copies of values that live in redis under the
// same full key, so losing an entry is always safe. Stored bytes must come
// back unchanged.
package provider

import (
	"context"
	"time"
)

// Provider is a local byte store with TTLs, safe for concurrent use.
type Provider interface {
	// Get returns (value, true, nil) on hit and (nil, false, nil) on miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value for at most ttl. cost is a size hint; stores without
	// cost based admission ignore it. ok=false means the write was dropped.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Del forgets key. Missing keys are not an error.
	Del(ctx context.Context, key string) error

	Close(ctx context.Context) error
}
