// Package driver defines the storage abstraction backing a site cache.
//
// Implementations MUST be byte-for-byte transparent: Fetch must return
// exactly the same []byte that was previously passed to Store for a key (no
// prepended/appended metadata, no re-encoding, no mutation). If a store
// performs internal transforms (e.g., compression), they MUST be fully
// reversed so that the bytes returned by Fetch are identical to the bytes
// provided to Store.
//
// A driver is bound to a single deployment namespace at construction time
// and lives for the process duration. Drivers sharing a backend keyspace
// with other deployments (redis, memcache, file) scope every key with the
// bound namespace; in-process drivers own their store outright and only
// record it.
package driver

import (
	"context"
	"time"
)

// Driver is a minimal byte store with per-entry TTLs. Must be safe for
// concurrent use. Errors are reported as-is: this layer does not retry,
// time out, or reinterpret backend failures.
type Driver interface {
	// Fetch returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Fetch(ctx context.Context, key string) ([]byte, bool, error)

	// Store writes value with the given TTL. ttl <= 0 means "no expiry"
	// where the backend supports it.
	Store(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Remove deletes a key (best-effort).
	Remove(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
