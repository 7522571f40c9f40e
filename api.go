package sitecache

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/sitecache/codec"
	dr "github.com/unkn0wn-root/sitecache/driver"
)

// Cache is the site-wide cache facade. One instance per process: the
// namespace is derived once at startup, the driver is selected once and
// never swapped, and every access is gated by the enabled flag.
// V is the caller's value type; serialization is handled by a pluggable
// Codec[V] (use codec.Bytes for a raw byte surface).
type Cache[V any] interface {
	Enabled() bool
	Namespace() string
	Close(context.Context) error

	// Fetch returns the cached value for id, or a miss. On a disabled
	// cache it always misses without touching the driver. Driver errors
	// surface unchanged.
	Fetch(ctx context.Context, id string) (v V, ok bool, err error)

	// Save stores value under id. ttl > 0 wins over the lifetime policy;
	// ttl == 0 means "use the policy". No-op on a disabled cache. Store
	// failures are not retried.
	Save(ctx context.Context, id string, value V, ttl time.Duration) error

	// NarrowLifetime shrinks the policy lifetime so entries saved from now
	// on expire no later than until. Ignored unless until is in the future
	// and closer than the current effective lifetime; the lifetime never
	// widens again for the remainder of the process.
	NarrowLifetime(until time.Time)

	// Lifetime reports the current effective lifetime (override if set,
	// else the configured default, else one week).
	Lifetime() time.Duration
}

// Options tune the facade. Namespace, Driver and Codec are required;
// everything else has sensible defaults.
type Options[V any] struct {
	// Required
	Namespace string // per-deployment namespace; see DeriveNamespace
	Driver    dr.Driver
	Codec     c.Codec[V]

	Logger     Logger           // if nil, NopLogger is used
	DefaultTTL time.Duration    // 0 => one week
	Disabled   bool             // default false (enabled)
	Now        func() time.Time // clock override; nil => time.Now
}

func New[V any](opts Options[V]) (Cache[V], error) {
	return newCache[V](opts)
}
