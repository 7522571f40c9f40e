package sitecache

import (
	"context"
	"fmt"
	"time"

	c "github.com/unkn0wn-root/sitecache/codec"
	dr "github.com/unkn0wn-root/sitecache/driver"
)

type cache[V any] struct {
	ns       string
	drv      dr.Driver
	codec    c.Codec[V]
	log      Logger
	enabled  bool
	now      func() time.Time
	lifetime lifetimePolicy
}

func newCache[V any](opts Options[V]) (*cache[V], error) {
	if opts.Driver == nil {
		return nil, fmt.Errorf("sitecache: driver is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("sitecache: codec is required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("sitecache: namespace is required")
	}

	cc := &cache[V]{
		ns:      opts.Namespace,
		drv:     opts.Driver,
		codec:   opts.Codec,
		enabled: !opts.Disabled,
	}

	// defaults
	cc.log = coalesce[Logger](opts.Logger, NopLogger{})
	cc.lifetime = lifetimePolicy{def: coalesce[time.Duration](opts.DefaultTTL, DefaultLifetime)}
	if opts.Now != nil {
		cc.now = opts.Now
	} else {
		cc.now = time.Now
	}

	return cc, nil
}

func (c *cache[V]) Enabled() bool     { return c.enabled }
func (c *cache[V]) Namespace() string { return c.ns }

func (c *cache[V]) Close(ctx context.Context) error {
	if c.drv != nil {
		return c.drv.Close(ctx)
	}
	return nil
}

func (c *cache[V]) Fetch(ctx context.Context, id string) (V, bool, error) {
	var zero V
	if !c.enabled {
		return zero, false, nil
	}
	raw, ok, err := c.drv.Fetch(ctx, c.key(id))
	if err != nil || !ok {
		// hit, miss, or backend error: surfaced unchanged, no retry
		return zero, false, err
	}
	v, err := c.codec.Decode(raw)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

func (c *cache[V]) Save(ctx context.Context, id string, value V, ttl time.Duration) error {
	if !c.enabled {
		return nil
	}
	if ttl <= 0 {
		ttl = c.lifetime.effective()
	}
	raw, err := c.codec.Encode(value)
	if err != nil {
		return err
	}
	return c.drv.Store(ctx, c.key(id), raw, ttl)
}

func (c *cache[V]) NarrowLifetime(until time.Time) {
	if c.lifetime.narrow(until, c.now()) {
		c.log.Debug("cache lifetime narrowed", Fields{"lifetime": c.lifetime.effective()})
	}
}

func (c *cache[V]) Lifetime() time.Duration {
	return c.lifetime.effective()
}

// key scopes a caller id by the deployment namespace so unrelated
// deployments sharing a backend never collide.
func (c *cache[V]) key(id string) string {
	return c.ns + ":" + id
}
