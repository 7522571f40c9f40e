package ristretto

import (
	"context"
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	dr "github.com/unkn0wn-root/sitecache/driver"
)

// Ristretto is an in-process driver. The store is private to the process,
// so no cross-deployment key scoping is needed.
type Ristretto struct {
	c *rc.Cache
}

var _ dr.Driver = (*Ristretto)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
}

// DefaultConfig sizes the cache for a typical single-site deployment.
func DefaultConfig() Config {
	return Config{
		NumCounters: 1e6,
		MaxCost:     64 << 20, // 64 MiB
		BufferItems: 64,
	}
}

func New(cfg Config) (*Ristretto, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Ristretto{c: c}, nil
}

func (d *Ristretto) Fetch(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := d.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// self-heal: drop unexpected entry shape
		d.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

func (d *Ristretto) Store(_ context.Context, key string, value []byte, ttl time.Duration) error {
	// cost = payload size; ristretto may reject the write under pressure,
	// which is indistinguishable from an immediate eviction and not an error.
	d.c.SetWithTTL(key, value, int64(len(value)), ttl)
	return nil
}

func (d *Ristretto) Remove(_ context.Context, key string) error {
	d.c.Del(key)
	return nil
}

func (d *Ristretto) Close(_ context.Context) error {
	d.c.Wait()
	d.c.Close()
	return nil
}

// Metrics exposes ristretto's counters for applications that want them
// (not part of the driver contract).
func (d *Ristretto) Metrics() *rc.Metrics { return d.c.Metrics }
