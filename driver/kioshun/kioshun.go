package kioshun

import (
	"context"
	"time"

	kc "github.com/unkn0wn-root/kioshun"

	dr "github.com/unkn0wn-root/sitecache/driver"
)

// Kioshun is an in-process driver over kioshun's sharded cache.
// K=string, V=[]byte keeps the byte-for-byte transparency contract.
type Kioshun struct {
	c *kc.InMemoryCache[string, []byte]
}

var _ dr.Driver = (*Kioshun)(nil)

type Config struct {
	MaxItems        int64             // total item capacity; 0 = unlimited
	ShardCount      int               // 0 = auto (CPU * multiplier)
	Policy          kc.EvictionPolicy // LRU/LFU/FIFO/AdmissionLFU
	CleanupInterval time.Duration     // 0 = disable background cleanup
}

// DefaultTTL is forced to 0 in kioshun so the per-call TTL from Store is
// authoritative; ttl<=0 translates to kioshun's NoExpiration.
func New(cfg Config) *Kioshun {
	kcfg := kc.Config{
		MaxSize:         cfg.MaxItems,
		ShardCount:      cfg.ShardCount,
		CleanupInterval: cfg.CleanupInterval,
		DefaultTTL:      0,
		EvictionPolicy:  cfg.Policy,
	}
	return &Kioshun{c: kc.New[string, []byte](kcfg)}
}

func NewWithCache(c *kc.InMemoryCache[string, []byte]) *Kioshun { return &Kioshun{c: c} }

func (d *Kioshun) Fetch(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := d.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	return v, true, nil
}

func (d *Kioshun) Store(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = kc.NoExpiration
	}
	return d.c.Set(key, value, ttl)
}

func (d *Kioshun) Remove(_ context.Context, key string) error {
	_ = d.c.Delete(key)
	return nil
}

func (d *Kioshun) Close(_ context.Context) error {
	return d.c.Close()
}
