package bigcache

import (
	"context"
	"time"

	bc "github.com/allegro/bigcache/v3"

	dr "github.com/unkn0wn-root/sitecache/driver"
)

// BigCache is an in-process driver. BigCache has no per-entry TTL; entries
// expire after the global LifeWindow, so the configured default lifetime
// should be passed as LifeWindow when building it.
type BigCache struct {
	c *bc.BigCache
}

var _ dr.Driver = (*BigCache)(nil)

type Config struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New(ctx context.Context, cfg Config) (*BigCache, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.New(ctx, conf)
	if err != nil {
		return nil, err
	}
	return &BigCache{c: c}, nil
}

func (d *BigCache) Fetch(_ context.Context, key string) ([]byte, bool, error) {
	b, err := d.c.Get(key)
	if err == bc.ErrEntryNotFound {
		return nil, false, nil
	}
	return b, err == nil, err
}

func (d *BigCache) Store(_ context.Context, key string, value []byte, _ time.Duration) error {
	// per-entry TTL unsupported; the global LifeWindow applies.
	return d.c.Set(key, value)
}

func (d *BigCache) Remove(_ context.Context, key string) error {
	if err := d.c.Delete(key); err != nil && err != bc.ErrEntryNotFound {
		return err
	}
	return nil
}

func (d *BigCache) Close(_ context.Context) error {
	return d.c.Close()
}
