package memcache

import (
	"context"
	"errors"
	"time"

	mc "github.com/bradfitz/gomemcache/memcache"

	dr "github.com/unkn0wn-root/sitecache/driver"
)

var ErrNilClient = errors.New("memcache driver: nil client")

// Memcache stores entries in a shared memcached keyspace. Like the redis
// driver, a failed connection at build time propagates to the caller.
type Memcache struct {
	c *mc.Client
}

var _ dr.Driver = (*Memcache)(nil)

type Config struct {
	// Addr is "host:port". Ignored when Client is set.
	Addr   string
	Client *mc.Client
}

// Connect builds the client (unless one was supplied) and verifies the
// connection with a single ping. gomemcache connects lazily, so without the
// ping an unreachable server would only surface on the first Fetch.
func Connect(_ context.Context, cfg Config) (*Memcache, error) {
	c := cfg.Client
	if c == nil {
		c = mc.New(cfg.Addr)
	}
	if err := c.Ping(); err != nil {
		return nil, err
	}
	return &Memcache{c: c}, nil
}

// New wraps an existing client without pinging it.
func New(cfg Config) (*Memcache, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Memcache{c: cfg.Client}, nil
}

func (d *Memcache) Fetch(_ context.Context, key string) ([]byte, bool, error) {
	item, err := d.c.Get(key)
	if err == mc.ErrCacheMiss {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return item.Value, true, nil
}

func (d *Memcache) Store(_ context.Context, key string, value []byte, ttl time.Duration) error {
	item := &mc.Item{Key: key, Value: value}
	if ttl > 0 {
		item.Expiration = int32(ttl.Seconds())
	}
	return d.c.Set(item)
}

func (d *Memcache) Remove(_ context.Context, key string) error {
	if err := d.c.Delete(key); err != nil && err != mc.ErrCacheMiss {
		return err
	}
	return nil
}

// Close is a no-op: the client keeps a small pool of idle connections that
// the process drops on exit.
func (d *Memcache) Close(context.Context) error { return nil }
