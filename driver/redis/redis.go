package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	dr "github.com/unkn0wn-root/sitecache/driver"
)

var ErrNilClient = errors.New("redis driver: nil client")

// Redis stores entries in a shared redis keyspace. Connection failures at
// build time propagate to the caller: an explicitly configured remote
// backend that cannot be reached is fatal, never silently downgraded.
type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ dr.Driver = (*Redis)(nil)

type Config struct {
	// Addr is "host:port". Ignored when Client is set.
	Addr string
	// Client is an optional pre-built client. When set, the driver does
	// not own it unless CloseClient is true.
	Client      goredis.UniversalClient
	CloseClient bool
}

// Connect builds the client (unless one was supplied) and verifies the
// connection with a single PING. No retries and no extra timeout: a slow or
// unreachable server surfaces exactly as the client reports it.
func Connect(ctx context.Context, cfg Config) (*Redis, error) {
	rdb := cfg.Client
	closeClient := cfg.CloseClient
	if rdb == nil {
		rdb = goredis.NewClient(&goredis.Options{Addr: cfg.Addr})
		closeClient = true
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		if closeClient {
			_ = rdb.Close()
		}
		return nil, err
	}
	return &Redis{rdb: rdb, closeClient: closeClient}, nil
}

// New wraps an existing, already-connected client without pinging it.
func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

func (d *Redis) Fetch(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := d.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

func (d *Redis) Store(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 0 // non-positive TTL means "no expiry" per driver contract
	}
	return d.rdb.Set(ctx, key, value, ttl).Err()
}

func (d *Redis) Remove(ctx context.Context, key string) error {
	return d.rdb.Del(ctx, key).Err()
}

// Close releases the underlying client only when this driver owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (d *Redis) Close(context.Context) error {
	if d.closeClient {
		if err := d.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
