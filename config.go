package sitecache

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Dotted configuration keys consumed by this layer.
const (
	KeyEnabled        = "cache.enabled"
	KeyDriver         = "cache.driver"
	KeyPrefix         = "cache.prefix"
	KeyLifetime       = "cache.lifetime"
	KeyMemcacheServer = "cache.memcache.server"
	KeyMemcachePort   = "cache.memcache.port"
	KeyRedisServer    = "cache.redis.server"
	KeyRedisPort      = "cache.redis.port"
	KeyFileDir        = "cache.file.dir"
)

// ConfigProvider supplies dotted-key configuration lookups with typed
// defaults. Implemented by the host application's configuration layer;
// MapConfig is a ready-made implementation for embedding and tests.
type ConfigProvider interface {
	String(key, def string) string
	Int(key string, def int) int
	Bool(key string, def bool) bool
}

// MapConfig is a ConfigProvider over a plain map. Values of the wrong type
// fall back to the given default.
type MapConfig map[string]any

func (m MapConfig) String(key, def string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return def
}

func (m MapConfig) Int(key string, def int) int {
	if v, ok := m[key].(int); ok {
		return v
	}
	return def
}

func (m MapConfig) Bool(key string, def bool) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return def
}

// Config is the cache configuration, loaded once and immutable for the
// process.
type Config struct {
	Enabled         bool   `env:"CACHE_ENABLED" envDefault:"true"`
	Driver          string `env:"CACHE_DRIVER" envDefault:"auto"`
	Prefix          string `env:"CACHE_PREFIX" envDefault:"g"`
	LifetimeSeconds int    `env:"CACHE_LIFETIME" envDefault:"604800"`
	MemcacheServer  string `env:"CACHE_MEMCACHE_SERVER" envDefault:"localhost"`
	MemcachePort    int    `env:"CACHE_MEMCACHE_PORT" envDefault:"11211"`
	RedisServer     string `env:"CACHE_REDIS_SERVER" envDefault:"localhost"`
	RedisPort       int    `env:"CACHE_REDIS_PORT" envDefault:"6379"`
	FileDir         string `env:"CACHE_FILE_DIR"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

// FromProvider loads configuration from a dotted-key provider, applying the
// documented defaults for anything the provider does not carry.
func FromProvider(p ConfigProvider) Config {
	return Config{
		Enabled:         p.Bool(KeyEnabled, true),
		Driver:          p.String(KeyDriver, DriverAuto),
		Prefix:          p.String(KeyPrefix, DefaultPrefix),
		LifetimeSeconds: p.Int(KeyLifetime, int(DefaultLifetime/time.Second)),
		MemcacheServer:  p.String(KeyMemcacheServer, "localhost"),
		MemcachePort:    p.Int(KeyMemcachePort, 11211),
		RedisServer:     p.String(KeyRedisServer, "localhost"),
		RedisPort:       p.Int(KeyRedisPort, 6379),
		FileDir:         p.String(KeyFileDir, ""),
	}
}

// Lifetime returns the configured default TTL, falling back to one week.
func (c Config) Lifetime() time.Duration {
	if c.LifetimeSeconds > 0 {
		return time.Duration(c.LifetimeSeconds) * time.Second
	}
	return DefaultLifetime
}

func (c Config) MemcacheAddr() string {
	return fmt.Sprintf("%s:%d", c.MemcacheServer, c.MemcachePort)
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisServer, c.RedisPort)
}
