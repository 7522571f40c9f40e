package sitecache

import (
	"testing"
	"time"
)

func TestMapConfigTypedDefaults(t *testing.T) {
	m := MapConfig{
		"cache.enabled":  false,
		"cache.driver":   "redis",
		"cache.lifetime": 120,
		"cache.prefix":   7, // wrong type: default applies
	}
	if m.Bool("cache.enabled", true) {
		t.Fatalf("stored bool not returned")
	}
	if got := m.String("cache.driver", "auto"); got != "redis" {
		t.Fatalf("stored string not returned: %q", got)
	}
	if got := m.Int("cache.lifetime", 0); got != 120 {
		t.Fatalf("stored int not returned: %d", got)
	}
	if got := m.String("cache.prefix", "g"); got != "g" {
		t.Fatalf("wrong-typed value must yield default, got %q", got)
	}
	if got := m.Int("cache.missing", 42); got != 42 {
		t.Fatalf("missing key must yield default, got %d", got)
	}
}

func TestFromProviderDefaults(t *testing.T) {
	cfg := FromProvider(MapConfig{})
	if !cfg.Enabled {
		t.Fatalf("enabled should default to true")
	}
	if cfg.Driver != DriverAuto || cfg.Prefix != DefaultPrefix {
		t.Fatalf("driver/prefix defaults wrong: %q %q", cfg.Driver, cfg.Prefix)
	}
	if cfg.Lifetime() != DefaultLifetime {
		t.Fatalf("lifetime default wrong: %v", cfg.Lifetime())
	}
	if cfg.MemcacheAddr() != "localhost:11211" {
		t.Fatalf("memcache default wrong: %q", cfg.MemcacheAddr())
	}
	if cfg.RedisAddr() != "localhost:6379" {
		t.Fatalf("redis default wrong: %q", cfg.RedisAddr())
	}
}

func TestFromProviderOverrides(t *testing.T) {
	cfg := FromProvider(MapConfig{
		KeyDriver:      "memcache",
		KeyPrefix:      "site_",
		KeyLifetime:    60,
		KeyRedisServer: "redis.internal",
		KeyRedisPort:   6380,
	})
	if cfg.Driver != "memcache" || cfg.Prefix != "site_" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Lifetime() != time.Minute {
		t.Fatalf("lifetime override wrong: %v", cfg.Lifetime())
	}
	if cfg.RedisAddr() != "redis.internal:6380" {
		t.Fatalf("redis addr wrong: %q", cfg.RedisAddr())
	}
}

func TestLifetimeFallsBackToOneWeek(t *testing.T) {
	var cfg Config
	if cfg.Lifetime() != DefaultLifetime {
		t.Fatalf("zero config must fall back to one week, got %v", cfg.Lifetime())
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_DRIVER", "file")
	t.Setenv("CACHE_LIFETIME", "90")
	t.Setenv("CACHE_FILE_DIR", "/var/site/cache")

	cfg, err := ParseEnv()
	if err != nil {
		t.Fatalf("ParseEnv: %v", err)
	}
	if cfg.Enabled {
		t.Fatalf("enabled override not applied")
	}
	if cfg.Driver != DriverFile || cfg.FileDir != "/var/site/cache" {
		t.Fatalf("driver/file dir not applied: %+v", cfg)
	}
	if cfg.LifetimeSeconds != 90 {
		t.Fatalf("lifetime not applied: %d", cfg.LifetimeSeconds)
	}
	// untouched keys keep documented defaults
	if cfg.MemcachePort != 11211 || cfg.RedisPort != 6379 {
		t.Fatalf("port defaults wrong: %+v", cfg)
	}
}
