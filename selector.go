package sitecache

import (
	"context"
	"os"
	"path/filepath"

	dr "github.com/unkn0wn-root/sitecache/driver"
	bigcachedrv "github.com/unkn0wn-root/sitecache/driver/bigcache"
	filedrv "github.com/unkn0wn-root/sitecache/driver/file"
	kioshundrv "github.com/unkn0wn-root/sitecache/driver/kioshun"
	memcachedrv "github.com/unkn0wn-root/sitecache/driver/memcache"
	redisdrv "github.com/unkn0wn-root/sitecache/driver/redis"
	ristrettodrv "github.com/unkn0wn-root/sitecache/driver/ristretto"
)

// Driver names accepted by Config.Driver.
const (
	DriverAuto      = "auto"
	DriverRistretto = "ristretto"
	DriverBigCache  = "bigcache"
	DriverKioshun   = "kioshun"
	DriverMemcache  = "memcache"
	DriverRedis     = "redis"
	DriverFile      = "file"
)

// autoOrder is the fixed probe priority for auto-detection. Only in-process
// stores take part: remote backends are never auto-selected because a
// connection attempt nobody asked for could block startup.
var autoOrder = [...]string{DriverRistretto, DriverBigCache, DriverKioshun}

// registryEntry pairs an availability probe with a bound driver factory.
type registryEntry struct {
	available func() bool
	build     func(ctx context.Context) (dr.Driver, error)
}

type selector struct {
	cfg    Config
	ns     string
	log    Logger
	probes map[string]func() bool
}

// SelectOption tweaks driver selection, mainly for tests.
type SelectOption func(*selector)

// WithProbe overrides the availability probe for a named backend.
func WithProbe(name string, available func() bool) SelectOption {
	return func(s *selector) { s.probes[name] = available }
}

// SelectDriver resolves the configured driver name into a bound driver
// instance plus the resolved name for diagnostics.
//
//  1. An explicit non-"auto" name goes straight to its factory (no
//     probing). An unrecognized explicit name falls through to the file
//     driver rather than failing.
//  2. "auto" (or empty) probes the in-process stores in fixed order and
//     takes the first one available.
//  3. When nothing is available, the file driver is used: it is the only
//     backend guaranteed to be constructible without a runtime extension
//     or external service.
//
// Remote backends connect at build time through their own client; this
// layer adds no retry and no timeout, and a failed connection to an
// explicitly configured remote backend propagates to the caller instead of
// being downgraded to the file fallback.
func SelectDriver(ctx context.Context, cfg Config, namespace string, log Logger, opts ...SelectOption) (dr.Driver, string, error) {
	s := &selector{
		cfg:    cfg,
		ns:     namespace,
		log:    coalesce[Logger](log, NopLogger{}),
		probes: make(map[string]func() bool),
	}
	for _, o := range opts {
		o(s)
	}
	return s.resolve(ctx)
}

func (s *selector) resolve(ctx context.Context) (dr.Driver, string, error) {
	reg := s.registry()

	if name := s.cfg.Driver; name != "" && name != DriverAuto {
		e, ok := reg[name]
		if !ok {
			// permissive: unknown names mean "whatever always works"
			s.log.Warn("unknown cache driver, using file", Fields{"driver": name})
			name = DriverFile
			e = reg[name]
		}
		d, err := e.build(ctx)
		if err != nil {
			return nil, "", err
		}
		s.log.Debug("cache driver selected", Fields{"driver": name})
		return d, name, nil
	}

	for _, name := range autoOrder {
		e := reg[name]
		if !s.probe(name, e.available)() {
			continue
		}
		d, err := e.build(ctx)
		if err != nil {
			return nil, "", err
		}
		s.log.Debug("cache driver auto-detected", Fields{"driver": name})
		return d, name, nil
	}

	d, err := reg[DriverFile].build(ctx)
	if err != nil {
		return nil, "", err
	}
	s.log.Debug("cache driver fallback", Fields{"driver": DriverFile})
	return d, DriverFile, nil
}

func (s *selector) probe(name string, def func() bool) func() bool {
	if p, ok := s.probes[name]; ok && p != nil {
		return p
	}
	return def
}

func (s *selector) registry() map[string]registryEntry {
	always := func() bool { return true }
	return map[string]registryEntry{
		DriverRistretto: {
			available: always,
			build: func(context.Context) (dr.Driver, error) {
				return ristrettodrv.New(ristrettodrv.DefaultConfig())
			},
		},
		DriverBigCache: {
			available: always,
			build: func(ctx context.Context) (dr.Driver, error) {
				return bigcachedrv.New(ctx, bigcachedrv.Config{LifeWindow: s.cfg.Lifetime()})
			},
		},
		DriverKioshun: {
			available: always,
			build: func(context.Context) (dr.Driver, error) {
				return kioshundrv.New(kioshundrv.Config{}), nil
			},
		},
		DriverMemcache: {
			available: always,
			build: func(ctx context.Context) (dr.Driver, error) {
				return memcachedrv.Connect(ctx, memcachedrv.Config{Addr: s.cfg.MemcacheAddr()})
			},
		},
		DriverRedis: {
			available: always,
			build: func(ctx context.Context) (dr.Driver, error) {
				return redisdrv.Connect(ctx, redisdrv.Config{Addr: s.cfg.RedisAddr()})
			},
		},
		DriverFile: {
			available: always,
			build: func(context.Context) (dr.Driver, error) {
				dir := s.cfg.FileDir
				if dir == "" {
					dir = filepath.Join(os.TempDir(), "sitecache")
				}
				return filedrv.New(filedrv.Config{Dir: dir, Namespace: s.ns})
			},
		},
	}
}
