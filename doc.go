// Package sitecache is a site-wide cache abstraction: it derives a unique
// per-deployment namespace, binds one of several interchangeable storage
// backends, gates all access behind an enable flag, and resolves the
// effective lifetime per entry. The companion sweep package provides the
// selective bulk-invalidation sweep over named storage trees.
//
// Components:
//   - DeriveNamespace: short deterministic namespace from (root URL, config
//     fingerprint, version). Changing any input rotates the namespace and
//     implicitly invalidates everything a previous deployment wrote.
//   - SelectDriver: ordered (probe, factory) registry. Explicit names win
//     without probing; "auto" probes the in-process stores; the file driver
//     is the terminal fallback. Remote connection failures are fatal.
//   - Cache[V]: the fetch/save facade. Disabled => fetch always misses and
//     save is a no-op, without touching the driver. Lifetime resolution:
//     explicit TTL, else narrowed override, else configured default, else
//     one week.
//
// This layer adds no locking, no retries and no timeouts: consistency and
// latency under concurrent writers are whatever the chosen backend
// provides.
//
// Typical wiring:
//
//	cfg, _ := sitecache.ParseEnv()
//	ns := sitecache.DeriveNamespace(rootURL, configFingerprint, version, cfg.Prefix)
//	drv, name, err := sitecache.SelectDriver(ctx, cfg, ns, log)
//	cache, _ := sitecache.New[Page](sitecache.Options[Page]{
//	    Namespace: ns,
//	    Driver:    drv,
//	    Codec:     codec.Msgpack[Page]{},
//	    Logger:    log,
//	    DefaultTTL: cfg.Lifetime(),
//	    Disabled:  !cfg.Enabled,
//	})
package sitecache
