package sitecache

import "time"

// DefaultLifetime is the fallback TTL when configuration provides none:
// one week.
const DefaultLifetime = 604800 * time.Second

// lifetimePolicy resolves the effective entry lifetime. The override, once
// set, is strictly positive and strictly below the default; it only ever
// shrinks and persists for the remainder of the process.
type lifetimePolicy struct {
	def      time.Duration
	override time.Duration // 0 = unset
}

func (p *lifetimePolicy) effective() time.Duration {
	if p.override > 0 {
		return p.override
	}
	if p.def > 0 {
		return p.def
	}
	return DefaultLifetime
}

// narrow sets the override to until-now when that interval is strictly
// positive and strictly below the current effective lifetime. Anything else
// is ignored, so repeated calls can only shrink the lifetime.
func (p *lifetimePolicy) narrow(until, now time.Time) bool {
	interval := until.Sub(now)
	if interval <= 0 || interval >= p.effective() {
		return false
	}
	p.override = interval
	return true
}
