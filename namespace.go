package sitecache

import (
	"github.com/unkn0wn-root/sitecache/internal/util"
)

// DefaultPrefix is used when no namespace prefix is configured.
const DefaultPrefix = "g"

// namespaceHashLen is the number of hex characters kept from the digest.
// Short enough for filesystem paths and remote key prefixes, long enough
// that unrelated deployments sharing a backend will not collide.
const namespaceHashLen = 10

// DeriveNamespace computes the per-deployment cache namespace from the site
// root URL, a fingerprint of the loaded configuration, and the software
// version. It is pure and deterministic: equal inputs always yield the same
// namespace, and changing any input yields a different one, so a redeploy or
// config change implicitly invalidates every previously written entry.
//
// prefix scopes the namespace; when empty, DefaultPrefix is used.
func DeriveNamespace(rootURL, configFingerprint, version, prefix string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + util.ShortHash(rootURL+configFingerprint+version, namespaceHashLen)
}
