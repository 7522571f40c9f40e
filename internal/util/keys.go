package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// ShortHash returns the first n hex characters of sha256(s).
// n is clamped to the full digest length (64 hex chars).
func ShortHash(s string, n int) string {
	sum := sha256.Sum256([]byte(s))
	h := hex.EncodeToString(sum[:])
	if n <= 0 || n > len(h) {
		return h
	}
	return h[:n]
}
