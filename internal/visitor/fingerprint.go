// Package visitor derives a stable pseudo-anonymous visitor identifier
// from request attributes.
package visitor

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint computes a deterministic one-way digest of the client IP and
// raw user-agent string. It is the deduplication key behind unique-visitor
// counts: the same browser on the same network always hashes to the same
// value, while switching networks or browsers produces a new one. It is not
// an identity and must not be treated as one.
func Fingerprint(ip, userAgent string) string {
	h := sha256.Sum256([]byte(ip + userAgent))

	return hex.EncodeToString(h[:])
}
