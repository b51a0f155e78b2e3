package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// digest returns the hex form of the SHA-256 sum of data.
func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a cache key as prefix:hash(parts...). Parts must be
// JSON-marshalable; field order inside structs is fixed by their
// declarations, so equal inputs always produce the same key.
//
// Keys outlive the process (file and Redis backends persist them), so the
// scheme must stay stable across releases: changing it silently abandons
// every existing entry.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + digest(data)
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
// Pipelines use it to fingerprint serialized forests; the full digest is
// kept so distinct trees cannot collide in practice.
func Hash(data []byte) string { return digest(data) }
