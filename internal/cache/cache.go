// Package cache stores parsed corpus documents so repeated runs over the
// same files skip re-parsing. Entries are keyed by file contents, so a
// changed corpus file never serves a stale parse.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the interface shared by the memory, disk and layered caches.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from corpus file contents.
func Key(contents []byte) string {
	hash := sha256.Sum256(contents)
	return "corefilter:v1:" + hex.EncodeToString(hash[:])
}
