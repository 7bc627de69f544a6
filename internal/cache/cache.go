// Package cache holds cleaned page text between imports so a re-imported or
// batch-duplicated URL does not refetch. Extraction itself never caches.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the page-text cache interface
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string, ttl time.Duration)
	Delete(key string)
	Clear()
}

// Key derives a stable cache key from a source URL
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "casewiki:v1:" + hex.EncodeToString(hash[:])
}
