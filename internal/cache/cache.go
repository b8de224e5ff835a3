package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from the analyzed text. Identical text always
// maps to the same key, which is what makes re-checking idempotent.
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "scigate:v1:" + hex.EncodeToString(hash[:])
}
