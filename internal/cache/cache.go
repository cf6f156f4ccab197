package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache defines the interface for caching LLM responses and other
// expensive intermediate results.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey derives a stable cache key from its parts, typically the model
// name and the full prompt. The version prefix invalidates old entries when
// the key scheme changes.
func CacheKey(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return "ddrgen:v1:" + hex.EncodeToString(hash[:])
}
