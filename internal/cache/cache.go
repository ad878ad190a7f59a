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

// AnswerKey generates a cache key for a generated answer. The key covers
// the model and collection so answers never leak across configurations.
func AnswerKey(model, collection, query string) string {
	hash := sha256.Sum256([]byte(model + "\x00" + collection + "\x00" + query))
	return "docsage:v1:" + hex.EncodeToString(hash[:])
}
