package cache

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/docsage/docsage/internal/model"
)

// AnswerCache caches generated answers keyed by model, collection and query
type AnswerCache struct {
	backend Cache
	ttl     time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewAnswerCache wraps a cache backend for answer storage
func NewAnswerCache(backend Cache, ttl time.Duration) *AnswerCache {
	return &AnswerCache{
		backend: backend,
		ttl:     ttl,
	}
}

// Get returns a cached answer, or nil when absent or unreadable
func (c *AnswerCache) Get(modelName, collection, query string) *model.AnswerResult {
	data, found := c.backend.Get(AnswerKey(modelName, collection, query))
	if !found {
		c.misses.Add(1)
		return nil
	}

	var result model.AnswerResult
	if err := json.Unmarshal(data, &result); err != nil {
		// Corrupt entry, treat as miss
		_ = c.backend.Delete(AnswerKey(modelName, collection, query))
		c.misses.Add(1)
		return nil
	}

	c.hits.Add(1)
	return &result
}

// Put stores an answer. Serialization failures are swallowed so caching
// never breaks the answer path.
func (c *AnswerCache) Put(modelName, collection, query string, result *model.AnswerResult) {
	if result == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}

	_ = c.backend.Set(AnswerKey(modelName, collection, query), data, c.ttl)
}

// Invalidate drops all cached answers, used after re-ingestion
func (c *AnswerCache) Invalidate() error {
	return c.backend.Clear()
}

// HitRate reports cache effectiveness for verbose output
func (c *AnswerCache) HitRate() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
