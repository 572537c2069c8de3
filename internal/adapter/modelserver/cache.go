// Package modelserver holds predictor adapters that sit outside the process
// boundary: a remote model server client and a caching decorator.
package modelserver

import (
	"context"
	"math"
	"sync"

	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
	"github.com/couchcryptid/thermal-comfort-service/internal/observability"
)

// CachedPredictor wraps a Predictor with an in-memory LRU cache keyed on the
// exact feature vector. Predictors are deterministic, so a hit is always valid.
type CachedPredictor struct {
	inner   domain.Predictor
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedPredictor creates a cache decorator around a predictor.
func NewCachedPredictor(inner domain.Predictor, maxEntries int, metrics *observability.Metrics) *CachedPredictor {
	return &CachedPredictor{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

// Predict implements domain.Predictor.
func (c *CachedPredictor) Predict(ctx context.Context, features domain.FeatureVector) (float64, error) {
	key := features.Values()
	if hasNaN(key) {
		return c.inner.Predict(ctx, features)
	}
	if pmv, ok := c.cache.get(key); ok {
		c.metrics.PredictionCache.WithLabelValues("hit").Inc()
		return pmv, nil
	}
	c.metrics.PredictionCache.WithLabelValues("miss").Inc()

	pmv, err := c.inner.Predict(ctx, features)
	if err != nil {
		return 0, err
	}
	c.cache.put(key, pmv)
	return pmv, nil
}

// Len reports the number of cached vectors.
func (c *CachedPredictor) Len() int {
	c.cache.mu.Lock()
	defer c.cache.mu.Unlock()
	return len(c.cache.entries)
}

type cacheKey = [4]float64

// hasNaN reports whether key can never be found again in a map.
func hasNaN(key cacheKey) bool {
	for _, v := range key {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// lruCache is a thread-safe LRU of predictions.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[cacheKey]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   cacheKey
	value float64
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[cacheKey]*entry),
	}
}

func (c *lruCache) get(key cacheKey) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return 0, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key cacheKey, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.pushFront(e)

	for len(c.entries) > c.maxEntries {
		c.dropOldest()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}

func (c *lruCache) pushFront(e *entry) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) unlink(e *entry) {
	if e.prev == nil {
		c.head = e.next
	} else {
		e.prev.next = e.next
	}
	if e.next == nil {
		c.tail = e.prev
	} else {
		e.next.prev = e.prev
	}
}

func (c *lruCache) dropOldest() {
	oldest := c.tail
	if oldest == nil {
		return
	}
	c.unlink(oldest)
	delete(c.entries, oldest.key)
}
