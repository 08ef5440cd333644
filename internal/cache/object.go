// Package cache holds process-wide caches of decoded scene content.
// Objects are keyed by a digest of their encoding, so identical content
// reached through different files or link chains is kept once.
package cache

import (
	"fmt"
	"sync"

	"github.com/jellydator/ttlcache/v3"

	"scenelink/internal/codec"
	"scenelink/internal/domain"
	"scenelink/internal/logger"
)

// objectOverhead approximates the fixed memory of one cached object
const objectOverhead = 128

// ObjectHash returns the content digest of an object
func ObjectHash(o domain.Object) (codec.Hash, error) {
	data, err := codec.EncodeObject(o)
	if err != nil {
		return codec.Hash{}, fmt.Errorf("failed to encode object: %w", err)
	}
	return codec.KeyedHash(codec.ObjectDomain, data), nil
}

func objectCost(o domain.Object) uint64 {
	return uint64(len(o.Type)+len(o.Data)) + objectOverhead
}

// ObjectCache keeps objects in memory up to a byte budget, evicting the
// least recently used first. Returned objects share storage with the
// cache and must not be modified.
type ObjectCache struct {
	items *ttlcache.Cache[codec.Hash, domain.Object]

	mu    sync.Mutex
	limit uint64
	used  uint64
}

// NewObjectCache creates a cache holding at most limit bytes of objects
func NewObjectCache(limit uint64) *ObjectCache {
	return &ObjectCache{
		items: ttlcache.New[codec.Hash, domain.Object](),
		limit: limit,
	}
}

// Store caches o and returns its hash
func (c *ObjectCache) Store(o domain.Object) (codec.Hash, error) {
	h, err := ObjectHash(o)
	if err != nil {
		return codec.Hash{}, err
	}
	c.Set(h, o)
	return h, nil
}

// Set caches o under h. Objects larger than the whole budget are skipped.
func (c *ObjectCache) Set(h codec.Hash, o domain.Object) {
	cost := objectCost(o)

	c.mu.Lock()
	defer c.mu.Unlock()

	if cost > c.limit {
		logger.Debug().Str("object", h.Short()).Uint64("bytes", cost).Msg("object exceeds cache budget")
		return
	}
	if c.items.Has(h) {
		c.items.Touch(h)
		return
	}
	c.items.Set(h, o, ttlcache.NoTTL)
	c.used += cost
	c.evictLocked()
}

// evictLocked drops least recently used objects until the budget holds
func (c *ObjectCache) evictLocked() {
	for c.used > c.limit {
		var oldest *ttlcache.Item[codec.Hash, domain.Object]
		c.items.RangeBackwards(func(it *ttlcache.Item[codec.Hash, domain.Object]) bool {
			oldest = it
			return false
		})
		if oldest == nil {
			c.used = 0
			return
		}
		if it, ok := c.items.GetAndDelete(oldest.Key()); ok {
			c.used -= objectCost(it.Value())
		}
	}
}

// Get returns the object cached under h
func (c *ObjectCache) Get(h codec.Hash) (domain.Object, bool) {
	item := c.items.Get(h)
	if item == nil {
		return domain.Object{}, false
	}
	return item.Value(), true
}

// Contains reports whether h is cached without touching it
func (c *ObjectCache) Contains(h codec.Hash) bool {
	return c.items.Has(h)
}

// Erase drops the object cached under h
func (c *ObjectCache) Erase(h codec.Hash) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if it, ok := c.items.GetAndDelete(h); ok {
		c.used -= objectCost(it.Value())
	}
}

// Clear drops every object
func (c *ObjectCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items.DeleteAll()
	c.used = 0
}

// SetMaxMemory changes the budget, evicting as needed
func (c *ObjectCache) SetMaxMemory(limit uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.limit = limit
	c.evictLocked()
}

func (c *ObjectCache) MaxMemory() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.limit
}

func (c *ObjectCache) MemoryUsage() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.used
}

func (c *ObjectCache) Len() int {
	return c.items.Len()
}

// Metrics returns hit, miss and eviction counts
func (c *ObjectCache) Metrics() ttlcache.Metrics {
	return c.items.Metrics()
}
