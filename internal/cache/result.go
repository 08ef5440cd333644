package cache

import (
	"fmt"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"

	"scenelink/internal/codec"
	"scenelink/internal/config"
	"scenelink/internal/domain"
)

// CachedResult memoizes object computations keyed by a caller chosen
// string, such as a link hash and a time. Results live in an
// ObjectCache so equal results share memory; the key index is bounded
// by count. Concurrent computes of one key run once.
type CachedResult struct {
	objects *ObjectCache
	keys    *ttlcache.Cache[string, codec.Hash]
	group   singleflight.Group
}

// NewCachedResult indexes at most capacity keys; zero means unbounded
func NewCachedResult(objects *ObjectCache, capacity uint64) *CachedResult {
	var opts []ttlcache.Option[string, codec.Hash]
	if capacity > 0 {
		opts = append(opts, ttlcache.WithCapacity[string, codec.Hash](capacity))
	}
	return &CachedResult{
		objects: objects,
		keys:    ttlcache.New(opts...),
	}
}

// Get returns the result for key, computing and caching it on a miss
func (r *CachedResult) Get(key string, compute func() (domain.Object, error)) (domain.Object, error) {
	if o, ok := r.lookup(key); ok {
		return o, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		if o, ok := r.lookup(key); ok {
			return o, nil
		}
		o, err := compute()
		if err != nil {
			return nil, err
		}
		h, err := r.objects.Store(o)
		if err != nil {
			return nil, fmt.Errorf("failed to cache result %s: %w", key, err)
		}
		r.keys.Set(key, h, ttlcache.NoTTL)
		return o, nil
	})
	if err != nil {
		return domain.Object{}, err
	}
	return v.(domain.Object), nil
}

// lookup fails when the key is unknown or its object was evicted
func (r *CachedResult) lookup(key string) (domain.Object, bool) {
	item := r.keys.Get(key)
	if item == nil {
		return domain.Object{}, false
	}
	return r.objects.Get(item.Value())
}

// Erase forgets key; the object stays cached for other keys
func (r *CachedResult) Erase(key string) {
	r.keys.Delete(key)
}

// Clear forgets every key
func (r *CachedResult) Clear() {
	r.keys.DeleteAll()
}

func (r *CachedResult) Len() int {
	return r.keys.Len()
}

// FromConfig builds the object cache and result index sized by cfg
func FromConfig(cfg *config.Config) (*ObjectCache, *CachedResult) {
	objects := NewObjectCache(uint64(cfg.ObjectMemoryBytes()))
	return objects, NewCachedResult(objects, uint64(cfg.Cache.CachedResults))
}
