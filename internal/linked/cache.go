package linked

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"

	"scenelink/internal/adapters/sqlite"
	"scenelink/internal/domain"
	"scenelink/internal/logger"
	"scenelink/internal/ports"
)

// Extension is the file extension of scenes whose links are followed
const Extension = "lscn"

// interpretsLinks reports whether links stored in the file are followed
func interpretsLinks(path string) bool {
	return strings.EqualFold(strings.TrimPrefix(filepath.Ext(path), "."), Extension)
}

// StoreCache keeps link targets open for reading. One target file is
// opened once no matter how many links or goroutines reach it, until the
// file changes on disk; then the next Get opens the new content.
type StoreCache struct {
	open  func(path string) (ports.Scene, error)
	group singleflight.Group

	mu      sync.Mutex
	stores  map[string]openStore
	retired []ports.Scene // replaced stores, possibly still read by live handles
}

type openStore struct {
	scene ports.Scene
	info  os.FileInfo // nil when the path could not be stat'ed
}

// current reports whether the store was opened from the file now at info
func (o openStore) current(info os.FileInfo) bool {
	if o.info == nil || info == nil {
		return o.info == nil && info == nil
	}
	return os.SameFile(o.info, info) && o.info.ModTime().Equal(info.ModTime()) && o.info.Size() == info.Size()
}

// NewStoreCache creates a cache that opens targets as plain read handles
func NewStoreCache() *StoreCache {
	return NewStoreCacheWithOpener(func(path string) (ports.Scene, error) {
		return sqlite.Open(path, domain.ModeRead)
	})
}

// NewStoreCacheWithOpener creates a cache that opens targets with open
func NewStoreCacheWithOpener(open func(path string) (ports.Scene, error)) *StoreCache {
	return &StoreCache{
		open:   open,
		stores: make(map[string]openStore),
	}
}

func (c *StoreCache) lookup(path string, info os.FileInfo) (ports.Scene, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	o, ok := c.stores[path]
	if !ok || !o.current(info) {
		return nil, false
	}
	return o.scene, true
}

// Get returns the root handle of the target file at the absolute path
func (c *StoreCache) Get(path string) (ports.Scene, error) {
	info, err := os.Stat(path)
	if err != nil {
		info = nil
	}
	if s, ok := c.lookup(path, info); ok {
		return s, nil
	}

	v, err, _ := c.group.Do(path, func() (any, error) {
		if s, ok := c.lookup(path, info); ok {
			return s, nil
		}

		s, err := c.open(path)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if old, ok := c.stores[path]; ok {
			c.retired = append(c.retired, old.scene)
			logger.Debug().Str("target", path).Msg("link target changed on disk, reopened")
		} else {
			logger.Debug().Str("target", path).Msg("link target opened")
		}
		c.stores[path] = openStore{scene: s, info: info}
		c.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(ports.Scene), nil
}

// Len returns the number of targets open at their current content
func (c *StoreCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.stores)
}

// Close closes every open target, replaced ones included
func (c *StoreCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for path, o := range c.stores {
		if err := o.scene.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %s: %w", path, err))
		}
	}
	for _, s := range c.retired {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close replaced %s: %w", s.FileName(), err))
		}
	}
	clear(c.stores)
	c.retired = nil
	return errors.Join(errs...)
}

// descriptorCache holds decoded link locations keyed by file and node path
type descriptorCache struct {
	cache *ttlcache.Cache[string, *linkInfo]
}

func newDescriptorCache(capacity int) *descriptorCache {
	var opts []ttlcache.Option[string, *linkInfo]
	if capacity > 0 {
		opts = append(opts, ttlcache.WithCapacity[string, *linkInfo](uint64(capacity)))
	}
	return &descriptorCache{cache: ttlcache.New(opts...)}
}

func descriptorKey(identity string, p domain.Path) string {
	return identity + "#" + p.String()
}

// get returns the decoded link at node, decoding it on a miss
func (d *descriptorCache) get(identity string, node ports.Scene) (*linkInfo, error) {
	key := descriptorKey(identity, node.Path())
	if item := d.cache.Get(key); item != nil {
		return item.Value(), nil
	}
	info, err := readLink(node, identity)
	if err != nil {
		return nil, err
	}
	d.cache.Set(key, info, ttlcache.NoTTL)
	return info, nil
}
