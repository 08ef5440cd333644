package registry

import (
	"fmt"

	"scenelink/internal/adapters/filesystem"
	"scenelink/internal/cache"
	"scenelink/internal/config"
	"scenelink/internal/domain"
	"scenelink/internal/linked"
	"scenelink/internal/logger"
)

// Runtime holds everything a scenelink executable wires from one config
type Runtime struct {
	Config   *config.Config
	Registry *Registry
	Stores   *linked.StoreCache
	Catalog  *filesystem.Catalog
	Objects  *cache.ObjectCache
	Results  *cache.CachedResult
}

// Setup loads the config at configPath (see config.Load), initializes
// the global logger and builds the registry, catalog and caches.
func Setup(configPath string) (*Runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Log); err != nil {
		return nil, err
	}
	return NewRuntime(cfg)
}

// NewRuntime wires a runtime from an already loaded config
func NewRuntime(cfg *config.Config) (*Runtime, error) {
	stores := linked.NewStoreCache()
	reg, err := Configured(cfg, stores)
	if err != nil {
		stores.Close()
		return nil, err
	}
	objects, results := cache.FromConfig(cfg)

	rt := &Runtime{
		Config:   cfg,
		Registry: reg,
		Stores:   stores,
		Catalog:  filesystem.NewCatalog(cfg.ScenesDir, reg.SupportedExtensions(domain.ModeRead), linked.Extension),
		Objects:  objects,
		Results:  results,
	}
	log := logger.Component("runtime")
	log.Debug().
		Str("scenes", rt.Catalog.Root()).
		Strs("extensions", reg.SupportedExtensions(domain.ModeRead)).
		Uint64("object_memory", objects.MaxMemory()).
		Msg("runtime ready")
	return rt, nil
}

// Close releases the shared target stores
func (r *Runtime) Close() error {
	if err := r.Stores.Close(); err != nil {
		return fmt.Errorf("failed to close scene stores: %w", err)
	}
	return nil
}
