package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	DefaultScenesDir      = "~/scenes"
	DefaultObjectMemoryMB = 500
	DefaultCachedResults  = 10000
	DefaultDescriptors    = 4096
)

// Environment variables read by the config layer
const (
	EnvConfig       = "SCENELINK_CONFIG"
	EnvScenes       = "SCENELINK_SCENES"
	EnvObjectMemory = "SCENELINK_OBJECTCACHE_MEMORY"
)

// Config is the configuration shared by the scenelink commands.
type Config struct {
	ScenesDir string      `yaml:"scenes_dir"`
	Store     StoreConfig `yaml:"store"`
	Cache     CacheConfig `yaml:"cache"`
	Log       LogConfig   `yaml:"log"`
}

// StoreConfig configures newly written scene files.
type StoreConfig struct {
	// Compression is one of none, lz4, zstd
	Compression string `yaml:"compression"`
}

// CacheConfig sizes the in-process caches.
type CacheConfig struct {
	ObjectMemoryMB    int `yaml:"object_memory_mb"`
	CachedResults     int `yaml:"cached_results"`
	DescriptorEntries int `yaml:"descriptor_entries"`
}

// LogConfig configures the global logger.
type LogConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"` // console or json
	Output   string `yaml:"output"` // stderr, stdout or file
	FilePath string `yaml:"file_path"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		ScenesDir: DefaultScenesDir,
		Store:     StoreConfig{Compression: "zstd"},
		Cache: CacheConfig{
			ObjectMemoryMB:    DefaultObjectMemoryMB,
			CachedResults:     DefaultCachedResults,
			DescriptorEntries: DefaultDescriptors,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
			Output: "stderr",
		},
	}
}

// Load reads the config file at path, or the file named by
// SCENELINK_CONFIG when path is empty. With neither, defaults are used.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if env := os.Getenv(EnvScenes); env != "" {
		c.ScenesDir = env
	}
	if env := os.Getenv(EnvObjectMemory); env != "" {
		mb, err := strconv.Atoi(env)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvObjectMemory, env, err)
		}
		c.Cache.ObjectMemoryMB = mb
	}
	return nil
}

// Validate checks the values are usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Cache.ObjectMemoryMB < 0 {
		errs = append(errs, fmt.Errorf("cache.object_memory_mb must not be negative"))
	}
	if c.Cache.CachedResults < 0 {
		errs = append(errs, fmt.Errorf("cache.cached_results must not be negative"))
	}
	if c.Cache.DescriptorEntries < 0 {
		errs = append(errs, fmt.Errorf("cache.descriptor_entries must not be negative"))
	}
	switch c.Store.Compression {
	case "", "none", "lz4", "zstd":
	default:
		errs = append(errs, fmt.Errorf("store.compression must be none, lz4 or zstd, got %q", c.Store.Compression))
	}
	return errors.Join(errs...)
}

// ObjectMemoryBytes returns the object cache budget in bytes
func (c *Config) ObjectMemoryBytes() int64 {
	return int64(c.Cache.ObjectMemoryMB) * 1024 * 1024
}

// ScenesDir returns the scenes directory from SCENELINK_SCENES env var,
// falling back to DefaultScenesDir.
func ScenesDir() string {
	if env := os.Getenv(EnvScenes); env != "" {
		return env
	}
	return DefaultScenesDir
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
