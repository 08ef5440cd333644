// Package registry maps scene file extensions to the store that reads
// and writes them.
package registry

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"scenelink/internal/adapters/sqlite"
	"scenelink/internal/application"
	"scenelink/internal/codec"
	"scenelink/internal/config"
	"scenelink/internal/domain"
	"scenelink/internal/linked"
	"scenelink/internal/ports"
)

// Format is one registered scene file format
type Format struct {
	Extension   string
	Description string
	Modes       domain.OpenMode
	Open        func(path string, mode domain.OpenMode) (ports.Scene, error)
}

// Registry dispatches opens on file extension
type Registry struct {
	formats map[string]Format
}

// New returns a registry with no formats
func New() *Registry {
	return &Registry{formats: make(map[string]Format)}
}

// Register adds or replaces the format for its extension
func (r *Registry) Register(f Format) {
	r.formats[strings.ToLower(f.Extension)] = f
}

// SupportedExtensions lists the extensions supporting every bit of
// mode, sorted. A zero mode lists every extension.
func (r *Registry) SupportedExtensions(mode domain.OpenMode) []string {
	var out []string
	for ext, f := range r.formats {
		if f.Modes.Has(mode) {
			out = append(out, ext)
		}
	}
	slices.Sort(out)
	return out
}

// Formats returns every registered format sorted by extension
func (r *Registry) Formats() []Format {
	out := make([]Format, 0, len(r.formats))
	for _, ext := range r.SupportedExtensions(0) {
		out = append(out, r.formats[ext])
	}
	return out
}

// Open opens path with the format registered for its extension
func (r *Registry) Open(path string, mode domain.OpenMode) (ports.Scene, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	f, ok := r.formats[ext]
	if !ok {
		return nil, &application.NotFoundError{What: "scene format", Name: fmt.Sprintf("%q (%s)", ext, path)}
	}
	if mode.Has(domain.ModeAppend) || !f.Modes.Has(mode) {
		return nil, &application.ModeError{Op: "open " + path, Mode: mode}
	}
	return f.Open(path, mode)
}

// Default registers the plain and linked scene formats
func Default(opts ...linked.Option) *Registry {
	r := New()
	r.Register(Format{
		Extension:   sqlite.Extension,
		Description: "plain scene file",
		Modes:       domain.ModeReadWrite,
		Open: func(path string, mode domain.OpenMode) (ports.Scene, error) {
			return sqlite.Open(path, mode)
		},
	})
	r.Register(Format{
		Extension:   linked.Extension,
		Description: "linked scene file",
		Modes:       domain.ModeReadWrite,
		Open: func(path string, mode domain.OpenMode) (ports.Scene, error) {
			return linked.Open(path, mode, opts...)
		},
	})
	return r
}

// Configured builds the default formats with the store settings of cfg.
// Linked scenes share stores, so one target file is opened once for
// every scene opened through the registry; the caller closes stores.
func Configured(cfg *config.Config, stores *linked.StoreCache) (*Registry, error) {
	tag, err := codec.ParseCompressionTag(cfg.Store.Compression)
	if err != nil {
		return nil, fmt.Errorf("invalid store compression: %w", err)
	}

	r := Default(
		linked.WithCompression(tag),
		linked.WithStoreCache(stores),
		linked.WithDescriptorCapacity(cfg.Cache.DescriptorEntries),
	)
	r.Register(Format{
		Extension:   sqlite.Extension,
		Description: "plain scene file",
		Modes:       domain.ModeReadWrite,
		Open: func(path string, mode domain.OpenMode) (ports.Scene, error) {
			return sqlite.Open(path, mode, sqlite.WithCompression(tag))
		},
	})
	return r, nil
}

// SupportedExtensions lists the default registry's extensions for mode
func SupportedExtensions(mode domain.OpenMode) []string {
	return Default().SupportedExtensions(mode)
}

// Open opens path through the default registry
func Open(path string, mode domain.OpenMode) (ports.Scene, error) {
	return Default().Open(path, mode)
}
