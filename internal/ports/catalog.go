package ports

import "time"

// SceneFile describes a scene file found by a catalog
type SceneFile struct {
	Name    string
	Path    string // Absolute path
	Linked  bool   // True for files whose links are interpreted
	Size    int64
	ModTime time.Time
}

// SceneCatalog lists and locates scene files under a directory
type SceneCatalog interface {
	// List returns every scene file, sorted by path
	List() ([]SceneFile, error)

	// Resolve turns a name relative to the catalog root (or an absolute
	// path) into an absolute path of an existing scene file
	Resolve(name string) (string, error)

	// Root returns the catalog directory
	Root() string
}
