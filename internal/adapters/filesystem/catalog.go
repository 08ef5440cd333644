package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"scenelink/internal/application"
	"scenelink/internal/ports"
)

// Catalog implements ports.SceneCatalog over a directory tree
type Catalog struct {
	root       string
	extensions []string
	linked     string
}

// NewCatalog creates a catalog of the files under root whose extension
// is one of extensions. Files with the linked extension are reported as
// linked scenes.
func NewCatalog(root string, extensions []string, linkedExtension string) *Catalog {
	// Expand ~ to home directory
	if strings.HasPrefix(root, "~") {
		home, _ := os.UserHomeDir()
		root = filepath.Join(home, root[1:])
	}
	exts := make([]string, len(extensions))
	for i, e := range extensions {
		exts[i] = strings.ToLower(strings.TrimPrefix(e, "."))
	}
	return &Catalog{
		root:       root,
		extensions: exts,
		linked:     strings.ToLower(strings.TrimPrefix(linkedExtension, ".")),
	}
}

func (c *Catalog) Root() string {
	return c.root
}

func (c *Catalog) extension(path string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return ext, slices.Contains(c.extensions, ext)
}

// List returns every scene file under the root, skipping hidden
// directories
func (c *Catalog) List() ([]ports.SceneFile, error) {
	var files []ports.SceneFile
	err := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != c.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		ext, ok := c.extension(path)
		if !ok {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(c.root, path)
		if err != nil {
			return err
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		files = append(files, ports.SceneFile{
			Name:    filepath.ToSlash(rel),
			Path:    abs,
			Linked:  ext == c.linked,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list scenes in %s: %w", c.root, err)
	}

	slices.SortFunc(files, func(a, b ports.SceneFile) int {
		return strings.Compare(a.Path, b.Path)
	})
	return files, nil
}

// Resolve finds a scene file by absolute path or by name relative to the
// root. A name without extension matches the first registered extension
// that exists.
func (c *Catalog) Resolve(name string) (string, error) {
	if err := application.ValidateRequired("scenePath", name); err != nil {
		return "", err
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.root, name)
	}

	candidates := []string{path}
	if filepath.Ext(path) == "" {
		candidates = candidates[:0]
		for _, ext := range c.extensions {
			candidates = append(candidates, path+"."+ext)
		}
	}
	for _, p := range candidates {
		if _, ok := c.extension(p); !ok {
			continue
		}
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return filepath.Abs(p)
		}
	}
	return "", &application.NotFoundError{What: "scene", Name: name}
}

// ResolveTarget returns the file a link target names, relative targets
// resolving against the directory of the linking file
func ResolveTarget(linkingFile, target string) string {
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(filepath.Dir(linkingFile), target)
}
