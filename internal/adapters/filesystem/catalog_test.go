package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"scenelink/internal/application"
)

func setupTestScenes(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := []string{
		"spheres.scn",
		"shots/shot01.lscn",
		"shots/notes.txt",
		".cache/hidden.scn",
	}
	for _, f := range files {
		path := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", f, err)
		}
	}
	return root
}

func TestCatalogList(t *testing.T) {
	root := setupTestScenes(t)
	catalog := NewCatalog(root, []string{"scn", ".lscn"}, "lscn")

	files, err := catalog.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 scene files, got %d: %v", len(files), files)
	}

	byName := make(map[string]bool)
	for _, f := range files {
		byName[f.Name] = f.Linked
		if !filepath.IsAbs(f.Path) {
			t.Errorf("expected absolute path, got %s", f.Path)
		}
		if f.Size != 1 {
			t.Errorf("expected size 1 for %s, got %d", f.Name, f.Size)
		}
	}
	if linked, ok := byName["spheres.scn"]; !ok || linked {
		t.Errorf("spheres.scn: present=%v linked=%v", ok, linked)
	}
	if linked, ok := byName["shots/shot01.lscn"]; !ok || !linked {
		t.Errorf("shots/shot01.lscn: present=%v linked=%v", ok, linked)
	}
}

func TestCatalogResolve(t *testing.T) {
	root := setupTestScenes(t)
	catalog := NewCatalog(root, []string{"scn", "lscn"}, "lscn")

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"relative with extension", "spheres.scn", filepath.Join(root, "spheres.scn"), nil},
		{"relative without extension", "shots/shot01", filepath.Join(root, "shots/shot01.lscn"), nil},
		{"absolute", filepath.Join(root, "spheres.scn"), filepath.Join(root, "spheres.scn"), nil},
		{"unknown extension", "shots/notes.txt", "", application.ErrNotFound},
		{"missing", "nothing", "", application.ErrNotFound},
		{"directory", "shots", "", application.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := catalog.Resolve(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	if _, err := catalog.Resolve(" "); err == nil {
		t.Error("expected validation error for blank name")
	}
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		linking, target, want string
	}{
		{"/scenes/shots/a.lscn", "../spheres.scn", "/scenes/spheres.scn"},
		{"/scenes/a.lscn", "b.scn", "/scenes/b.scn"},
		{"/scenes/a.lscn", "/other/b.scn", "/other/b.scn"},
	}
	for _, tt := range tests {
		if got := ResolveTarget(tt.linking, tt.target); got != tt.want {
			t.Errorf("ResolveTarget(%q, %q) = %q, want %q", tt.linking, tt.target, got, tt.want)
		}
	}
}
