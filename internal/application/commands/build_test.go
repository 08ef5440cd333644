package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenelink/internal/domain"
	"scenelink/internal/registry"
)

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	res := build(t, spheresManifest, filepath.Join(dir, "spheres.scn"))
	assert.Equal(t, 3, res.Nodes)
	assert.Zero(t, res.Links)

	res = build(t, sceneManifest, filepath.Join(dir, "scene.lscn"))
	assert.Equal(t, 7, res.Nodes)
	assert.Equal(t, 4, res.Links)
	assert.Contains(t, res.Message, "7 nodes, 4 links")

	s, err := registry.Open(filepath.Join(dir, "scene.lscn"), domain.ModeRead)
	require.NoError(t, err)
	defer s.Close()

	x, err := s.Scene(domain.ParsePath("/group/x"))
	require.NoError(t, err)
	times, err := x.TransformSampleTimes()
	require.NoError(t, err)
	// target samples 0 and 1 land on outer 0 and 2
	assert.Equal(t, []float64{0, 2}, times)

	plain, err := s.Scene(domain.ParsePath("/plain"))
	require.NoError(t, err)
	v, err := plain.ReadAttribute("user:color", 0)
	require.NoError(t, err)
	assert.Equal(t, domain.String("red"), v)
}

func TestBuildCommand_Validate(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.lscn")
	if err := os.WriteFile(existing, nil, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		manifest string
		output   string
		errMsg   string
	}{
		{
			name:     "empty output",
			manifest: "children: []",
			output:   "",
			errMsg:   "output path is required",
		},
		{
			name:     "output exists",
			manifest: "children: []",
			output:   existing,
			errMsg:   "output already exists",
		},
		{
			name:     "slash in name",
			manifest: "children: [{name: a/b}]",
			output:   filepath.Join(dir, "slash.lscn"),
			errMsg:   "cannot contain '/'",
		},
		{
			name:     "duplicate child",
			manifest: "children: [{name: a}, {name: a}]",
			output:   filepath.Join(dir, "dup.lscn"),
			errMsg:   "duplicate child",
		},
		{
			name:     "time and remap",
			manifest: "children: [{name: a, link: {target: x.scn, time: 1, remap: [{outer: 0, inner: 0}]}}]",
			output:   filepath.Join(dir, "both.lscn"),
			errMsg:   "both a time and a remap",
		},
		{
			name:     "link without target",
			manifest: "children: [{name: a, link: {root: /A}}]",
			output:   filepath.Join(dir, "notarget.lscn"),
			errMsg:   "link target is required",
		},
		{
			name:     "two attribute values",
			manifest: "attributes: [{name: n, time: 0, int: 1, float: 2}]",
			output:   filepath.Join(dir, "values.lscn"),
			errMsg:   "needs exactly one value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseManifest([]byte(tt.manifest))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			cmd := NewBuildCommand(registry.Default(), "", tt.output)
			cmd.Manifest = m
			_, err = cmd.Execute(context.Background())
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.errMsg)
			}
			if !contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
			}
		})
	}
}

func TestBuildCommandRemovesFailedOutput(t *testing.T) {
	dir := t.TempDir()
	build(t, spheresManifest, filepath.Join(dir, "spheres.scn"))

	out := filepath.Join(dir, "broken.lscn")
	m, err := ParseManifest([]byte(`
children:
  - name: a
    link: {target: spheres.scn}
    objects:
      - {time: 0, type: sphere}
`))
	require.NoError(t, err)
	cmd := NewBuildCommand(registry.Default(), "", out)
	cmd.Manifest = m
	_, err = cmd.Execute(context.Background())
	assert.ErrorContains(t, err, "cannot write")
	assert.NoFileExists(t, out)
}

func TestBuildCommandReadsManifestFile(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "spheres.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(spheresManifest), 0644))

	out := filepath.Join(dir, "spheres.scn")
	res, err := NewBuildCommand(registry.Default(), manifest, out).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, out, res.OutputPath)
	assert.FileExists(t, out)
}
