package commands

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"scenelink/internal/registry"
)

const spheresManifest = `
tags: [spheres]
children:
  - name: A
    tags: [test]
    transforms:
      - {time: 0, translate: [1, 0, 0]}
      - {time: 1, translate: [2, 0, 0]}
    objects:
      - {time: 0, type: sphere, min: [0, 0, 0], max: [1, 1, 1], data: "r=1"}
  - name: B
    objects:
      - {time: 0, type: cube, min: [0, 0, 0], max: [2, 2, 2]}
`

const sceneManifest = `
children:
  - name: i0
    link: {target: spheres.scn}
  - name: i1
    link: {target: spheres.scn, root: /}
  - name: i2
    link: {target: spheres.scn, root: /A, time: 1}
  - name: group
    children:
      - name: x
        link:
          target: spheres.scn
          root: /A
          remap:
            - {outer: 0, inner: 0}
            - {outer: 2, inner: 1}
  - name: plain
    tags: [own]
    attributes:
      - {name: "user:color", time: 0, string: red}
    objects:
      - {time: 0, type: thing, min: [0, 0, 0], max: [1, 1, 1]}
`

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

func build(t *testing.T, manifest, out string) *BuildResult {
	t.Helper()
	m, err := ParseManifest([]byte(manifest))
	require.NoError(t, err)
	cmd := NewBuildCommand(registry.Default(), "", out)
	cmd.Manifest = m
	res, err := cmd.Execute(context.Background())
	require.NoError(t, err)
	return res
}

// writeFixture writes spheres.scn and scene.lscn into a temp dir and
// returns the linked scene's path
func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	build(t, spheresManifest, filepath.Join(dir, "spheres.scn"))
	path := filepath.Join(dir, "scene.lscn")
	build(t, sceneManifest, path)
	return path
}
