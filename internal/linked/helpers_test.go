package linked

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"scenelink/internal/adapters/sqlite"
	"scenelink/internal/domain"
	"scenelink/internal/ports"
)

var unitBox = domain.NewBox3(domain.V3{X: -1, Y: -1, Z: -1}, domain.V3{X: 1, Y: 1, Z: 1})

func shifted(b domain.Box3, x float64) domain.Box3 {
	return b.Transform(domain.Translate(domain.V3{X: x}))
}

// writeSpheres writes a plain scene animated over times 0..3:
//
//	/            tags spheres
//	/A           bound, transform x=1,2,2,2, attribute user:color, tags test
//	/A/a         object at 0 and 1, tags leaf
//	/B           transform y=0..3, object at 0
func writeSpheres(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "spheres.scn")
	root, err := sqlite.Open(path, domain.ModeWrite)
	require.NoError(t, err)

	require.NoError(t, root.WriteTags([]string{"spheres"}))

	a, err := root.CreateChild("A")
	require.NoError(t, err)
	for i, x := range []float64{1, 2, 2, 2} {
		ti := float64(i)
		require.NoError(t, a.WriteTransform(domain.Translate(domain.V3{X: x}), ti))
		require.NoError(t, a.WriteBound(shifted(unitBox, []float64{0, 0, 1, 1}[i]), ti))
	}
	require.NoError(t, a.WriteAttribute("user:color", domain.String("red"), 0))
	require.NoError(t, a.WriteAttribute("user:color", domain.String("blue"), 2))
	require.NoError(t, a.WriteTags([]string{"test"}))

	sub, err := a.CreateChild("a")
	require.NoError(t, err)
	require.NoError(t, sub.WriteObject(domain.Object{Type: "sphere", Bound: unitBox, Data: []byte("r=1")}, 0))
	require.NoError(t, sub.WriteObject(domain.Object{Type: "sphere", Bound: unitBox, Data: []byte("r=1.5")}, 1))
	require.NoError(t, sub.WriteTags([]string{"leaf"}))

	b, err := root.CreateChild("B")
	require.NoError(t, err)
	for i := range 4 {
		require.NoError(t, b.WriteTransform(domain.Translate(domain.V3{Y: float64(i)}), float64(i)))
	}
	require.NoError(t, b.WriteObject(domain.Object{Type: "cube", Bound: unitBox}, 0))

	require.NoError(t, root.Close())
	return path
}

func openPlain(t *testing.T, path string) *sqlite.Scene {
	t.Helper()
	s, err := sqlite.Open(path, domain.ModeRead)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func openLinked(t *testing.T, path string, opts ...Option) *Scene {
	t.Helper()
	s, err := Open(path, domain.ModeRead, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func createLinked(t *testing.T, path string) *Scene {
	t.Helper()
	s, err := Open(path, domain.ModeWrite)
	require.NoError(t, err)
	return s
}

func child(t *testing.T, s ports.Scene, names ...string) ports.Scene {
	t.Helper()
	for _, name := range names {
		c, err := s.Child(name)
		require.NoError(t, err, "child %s of %s", name, s.Path())
		s = c
	}
	return s
}

func create(t *testing.T, s ports.Scene, name string) *Scene {
	t.Helper()
	c, err := s.CreateChild(name)
	require.NoError(t, err)
	return c.(*Scene)
}

// writeRemap authors link samples (outer, inner) to target
func writeRemap(t *testing.T, s *Scene, target ports.Scene, samples ...[2]float64) {
	t.Helper()
	for _, smp := range samples {
		d, err := LinkValue(target, domain.TimePtr(smp[1]))
		require.NoError(t, err)
		require.NoError(t, s.WriteAttribute(domain.LinkAttribute, d, smp[0]))
	}
}

func boundTimes(t *testing.T, s ports.Scene) []float64 {
	t.Helper()
	times, err := s.BoundSampleTimes()
	require.NoError(t, err)
	return times
}

func transformTimes(t *testing.T, s ports.Scene) []float64 {
	t.Helper()
	times, err := s.TransformSampleTimes()
	require.NoError(t, err)
	return times
}

func tags(t *testing.T, s ports.Scene, includeChildren bool) []string {
	t.Helper()
	out, err := s.ReadTags(includeChildren)
	require.NoError(t, err)
	return out
}
