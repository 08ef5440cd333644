package linked

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagPropagation(t *testing.T) {
	dir := t.TempDir()

	basePath := filepath.Join(dir, "base.lscn")
	base := createLinked(t, basePath)
	require.NoError(t, create(t, base, "a").WriteTags([]string{"test"}))
	require.NoError(t, base.WriteTags([]string{"tags"}))
	require.NoError(t, base.Close())

	l := openLinked(t, basePath)
	a := child(t, l, "a")
	assert.ElementsMatch(t, []string{"test", "tags"}, tags(t, l, true))
	assert.ElementsMatch(t, []string{"tags"}, tags(t, l, false))
	assert.ElementsMatch(t, []string{"test"}, tags(t, a, true))
	assert.ElementsMatch(t, []string{"test"}, tags(t, a, false))

	topPath := filepath.Join(dir, "top.lscn")
	top := createLinked(t, topPath)
	linkA := create(t, top, "A")
	require.NoError(t, linkA.WriteLink(l))
	require.NoError(t, linkA.WriteTags([]string{"linkedA"}))
	require.NoError(t, create(t, top, "B").WriteLink(a))
	c := create(t, top, "C")
	require.NoError(t, create(t, c, "c").WriteLink(l))
	require.NoError(t, c.WriteTags([]string{"C"}))
	d := create(t, top, "D")
	require.NoError(t, d.WriteTags([]string{"D"}))
	require.NoError(t, d.WriteLink(a))
	require.NoError(t, top.Close())

	l2 := openLinked(t, topPath)

	tests := []struct {
		path     []string
		children []string
		direct   []string
	}{
		{nil, []string{"test", "tags", "C", "D", "linkedA"}, nil},
		{[]string{"A"}, []string{"test", "tags", "linkedA"}, []string{"tags", "linkedA"}},
		{[]string{"A", "a"}, []string{"test", "linkedA"}, []string{"test"}},
		{[]string{"B"}, []string{"test"}, []string{"test"}},
		{[]string{"C"}, []string{"test", "tags", "C"}, []string{"C"}},
		{[]string{"C", "c"}, []string{"test", "tags"}, []string{"tags"}},
		{[]string{"C", "c", "a"}, []string{"test"}, []string{"test"}},
		{[]string{"D"}, []string{"D", "test"}, []string{"D", "test"}},
	}

	for _, tt := range tests {
		t.Run("/"+filepath.Join(tt.path...), func(t *testing.T) {
			s := child(t, l2, tt.path...)
			assert.ElementsMatch(t, tt.children, tags(t, s, true))
			assert.ElementsMatch(t, tt.direct, tags(t, s, false))
		})
	}

	has := func(name string, path ...string) bool {
		ok, err := child(t, l2, path...).HasTag(name)
		require.NoError(t, err)
		return ok
	}
	assert.True(t, has("test"))
	assert.False(t, has("t"))
	assert.True(t, has("linkedA", "A"))
	assert.True(t, has("tags", "A"))
	assert.False(t, has("C", "A"))
}

func TestTagsAtLinkPropagateBothWays(t *testing.T) {
	dir := t.TempDir()
	spheres := openPlain(t, writeSpheres(t, dir))

	path := filepath.Join(dir, "tagged.lscn")
	l := createLinked(t, path)
	i2 := create(t, l, "instance2")
	require.NoError(t, i2.WriteLink(child(t, spheres, "A")))
	require.NoError(t, i2.WriteTags([]string{"canHaveTagsAtLinks"}))
	require.NoError(t, l.Close())

	r := openLinked(t, path)
	for _, p := range [][]string{nil, {"instance2"}, {"instance2", "a"}} {
		ok, err := child(t, r, p...).HasTag("canHaveTagsAtLinks")
		require.NoError(t, err)
		assert.True(t, ok, "%v", p)
	}
	// tags of the target are visible above the link
	ok, err := r.HasTag("leaf")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTagSessionReuse(t *testing.T) {
	dir := t.TempDir()
	spheres := openPlain(t, writeSpheres(t, dir))

	path := filepath.Join(dir, "session.lscn")
	l := createLinked(t, path)
	for _, name := range []string{"x", "y"} {
		n := create(t, l, name)
		require.NoError(t, n.WriteLink(spheres))
		require.NoError(t, n.WriteTags([]string{name}))
	}
	require.NoError(t, l.Close())

	r := openLinked(t, path)
	session := NewTagSession()
	all, err := r.ReadTagsIn(session, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"leaf", "spheres", "test", "x", "y"}, all)

	// children were memoized while reading the root
	x, ok := session.get(child(t, r, "x").Path())
	require.True(t, ok)
	assert.Equal(t, []string{"leaf", "spheres", "test", "x"}, x)

	// callers cannot corrupt the memo
	all[0] = "mutated"
	again, err := r.ReadTagsIn(session, true)
	require.NoError(t, err)
	assert.Equal(t, "leaf", again[0])
}
