package ports

import "scenelink/internal/domain"

// Scene is a handle on one node of a hierarchical, time sampled scene.
//
// Navigation (Name, Path, ChildNames, HasChild, Child, Scene) and the
// Has* checks work in every mode. Sample reads and tag reads require a
// read handle; writes require a write handle. Violations fail with
// application.ErrUnsupportedOperation.
type Scene interface {
	// Identity
	FileName() string
	Path() domain.Path
	Name() string
	Mode() domain.OpenMode

	// Bound channel. Without authored samples the bound is aggregated
	// from the node's object and children; HasBound reports authored samples.
	HasBound() bool
	BoundSampleTimes() ([]float64, error)
	ReadBound(t float64) (domain.Box3, error)
	WriteBound(b domain.Box3, t float64) error

	// Transform channel
	TransformSampleTimes() ([]float64, error)
	ReadTransform(t float64) (domain.M44, error)
	WriteTransform(m domain.M44, t float64) error

	// Attribute channels
	AttributeNames() ([]string, error)
	HasAttribute(name string) bool
	AttributeSampleTimes(name string) ([]float64, error)
	ReadAttribute(name string, t float64) (domain.Value, error)
	WriteAttribute(name string, v domain.Value, t float64) error

	// Object channel
	HasObject() bool
	ObjectSampleTimes() ([]float64, error)
	ReadObject(t float64) (domain.Object, error)
	WriteObject(o domain.Object, t float64) error

	// Tags
	ReadTags(includeChildren bool) ([]string, error)
	HasTag(name string) (bool, error)
	WriteTags(tags []string) error

	// Hierarchy
	ChildNames() ([]string, error)
	HasChild(name string) bool
	Child(name string) (Scene, error)
	CreateChild(name string) (Scene, error)
	Scene(p domain.Path) (Scene, error)

	// Close releases the file. On a write handle it finalizes the file.
	Close() error
}

// ContentHasher is implemented by stores that know a digest of their
// persisted content
type ContentHasher interface {
	ContentHash() string
}

// ContentLocator is implemented by handles that can name the stored
// content answering a read at time t: the digest of the store holding
// the node, the node's path there and the store-local time.
type ContentLocator interface {
	ContentKey(t float64) (string, bool)
}

// Opener opens scene files by path
type Opener interface {
	Open(path string, mode domain.OpenMode) (Scene, error)
}

// OpenerFunc adapts a function to Opener
type OpenerFunc func(path string, mode domain.OpenMode) (Scene, error)

// Open calls f(path, mode)
func (f OpenerFunc) Open(path string, mode domain.OpenMode) (Scene, error) {
	return f(path, mode)
}
