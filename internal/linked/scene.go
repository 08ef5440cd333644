// Package linked implements scene files whose nodes can link to subtrees
// of other scene files. A linked scene exposes the same ports.Scene
// surface as a plain one: links are followed on read, time remapped
// through their descriptor curves, and tags propagate across them.
package linked

import (
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"scenelink/internal/adapters/sqlite"
	"scenelink/internal/application"
	"scenelink/internal/codec"
	"scenelink/internal/domain"
	"scenelink/internal/logger"
	"scenelink/internal/ports"
	"scenelink/internal/sceneutil"
)

// DefaultDescriptorCapacity bounds the decoded link cache of one scene
const DefaultDescriptorCapacity = 4096

type options struct {
	compression        codec.CompressionTag
	stores             *StoreCache
	descriptorCapacity int
}

// Option configures Open
type Option func(*options)

// WithCompression sets the payload compression of a scene opened for writing
func WithCompression(tag codec.CompressionTag) Option {
	return func(o *options) {
		o.compression = tag
	}
}

// WithStoreCache shares opened link targets between scenes. The caller
// keeps ownership and closes the cache.
func WithStoreCache(c *StoreCache) Option {
	return func(o *options) {
		o.stores = c
	}
}

// WithDescriptorCapacity bounds the number of decoded links kept in memory
func WithDescriptorCapacity(n int) Option {
	return func(o *options) {
		o.descriptorCapacity = n
	}
}

// sceneFile is the state shared by every handle derived from one Open
type sceneFile struct {
	name     string
	mode     domain.OpenMode
	r        *resolver
	store    ports.Scene // underlying root handle
	ownStore bool
	top      *Scene

	mu     sync.Mutex
	closed bool
	links  map[string]domain.LinkDescriptor // first descriptor written per node
}

func (f *sceneFile) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Scene is a handle on one node of the virtual scene graph
type Scene struct {
	f     *sceneFile
	chain []hop
	path  domain.Path
}

var (
	_ ports.Scene          = (*Scene)(nil)
	_ ports.ContentLocator = (*Scene)(nil)
)

// Open opens a linked scene file. Write creates a new file, Read opens an
// existing one. Append is not supported.
func Open(path string, mode domain.OpenMode, opts ...Option) (*Scene, error) {
	if mode.Has(domain.ModeAppend) || (mode != domain.ModeRead && mode != domain.ModeWrite) {
		return nil, &application.ModeError{Op: "open " + path, Mode: mode}
	}

	o := options{compression: codec.CompressionZstd, descriptorCapacity: DefaultDescriptorCapacity}
	for _, opt := range opts {
		opt(&o)
	}

	identity, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	var store *sqlite.Scene
	if mode == domain.ModeWrite {
		store, err = sqlite.Open(path, mode, sqlite.WithCompression(o.compression))
	} else {
		store, err = sqlite.Open(path, mode)
	}
	if err != nil {
		return nil, err
	}

	r := &resolver{stores: o.stores, descriptors: newDescriptorCache(o.descriptorCapacity)}
	if r.stores == nil {
		r.stores = NewStoreCache()
		r.ownsStores = true
	}

	f := &sceneFile{
		name:     path,
		mode:     mode,
		r:        r,
		store:    store,
		ownStore: true,
		links:    make(map[string]domain.LinkDescriptor),
	}
	chain := []hop{{
		node:     store,
		identity: identity,
		content:  store.ContentHash(),
		entry:    domain.Path{},
		local:    domain.Path{},
		links:    true,
		curve:    IdentityCurve(),
	}}
	if mode == domain.ModeRead {
		if chain, err = r.resolve(chain); err != nil {
			r.close()
			store.Close()
			return nil, err
		}
	}

	f.top = &Scene{f: f, chain: chain, path: domain.Path{}}
	logger.Debug().Str("file", path).Str("mode", mode.String()).Msg("linked scene opened")
	return f.top, nil
}

// Wrap presents an already open plain read handle as a link-free linked
// scene. The wrapped handle stays owned by the caller.
func Wrap(s ports.Scene) (*Scene, error) {
	if s.Mode() != domain.ModeRead {
		return nil, &application.ModeError{Op: "wrap " + s.FileName(), Mode: s.Mode()}
	}
	identity, err := filepath.Abs(s.FileName())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", s.FileName(), err)
	}
	root, err := s.Scene(domain.RootPath)
	if err != nil {
		return nil, err
	}

	f := &sceneFile{
		name:  s.FileName(),
		mode:  domain.ModeRead,
		r:     &resolver{stores: NewStoreCache(), ownsStores: true, descriptors: newDescriptorCache(1)},
		store: root,
	}
	plain := func(node ports.Scene) []hop {
		return []hop{{
			node:     node,
			identity: identity,
			content:  contentOf(node),
			entry:    node.Path(),
			local:    node.Path(),
			curve:    IdentityCurve(),
		}}
	}
	f.top = &Scene{f: f, chain: plain(root), path: domain.Path{}}
	if s.Path().IsRoot() {
		return f.top, nil
	}
	return &Scene{f: f, chain: plain(s), path: s.Path()}, nil
}

// inner returns the last hop, the store node that holds the content
func (s *Scene) inner() hop {
	return s.chain[len(s.chain)-1]
}

// atLink reports whether no descent happened below hop i's link, so the
// node is hop i's link location itself
func (s *Scene) atLink(i int) bool {
	for _, h := range s.chain[i+1:] {
		if h.descended() {
			return false
		}
	}
	return true
}

// linkLevel returns the outermost hop the node is a link location of,
// or -1 for nodes that are not link locations
func (s *Scene) linkLevel() int {
	for i := 0; i < len(s.chain)-1; i++ {
		if s.atLink(i) {
			return i
		}
	}
	return -1
}

// candidates lists the hop levels that may answer transform and
// attribute queries, outermost first. Link locations answer before the
// target they point at.
func (s *Scene) candidates() []int {
	var out []int
	for i := 0; i < len(s.chain)-1; i++ {
		if s.atLink(i) {
			out = append(out, i)
		}
	}
	return append(out, len(s.chain)-1)
}

// innerTime maps an outer time down to the time of hop level
func (s *Scene) innerTime(level int, t float64) float64 {
	for _, h := range s.chain[1 : level+1] {
		t = h.curve.Map(t)
	}
	return t
}

// apparent maps the native sample times of hop level up to outer times
func (s *Scene) apparent(level int, times []float64) []float64 {
	for i := level; i >= 1; i-- {
		times = s.chain[i].curve.Apparent(times)
	}
	return times
}

func (s *Scene) checkRead(op string) error {
	if s.f.mode != domain.ModeRead {
		return &application.ModeError{Op: op, Mode: s.f.mode}
	}
	if s.f.isClosed() {
		return &application.ModeError{Op: op + " on closed scene", Mode: s.f.mode}
	}
	return nil
}

// Identity

func (s *Scene) FileName() string { return s.f.name }

// Path returns the virtual path from the outermost scene root
func (s *Scene) Path() domain.Path { return s.path.Clone() }

func (s *Scene) Name() string { return s.path.Name() }

func (s *Scene) Mode() domain.OpenMode { return s.f.mode }

// Close finalizes or releases the file. Only the root handle owns it.
func (s *Scene) Close() error {
	if s != s.f.top {
		return nil
	}
	s.f.mu.Lock()
	if s.f.closed {
		s.f.mu.Unlock()
		return nil
	}
	s.f.closed = true
	s.f.mu.Unlock()

	err := s.f.r.close()
	if s.f.ownStore {
		if cerr := s.f.store.Close(); cerr != nil {
			return cerr
		}
	}
	return err
}

// Hierarchy

func (s *Scene) ChildNames() ([]string, error) {
	return s.inner().node.ChildNames()
}

func (s *Scene) HasChild(name string) bool {
	return s.inner().node.HasChild(name)
}

func (s *Scene) Child(name string) (ports.Scene, error) {
	return s.child(name)
}

func (s *Scene) child(name string) (*Scene, error) {
	var (
		chain []hop
		err   error
	)
	if s.f.mode == domain.ModeRead {
		chain, err = s.f.r.descend(s.chain, name)
	} else {
		var node ports.Scene
		node, err = s.inner().node.Child(name)
		if err == nil {
			chain = []hop{s.chain[0]}
			chain[0].node = node
			chain[0].local = s.chain[0].local.Child(name)
		}
	}
	if err != nil {
		return nil, err
	}
	return &Scene{f: s.f, chain: chain, path: s.path.Child(name)}, nil
}

// Scene resolves an absolute virtual path from the outermost root
func (s *Scene) Scene(p domain.Path) (ports.Scene, error) {
	cur := s.f.top
	for _, name := range p {
		next, err := cur.child(name)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Bound

func (s *Scene) HasBound() bool {
	return s.inner().node.HasBound()
}

// aggregates reports whether the bound is built from virtual children,
// which may themselves be links
func (s *Scene) aggregates() bool {
	in := s.inner()
	return in.links && !in.node.HasBound()
}

func (s *Scene) BoundSampleTimes() ([]float64, error) {
	if err := s.checkRead("read bound"); err != nil {
		return nil, err
	}
	if s.aggregates() {
		return sceneutil.AggregateBoundTimes(s)
	}
	times, err := s.inner().node.BoundSampleTimes()
	if err != nil {
		return nil, err
	}
	return s.apparent(len(s.chain)-1, times), nil
}

func (s *Scene) ReadBound(t float64) (domain.Box3, error) {
	if err := s.checkRead("read bound"); err != nil {
		return domain.Box3{}, err
	}
	if s.aggregates() {
		return sceneutil.AggregateBound(s, t)
	}
	k := len(s.chain) - 1
	return s.chain[k].node.ReadBound(s.innerTime(k, t))
}

// Transform

// transformLevel picks the first candidate with transform samples
func (s *Scene) transformLevel() (int, []float64, error) {
	levels := s.candidates()
	for _, level := range levels {
		times, err := s.chain[level].node.TransformSampleTimes()
		if err != nil {
			return 0, nil, err
		}
		if len(times) > 0 {
			return level, times, nil
		}
	}
	return levels[len(levels)-1], nil, nil
}

func (s *Scene) TransformSampleTimes() ([]float64, error) {
	if err := s.checkRead("read transform"); err != nil {
		return nil, err
	}
	level, times, err := s.transformLevel()
	if err != nil {
		return nil, err
	}
	return s.apparent(level, times), nil
}

func (s *Scene) ReadTransform(t float64) (domain.M44, error) {
	if err := s.checkRead("read transform"); err != nil {
		return domain.M44{}, err
	}
	level, _, err := s.transformLevel()
	if err != nil {
		return domain.M44{}, err
	}
	return s.chain[level].node.ReadTransform(s.innerTime(level, t))
}

// Attributes

// attributeLevel picks the first candidate holding the attribute
func (s *Scene) attributeLevel(name string) (int, bool) {
	for _, level := range s.candidates() {
		if s.chain[level].node.HasAttribute(name) {
			return level, true
		}
	}
	return 0, false
}

func (s *Scene) AttributeNames() ([]string, error) {
	if err := s.checkRead("read attribute names"); err != nil {
		return nil, err
	}
	var names []string
	for _, level := range s.candidates() {
		n, err := s.chain[level].node.AttributeNames()
		if err != nil {
			return nil, err
		}
		names = append(names, n...)
	}
	if s.linkLevel() >= 0 {
		names = append(names, domain.LinkHashAttribute)
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

func (s *Scene) HasAttribute(name string) bool {
	if name == domain.LinkHashAttribute {
		return s.linkLevel() >= 0
	}
	_, ok := s.attributeLevel(name)
	return ok
}

func (s *Scene) AttributeSampleTimes(name string) ([]float64, error) {
	if err := s.checkRead("read attribute"); err != nil {
		return nil, err
	}
	if name == domain.LinkHashAttribute {
		if s.linkLevel() < 0 {
			return nil, s.attributeNotFound(name)
		}
		return []float64{0}, nil
	}
	level, ok := s.attributeLevel(name)
	if !ok {
		return nil, s.attributeNotFound(name)
	}
	times, err := s.chain[level].node.AttributeSampleTimes(name)
	if err != nil {
		return nil, err
	}
	return s.apparent(level, times), nil
}

func (s *Scene) ReadAttribute(name string, t float64) (domain.Value, error) {
	if err := s.checkRead("read attribute"); err != nil {
		return nil, err
	}
	if name == domain.LinkHashAttribute {
		h, ok, err := s.LinkHash()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, s.attributeNotFound(name)
		}
		return domain.String(h), nil
	}
	level, ok := s.attributeLevel(name)
	if !ok {
		return nil, s.attributeNotFound(name)
	}
	return s.chain[level].node.ReadAttribute(name, s.innerTime(level, t))
}

func (s *Scene) attributeNotFound(name string) error {
	return &application.NotFoundError{What: "attribute", Name: s.path.String() + " " + name}
}

// Object

func (s *Scene) HasObject() bool {
	return s.inner().node.HasObject()
}

func (s *Scene) ObjectSampleTimes() ([]float64, error) {
	if err := s.checkRead("read object"); err != nil {
		return nil, err
	}
	times, err := s.inner().node.ObjectSampleTimes()
	if err != nil {
		return nil, err
	}
	return s.apparent(len(s.chain)-1, times), nil
}

func (s *Scene) ReadObject(t float64) (domain.Object, error) {
	if err := s.checkRead("read object"); err != nil {
		return domain.Object{}, err
	}
	k := len(s.chain) - 1
	return s.chain[k].node.ReadObject(s.innerTime(k, t))
}

// Depth returns the number of links followed to reach the node
func (s *Scene) Depth() int {
	return len(s.chain) - 1
}

// IsLink reports whether the node is a link location
func (s *Scene) IsLink() bool {
	return s.linkLevel() >= 0
}

// ContentKey names the stored sample an object read at t resolves to.
// It fails when the holding store does not know its content digest.
func (s *Scene) ContentKey(t float64) (string, bool) {
	k := len(s.chain) - 1
	in := s.chain[k]
	if in.content == "" {
		return "", false
	}
	return fmt.Sprintf("%s%s@%g", in.content, in.local, s.innerTime(k, t)), true
}

// Target returns the file and local path holding the node's content
func (s *Scene) Target() (string, domain.Path) {
	in := s.inner()
	return in.identity, in.local.Clone()
}
