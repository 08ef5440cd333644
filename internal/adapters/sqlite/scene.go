package sqlite

import (
	"database/sql"
	"errors"
	"slices"
	"strings"

	"scenelink/internal/application"
	"scenelink/internal/codec"
	"scenelink/internal/domain"
	"scenelink/internal/ports"
	"scenelink/internal/sceneutil"
)

const attrPrefix = "attr:"

// Scene is a handle on one node of a plain scene file. Links written to
// it are stored as ordinary attribute values and never followed.
type Scene struct {
	f *file
	n *node
}

var (
	_ ports.Scene         = (*Scene)(nil)
	_ ports.ContentHasher = (*Scene)(nil)
)

// FileName returns the path the file was opened with
func (s *Scene) FileName() string { return s.f.path }

// Path returns the node's path from the file root
func (s *Scene) Path() domain.Path { return s.n.path.Clone() }

// Name returns the node name, "/" for the root
func (s *Scene) Name() string { return s.n.path.Name() }

// Mode returns the mode the file was opened with
func (s *Scene) Mode() domain.OpenMode { return s.f.mode }

// ContentHash returns the digest of the finalized file content.
// It is empty while the file is being written.
func (s *Scene) ContentHash() string {
	s.f.mu.RLock()
	defer s.f.mu.RUnlock()
	return s.f.contentHash
}

// Close finalizes or releases the file. Only the root handle owns the
// file; closing any other handle is a no-op.
func (s *Scene) Close() error {
	if s.n != s.f.root {
		return nil
	}
	return s.f.close()
}

// readPayload loads and decompresses one stored sample
func (s *Scene) readPayload(ch domain.Channel, idx int) ([]byte, error) {
	var (
		compression uint8
		size        int
		payload     []byte
	)
	err := s.f.db.QueryRow(
		`SELECT compression, size, payload FROM samples WHERE node = ? AND channel = ? AND idx = ?`,
		s.n.id, string(ch), idx,
	).Scan(&compression, &size, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &application.NotFoundError{What: "sample", Name: s.n.path.String() + " " + string(ch)}
	}
	if err != nil {
		return nil, application.IOError("read sample", err)
	}
	data, err := codec.Decompress(payload, codec.CompressionTag(compression), size)
	if err != nil {
		return nil, errors.Join(application.ErrInvalidData, err)
	}
	return data, nil
}

// Hierarchy

func (s *Scene) ChildNames() ([]string, error) {
	return s.n.childNames(), nil
}

func (s *Scene) HasChild(name string) bool {
	_, ok := s.n.children[name]
	return ok
}

func (s *Scene) Child(name string) (ports.Scene, error) {
	c, ok := s.n.children[name]
	if !ok {
		return nil, &application.NotFoundError{What: "child", Name: s.n.path.Child(name).String()}
	}
	return &Scene{f: s.f, n: c}, nil
}

func (s *Scene) Scene(p domain.Path) (ports.Scene, error) {
	n := s.f.root
	for i, name := range p {
		c, ok := n.children[name]
		if !ok {
			return nil, &application.NotFoundError{What: "location", Name: p[:i+1].String()}
		}
		n = c
	}
	return &Scene{f: s.f, n: n}, nil
}

// Bound

func (s *Scene) HasBound() bool {
	return len(s.n.channels[domain.ChannelBound]) > 0
}

func (s *Scene) BoundSampleTimes() ([]float64, error) {
	if err := s.f.check("read bound", domain.ModeRead); err != nil {
		return nil, err
	}
	if s.HasBound() {
		return slices.Clone(s.n.channels[domain.ChannelBound]), nil
	}
	return sceneutil.AggregateBoundTimes(s)
}

func (s *Scene) ReadBound(t float64) (domain.Box3, error) {
	if err := s.f.check("read bound", domain.ModeRead); err != nil {
		return domain.Box3{}, err
	}
	if !s.HasBound() {
		return sceneutil.AggregateBound(s, t)
	}

	times := s.n.channels[domain.ChannelBound]
	lo, hi, x := domain.SampleInterval(times, t)
	a, err := s.readBoundSample(lo)
	if err != nil || lo == hi {
		return a, err
	}
	b, err := s.readBoundSample(hi)
	if err != nil {
		return domain.Box3{}, err
	}
	return domain.LerpBox(a, b, x), nil
}

func (s *Scene) readBoundSample(idx int) (domain.Box3, error) {
	data, err := s.readPayload(domain.ChannelBound, idx)
	if err != nil {
		return domain.Box3{}, err
	}
	b, err := codec.DecodeBound(data)
	if err != nil {
		return domain.Box3{}, errors.Join(application.ErrInvalidData, err)
	}
	return b, nil
}

// Transform

func (s *Scene) TransformSampleTimes() ([]float64, error) {
	if err := s.f.check("read transform", domain.ModeRead); err != nil {
		return nil, err
	}
	return slices.Clone(s.n.channels[domain.ChannelTransform]), nil
}

// ReadTransform returns the identity for nodes without transform samples
func (s *Scene) ReadTransform(t float64) (domain.M44, error) {
	if err := s.f.check("read transform", domain.ModeRead); err != nil {
		return domain.M44{}, err
	}
	times := s.n.channels[domain.ChannelTransform]
	if len(times) == 0 {
		return domain.Identity(), nil
	}

	lo, hi, x := domain.SampleInterval(times, t)
	a, err := s.readTransformSample(lo)
	if err != nil || lo == hi {
		return a, err
	}
	b, err := s.readTransformSample(hi)
	if err != nil {
		return domain.M44{}, err
	}
	return domain.LerpM44(a, b, x), nil
}

func (s *Scene) readTransformSample(idx int) (domain.M44, error) {
	data, err := s.readPayload(domain.ChannelTransform, idx)
	if err != nil {
		return domain.M44{}, err
	}
	m, err := codec.DecodeTransform(data)
	if err != nil {
		return domain.M44{}, errors.Join(application.ErrInvalidData, err)
	}
	return m, nil
}

// Attributes

func (s *Scene) AttributeNames() ([]string, error) {
	if err := s.f.check("read attribute names", domain.ModeRead); err != nil {
		return nil, err
	}
	var names []string
	for ch := range s.n.channels {
		if name, ok := strings.CutPrefix(string(ch), attrPrefix); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

func (s *Scene) HasAttribute(name string) bool {
	return len(s.n.channels[domain.AttributeChannel(name)]) > 0
}

func (s *Scene) AttributeSampleTimes(name string) ([]float64, error) {
	if err := s.f.check("read attribute", domain.ModeRead); err != nil {
		return nil, err
	}
	times, ok := s.n.channels[domain.AttributeChannel(name)]
	if !ok {
		return nil, s.attributeNotFound(name)
	}
	return slices.Clone(times), nil
}

func (s *Scene) ReadAttribute(name string, t float64) (domain.Value, error) {
	if err := s.f.check("read attribute", domain.ModeRead); err != nil {
		return nil, err
	}
	ch := domain.AttributeChannel(name)
	times, ok := s.n.channels[ch]
	if !ok {
		return nil, s.attributeNotFound(name)
	}
	data, err := s.readPayload(ch, domain.HoldIndex(times, t))
	if err != nil {
		return nil, err
	}
	v, err := codec.DecodeValue(data)
	if err != nil {
		return nil, errors.Join(application.ErrInvalidData, err)
	}
	return v, nil
}

func (s *Scene) attributeNotFound(name string) error {
	return &application.NotFoundError{What: "attribute", Name: s.n.path.String() + " " + name}
}

// Object

func (s *Scene) HasObject() bool {
	return len(s.n.channels[domain.ChannelObject]) > 0
}

func (s *Scene) ObjectSampleTimes() ([]float64, error) {
	if err := s.f.check("read object", domain.ModeRead); err != nil {
		return nil, err
	}
	return slices.Clone(s.n.channels[domain.ChannelObject]), nil
}

func (s *Scene) ReadObject(t float64) (domain.Object, error) {
	if err := s.f.check("read object", domain.ModeRead); err != nil {
		return domain.Object{}, err
	}
	times := s.n.channels[domain.ChannelObject]
	if len(times) == 0 {
		return domain.Object{}, &application.NotFoundError{What: "object", Name: s.n.path.String()}
	}
	data, err := s.readPayload(domain.ChannelObject, domain.HoldIndex(times, t))
	if err != nil {
		return domain.Object{}, err
	}
	o, err := codec.DecodeObject(data)
	if err != nil {
		return domain.Object{}, errors.Join(application.ErrInvalidData, err)
	}
	return o, nil
}

// Tags

// ReadTags returns the tags written on this node, plus those of every
// descendant when includeChildren is set
func (s *Scene) ReadTags(includeChildren bool) ([]string, error) {
	if err := s.f.check("read tags", domain.ModeRead); err != nil {
		return nil, err
	}
	if !includeChildren {
		return slices.Clone(s.n.tags), nil
	}

	var all []string
	var walk func(n *node)
	walk = func(n *node) {
		all = append(all, n.tags...)
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(s.n)
	slices.Sort(all)
	return slices.Compact(all), nil
}

func (s *Scene) HasTag(name string) (bool, error) {
	tags, err := s.ReadTags(true)
	if err != nil {
		return false, err
	}
	_, found := slices.BinarySearch(tags, name)
	return found, nil
}
