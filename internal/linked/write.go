package linked

import (
	"fmt"

	"scenelink/internal/application"
	"scenelink/internal/domain"
	"scenelink/internal/ports"
)

// nodeState is the write-time classification of a node
type nodeState uint8

const (
	stateUnwritten nodeState = iota
	statePlain
	stateLinked
)

func (st nodeState) String() string {
	switch st {
	case statePlain:
		return "plain"
	case stateLinked:
		return "linked"
	default:
		return "unwritten"
	}
}

func (s *Scene) checkWrite(op string) error {
	if s.f.mode != domain.ModeWrite {
		return &application.ModeError{Op: op, Mode: s.f.mode}
	}
	if s.f.isClosed() {
		return &application.ModeError{Op: op + " on closed scene", Mode: s.f.mode}
	}
	return nil
}

// state derives the classification from what the node already holds
func (s *Scene) state() nodeState {
	node := s.inner().node
	if node.HasAttribute(domain.LinkAttribute) {
		return stateLinked
	}
	names, _ := node.ChildNames()
	if len(names) > 0 || node.HasObject() || node.HasBound() {
		return statePlain
	}
	return stateUnwritten
}

func (s *Scene) conflict(reason string) error {
	return &application.StructuralError{Path: s.path, Reason: reason}
}

func (s *Scene) CreateChild(name string) (ports.Scene, error) {
	if err := s.checkWrite("create child"); err != nil {
		return nil, err
	}
	if s.state() == stateLinked {
		return nil, s.conflict("link locations cannot have children")
	}
	node, err := s.inner().node.CreateChild(name)
	if err != nil {
		return nil, err
	}
	h := s.chain[0]
	h.node = node
	h.local = h.local.Child(name)
	return &Scene{f: s.f, chain: []hop{h}, path: s.path.Child(name)}, nil
}

func (s *Scene) WriteBound(b domain.Box3, t float64) error {
	if err := s.checkWrite("write bound"); err != nil {
		return err
	}
	if s.state() == stateLinked {
		return s.conflict("link locations take their bound from the target")
	}
	return s.inner().node.WriteBound(b, t)
}

func (s *Scene) WriteTransform(m domain.M44, t float64) error {
	if err := s.checkWrite("write transform"); err != nil {
		return err
	}
	return s.inner().node.WriteTransform(m, t)
}

// WriteAttribute stores an attribute sample. Writing a link value to the
// link attribute turns the node into a link location.
func (s *Scene) WriteAttribute(name string, v domain.Value, t float64) error {
	if err := s.checkWrite("write attribute"); err != nil {
		return err
	}
	if err := application.ValidateAttributeName(name, v); err != nil {
		return err
	}
	if d, ok := v.(domain.LinkDescriptor); ok {
		return s.writeLink(d, t)
	}
	return s.inner().node.WriteAttribute(name, v, t)
}

func (s *Scene) WriteObject(o domain.Object, t float64) error {
	if err := s.checkWrite("write object"); err != nil {
		return err
	}
	if s.state() == stateLinked {
		return s.conflict("link locations cannot hold objects")
	}
	return s.inner().node.WriteObject(o, t)
}

// WriteTags stores tags on the node. Links and tags may be written in
// any order.
func (s *Scene) WriteTags(tags []string) error {
	if err := s.checkWrite("write tags"); err != nil {
		return err
	}
	return s.inner().node.WriteTags(tags)
}

// WriteLink links the node to target's file and location, following the
// target's own time
func (s *Scene) WriteLink(target ports.Scene) error {
	if err := s.checkWrite("write link"); err != nil {
		return err
	}
	d, err := LinkValue(target, nil)
	if err != nil {
		return err
	}
	return s.writeLink(d, 0)
}

func (s *Scene) writeLink(d domain.LinkDescriptor, t float64) error {
	if s.path.IsRoot() {
		return s.conflict("the scene root cannot be a link")
	}
	if st := s.state(); st == statePlain {
		return s.conflict(fmt.Sprintf("node is already %s", st))
	}
	if err := d.Validate(); err != nil {
		return &application.ValidationError{Field: "link", Message: err.Error()}
	}

	key := s.path.String()
	s.f.mu.Lock()
	first, seen := s.f.links[key]
	s.f.mu.Unlock()
	if seen && !first.SameTarget(d) {
		return &application.LinkError{
			Path:   s.path,
			Target: d.String(),
			Reason: fmt.Sprintf("samples must share target %s", first),
			Err:    application.ErrInvalidData,
		}
	}

	if err := s.inner().node.WriteAttribute(domain.LinkAttribute, d, t); err != nil {
		return err
	}
	if !seen {
		s.f.mu.Lock()
		s.f.links[key] = d
		s.f.mu.Unlock()
	}
	return nil
}
