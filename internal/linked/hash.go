package linked

import (
	"fmt"

	"scenelink/internal/codec"
)

// linkIdentity is what two links must share to address the same content
type linkIdentity struct {
	Content string   `cbor:"content"`
	Path    []string `cbor:"path"`
	Time    timeMode `cbor:"time"`
}

// LinkHash returns the identity of the content a link location shows.
// Links reaching the same target content, location and time selection
// hash equal, however many intermediate links they pass through. ok is
// false for nodes that are not link locations.
func (s *Scene) LinkHash() (hash string, ok bool, err error) {
	level := s.linkLevel()
	if level < 0 {
		return "", false, nil
	}

	curves := make([]Curve, 0, len(s.chain)-level-1)
	for _, h := range s.chain[level+1:] {
		curves = append(curves, h.curve)
	}

	in := s.inner()
	content := in.content
	if content == "" {
		// stores without a digest are identified by location
		content = "file:" + in.identity
	}
	id := linkIdentity{
		Content: content,
		Path:    []string(in.local),
		Time:    composeCurves(curves),
	}
	if id.Path == nil {
		id.Path = []string{}
	}

	sum, err := codec.HashValue(codec.LinkHashDomain, id)
	if err != nil {
		return "", false, fmt.Errorf("failed to hash link at %s: %w", s.path, err)
	}
	return sum.Short(), true, nil
}
