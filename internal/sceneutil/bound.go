// Package sceneutil holds helpers shared by every ports.Scene
// implementation: aggregated bounds and sample-index access.
package sceneutil

import (
	"fmt"

	"scenelink/internal/domain"
	"scenelink/internal/ports"
)

// AggregateBoundTimes returns the sample times of a bound derived from
// the node's content: the union of every child's bound and transform
// times and the node's own object times.
func AggregateBoundTimes(s ports.Scene) ([]float64, error) {
	var sets [][]float64

	if s.HasObject() {
		times, err := s.ObjectSampleTimes()
		if err != nil {
			return nil, err
		}
		sets = append(sets, times)
	}

	names, err := s.ChildNames()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		child, err := s.Child(name)
		if err != nil {
			return nil, fmt.Errorf("failed to open child %s: %w", name, err)
		}
		bt, err := child.BoundSampleTimes()
		if err != nil {
			return nil, err
		}
		tt, err := child.TransformSampleTimes()
		if err != nil {
			return nil, err
		}
		sets = append(sets, bt, tt)
	}

	return domain.MergeTimes(sets...), nil
}

// AggregateBound computes the node's bound at t from its own object
// bound and the transformed bounds of its children.
func AggregateBound(s ports.Scene, t float64) (domain.Box3, error) {
	out := domain.EmptyBox()

	if s.HasObject() {
		obj, err := s.ReadObject(t)
		if err != nil {
			return out, err
		}
		out = out.Union(obj.Bound)
	}

	names, err := s.ChildNames()
	if err != nil {
		return out, err
	}
	for _, name := range names {
		child, err := s.Child(name)
		if err != nil {
			return out, fmt.Errorf("failed to open child %s: %w", name, err)
		}
		b, err := child.ReadBound(t)
		if err != nil {
			return out, err
		}
		m, err := child.ReadTransform(t)
		if err != nil {
			return out, err
		}
		out = out.Union(b.Transform(m))
	}
	return out, nil
}
