package sceneutil

import (
	"fmt"

	"scenelink/internal/application"
	"scenelink/internal/domain"
	"scenelink/internal/ports"
)

// SampleTime returns times[i], or ErrNotFound when i is out of range
func SampleTime(times []float64, i int) (float64, error) {
	if i < 0 || i >= len(times) {
		return 0, &application.NotFoundError{
			What: "sample",
			Name: fmt.Sprintf("%d of %d", i, len(times)),
		}
	}
	return times[i], nil
}

// ReadBoundAtSample reads the i-th bound sample
func ReadBoundAtSample(s ports.Scene, i int) (domain.Box3, error) {
	times, err := s.BoundSampleTimes()
	if err != nil {
		return domain.Box3{}, err
	}
	t, err := SampleTime(times, i)
	if err != nil {
		return domain.Box3{}, err
	}
	return s.ReadBound(t)
}

// ReadTransformAtSample reads the i-th transform sample
func ReadTransformAtSample(s ports.Scene, i int) (domain.M44, error) {
	times, err := s.TransformSampleTimes()
	if err != nil {
		return domain.M44{}, err
	}
	t, err := SampleTime(times, i)
	if err != nil {
		return domain.M44{}, err
	}
	return s.ReadTransform(t)
}

// ReadAttributeAtSample reads the i-th sample of the named attribute
func ReadAttributeAtSample(s ports.Scene, name string, i int) (domain.Value, error) {
	times, err := s.AttributeSampleTimes(name)
	if err != nil {
		return nil, err
	}
	t, err := SampleTime(times, i)
	if err != nil {
		return nil, err
	}
	return s.ReadAttribute(name, t)
}

// ReadObjectAtSample reads the i-th object sample
func ReadObjectAtSample(s ports.Scene, i int) (domain.Object, error) {
	times, err := s.ObjectSampleTimes()
	if err != nil {
		return domain.Object{}, err
	}
	t, err := SampleTime(times, i)
	if err != nil {
		return domain.Object{}, err
	}
	return s.ReadObject(t)
}

// Walk visits s and every descendant depth first. Returning a non-nil
// error from fn stops the walk.
func Walk(s ports.Scene, fn func(ports.Scene) error) error {
	if err := fn(s); err != nil {
		return err
	}
	names, err := s.ChildNames()
	if err != nil {
		return err
	}
	for _, name := range names {
		child, err := s.Child(name)
		if err != nil {
			return err
		}
		if err := Walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}
