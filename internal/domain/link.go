package domain

import (
	"fmt"
	"math"
)

// Reserved attribute names
const (
	// LinkAttribute holds LinkDescriptor samples on link locations
	LinkAttribute = "scene:link"
	// LinkHashAttribute is derived on read and never stored
	LinkHashAttribute = "scene:linkHash"
)

// LinkDescriptor references a subtree of another scene file.
// Time is the source time to sample the target at; nil means the
// outer time passes through unchanged.
type LinkDescriptor struct {
	Target string
	Root   Path
	Time   *float64
}

func (LinkDescriptor) Kind() ValueKind { return KindLink }
func (LinkDescriptor) sealed()         {}

// HasTime reports whether the descriptor pins a source time
func (d LinkDescriptor) HasTime() bool {
	return d.Time != nil
}

// SameTarget reports whether both descriptors address the same subtree
func (d LinkDescriptor) SameTarget(o LinkDescriptor) bool {
	return d.Target == o.Target && d.Root.Equal(o.Root)
}

// Equal compares target, root and time
func (d LinkDescriptor) Equal(o LinkDescriptor) bool {
	if !d.SameTarget(o) || d.HasTime() != o.HasTime() {
		return false
	}
	return !d.HasTime() || *d.Time == *o.Time
}

func (d LinkDescriptor) String() string {
	if d.Time != nil {
		return fmt.Sprintf("%s:%s@%g", d.Target, d.Root, *d.Time)
	}
	return fmt.Sprintf("%s:%s", d.Target, d.Root)
}

// Validate checks the descriptor is usable
func (d LinkDescriptor) Validate() error {
	if d.Target == "" {
		return fmt.Errorf("link descriptor has no target")
	}
	for _, name := range d.Root {
		if name == "" {
			return fmt.Errorf("link descriptor root %s has an empty name", d.Root)
		}
	}
	if d.Time != nil && (math.IsNaN(*d.Time) || math.IsInf(*d.Time, 0)) {
		return fmt.Errorf("link descriptor time is not finite")
	}
	return nil
}

// TimePtr returns a pointer to t, for building descriptors inline
func TimePtr(t float64) *float64 {
	return &t
}
