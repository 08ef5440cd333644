package domain

import "strings"

// Path is an ordered sequence of node names from a scene root.
type Path []string

// RootPath is the path of a scene root
var RootPath = Path{}

// ParsePath splits a slash separated path ("/a/b") into names.
// Empty segments are ignored, so "/" and "" both parse to the root.
func ParsePath(s string) Path {
	var p Path
	for _, part := range strings.Split(s, "/") {
		if part != "" {
			p = append(p, part)
		}
	}
	if p == nil {
		return Path{}
	}
	return p
}

// String renders the path as "/a/b", or "/" for the root
func (p Path) String() string {
	return "/" + strings.Join(p, "/")
}

// IsRoot reports whether p addresses the scene root
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Name returns the last element, or "/" for the root
func (p Path) Name() string {
	if len(p) == 0 {
		return "/"
	}
	return p[len(p)-1]
}

// Child returns a new path with name appended. The receiver is never aliased.
func (p Path) Child(name string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, name)
}

// Join returns a new path with rest appended
func (p Path) Join(rest Path) Path {
	out := make(Path, 0, len(p)+len(rest))
	out = append(out, p...)
	return append(out, rest...)
}

// Equal reports whether both paths have the same names
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is an ancestor of (or equal to) p
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	return p[:len(prefix)].Equal(prefix)
}

// Clone returns a copy that does not share storage with p
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}
