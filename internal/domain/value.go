package domain

import (
	"fmt"
	"slices"
)

// ValueKind tags the variant held by a Value
type ValueKind uint8

const (
	KindBool ValueKind = iota + 1
	KindInt
	KindFloat
	KindString
	KindStrings
	KindVector
	KindBound
	KindMatrix
	KindBlob
	// KindLink is reserved for the link attribute
	KindLink
)

// String returns the human-readable name of a kind
func (k ValueKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindStrings:
		return "strings"
	case KindVector:
		return "vector"
	case KindBound:
		return "bound"
	case KindMatrix:
		return "matrix"
	case KindBlob:
		return "blob"
	case KindLink:
		return "link"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// Value is an attribute value. The set of variants is closed: only the
// types in this file implement it.
type Value interface {
	Kind() ValueKind
	sealed()
}

type (
	Bool    bool
	Int     int64
	Float   float64
	String  string
	Strings []string
	Vector  V3
	Bound   Box3
	Matrix  M44
	Blob    []byte
)

func (Bool) Kind() ValueKind    { return KindBool }
func (Int) Kind() ValueKind     { return KindInt }
func (Float) Kind() ValueKind   { return KindFloat }
func (String) Kind() ValueKind  { return KindString }
func (Strings) Kind() ValueKind { return KindStrings }
func (Vector) Kind() ValueKind  { return KindVector }
func (Bound) Kind() ValueKind   { return KindBound }
func (Matrix) Kind() ValueKind  { return KindMatrix }
func (Blob) Kind() ValueKind    { return KindBlob }

func (Bool) sealed()    {}
func (Int) sealed()     {}
func (Float) sealed()   {}
func (String) sealed()  {}
func (Strings) sealed() {}
func (Vector) sealed()  {}
func (Bound) sealed()   {}
func (Matrix) sealed()  {}
func (Blob) sealed()    {}

// EqualValues compares two values of any variant
func EqualValues(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Strings:
		return slices.Equal(av, b.(Strings))
	case Blob:
		return slices.Equal(av, b.(Blob))
	case LinkDescriptor:
		return av.Equal(b.(LinkDescriptor))
	default:
		return a == b
	}
}

// FormatValue renders a value for display
func FormatValue(v Value) string {
	switch tv := v.(type) {
	case nil:
		return "<none>"
	case Bool, Int, Float, String:
		return fmt.Sprintf("%v", tv)
	case Strings:
		return fmt.Sprintf("%q", []string(tv))
	case Vector:
		return fmt.Sprintf("(%g, %g, %g)", tv.X, tv.Y, tv.Z)
	case Bound:
		b := Box3(tv)
		if b.IsEmpty() {
			return "empty"
		}
		return fmt.Sprintf("[(%g, %g, %g) (%g, %g, %g)]", b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	case Matrix:
		t := M44(tv).Translation()
		return fmt.Sprintf("matrix(translate %g %g %g)", t.X, t.Y, t.Z)
	case Blob:
		return fmt.Sprintf("blob(%d bytes)", len(tv))
	case LinkDescriptor:
		return tv.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
