package domain

import "math"

// V3 is a point or direction in 3D space
type V3 struct {
	X, Y, Z float64
}

// Add returns a + b
func (a V3) Add(b V3) V3 {
	return V3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Scale returns a scaled by s
func (a V3) Scale(s float64) V3 {
	return V3{a.X * s, a.Y * s, a.Z * s}
}

// LerpV3 interpolates between a and b
func LerpV3(a, b V3, t float64) V3 {
	return V3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// Box3 is an axis aligned bounding box. A box with Min > Max on any axis is empty.
type Box3 struct {
	Min, Max V3
}

// EmptyBox returns the identity for Union
func EmptyBox() Box3 {
	inf := math.Inf(1)
	return Box3{
		Min: V3{inf, inf, inf},
		Max: V3{-inf, -inf, -inf},
	}
}

// NewBox3 returns the box spanning min and max
func NewBox3(min, max V3) Box3 {
	return Box3{Min: min, Max: max}
}

// IsEmpty reports whether the box contains no point
func (b Box3) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// ExtendBy grows the box to include p
func (b Box3) ExtendBy(p V3) Box3 {
	return Box3{
		Min: V3{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)},
		Max: V3{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)},
	}
}

// Union returns the smallest box containing both boxes
func (b Box3) Union(o Box3) Box3 {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return b.ExtendBy(o.Min).ExtendBy(o.Max)
}

// Transform returns the bound of the eight corners of b moved by m
func (b Box3) Transform(m M44) Box3 {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBox()
	for i := range 8 {
		c := V3{b.Min.X, b.Min.Y, b.Min.Z}
		if i&1 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&4 != 0 {
			c.Z = b.Max.Z
		}
		out = out.ExtendBy(m.TransformPoint(c))
	}
	return out
}

// LerpBox interpolates both corners of a box
func LerpBox(a, b Box3, t float64) Box3 {
	return Box3{Min: LerpV3(a.Min, b.Min, t), Max: LerpV3(a.Max, b.Max, t)}
}

// M44 is a column-major 4x4 matrix. Element (row r, column c) lives at [c*4+r].
type M44 [16]float64

// Identity returns the identity matrix
func Identity() M44 {
	return M44{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix
func Translate(v V3) M44 {
	m := Identity()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// Scale returns a scaling matrix
func Scale(v V3) M44 {
	m := Identity()
	m[0], m[5], m[10] = v.X, v.Y, v.Z
	return m
}

// Translation returns the translation part of m
func (m M44) Translation() V3 {
	return V3{m[12], m[13], m[14]}
}

// Mul returns m * o (o is applied first)
func (m M44) Mul(o M44) M44 {
	var out M44
	for c := range 4 {
		for r := range 4 {
			var s float64
			for k := range 4 {
				s += m[k*4+r] * o[c*4+k]
			}
			out[c*4+r] = s
		}
	}
	return out
}

// TransformPoint applies m to p treating it as a point (w = 1)
func (m M44) TransformPoint(p V3) V3 {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w != 0 && w != 1 {
		return V3{x / w, y / w, z / w}
	}
	return V3{x, y, z}
}

// LerpM44 interpolates matrices element-wise
func LerpM44(a, b M44, t float64) M44 {
	var out M44
	for i := range out {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return out
}
