package linked

import (
	"math"

	"scenelink/internal/domain"
)

type curveKind uint8

const (
	// curveIdentity passes the outer time through unchanged
	curveIdentity curveKind = iota
	// curveConstant samples the target at one fixed time
	curveConstant
	// curvePiecewise interpolates between (outer, inner) breakpoints
	curvePiecewise
)

// breakpoint maps an outer time to an inner time
type breakpoint struct {
	Outer float64
	Inner float64
}

// Curve maps the time of a linking scene into the time of the linked
// target. Outside the breakpoints' domain the nearest endpoint holds.
type Curve struct {
	kind   curveKind
	points []breakpoint
}

// IdentityCurve returns the pass-through curve
func IdentityCurve() Curve {
	return Curve{kind: curveIdentity}
}

// newCurve builds the curve defined by link descriptor samples. A
// sample without a time maps its outer time to itself.
func newCurve(samples []linkSample) Curve {
	if len(samples) == 1 {
		if samples[0].Desc.Time == nil {
			return IdentityCurve()
		}
		return Curve{
			kind:   curveConstant,
			points: []breakpoint{{Outer: samples[0].Outer, Inner: *samples[0].Desc.Time}},
		}
	}

	points := make([]breakpoint, len(samples))
	for i, s := range samples {
		inner := s.Outer
		if s.Desc.Time != nil {
			inner = *s.Desc.Time
		}
		points[i] = breakpoint{Outer: s.Outer, Inner: inner}
	}
	return Curve{kind: curvePiecewise, points: points}
}

// IsIdentity reports whether the curve never changes the time
func (c Curve) IsIdentity() bool {
	return c.kind == curveIdentity
}

// Map returns the inner time sampled at outer time t
func (c Curve) Map(t float64) float64 {
	switch c.kind {
	case curveConstant:
		return c.points[0].Inner
	case curvePiecewise:
		n := len(c.points)
		if t <= c.points[0].Outer {
			return c.points[0].Inner
		}
		if t >= c.points[n-1].Outer {
			return c.points[n-1].Inner
		}
		for i := 1; i < n; i++ {
			a, b := c.points[i-1], c.points[i]
			if t <= b.Outer {
				x := (t - a.Outer) / (b.Outer - a.Outer)
				return a.Inner + (b.Inner-a.Inner)*x
			}
		}
		return c.points[n-1].Inner
	default:
		return t
	}
}

// identityValued reports whether every breakpoint maps a time to itself
func (c Curve) identityValued() bool {
	for _, p := range c.points {
		if !domain.SameTime(p.Outer, p.Inner) {
			return false
		}
	}
	return true
}

// Apparent returns the outer sample times at which a target channel
// sampled at native times changes as seen through the curve: every
// breakpoint plus every native time mapped back through each segment
// that reaches it. An empty native set stays empty.
func (c Curve) Apparent(native []float64) []float64 {
	if len(native) == 0 {
		return nil
	}

	switch c.kind {
	case curveIdentity:
		return native
	case curveConstant:
		return []float64{c.points[0].Outer}
	}

	first, last := c.points[0], c.points[len(c.points)-1]
	if c.identityValued() && native[0] >= first.Inner-domain.TimeEpsilon && native[len(native)-1] <= last.Inner+domain.TimeEpsilon {
		return native
	}

	outer := make([]float64, 0, len(c.points)+len(native))
	for _, p := range c.points {
		outer = append(outer, p.Outer)
	}
	for i := 1; i < len(c.points); i++ {
		a, b := c.points[i-1], c.points[i]
		if domain.SameTime(a.Inner, b.Inner) {
			continue
		}
		lo, hi := math.Min(a.Inner, b.Inner), math.Max(a.Inner, b.Inner)
		for _, n := range native {
			if n < lo-domain.TimeEpsilon || n > hi+domain.TimeEpsilon {
				continue
			}
			x := (n - a.Inner) / (b.Inner - a.Inner)
			outer = append(outer, a.Outer+(b.Outer-a.Outer)*x)
		}
	}
	return domain.MergeTimes(outer)
}

// timeMode is the time selection of a flattened link chain, the part of
// a link's identity that depends on time remapping
type timeMode struct {
	Mode   string       `cbor:"mode"`
	Time   float64      `cbor:"time,omitempty"`
	Points [][2]float64 `cbor:"points,omitempty"`
}

const (
	modeAnimated = "animated"
	modeFixed    = "fixed"
	modeRemapped = "remapped"
)

// composeCurves flattens curves (outermost first) into one time mode.
// Identity curves vanish; the innermost constant pins the time; any
// remaining breakpoints are sampled at every outer time where one of the
// composed curves changes slope.
func composeCurves(curves []Curve) timeMode {
	last := -1
	for i, c := range curves {
		if c.kind == curveConstant {
			last = i
		}
	}
	if last >= 0 {
		t := curves[last].points[0].Inner
		for _, c := range curves[last+1:] {
			t = c.Map(t)
		}
		return timeMode{Mode: modeFixed, Time: t}
	}

	var active []Curve
	for _, c := range curves {
		if c.kind == curvePiecewise {
			active = append(active, c)
		}
	}
	if len(active) == 0 {
		return timeMode{Mode: modeAnimated}
	}

	var times []float64
	for i := len(active) - 1; i >= 0; i-- {
		var bps []float64
		for _, p := range active[i].points {
			bps = append(bps, p.Outer)
		}
		times = domain.MergeTimes(bps, active[i].Apparent(times))
	}

	points := make([][2]float64, len(times))
	for i, t := range times {
		inner := t
		for _, c := range active {
			inner = c.Map(inner)
		}
		points[i] = [2]float64{t, inner}
	}
	return timeMode{Mode: modeRemapped, Points: points}
}
