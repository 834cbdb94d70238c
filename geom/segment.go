package geom

import (
	"math"
	"sort"
)

// Segment is a single Bezier segment: a Line, QuadBez or CubicBez.
type Segment interface {
	Curve

	// Eval evaluates the segment at parameter t in [0, 1].
	Eval(t float64) Point

	// BoundingBox returns the tight axis-aligned bounding box.
	BoundingBox() Rect

	// coefficients returns the power-basis coefficients of the segment,
	// highest degree first.
	coefficients() []Point
	subdivide() (Segment, Segment)
	flatness() float64
	transformSegment(m Matrix) Segment
}

// -------------------------------------------------------------------
// Line
// -------------------------------------------------------------------

// Line represents a line segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

// NewLine creates a new line segment.
func NewLine(p0, p1 Point) Line {
	return Line{P0: p0, P1: p1}
}

// Eval evaluates the line at parameter t (0 to 1).
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Length returns the length of the line segment.
func (l Line) Length() float64 {
	return l.P0.Distance(l.P1)
}

// BoundingBox returns the axis-aligned bounding box of the line.
func (l Line) BoundingBox() Rect {
	return NewRect(l.P0, l.P1)
}

// Kind implements Geometry.
func (l Line) Kind() Kind { return KindCurve }

// Bounds implements Geometry.
func (l Line) Bounds() Rect { return l.BoundingBox() }

// Start implements Curve.
func (l Line) Start() Point { return l.P0 }

// End implements Curve.
func (l Line) End() Point { return l.P1 }

// ToBezier implements Curve.
func (l Line) ToBezier() []Segment { return []Segment{l} }

// Transform implements Geometry.
func (l Line) Transform(m Matrix) Geometry { return l.transformSegment(m) }

// Contains implements Geometry.
func (l Line) Contains(p Point) bool { return segmentContains(l, p) }

// LineIntersections implements Curve.
func (l Line) LineIntersections(o Line) []Point { return lineLineIntersections(l, o) }

func (l Line) coefficients() []Point { return []Point{l.P1.Sub(l.P0), l.P0} }
func (l Line) flatness() float64     { return 0 }

func (l Line) subdivide() (Segment, Segment) {
	mid := l.Eval(0.5)
	return Line{P0: l.P0, P1: mid}, Line{P0: mid, P1: l.P1}
}

func (l Line) transformSegment(m Matrix) Segment {
	return Line{P0: m.TransformPoint(l.P0), P1: m.TransformPoint(l.P1)}
}

// -------------------------------------------------------------------
// QuadBez - Quadratic Bezier Curve
// -------------------------------------------------------------------

// QuadBez represents a quadratic Bezier curve with control points P0, P1, P2.
// P0 is the start point, P1 is the control point, P2 is the end point.
type QuadBez struct {
	P0, P1, P2 Point
}

// NewQuadBez creates a new quadratic Bezier curve.
func NewQuadBez(p0, p1, p2 Point) QuadBez {
	return QuadBez{P0: p0, P1: p1, P2: p2}
}

// Eval evaluates the curve at parameter t (0 to 1).
func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Extrema returns parameter values where the derivative is zero.
func (q QuadBez) Extrema() []float64 {
	var result []float64

	d0 := q.P1.Sub(q.P0)
	d1 := q.P2.Sub(q.P1)
	dd := d1.Sub(d0)

	if dd.X != 0 {
		if t := -d0.X / dd.X; t > 0 && t < 1 {
			result = append(result, t)
		}
	}
	if dd.Y != 0 {
		if t := -d0.Y / dd.Y; t > 0 && t < 1 {
			result = append(result, t)
		}
	}

	sort.Float64s(result)
	return result
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (q QuadBez) BoundingBox() Rect {
	bbox := NewRect(q.P0, q.P2)
	for _, t := range q.Extrema() {
		p := q.Eval(t)
		bbox = bbox.Union(NewRect(p, p))
	}
	return bbox
}

// Raise elevates the quadratic to an exact cubic Bezier curve.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		P0: q.P0,
		P1: q.P0.Lerp(q.P1, 2.0/3.0),
		P2: q.P2.Lerp(q.P1, 2.0/3.0),
		P3: q.P2,
	}
}

// Kind implements Geometry.
func (q QuadBez) Kind() Kind { return KindCurve }

// Bounds implements Geometry.
func (q QuadBez) Bounds() Rect { return q.BoundingBox() }

// Start implements Curve.
func (q QuadBez) Start() Point { return q.P0 }

// End implements Curve.
func (q QuadBez) End() Point { return q.P2 }

// ToBezier implements Curve.
func (q QuadBez) ToBezier() []Segment { return []Segment{q} }

// Transform implements Geometry.
func (q QuadBez) Transform(m Matrix) Geometry { return q.transformSegment(m) }

// Contains implements Geometry.
func (q QuadBez) Contains(p Point) bool { return segmentContains(q, p) }

// LineIntersections implements Curve.
func (q QuadBez) LineIntersections(l Line) []Point { return segmentLineIntersections(q, l) }

func (q QuadBez) coefficients() []Point {
	return []Point{
		q.P0.Sub(q.P1.Mul(2)).Add(q.P2),
		q.P1.Sub(q.P0).Mul(2),
		q.P0,
	}
}

func (q QuadBez) flatness() float64 {
	return q.P1.Distance(q.P0.Lerp(q.P2, 0.5))
}

func (q QuadBez) subdivide() (Segment, Segment) {
	mid := q.Eval(0.5)
	return QuadBez{P0: q.P0, P1: q.P0.Lerp(q.P1, 0.5), P2: mid},
		QuadBez{P0: mid, P1: q.P1.Lerp(q.P2, 0.5), P2: q.P2}
}

func (q QuadBez) transformSegment(m Matrix) Segment {
	return QuadBez{P0: m.TransformPoint(q.P0), P1: m.TransformPoint(q.P1), P2: m.TransformPoint(q.P2)}
}

// -------------------------------------------------------------------
// CubicBez - Cubic Bezier Curve
// -------------------------------------------------------------------

// CubicBez represents a cubic Bezier curve with control points P0, P1, P2, P3.
// P0 is the start point, P1 and P2 are control points, P3 is the end point.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// NewCubicBez creates a new cubic Bezier curve.
func NewCubicBez(p0, p1, p2, p3 Point) CubicBez {
	return CubicBez{P0: p0, P1: p1, P2: p2, P3: p3}
}

// Eval evaluates the curve at parameter t (0 to 1).
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := t * t
	t3 := t2 * t

	return Point{
		X: mt3*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t3*c.P3.X,
		Y: mt3*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t3*c.P3.Y,
	}
}

// Extrema returns parameter values where the derivative is zero.
// For a cubic Bezier, there can be up to 4 extrema (2 for x, 2 for y).
func (c CubicBez) Extrema() []float64 {
	result := make([]float64, 0, 4)

	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)

	result = append(result, SolveQuadraticInUnitInterval(d0.X-2*d1.X+d2.X, 2*(d1.X-d0.X), d0.X)...)
	result = append(result, SolveQuadraticInUnitInterval(d0.Y-2*d1.Y+d2.Y, 2*(d1.Y-d0.Y), d0.Y)...)

	sort.Float64s(result)
	return result
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (c CubicBez) BoundingBox() Rect {
	bbox := NewRect(c.P0, c.P3)
	for _, t := range c.Extrema() {
		p := c.Eval(t)
		bbox = bbox.Union(NewRect(p, p))
	}
	return bbox
}

// Kind implements Geometry.
func (c CubicBez) Kind() Kind { return KindCurve }

// Bounds implements Geometry.
func (c CubicBez) Bounds() Rect { return c.BoundingBox() }

// Start implements Curve.
func (c CubicBez) Start() Point { return c.P0 }

// End implements Curve.
func (c CubicBez) End() Point { return c.P3 }

// ToBezier implements Curve.
func (c CubicBez) ToBezier() []Segment { return []Segment{c} }

// Transform implements Geometry.
func (c CubicBez) Transform(m Matrix) Geometry { return c.transformSegment(m) }

// Contains implements Geometry.
func (c CubicBez) Contains(p Point) bool { return segmentContains(c, p) }

// LineIntersections implements Curve.
func (c CubicBez) LineIntersections(l Line) []Point { return segmentLineIntersections(c, l) }

func (c CubicBez) coefficients() []Point {
	return []Point{
		c.P3.Sub(c.P0).Add(c.P1.Sub(c.P2).Mul(3)),
		c.P0.Sub(c.P1.Mul(2)).Add(c.P2).Mul(3),
		c.P1.Sub(c.P0).Mul(3),
		c.P0,
	}
}

// flatness returns the larger distance of the control points from the chord.
func (c CubicBez) flatness() float64 {
	chord := NewLine(c.P0, c.P3)
	return math.Max(pointSegmentDistance(c.P1, chord), pointSegmentDistance(c.P2, chord))
}

func (c CubicBez) subdivide() (Segment, Segment) {
	p01 := c.P0.Lerp(c.P1, 0.5)
	p12 := c.P1.Lerp(c.P2, 0.5)
	p23 := c.P2.Lerp(c.P3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)

	return CubicBez{P0: c.P0, P1: p01, P2: p012, P3: mid},
		CubicBez{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

func (c CubicBez) transformSegment(m Matrix) Segment {
	return CubicBez{
		P0: m.TransformPoint(c.P0),
		P1: m.TransformPoint(c.P1),
		P2: m.TransformPoint(c.P2),
		P3: m.TransformPoint(c.P3),
	}
}

// transformSegments maps every segment through m.
func transformSegments(segs []Segment, m Matrix) []Segment {
	out := make([]Segment, len(segs))
	for i, s := range segs {
		out[i] = s.transformSegment(m)
	}
	return out
}
