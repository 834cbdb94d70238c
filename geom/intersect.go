package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// paramEpsilon widens the [0, 1] parameter range of a segment so that
// intersections at shared end points are not lost to rounding.
const paramEpsilon = 1e-9

// lineLineIntersections intersects two line segments. Collinear
// overlapping segments yield the end points of the overlap.
func lineLineIntersections(a, b Line) []Point {
	p, q := a.P0.Vec(), b.P0.Vec()
	r := r2.Sub(a.P1.Vec(), p)
	s := r2.Sub(b.P1.Vec(), q)
	qp := r2.Sub(q, p)

	lr, ls := r2.Norm(r), r2.Norm(s)
	if lr == 0 || ls == 0 {
		return degenerateLineIntersections(a, b, lr, ls)
	}

	denom := r2.Cross(r, s)
	if math.Abs(denom) <= paramEpsilon*lr*ls {
		if math.Abs(r2.Cross(qp, r)) > Tolerance*lr {
			return nil // parallel
		}
		return collinearOverlap(a, b)
	}

	t := r2.Cross(qp, s) / denom
	u := r2.Cross(qp, r) / denom
	if !inUnit(t) || !inUnit(u) {
		return nil
	}
	return []Point{Point(r2.Add(p, r2.Scale(clampUnit(t), r)))}
}

func degenerateLineIntersections(a, b Line, la, lb float64) []Point {
	switch {
	case la == 0 && lb == 0:
		if a.P0.Equal(b.P0, Tolerance) {
			return []Point{a.P0}
		}
	case la == 0:
		if pointSegmentDistance(a.P0, b) <= Tolerance {
			return []Point{a.P0}
		}
	default:
		if pointSegmentDistance(b.P0, a) <= Tolerance {
			return []Point{b.P0}
		}
	}
	return nil
}

func collinearOverlap(a, b Line) []Point {
	var pts []Point
	for _, c := range []struct {
		p Point
		l Line
	}{{a.P0, b}, {a.P1, b}, {b.P0, a}, {b.P1, a}} {
		if pointSegmentDistance(c.p, c.l) <= Tolerance {
			pts = appendUnique(pts, c.p)
		}
	}
	return pts
}

// segmentLineIntersections intersects a Bezier segment with a line segment
// by solving for the roots of the segment's signed distance to the line.
func segmentLineIntersections(s Segment, l Line) []Point {
	if ln, ok := s.(Line); ok {
		return lineLineIntersections(ln, l)
	}

	dir := l.P1.Sub(l.P0)
	lenSq := dir.LengthSquared()
	if lenSq == 0 {
		if segmentContains(s, l.P0) {
			return []Point{l.P0}
		}
		return nil
	}
	normal := Point{X: -dir.Y, Y: dir.X}

	coeffs := s.coefficients()
	poly := make([]float64, len(coeffs))
	for i, c := range coeffs {
		if i == len(coeffs)-1 {
			c = c.Sub(l.P0)
		}
		poly[i] = normal.Dot(c)
	}
	if maxAbs(poly) <= Tolerance*math.Sqrt(lenSq) {
		// the segment lies on the line
		return collinearOverlap(NewLine(s.Start(), s.End()), l)
	}

	var pts []Point
	for _, t := range unitRoots(poly) {
		p := s.Eval(t)
		if u := p.Sub(l.P0).Dot(dir) / lenSq; inUnit(u) {
			pts = appendUnique(pts, p)
		}
	}
	return pts
}

// curveLineIntersections collects the intersections of all segments with l.
func curveLineIntersections(segs []Segment, l Line) []Point {
	var pts []Point
	for _, s := range segs {
		for _, p := range s.LineIntersections(l) {
			pts = appendUnique(pts, p)
		}
	}
	return pts
}

// segmentContains reports whether p lies on the segment.
func segmentContains(s Segment, p Point) bool {
	if ln, ok := s.(Line); ok {
		return pointSegmentDistance(p, ln) <= Tolerance
	}

	coeffs := s.coefficients()
	px := make([]float64, len(coeffs))
	py := make([]float64, len(coeffs))
	for i, c := range coeffs {
		px[i], py[i] = c.X, c.Y
	}
	px[len(px)-1] -= p.X
	py[len(py)-1] -= p.Y

	// solve on the axis that actually varies
	poly := px
	if maxAbs(px[:len(px)-1]) == 0 {
		if math.Abs(px[len(px)-1]) > Tolerance {
			return false
		}
		poly = py
	}
	for _, t := range unitRoots(poly) {
		if s.Eval(t).Equal(p, Tolerance) {
			return true
		}
	}
	return false
}

// pointSegmentDistance returns the distance from p to the segment l.
func pointSegmentDistance(p Point, l Line) float64 {
	d := l.P1.Sub(l.P0)
	lenSq := d.LengthSquared()
	if lenSq == 0 {
		return p.Distance(l.P0)
	}
	t := clampUnit(p.Sub(l.P0).Dot(d) / lenSq)
	return p.Distance(l.Eval(t))
}

func appendUnique(pts []Point, p Point) []Point {
	for _, q := range pts {
		if q.Equal(p, Tolerance) {
			return pts
		}
	}
	return append(pts, p)
}

func inUnit(t float64) bool {
	return t >= -paramEpsilon && t <= 1+paramEpsilon
}

func clampUnit(t float64) float64 {
	return math.Min(math.Max(t, 0), 1)
}

// winding returns the non-zero winding number of pt relative to the closed
// outline formed by segs, casting a horizontal ray to the right. Curved
// segments are flattened adaptively.
func winding(segs []Segment, pt Point) int {
	var w int
	for _, s := range segs {
		w += segmentWinding(s, pt, 0.05)
	}
	return w
}

func segmentWinding(s Segment, pt Point, tolerance float64) int {
	if ln, ok := s.(Line); ok {
		return lineWinding(ln.P0, ln.P1, pt)
	}
	// hull check: the curve lies inside the bounding box of its control points
	b := boundsOf(controlPoints(s))
	if pt.Y < b.Min.Y || pt.Y > b.Max.Y || pt.X > b.Max.X {
		return 0
	}
	if s.flatness() <= tolerance {
		return lineWinding(s.Start(), s.End(), pt)
	}
	s1, s2 := s.subdivide()
	return segmentWinding(s1, pt, tolerance) + segmentWinding(s2, pt, tolerance)
}

func controlPoints(s Segment) []Point {
	switch s := s.(type) {
	case QuadBez:
		return []Point{s.P0, s.P1, s.P2}
	case CubicBez:
		return []Point{s.P0, s.P1, s.P2, s.P3}
	default:
		return []Point{s.Start(), s.End()}
	}
}

// lineWinding computes the winding contribution of a line segment.
func lineWinding(p0, p1, pt Point) int {
	if p0.Y <= pt.Y && p1.Y > pt.Y {
		if isLeft(p0, p1, pt) > 0 {
			return 1
		}
	} else if p0.Y > pt.Y && p1.Y <= pt.Y {
		if isLeft(p0, p1, pt) < 0 {
			return -1
		}
	}
	return 0
}

// isLeft returns positive if pt is left of line p0-p1, negative if right, 0 if on.
func isLeft(p0, p1, pt Point) float64 {
	return (p1.X-p0.X)*(pt.Y-p0.Y) - (pt.X-p0.X)*(p1.Y-p0.Y)
}

// outlineContains reports whether pt lies on any of the segments.
func outlineContains(segs []Segment, pt Point) bool {
	for _, s := range segs {
		if s.Contains(pt) {
			return true
		}
	}
	return false
}
