package geom

// PolyBezier is a curve made of consecutive Bezier segments.
type PolyBezier struct {
	segments []Segment
}

// NewPolyBezier creates a curve from its segments.
func NewPolyBezier(segments ...Segment) *PolyBezier {
	segs := make([]Segment, len(segments))
	copy(segs, segments)
	return &PolyBezier{segments: segs}
}

// InterpolateCubic returns a smooth curve through points using
// Catmull-Rom tangents. Fewer than three points yield straight lines.
func InterpolateCubic(points ...Point) *PolyBezier {
	if len(points) < 3 {
		return &PolyBezier{segments: NewPolyline(points...).ToBezier()}
	}

	segs := make([]Segment, len(points)-1)
	for i := range segs {
		p0 := points[max(i-1, 0)]
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[min(i+2, len(points)-1)]
		segs[i] = CubicBez{
			P0: p1,
			P1: p1.Add(p2.Sub(p0).Mul(1.0 / 6)),
			P2: p2.Sub(p3.Sub(p1).Mul(1.0 / 6)),
			P3: p2,
		}
	}
	return &PolyBezier{segments: segs}
}

// Kind implements Geometry.
func (p *PolyBezier) Kind() Kind { return KindCurve }

// Bounds implements Geometry.
func (p *PolyBezier) Bounds() Rect { return segmentBounds(p.segments) }

// Start implements Curve.
func (p *PolyBezier) Start() Point {
	if len(p.segments) == 0 {
		return Point{}
	}
	return p.segments[0].Start()
}

// End implements Curve.
func (p *PolyBezier) End() Point {
	if len(p.segments) == 0 {
		return Point{}
	}
	return p.segments[len(p.segments)-1].End()
}

// ToBezier implements Curve.
func (p *PolyBezier) ToBezier() []Segment {
	segs := make([]Segment, len(p.segments))
	copy(segs, p.segments)
	return segs
}

// Contains implements Geometry.
func (p *PolyBezier) Contains(pt Point) bool {
	return outlineContains(p.segments, pt)
}

// Transform implements Geometry.
func (p *PolyBezier) Transform(m Matrix) Geometry {
	return &PolyBezier{segments: transformSegments(p.segments, m)}
}

// LineIntersections implements Curve.
func (p *PolyBezier) LineIntersections(l Line) []Point {
	return curveLineIntersections(p.segments, l)
}
