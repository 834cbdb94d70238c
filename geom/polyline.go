package geom

// Polyline is an open curve through a sequence of points.
type Polyline struct {
	points []Point
}

// NewPolyline creates a polyline through points.
func NewPolyline(points ...Point) *Polyline {
	pts := make([]Point, len(points))
	copy(pts, points)
	return &Polyline{points: pts}
}

// Points returns a copy of the points.
func (p *Polyline) Points() []Point {
	pts := make([]Point, len(p.points))
	copy(pts, p.points)
	return pts
}

// Kind implements Geometry.
func (p *Polyline) Kind() Kind { return KindCurve }

// Bounds implements Geometry.
func (p *Polyline) Bounds() Rect { return boundsOf(p.points) }

// Start implements Curve.
func (p *Polyline) Start() Point {
	if len(p.points) == 0 {
		return Point{}
	}
	return p.points[0]
}

// End implements Curve.
func (p *Polyline) End() Point {
	if len(p.points) == 0 {
		return Point{}
	}
	return p.points[len(p.points)-1]
}

// ToBezier returns one line per pair of consecutive points. A single point
// yields one degenerate line.
func (p *Polyline) ToBezier() []Segment {
	switch len(p.points) {
	case 0:
		return nil
	case 1:
		return []Segment{Line{P0: p.points[0], P1: p.points[0]}}
	}
	segs := make([]Segment, len(p.points)-1)
	for i := range segs {
		segs[i] = Line{P0: p.points[i], P1: p.points[i+1]}
	}
	return segs
}

// Contains implements Geometry.
func (p *Polyline) Contains(pt Point) bool {
	return outlineContains(p.ToBezier(), pt)
}

// Transform implements Geometry.
func (p *Polyline) Transform(m Matrix) Geometry {
	return &Polyline{points: m.transformPoints(p.points)}
}

// LineIntersections implements Curve.
func (p *Polyline) LineIntersections(l Line) []Point {
	return curveLineIntersections(p.ToBezier(), l)
}
