package geom

// Polygon is a closed shape with straight edges. The last vertex connects
// back to the first.
type Polygon struct {
	points []Point
}

// NewPolygon creates a polygon from its vertices.
func NewPolygon(points ...Point) *Polygon {
	pts := make([]Point, len(points))
	copy(pts, points)
	return &Polygon{points: pts}
}

// Points returns a copy of the vertices.
func (p *Polygon) Points() []Point {
	pts := make([]Point, len(p.points))
	copy(pts, p.points)
	return pts
}

// Kind implements Geometry.
func (p *Polygon) Kind() Kind { return KindShape }

// Bounds implements Geometry.
func (p *Polygon) Bounds() Rect { return boundsOf(p.points) }

// Contains reports whether pt is inside the polygon or on its outline,
// using the non-zero winding rule.
func (p *Polygon) Contains(pt Point) bool {
	if len(p.points) == 0 {
		return false
	}
	segs := p.OutlineSegments()
	return outlineContains(segs, pt) || winding(segs, pt) != 0
}

// Transform implements Geometry.
func (p *Polygon) Transform(m Matrix) Geometry {
	return &Polygon{points: m.transformPoints(p.points)}
}

// OutlineSegments implements Shape.
func (p *Polygon) OutlineSegments() []Segment {
	return closedLineSegments(p.points)
}

// Outline implements Shape.
func (p *Polygon) Outline() Curve {
	return closedPolyline(p.points)
}
