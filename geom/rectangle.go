package geom

// Rectangle is an axis-aligned rectangle shape.
type Rectangle struct {
	X, Y, W, H float64
}

// NewRectangle creates a rectangle with top-left corner (x, y).
func NewRectangle(x, y, w, h float64) Rectangle {
	return Rectangle{X: x, Y: y, W: w, H: h}
}

// RectangleFromRect converts bounds into a Rectangle shape.
func RectangleFromRect(r Rect) Rectangle {
	return Rectangle{X: r.Min.X, Y: r.Min.Y, W: r.Width(), H: r.Height()}
}

// Vertices returns the corners clockwise, starting at the top-left.
func (r Rectangle) Vertices() []Point {
	return []Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}
}

// Center returns the center point.
func (r Rectangle) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Kind implements Geometry.
func (r Rectangle) Kind() Kind { return KindShape }

// Bounds implements Geometry.
func (r Rectangle) Bounds() Rect {
	return NewRect(Point{X: r.X, Y: r.Y}, Point{X: r.X + r.W, Y: r.Y + r.H})
}

// Contains implements Geometry.
func (r Rectangle) Contains(p Point) bool {
	return r.Bounds().Contains(p)
}

// Transform returns a Rectangle if m keeps the axes, otherwise a Polygon.
func (r Rectangle) Transform(m Matrix) Geometry {
	if m.preservesAxes() {
		b := NewRect(m.TransformPoint(Point{X: r.X, Y: r.Y}), m.TransformPoint(Point{X: r.X + r.W, Y: r.Y + r.H}))
		return RectangleFromRect(b)
	}
	return NewPolygon(m.transformPoints(r.Vertices())...)
}

// OutlineSegments implements Shape.
func (r Rectangle) OutlineSegments() []Segment {
	return closedLineSegments(r.Vertices())
}

// Outline implements Shape.
func (r Rectangle) Outline() Curve {
	return closedPolyline(r.Vertices())
}

// closedLineSegments connects pts in order and back to the first point.
func closedLineSegments(pts []Point) []Segment {
	segs := make([]Segment, len(pts))
	for i, p := range pts {
		segs[i] = Line{P0: p, P1: pts[(i+1)%len(pts)]}
	}
	return segs
}

func closedPolyline(pts []Point) *Polyline {
	if len(pts) == 0 {
		return NewPolyline()
	}
	closed := make([]Point, len(pts)+1)
	copy(closed, pts)
	closed[len(pts)] = pts[0]
	return NewPolyline(closed...)
}
