package geom

// Kind discriminates the geometry variants understood by anchors.
type Kind int

const (
	// KindShape is a closed area with an outline (rectangles, polygons, ellipses).
	KindShape Kind = iota + 1
	// KindCurve is an open or closed one-dimensional curve.
	KindCurve
	// KindPath is an arbitrary path of subpaths.
	KindPath
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindShape:
		return "shape"
	case KindCurve:
		return "curve"
	case KindPath:
		return "path"
	default:
		return "unknown"
	}
}

// Geometry is implemented by every planar geometry.
type Geometry interface {
	// Kind reports which variant the geometry is. A geometry of kind
	// KindShape implements Shape, one of kind KindCurve implements Curve.
	Kind() Kind

	// Bounds returns the axis-aligned bounding box.
	Bounds() Rect

	// Contains reports whether p lies inside a shape or path, or on a curve.
	Contains(p Point) bool

	// Transform returns the image of the geometry under m. The result has
	// the same kind.
	Transform(m Matrix) Geometry
}

// Shape is a closed area bounded by an outline.
type Shape interface {
	Geometry

	// OutlineSegments returns the outline as Bezier segments, in order.
	// The start point of every segment is a vertex of the shape.
	OutlineSegments() []Segment

	// Outline returns the outline as a single closed curve.
	Outline() Curve
}

// Curve is a one-dimensional geometry.
type Curve interface {
	Geometry

	// Start returns the start point.
	Start() Point

	// End returns the end point.
	End() Point

	// ToBezier decomposes the curve into Bezier segments.
	ToBezier() []Segment

	// LineIntersections returns the points where the curve meets the
	// line segment l, without duplicates.
	LineIntersections(l Line) []Point
}

// NearestIntersection returns the intersection of c and l closest to ref.
// It reports false if c and l do not intersect.
func NearestIntersection(c Curve, l Line, ref Point) (Point, bool) {
	var (
		nearest Point
		minDist float64
		found   bool
	)
	for _, p := range c.LineIntersections(l) {
		d := p.Distance(ref)
		if !found || d < minDist {
			nearest, minDist, found = p, d, true
		}
	}
	return nearest, found
}
