package geom

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath at a point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path is an arbitrary sequence of subpaths. Anchors cannot compute
// outlines for paths; they fall back to the path's bounds.
type Path struct {
	elements []PathElement
	start    Point
	current  Point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// MoveTo moves to a point without drawing.
func (p *Path) MoveTo(x, y float64) *Path {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
	return p
}

// LineTo draws a line to a point.
func (p *Path) LineTo(x, y float64) *Path {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
	return p
}

// QuadraticTo draws a quadratic Bezier curve.
func (p *Path) QuadraticTo(cx, cy, x, y float64) *Path {
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: pt})
	p.current = pt
	return p
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *Path {
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    pt,
	})
	p.current = pt
	return p
}

// Close closes the current subpath by drawing a line to the start point.
func (p *Path) Close() *Path {
	p.elements = append(p.elements, Close{})
	p.current = p.start
	return p
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// Kind implements Geometry.
func (p *Path) Kind() Kind { return KindPath }

// Bounds returns the tight bounding box, including isolated MoveTo points.
func (p *Path) Bounds() Rect {
	var (
		r     Rect
		found bool
	)
	add := func(b Rect) {
		if !found {
			r, found = b, true
			return
		}
		r = r.Union(b)
	}
	for _, e := range p.elements {
		if m, ok := e.(MoveTo); ok {
			add(Rect{Min: m.Point, Max: m.Point})
		}
	}
	for _, sub := range p.subpaths() {
		for _, s := range sub {
			add(s.BoundingBox())
		}
	}
	return r
}

// Contains tests if a point is inside the path using the non-zero fill
// rule. Open subpaths are closed implicitly.
func (p *Path) Contains(pt Point) bool {
	w := 0
	for _, sub := range p.subpaths() {
		w += winding(sub, pt)
	}
	return w != 0
}

// Transform applies a transformation matrix to all points in the path.
func (p *Path) Transform(m Matrix) Geometry {
	result := NewPath()
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			pt := m.TransformPoint(e.Point)
			result.MoveTo(pt.X, pt.Y)
		case LineTo:
			pt := m.TransformPoint(e.Point)
			result.LineTo(pt.X, pt.Y)
		case QuadTo:
			ctrl := m.TransformPoint(e.Control)
			pt := m.TransformPoint(e.Point)
			result.QuadraticTo(ctrl.X, ctrl.Y, pt.X, pt.Y)
		case CubicTo:
			ctrl1 := m.TransformPoint(e.Control1)
			ctrl2 := m.TransformPoint(e.Control2)
			pt := m.TransformPoint(e.Point)
			result.CubicTo(ctrl1.X, ctrl1.Y, ctrl2.X, ctrl2.Y, pt.X, pt.Y)
		case Close:
			result.Close()
		}
	}
	return result
}

// subpaths splits the path into closed segment loops.
func (p *Path) subpaths() [][]Segment {
	var (
		subs           [][]Segment
		cur            []Segment
		start, current Point
	)
	flush := func() {
		if len(cur) > 0 {
			if !current.Equal(start, 0) {
				cur = append(cur, Line{P0: current, P1: start})
			}
			subs = append(subs, cur)
		}
		cur = nil
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			flush()
			start, current = e.Point, e.Point
		case LineTo:
			cur = append(cur, Line{P0: current, P1: e.Point})
			current = e.Point
		case QuadTo:
			cur = append(cur, QuadBez{P0: current, P1: e.Control, P2: e.Point})
			current = e.Point
		case CubicTo:
			cur = append(cur, CubicBez{P0: current, P1: e.Control1, P2: e.Control2, P3: e.Point})
			current = e.Point
		case Close:
			flush()
			current = start
		}
	}
	flush()
	return subs
}
