package geom

import "math"

// kappa places cubic control points for a quarter ellipse.
const kappa = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)

// Ellipse is the image of the unit circle under an affine map:
//
//	E(θ) = Center + U·cos θ + V·sin θ
//
// Keeping the conjugate semi-axes U and V makes every affine image of an
// ellipse an Ellipse again.
type Ellipse struct {
	Center Point
	U, V   Point
}

// NewEllipse creates the axis-aligned ellipse inscribed in (x, y, w, h).
func NewEllipse(x, y, w, h float64) Ellipse {
	return Ellipse{
		Center: Point{X: x + w/2, Y: y + h/2},
		U:      Point{X: w / 2},
		V:      Point{Y: h / 2},
	}
}

// NewCircle creates a circle of radius r around (cx, cy).
func NewCircle(cx, cy, r float64) Ellipse {
	return Ellipse{Center: Point{X: cx, Y: cy}, U: Point{X: r}, V: Point{Y: r}}
}

// Eval returns the outline point at angle theta.
func (e Ellipse) Eval(theta float64) Point {
	sin, cos := math.Sincos(theta)
	return e.Center.Add(e.U.Mul(cos)).Add(e.V.Mul(sin))
}

// toUnit maps the ellipse's affine frame so that the ellipse becomes the
// unit circle. It reports false for degenerate ellipses.
func (e Ellipse) toUnit() (Matrix, bool) {
	frame := Matrix{A: e.U.X, B: e.V.X, C: e.Center.X, D: e.U.Y, E: e.V.Y, F: e.Center.Y}
	if math.Abs(frame.Determinant()) < 1e-10 {
		return Matrix{}, false
	}
	return frame.Invert(), true
}

// Kind implements Geometry.
func (e Ellipse) Kind() Kind { return KindShape }

// Bounds implements Geometry.
func (e Ellipse) Bounds() Rect {
	ex := math.Hypot(e.U.X, e.V.X)
	ey := math.Hypot(e.U.Y, e.V.Y)
	return Rect{
		Min: Point{X: e.Center.X - ex, Y: e.Center.Y - ey},
		Max: Point{X: e.Center.X + ex, Y: e.Center.Y + ey},
	}
}

// Contains implements Geometry.
func (e Ellipse) Contains(p Point) bool {
	inv, ok := e.toUnit()
	if !ok {
		return outlineContains(e.OutlineSegments(), p)
	}
	return inv.TransformPoint(p).Length() <= 1+Tolerance
}

// Transform implements Geometry.
func (e Ellipse) Transform(m Matrix) Geometry {
	return e.transform(m)
}

func (e Ellipse) transform(m Matrix) Ellipse {
	return Ellipse{
		Center: m.TransformPoint(e.Center),
		U:      m.TransformVector(e.U),
		V:      m.TransformVector(e.V),
	}
}

// OutlineSegments approximates the outline by four cubic segments that
// start at θ = 0, π/2, π and 3π/2. The start points lie exactly on the ellipse.
func (e Ellipse) OutlineSegments() []Segment {
	segs := make([]Segment, 4)
	for i := range segs {
		t0 := float64(i) * math.Pi / 2
		t1 := t0 + math.Pi/2
		p0, p3 := e.Eval(t0), e.Eval(t1)
		segs[i] = CubicBez{
			P0: p0,
			P1: p0.Add(e.tangent(t0).Mul(kappa)),
			P2: p3.Sub(e.tangent(t1).Mul(kappa)),
			P3: p3,
		}
	}
	return segs
}

func (e Ellipse) tangent(theta float64) Point {
	sin, cos := math.Sincos(theta)
	return e.V.Mul(cos).Sub(e.U.Mul(sin))
}

// Outline returns the closed outline curve. Its line intersections are
// computed exactly rather than on the Bezier approximation.
func (e Ellipse) Outline() Curve {
	return ellipseOutline{e: e}
}

type ellipseOutline struct {
	e Ellipse
}

func (o ellipseOutline) Kind() Kind          { return KindCurve }
func (o ellipseOutline) Bounds() Rect        { return o.e.Bounds() }
func (o ellipseOutline) Start() Point        { return o.e.Eval(0) }
func (o ellipseOutline) End() Point          { return o.e.Eval(0) }
func (o ellipseOutline) ToBezier() []Segment { return o.e.OutlineSegments() }

func (o ellipseOutline) Transform(m Matrix) Geometry {
	return ellipseOutline{e: o.e.transform(m)}
}

func (o ellipseOutline) Contains(p Point) bool {
	inv, ok := o.e.toUnit()
	if !ok {
		return outlineContains(o.e.OutlineSegments(), p)
	}
	return math.Abs(inv.TransformPoint(p).Length()-1) <= Tolerance
}

// LineIntersections maps l into the unit-circle frame, where the
// intersection reduces to a quadratic in the line parameter.
func (o ellipseOutline) LineIntersections(l Line) []Point {
	inv, ok := o.e.toUnit()
	if !ok {
		return curveLineIntersections(o.e.OutlineSegments(), l)
	}
	a := inv.TransformPoint(l.P0)
	d := inv.TransformPoint(l.P1).Sub(a)
	if d.LengthSquared() == 0 {
		return nil
	}

	var pts []Point
	for _, t := range SolveQuadraticInUnitInterval(d.Dot(d), 2*a.Dot(d), a.Dot(a)-1) {
		pts = appendUnique(pts, l.Eval(t))
	}
	return pts
}
