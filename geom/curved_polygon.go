package geom

import "math"

// CurvedPolygon is a closed shape bounded by a sequence of Bezier segments.
// Each segment should start where the previous one ends.
type CurvedPolygon struct {
	segments []Segment
}

// NewCurvedPolygon creates a curved polygon from its outline segments.
func NewCurvedPolygon(segments ...Segment) *CurvedPolygon {
	segs := make([]Segment, len(segments))
	copy(segs, segments)
	return &CurvedPolygon{segments: segs}
}

// RoundedRectangle creates a rectangle with corners rounded by radius r.
// The radius is clamped to half of the smaller dimension.
func RoundedRectangle(x, y, w, h, r float64) *CurvedPolygon {
	r = math.Max(0, math.Min(r, math.Min(w, h)/2))
	if r == 0 {
		return NewCurvedPolygon(NewRectangle(x, y, w, h).OutlineSegments()...)
	}

	corner := func(cx, cy, start float64) Segment {
		arc := NewCircle(cx, cy, r)
		t1 := start + math.Pi/2
		p0, p3 := arc.Eval(start), arc.Eval(t1)
		return CubicBez{
			P0: p0,
			P1: p0.Add(arc.tangent(start).Mul(kappa)),
			P2: p3.Sub(arc.tangent(t1).Mul(kappa)),
			P3: p3,
		}
	}

	segs := []Segment{
		NewLine(Pt(x+r, y), Pt(x+w-r, y)),
		corner(x+w-r, y+r, -math.Pi/2),
		NewLine(Pt(x+w, y+r), Pt(x+w, y+h-r)),
		corner(x+w-r, y+h-r, 0),
		NewLine(Pt(x+w-r, y+h), Pt(x+r, y+h)),
		corner(x+r, y+h-r, math.Pi/2),
		NewLine(Pt(x, y+h-r), Pt(x, y+r)),
		corner(x+r, y+r, math.Pi),
	}
	return &CurvedPolygon{segments: segs}
}

// Kind implements Geometry.
func (p *CurvedPolygon) Kind() Kind { return KindShape }

// Bounds implements Geometry.
func (p *CurvedPolygon) Bounds() Rect { return segmentBounds(p.segments) }

// Contains implements Geometry.
func (p *CurvedPolygon) Contains(pt Point) bool {
	return outlineContains(p.segments, pt) || winding(p.segments, pt) != 0
}

// Transform implements Geometry.
func (p *CurvedPolygon) Transform(m Matrix) Geometry {
	return &CurvedPolygon{segments: transformSegments(p.segments, m)}
}

// OutlineSegments implements Shape.
func (p *CurvedPolygon) OutlineSegments() []Segment {
	segs := make([]Segment, len(p.segments))
	copy(segs, p.segments)
	return segs
}

// Outline implements Shape.
func (p *CurvedPolygon) Outline() Curve {
	return &PolyBezier{segments: p.OutlineSegments()}
}
