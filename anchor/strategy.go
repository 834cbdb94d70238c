package anchor

import (
	"fmt"

	"github.com/gogpu/gef"
	"github.com/gogpu/gef/geom"
	"github.com/gogpu/gef/scene"
)

// ComputationStrategy maps a reference point of an anchored node to a
// position in scene coordinates.
type ComputationStrategy interface {
	// ComputePositionInScene returns the position for an anchored node whose
	// reference point ref is given in the anchored node's local coordinates.
	ComputePositionInScene(anchorage, anchored *scene.Node, ref geom.Point) (geom.Point, error)
}

// OutlineStrategy is the default ComputationStrategy. It intersects the
// line from the anchorage reference point to the anchored reference point
// with the anchorage outline and returns the intersection nearest to the
// anchored reference point. Without an intersection it returns the
// anchorage reference point.
type OutlineStrategy struct {
	// ReferenceGeometry derives the anchorage geometry in local coordinates.
	// If nil, AnchorageGeometry is used.
	ReferenceGeometry func(anchorage *scene.Node) geom.Geometry
}

// ComputePositionInScene implements ComputationStrategy.
func (s OutlineStrategy) ComputePositionInScene(anchorage, anchored *scene.Node, ref geom.Point) (geom.Point, error) {
	local := s.referenceGeometry(anchorage)

	anchorageRef, err := AnchorageReferencePoint(local)
	if err != nil {
		return geom.Point{}, err
	}

	toScene := anchorage.LocalToSceneTransform()
	anchorageRefInScene := toScene.TransformPoint(anchorageRef)
	anchoredRefInScene := anchored.LocalToScene(ref)

	outline, err := Outline(local.Transform(toScene))
	if err != nil {
		return geom.Point{}, err
	}

	line := geom.NewLine(anchorageRefInScene, anchoredRefInScene)
	if p, ok := geom.NearestIntersection(outline, line, anchoredRefInScene); ok {
		return p, nil
	}
	gef.Logger().Debug("anchor: no outline intersection, using anchorage reference point",
		"anchorage", anchorage.ID(), "anchored", anchored.ID(), "position", anchorageRefInScene.String())
	return anchorageRefInScene, nil
}

func (s OutlineStrategy) referenceGeometry(anchorage *scene.Node) geom.Geometry {
	if s.ReferenceGeometry != nil {
		if g := s.ReferenceGeometry(anchorage); g != nil {
			return g
		}
	}
	return AnchorageGeometry(anchorage)
}

// AnchorageGeometry returns the node geometry if it is a shape or a curve,
// otherwise a rectangle of the node's layout bounds.
func AnchorageGeometry(anchorage *scene.Node) geom.Geometry {
	g := anchorage.Geometry()
	if g != nil {
		switch g.Kind() {
		case geom.KindShape, geom.KindCurve:
			return g
		case geom.KindPath:
		}
	}
	return geom.RectangleFromRect(anchorage.LayoutBounds())
}

// AnchorageReferencePoint returns the point of g that connecting lines
// start from: the center of the bounds if g contains it. Otherwise it is
// the outline vertex nearest to that center for shapes, and the middle of
// the middle Bezier segment for curves.
func AnchorageReferencePoint(g geom.Geometry) (geom.Point, error) {
	center := g.Bounds().Center()

	switch g.Kind() {
	case geom.KindShape:
		shape, ok := g.(geom.Shape)
		if !ok {
			return geom.Point{}, fmt.Errorf("%w: %T", ErrUnsupportedGeometry, g)
		}
		if shape.Contains(center) {
			return center, nil
		}
		v, ok := nearestVertex(center, shape)
		if !ok {
			return geom.Point{}, ErrNoVertices
		}
		return v, nil

	case geom.KindCurve:
		curve, ok := g.(geom.Curve)
		if !ok {
			return geom.Point{}, fmt.Errorf("%w: %T", ErrUnsupportedGeometry, g)
		}
		if curve.Contains(center) {
			return center, nil
		}
		segs := curve.ToBezier()
		if len(segs) == 0 {
			return center, nil
		}
		return segs[len(segs)/2].Eval(0.5), nil

	case geom.KindPath:
		return geom.Point{}, fmt.Errorf("%w: path", ErrUnsupportedGeometry)

	default:
		return geom.Point{}, fmt.Errorf("%w: kind %v", ErrUnsupportedGeometry, g.Kind())
	}
}

// Outline returns the outline of a shape, or the curve itself.
func Outline(g geom.Geometry) (geom.Curve, error) {
	switch g.Kind() {
	case geom.KindShape:
		if shape, ok := g.(geom.Shape); ok {
			return shape.Outline(), nil
		}
	case geom.KindCurve:
		if curve, ok := g.(geom.Curve); ok {
			return curve, nil
		}
	case geom.KindPath:
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedGeometry, g.Kind())
}

// nearestVertex returns the start point of the outline segment closest to
// p. Ties go to the earlier segment.
func nearestVertex(p geom.Point, s geom.Shape) (geom.Point, bool) {
	segs := s.OutlineSegments()
	if len(segs) == 0 {
		return geom.Point{}, false
	}
	nearest := segs[0].Start()
	minDist := p.Distance(nearest)
	for _, seg := range segs[1:] {
		v := seg.Start()
		if d := p.Distance(v); d < minDist {
			nearest, minDist = v, d
		}
	}
	return nearest, true
}
