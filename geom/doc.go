// Package geom provides the planar geometry used to compute anchor
// positions: points, affine matrices, Bezier segments, polynomial root
// solvers and a small family of shapes and curves.
//
// # Geometry kinds
//
// Every [Geometry] reports a [Kind]. Code that needs outlines switches on
// the kind instead of probing for concrete types:
//
//	switch g.Kind() {
//	case geom.KindShape:
//		outline := g.(geom.Shape).Outline()
//	case geom.KindCurve:
//		outline := g.(geom.Curve)
//	case geom.KindPath:
//		// paths have no single outline
//	}
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// # Intersections
//
// [NearestIntersection] intersects a curve with a line segment and picks
// the intersection closest to a reference point. Lines are intersected in
// closed form; quadratic and cubic segments by solving for the roots of
// their signed distance to the line.
package geom
