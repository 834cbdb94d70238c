// Package gef computes where diagram connections meet the elements they
// connect.
//
// # Overview
//
// A connection end is attached to an anchor. The anchor belongs to an
// anchorage, the scene node the connection ends at, and computes one
// position per attached end. The chop-box anchor places the position on the
// anchorage's outline, where the line from the anchorage's reference point
// to the connection's reference point crosses it:
//
//	root := scene.New("root")
//	box := scene.NewGeometryNode("box", geom.NewRectangle(0, 0, 100, 60))
//	root.Add(box)
//
//	a := anchor.NewChopBox(box)
//	refs := anchor.NewPointProvider()
//	key := anchor.Key{Anchored: line, Role: "start"}
//	refs.Put(key, geom.Pt(300, 30))
//	_ = a.Attach(key, refs)
//	pos, _ := a.Position(key) // (100, 30) in line's coordinates
//
// Positions are recomputed whenever a reference point changes or the
// anchorage moves; subscribe with [anchor.Anchor.OnPositionChange].
//
// # Packages
//
//   - geom: points, matrices, Bezier segments, shapes, curves and paths
//   - scene: the node hierarchy anchors observe
//   - anchor: anchors, computation strategies, reference-point providers
//   - connection: anchored polylines and curves
//   - diagram: YAML diagram files
//   - render: rasterising diagrams with gg
//
// # Coordinate System
//
// Uses the usual raster coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians
//
// # Concurrency
//
// Scenes and anchors are not safe for concurrent use. Change notifications
// are delivered synchronously on the goroutine that made the change.
package gef

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
