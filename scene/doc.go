// Package scene provides the node hierarchy that anchors observe.
//
// A [Node] has a local transform into its parent's coordinate system, an
// optional [geom.Geometry] in its local coordinates, and layout bounds.
// Composing the transforms from the root down gives the local-to-scene
// transform; scene coordinates are the root's local coordinates.
//
// Nodes report changes through [Node.OnChange]. A transform or hierarchy
// change moves a whole subtree, so it is reported to the node and to every
// descendant. Geometry and layout-bounds changes are reported to the node
// only.
//
//	root := scene.New("root")
//	box := scene.NewGeometryNode("box", geom.NewRectangle(0, 0, 100, 60))
//	root.Add(box)
//	box.Relocate(200, 50)
//	box.LocalToScene(geom.Pt(0, 0)) // (200, 50)
package scene
