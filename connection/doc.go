// Package connection provides scene nodes that link two anchors.
//
// A [Connection] is a node whose geometry is a polyline, or a smooth curve,
// through its start position, its way points and its end position. The
// start and end positions come from anchors; the connection recomputes its
// geometry whenever one of them moves.
//
//	c := connection.New("edge")
//	root.Add(c.Node())
//	_ = c.SetStartAnchor(anchor.NewChopBox(a))
//	_ = c.SetEndAnchor(anchor.NewChopBox(b))
//	c.Points() // [on a's outline, on b's outline]
package connection
