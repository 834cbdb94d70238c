// Package anchor computes positions where anchored elements, typically
// connection ends, meet their anchorage.
//
// # Anchors
//
// An [Anchor] belongs to one anchorage node and keeps one position per
// attached [Key]. Positions are expressed in the anchored node's local
// coordinates and recomputed whenever the anchorage or the anchored node
// moves. [Static] places every key at a fixed point of the anchorage.
// [ChopBox] places each key where the line between the anchorage's
// reference point and the key's reference point crosses the anchorage
// outline.
//
// # Reference points
//
// ChopBox reads reference points from the [ReferencePointProvider] passed
// as info to [ChopBox.Attach]. Each provider owns an observable
// [ReferencePoints] map; putting a new point for an attached key makes the
// anchor recompute that key's position.
//
//	a := anchor.NewChopBox(box)
//	refs := anchor.NewPointProvider()
//	refs.Put(key, geom.Pt(300, 30))
//	if err := a.Attach(key, refs); err != nil {
//		return err
//	}
//	a.OnPositionChange(func(c anchor.PositionChange) {
//		fmt.Println(c.Key, c.Position)
//	})
//	refs.Put(key, geom.Pt(300, 200)) // prints the new position
//
// # Concurrency
//
// Anchors are driven by scene and reference-point notifications on a single
// goroutine and are not safe for concurrent use.
package anchor
