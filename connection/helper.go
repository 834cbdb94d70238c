package connection

import (
	"github.com/gogpu/gef/anchor"
	"github.com/gogpu/gef/geom"
)

// ChopBoxHelper provides the reference points of a connection's ends.
//
// The reference point of the start is the first way point and that of the
// end is the last one. Without way points, an end refers to the opposite
// end: to the center of the opposite anchorage if the opposite anchor is a
// ChopBox, otherwise to the opposite position. An end with nothing to
// refer to uses the center of its own anchorage.
type ChopBoxHelper struct {
	conn   *Connection
	points anchor.ReferencePoints
}

var _ anchor.ReferencePointProvider = (*ChopBoxHelper)(nil)

func newChopBoxHelper(c *Connection) *ChopBoxHelper {
	return &ChopBoxHelper{conn: c}
}

// ReferencePoints implements anchor.ReferencePointProvider.
func (h *ChopBoxHelper) ReferencePoints() *anchor.ReferencePoints { return &h.points }

// refresh recomputes both reference points and drops those of ends that
// have nothing to refer to. Anchors attached with h
// recompute their positions for points that changed.
func (h *ChopBoxHelper) refresh() {
	c := h.conn
	h.put(&c.start, &c.end, func(wp []geom.Point) geom.Point { return wp[0] })
	h.put(&c.end, &c.start, func(wp []geom.Point) geom.Point { return wp[len(wp)-1] })
}

func (h *ChopBoxHelper) put(e, opposite *end, wayPoint func([]geom.Point) geom.Point) {
	if p, ok := h.referencePoint(e, opposite, wayPoint); ok {
		h.points.Put(e.key, p)
		return
	}
	h.points.Remove(e.key)
}

func (h *ChopBoxHelper) referencePoint(e, opposite *end, wayPoint func([]geom.Point) geom.Point) (geom.Point, bool) {
	c := h.conn
	if len(c.wayPoints) > 0 {
		return wayPoint(c.wayPoints), true
	}
	if opposite.anchor != nil {
		if _, ok := opposite.anchor.(*anchor.ChopBox); ok {
			return h.anchorageCenter(opposite.anchor), true
		}
		if p, ok := opposite.anchor.Position(opposite.key); ok {
			return p, true
		}
	}
	if e.anchor != nil {
		return h.anchorageCenter(e.anchor), true
	}
	return geom.Point{}, false
}

// anchorageCenter returns the center of a's anchorage layout bounds in
// connection coordinates.
func (h *ChopBoxHelper) anchorageCenter(a anchor.Anchor) geom.Point {
	n := a.Anchorage()
	return h.conn.node.SceneToLocal(n.LocalToScene(n.LayoutBounds().Center()))
}
