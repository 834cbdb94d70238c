package connection

import (
	"fmt"

	"github.com/gogpu/gef"
	"github.com/gogpu/gef/anchor"
	"github.com/gogpu/gef/geom"
	"github.com/gogpu/gef/scene"
)

// Roles of the connection ends in anchor keys.
const (
	RoleStart = "start"
	RoleEnd   = "end"
)

// end is one anchored end of a connection.
type end struct {
	key     anchor.Key
	anchor  anchor.Anchor
	unwatch func()
}

// Connection is a scene node linking a start and an end anchor.
type Connection struct {
	node      *scene.Node
	start     end
	end       end
	wayPoints []geom.Point
	curved    bool
	helper    *ChopBoxHelper
}

// New creates an unconnected connection.
func New(id string) *Connection {
	c := &Connection{node: scene.NewGeometryNode(id, geom.NewPolyline())}
	c.start.key = anchor.Key{Anchored: c.node, Role: RoleStart}
	c.end.key = anchor.Key{Anchored: c.node, Role: RoleEnd}
	c.helper = newChopBoxHelper(c)
	c.node.OnChange(func(ch scene.Change) {
		if ch.Kind.MovesScene() {
			c.helper.refresh()
		}
	})
	return c
}

// Node returns the scene node displaying the connection.
func (c *Connection) Node() *scene.Node { return c.node }

// ID returns the node identifier.
func (c *Connection) ID() string { return c.node.ID() }

// Helper returns the reference point provider given to the anchors.
func (c *Connection) Helper() *ChopBoxHelper { return c.helper }

// StartKey returns the anchor key of the start.
func (c *Connection) StartKey() anchor.Key { return c.start.key }

// EndKey returns the anchor key of the end.
func (c *Connection) EndKey() anchor.Key { return c.end.key }

// StartAnchor returns the start anchor, or nil.
func (c *Connection) StartAnchor() anchor.Anchor { return c.start.anchor }

// EndAnchor returns the end anchor, or nil.
func (c *Connection) EndAnchor() anchor.Anchor { return c.end.anchor }

// SetStartAnchor detaches the start from its current anchor and attaches
// it to a. A nil anchor leaves the start unconnected.
func (c *Connection) SetStartAnchor(a anchor.Anchor) error {
	return c.setAnchor(&c.start, a)
}

// SetEndAnchor detaches the end from its current anchor and attaches it
// to a. A nil anchor leaves the end unconnected.
func (c *Connection) SetEndAnchor(a anchor.Anchor) error {
	return c.setAnchor(&c.end, a)
}

// Disconnect detaches both ends.
func (c *Connection) Disconnect() error {
	if err := c.setAnchor(&c.start, nil); err != nil {
		return err
	}
	return c.setAnchor(&c.end, nil)
}

func (c *Connection) setAnchor(e *end, a anchor.Anchor) error {
	if e.anchor != nil {
		if err := e.anchor.Detach(e.key, c.helper); err != nil {
			gef.Logger().Warn("connection: detach failed",
				"connection", c.ID(), "role", e.key.Role, "err", err)
			return fmt.Errorf("connection %s: detach %s: %w", c.ID(), e.key.Role, err)
		}
		e.unwatch()
		e.anchor, e.unwatch = nil, nil
	}
	if a == nil {
		c.helper.refresh()
		c.refreshGeometry()
		return nil
	}

	e.anchor = a
	c.helper.refresh()

	key := e.key
	e.unwatch = a.OnPositionChange(func(pc anchor.PositionChange) {
		if pc.Key == key {
			c.positionChanged()
		}
	})
	if err := a.Attach(key, c.helper); err != nil {
		e.unwatch()
		e.anchor, e.unwatch = nil, nil
		c.helper.refresh()
		gef.Logger().Warn("connection: end not anchored",
			"connection", c.ID(), "role", key.Role, "anchorage", a.Anchorage().ID(), "err", err)
		return fmt.Errorf("connection %s: attach %s: %w", c.ID(), key.Role, err)
	}
	c.refreshGeometry()
	return nil
}

func (c *Connection) positionChanged() {
	c.helper.refresh()
	c.refreshGeometry()
}

// StartPoint returns the start position in connection coordinates.
func (c *Connection) StartPoint() (geom.Point, bool) { return c.position(&c.start) }

// EndPoint returns the end position in connection coordinates.
func (c *Connection) EndPoint() (geom.Point, bool) { return c.position(&c.end) }

func (c *Connection) position(e *end) (geom.Point, bool) {
	if e.anchor == nil {
		return geom.Point{}, false
	}
	return e.anchor.Position(e.key)
}

// WayPoints returns a copy of the way points.
func (c *Connection) WayPoints() []geom.Point {
	pts := make([]geom.Point, len(c.wayPoints))
	copy(pts, c.wayPoints)
	return pts
}

// SetWayPoints replaces the way points, given in connection coordinates.
func (c *Connection) SetWayPoints(pts ...geom.Point) {
	c.wayPoints = append(c.wayPoints[:0:0], pts...)
	c.helper.refresh()
	c.refreshGeometry()
}

// AddWayPoint inserts p before the way point at index i. An index past the
// end appends.
func (c *Connection) AddWayPoint(i int, p geom.Point) {
	i = max(0, min(i, len(c.wayPoints)))
	pts := make([]geom.Point, 0, len(c.wayPoints)+1)
	pts = append(pts, c.wayPoints[:i]...)
	pts = append(pts, p)
	pts = append(pts, c.wayPoints[i:]...)
	c.SetWayPoints(pts...)
}

// Curved reports whether the connection is drawn as a smooth curve.
func (c *Connection) Curved() bool { return c.curved }

// SetCurved switches between a polyline and a smooth curve through the
// points.
func (c *Connection) SetCurved(curved bool) {
	if c.curved == curved {
		return
	}
	c.curved = curved
	c.refreshGeometry()
}

// Points returns the start position, the way points and the end position,
// skipping unconnected ends.
func (c *Connection) Points() []geom.Point {
	pts := make([]geom.Point, 0, len(c.wayPoints)+2)
	if p, ok := c.StartPoint(); ok {
		pts = append(pts, p)
	}
	pts = append(pts, c.wayPoints...)
	if p, ok := c.EndPoint(); ok {
		pts = append(pts, p)
	}
	return pts
}

// Curve returns the connection geometry.
func (c *Connection) Curve() geom.Curve {
	return c.node.Geometry().(geom.Curve)
}

func (c *Connection) refreshGeometry() {
	pts := c.Points()
	if c.curved {
		c.node.SetGeometry(geom.InterpolateCubic(pts...))
		return
	}
	c.node.SetGeometry(geom.NewPolyline(pts...))
}
