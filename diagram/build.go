package diagram

import (
	"fmt"
	"slices"

	"github.com/gogpu/gef"
	"github.com/gogpu/gef/anchor"
	"github.com/gogpu/gef/connection"
	"github.com/gogpu/gef/geom"
	"github.com/gogpu/gef/scene"
)

// Diagram is a built document: a scene with one node per node spec and one
// connection per connection spec, all below Root.
type Diagram struct {
	Root        *scene.Node
	Nodes       map[string]*scene.Node
	Connections []*connection.Connection
	Styles      map[string]Style
	Document    *Document

	anchors map[string]*anchor.ChopBox
}

// Build creates the scene described by d. Connections are attached in
// document order; all of their anchors share one chop-box anchor per
// anchorage.
func (d *Document) Build() (*Diagram, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	dia := &Diagram{
		Root:     scene.New("root"),
		Nodes:    make(map[string]*scene.Node, len(d.Nodes)),
		Styles:   make(map[string]Style, len(d.Nodes)+len(d.Connections)),
		Document: d,
		anchors:  make(map[string]*anchor.ChopBox),
	}

	for _, spec := range d.Nodes {
		g, err := spec.Geometry()
		if err != nil {
			return nil, err
		}
		n := scene.NewGeometryNode(spec.ID, g)
		n.SetTransform(spec.Transform())
		dia.Nodes[spec.ID] = n
		dia.Styles[spec.ID] = spec.Style
	}
	for _, spec := range d.Nodes {
		parent := dia.Root
		if spec.Parent != "" {
			parent = dia.Nodes[spec.Parent]
		}
		parent.Add(dia.Nodes[spec.ID])
	}

	// create all connection nodes first so connections can end on each other
	conns := make(map[string]*connection.Connection, len(d.Connections))
	for _, spec := range d.Connections {
		c := connection.New(spec.ID)
		conns[spec.ID] = c
		dia.Root.Add(c.Node())
		dia.Connections = append(dia.Connections, c)
		dia.Styles[spec.ID] = spec.Style
	}
	for _, spec := range d.Connections {
		c := conns[spec.ID]
		c.SetWayPoints(vecPoints(spec.WayPoints)...)
		c.SetCurved(spec.Curved)

		start, err := dia.anchorFor(spec.From, conns)
		if err != nil {
			return nil, err
		}
		if err := c.SetStartAnchor(start); err != nil {
			return nil, fmt.Errorf("diagram: %w", err)
		}
		end, err := dia.anchorFor(spec.To, conns)
		if err != nil {
			return nil, err
		}
		if err := c.SetEndAnchor(end); err != nil {
			return nil, fmt.Errorf("diagram: %w", err)
		}
	}

	gef.Logger().Info("diagram: built",
		"nodes", len(dia.Nodes), "connections", len(dia.Connections))
	return dia, nil
}

func (dia *Diagram) anchorFor(e Endpoint, conns map[string]*connection.Connection) (anchor.Anchor, error) {
	if e.Point != nil {
		return anchor.NewStatic(dia.Root, e.Point.Point()), nil
	}
	if a, ok := dia.anchors[e.Ref]; ok {
		return a, nil
	}
	n, ok := dia.Nodes[e.Ref]
	if !ok {
		c, ok := conns[e.Ref]
		if !ok {
			return nil, invalid("unknown endpoint %q", e.Ref)
		}
		n = c.Node()
	}
	a := anchor.NewChopBox(n)
	dia.anchors[e.Ref] = a
	return a, nil
}

func vecPoints(vs []Vec) []geom.Point {
	pts := make([]geom.Point, len(vs))
	for i, v := range vs {
		pts[i] = v.Point()
	}
	return pts
}

// Node returns the node with the given id.
func (dia *Diagram) Node(id string) (*scene.Node, bool) {
	n, ok := dia.Nodes[id]
	return n, ok
}

// Connection returns the connection with the given id.
func (dia *Diagram) Connection(id string) (*connection.Connection, bool) {
	i := slices.IndexFunc(dia.Connections, func(c *connection.Connection) bool { return c.ID() == id })
	if i < 0 {
		return nil, false
	}
	return dia.Connections[i], true
}

// Anchor returns the chop-box anchor created for the node or connection
// with the given id, if any connection ends there.
func (dia *Diagram) Anchor(id string) (*anchor.ChopBox, bool) {
	a, ok := dia.anchors[id]
	return a, ok
}

// Route is the scene-space course of a connection.
type Route struct {
	ID     string  `yaml:"id"`
	Start  Vec     `yaml:"start"`
	End    Vec     `yaml:"end"`
	Points []Vec   `yaml:"points,flow"`
	Length float64 `yaml:"length"`
}

// Routes returns the routes of all connections in document order. Points
// are in scene coordinates.
func (dia *Diagram) Routes() []Route {
	routes := make([]Route, 0, len(dia.Connections))
	for _, c := range dia.Connections {
		r := Route{ID: c.ID()}
		var prev geom.Point
		for i, p := range c.Points() {
			s := c.Node().LocalToScene(p)
			r.Points = append(r.Points, Vec{s.X, s.Y})
			if i > 0 {
				r.Length += s.Distance(prev)
			}
			prev = s
		}
		if len(r.Points) > 0 {
			r.Start, r.End = r.Points[0], r.Points[len(r.Points)-1]
		}
		routes = append(routes, r)
	}
	return routes
}
