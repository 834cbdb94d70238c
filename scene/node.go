package scene

import (
	"fmt"

	"github.com/gogpu/gef/geom"
	"github.com/gogpu/gef/internal/notify"
)

// ChangeKind describes what changed about a node.
type ChangeKind int

const (
	// ChangeTransform means the local-to-scene transform changed: the node's
	// own transform or the transform of an ancestor.
	ChangeTransform ChangeKind = iota + 1
	// ChangeHierarchy means the node or an ancestor was added to or removed
	// from a parent.
	ChangeHierarchy
	// ChangeGeometry means the node's geometry was replaced.
	ChangeGeometry
	// ChangeLayoutBounds means the node's layout bounds changed.
	ChangeLayoutBounds
)

// String returns the change kind name.
func (k ChangeKind) String() string {
	switch k {
	case ChangeTransform:
		return "transform"
	case ChangeHierarchy:
		return "hierarchy"
	case ChangeGeometry:
		return "geometry"
	case ChangeLayoutBounds:
		return "layout-bounds"
	default:
		return "unknown"
	}
}

// MovesScene reports whether the change can move the node in scene
// coordinates.
func (k ChangeKind) MovesScene() bool {
	return k == ChangeTransform || k == ChangeHierarchy
}

// Change is delivered to OnChange listeners.
type Change struct {
	// Node is the node the listener is registered on.
	Node *Node
	// Source is the node that was modified. It is Node itself or, for
	// transform and hierarchy changes, an ancestor.
	Source *Node
	Kind   ChangeKind
}

// Node is an element of the scene graph.
type Node struct {
	id        string
	parent    *Node
	children  []*Node
	transform geom.Matrix
	geometry  geom.Geometry

	layoutBounds    geom.Rect
	hasLayoutBounds bool

	listeners notify.Listeners[Change]
}

// New creates an empty node with an identity transform.
func New(id string) *Node {
	return &Node{id: id, transform: geom.Identity()}
}

// NewGeometryNode creates a node displaying g.
func NewGeometryNode(id string, g geom.Geometry) *Node {
	n := New(id)
	n.geometry = g
	return n
}

// ID returns the identifier given at creation.
func (n *Node) ID() string { return n.id }

// String returns the node identifier.
func (n *Node) String() string { return n.id }

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	c := make([]*Node, len(n.children))
	copy(c, n.children)
	return c
}

// Add appends children to n. A child that already has a parent is moved.
// Add panics if a child is n or one of its ancestors.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		for a := n; a != nil; a = a.parent {
			if a == c {
				panic(fmt.Sprintf("scene: adding %q to %q would create a cycle", c.id, n.id))
			}
		}
		if c.parent != nil {
			c.parent.detachChild(c)
		}
		c.parent = n
		n.children = append(n.children, c)
		c.fireSubtree(c, ChangeHierarchy)
	}
}

// Remove removes child from n. It reports whether child was a child of n.
func (n *Node) Remove(child *Node) bool {
	if child == nil || child.parent != n {
		return false
	}
	n.detachChild(child)
	child.parent = nil
	child.fireSubtree(child, ChangeHierarchy)
	return true
}

func (n *Node) detachChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i:i], n.children[i+1:]...)
			return
		}
	}
}

// Transform returns the local transform into the parent's coordinates.
func (n *Node) Transform() geom.Matrix { return n.transform }

// SetTransform replaces the local transform.
func (n *Node) SetTransform(m geom.Matrix) {
	if m == n.transform {
		return
	}
	n.transform = m
	n.fireSubtree(n, ChangeTransform)
}

// Relocate sets the translation of the local transform to (x, y), keeping
// its linear part.
func (n *Node) Relocate(x, y float64) {
	m := n.transform
	m.C, m.F = x, y
	n.SetTransform(m)
}

// Geometry returns the node's geometry in local coordinates, or nil.
func (n *Node) Geometry() geom.Geometry { return n.geometry }

// SetGeometry replaces the geometry. Passing nil removes it.
func (n *Node) SetGeometry(g geom.Geometry) {
	n.geometry = g
	n.fire(Change{Node: n, Source: n, Kind: ChangeGeometry})
}

// LayoutBounds returns the bounds used for layout in local coordinates:
// the bounds set with SetLayoutBounds, otherwise the geometry bounds,
// otherwise an empty rectangle at the origin.
func (n *Node) LayoutBounds() geom.Rect {
	switch {
	case n.hasLayoutBounds:
		return n.layoutBounds
	case n.geometry != nil:
		return n.geometry.Bounds()
	default:
		return geom.Rect{}
	}
}

// SetLayoutBounds overrides the layout bounds.
func (n *Node) SetLayoutBounds(r geom.Rect) {
	if n.hasLayoutBounds && r == n.layoutBounds {
		return
	}
	n.layoutBounds, n.hasLayoutBounds = r, true
	n.fire(Change{Node: n, Source: n, Kind: ChangeLayoutBounds})
}

// LocalToSceneTransform returns the product of all transforms from the
// root down to n.
func (n *Node) LocalToSceneTransform() geom.Matrix {
	m := n.transform
	for p := n.parent; p != nil; p = p.parent {
		m = p.transform.Multiply(m)
	}
	return m
}

// LocalToScene maps p from local to scene coordinates.
func (n *Node) LocalToScene(p geom.Point) geom.Point {
	return n.LocalToSceneTransform().TransformPoint(p)
}

// SceneToLocal maps p from scene to local coordinates.
func (n *Node) SceneToLocal(p geom.Point) geom.Point {
	return n.LocalToSceneTransform().Invert().TransformPoint(p)
}

// GeometryInScene returns the geometry mapped into scene coordinates, or
// nil if the node has no geometry.
func (n *Node) GeometryInScene() geom.Geometry {
	if n.geometry == nil {
		return nil
	}
	return n.geometry.Transform(n.LocalToSceneTransform())
}

// BoundsInScene returns the scene-space bounding box of the layout bounds.
func (n *Node) BoundsInScene() geom.Rect {
	return geom.RectangleFromRect(n.LayoutBounds()).Transform(n.LocalToSceneTransform()).Bounds()
}

// Walk calls fn for n and its descendants in depth-first order until fn
// returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children() {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// OnChange registers fn to be called after n changes. It returns a function
// that unregisters fn.
func (n *Node) OnChange(fn func(Change)) (cancel func()) {
	return n.listeners.Add(fn)
}

func (n *Node) fire(c Change) {
	n.listeners.Fire(c)
}

func (n *Node) fireSubtree(source *Node, kind ChangeKind) {
	n.Walk(func(d *Node) bool {
		d.fire(Change{Node: d, Source: source, Kind: kind})
		return true
	})
}
