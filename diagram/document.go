package diagram

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/gogpu/gef/geom"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDiagram is wrapped by all validation errors.
var ErrInvalidDiagram = errors.New("diagram: invalid diagram")

// Node kinds.
const (
	KindRectangle        = "rectangle"
	KindRoundedRectangle = "rounded-rectangle"
	KindEllipse          = "ellipse"
	KindCircle           = "circle"
	KindPolygon          = "polygon"
	KindPolyline         = "polyline"
	KindPath             = "path"
	KindGroup            = "group"
)

// Document is the YAML form of a diagram.
type Document struct {
	Width       int              `yaml:"width,omitempty"`
	Height      int              `yaml:"height,omitempty"`
	Background  *Color           `yaml:"background,omitempty"`
	Nodes       []NodeSpec       `yaml:"nodes"`
	Connections []ConnectionSpec `yaml:"connections,omitempty"`
}

// Style holds drawing attributes.
type Style struct {
	Fill      *Color  `yaml:"fill,omitempty"`
	Stroke    *Color  `yaml:"stroke,omitempty"`
	LineWidth float64 `yaml:"line_width,omitempty"`
}

// NodeSpec describes a node. Which geometry fields apply depends on Kind:
// rectangle, rounded-rectangle and ellipse use X, Y, Width and Height
// (rounded-rectangle also Radius); circle uses X, Y as center and Radius;
// polygon and polyline use Points; path uses Path in SVG-like notation
// ("M 0 0 L 10 0 Q 20 0 20 10 C ... Z"). A group has no geometry.
type NodeSpec struct {
	ID        string  `yaml:"id"`
	Kind      string  `yaml:"kind"`
	Parent    string  `yaml:"parent,omitempty"`
	X         float64 `yaml:"x,omitempty"`
	Y         float64 `yaml:"y,omitempty"`
	Width     float64 `yaml:"width,omitempty"`
	Height    float64 `yaml:"height,omitempty"`
	Radius    float64 `yaml:"radius,omitempty"`
	Points    []Vec   `yaml:"points,omitempty"`
	Path      string  `yaml:"path,omitempty"`
	Translate *Vec    `yaml:"translate,omitempty"`
	Rotate    float64 `yaml:"rotate,omitempty"`
	Style     `yaml:",inline"`
}

// ConnectionSpec describes a connection.
type ConnectionSpec struct {
	ID        string   `yaml:"id"`
	From      Endpoint `yaml:"from"`
	To        Endpoint `yaml:"to"`
	WayPoints []Vec    `yaml:"waypoints,omitempty"`
	Curved    bool     `yaml:"curved,omitempty"`
	Style     `yaml:",inline"`
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("diagram: decode: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads a document from r.
func Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("diagram: read: %w", err)
	}
	return Parse(data)
}

// LoadFile reads a document from the named file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("diagram: load %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Encode writes the document as YAML.
func (d *Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("diagram: encode: %w", err)
	}
	return enc.Close()
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidDiagram}, args...)...)
}

// Validate checks identifiers, references and geometry parameters.
func (d *Document) Validate() error {
	if d.Width < 0 || d.Height < 0 {
		return invalid("negative size %dx%d", d.Width, d.Height)
	}

	ids := make(map[string]bool, len(d.Nodes)+len(d.Connections))
	parents := make(map[string]string, len(d.Nodes))
	for _, n := range d.Nodes {
		if n.ID == "" {
			return invalid("node without id")
		}
		if ids[n.ID] {
			return invalid("duplicate id %q", n.ID)
		}
		ids[n.ID] = true
		parents[n.ID] = n.Parent
		if _, err := n.Geometry(); err != nil {
			return err
		}
	}
	for _, n := range d.Nodes {
		if n.Parent == "" {
			continue
		}
		if _, ok := parents[n.Parent]; !ok {
			return invalid("node %q: unknown parent %q", n.ID, n.Parent)
		}
		seen := map[string]bool{n.ID: true}
		for p := n.Parent; p != ""; p = parents[p] {
			if seen[p] {
				return invalid("node %q: parent cycle", n.ID)
			}
			seen[p] = true
		}
	}

	for _, c := range d.Connections {
		if c.ID == "" {
			return invalid("connection without id")
		}
		if ids[c.ID] {
			return invalid("duplicate id %q", c.ID)
		}
		ids[c.ID] = true
	}
	for _, c := range d.Connections {
		for _, e := range []Endpoint{c.From, c.To} {
			switch {
			case e.IsZero():
				return invalid("connection %q: missing endpoint", c.ID)
			case e.Point != nil:
			case e.Ref == c.ID:
				return invalid("connection %q: connected to itself", c.ID)
			case !ids[e.Ref]:
				return invalid("connection %q: unknown endpoint %q", c.ID, e.Ref)
			}
		}
	}
	return d.checkConnectionCycles()
}

// checkConnectionCycles rejects connections that end on each other in a
// loop, whose positions would chase each other forever.
func (d *Document) checkConnectionCycles() error {
	ends := make(map[string][]string, len(d.Connections))
	for _, c := range d.Connections {
		ends[c.ID] = nil
	}
	for _, c := range d.Connections {
		for _, e := range []Endpoint{c.From, c.To} {
			if _, ok := ends[e.Ref]; ok && e.Point == nil {
				ends[c.ID] = append(ends[c.ID], e.Ref)
			}
		}
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(ends))
	var visit func(id string) error
	visit = func(id string) error {
		switch state[id] {
		case visiting:
			return invalid("connection %q: connections end on each other in a cycle", id)
		case done:
			return nil
		}
		state[id] = visiting
		for _, next := range ends[id] {
			if err := visit(next); err != nil {
				return err
			}
		}
		state[id] = done
		return nil
	}
	for _, c := range d.Connections {
		if err := visit(c.ID); err != nil {
			return err
		}
	}
	return nil
}

// Transform returns the local transform: rotation by Rotate degrees
// followed by the translation.
func (n NodeSpec) Transform() geom.Matrix {
	m := geom.Rotate(n.Rotate * math.Pi / 180)
	if n.Translate != nil {
		m = geom.Translate(n.Translate[0], n.Translate[1]).Multiply(m)
	}
	return m
}

// Geometry builds the node geometry in local coordinates. Groups have
// none.
func (n NodeSpec) Geometry() (geom.Geometry, error) {
	if n.Width < 0 || n.Height < 0 || n.Radius < 0 {
		return nil, invalid("node %q: negative size", n.ID)
	}
	switch n.Kind {
	case KindRectangle:
		return geom.NewRectangle(n.X, n.Y, n.Width, n.Height), nil
	case KindRoundedRectangle:
		return geom.RoundedRectangle(n.X, n.Y, n.Width, n.Height, n.Radius), nil
	case KindEllipse:
		return geom.NewEllipse(n.X, n.Y, n.Width, n.Height), nil
	case KindCircle:
		return geom.NewCircle(n.X, n.Y, n.Radius), nil
	case KindPolygon, KindPolyline:
		need := 3
		if n.Kind == KindPolyline {
			need = 2
		}
		if len(n.Points) < need {
			return nil, invalid("node %q: %s needs at least %d points", n.ID, n.Kind, need)
		}
		pts := make([]geom.Point, len(n.Points))
		for i, v := range n.Points {
			pts[i] = v.Point()
		}
		if n.Kind == KindPolygon {
			return geom.NewPolygon(pts...), nil
		}
		return geom.NewPolyline(pts...), nil
	case KindPath:
		p, err := ParsePath(n.Path)
		if err != nil {
			return nil, invalid("node %q: %v", n.ID, err)
		}
		return p, nil
	case KindGroup:
		return nil, nil
	default:
		return nil, invalid("node %q: unknown kind %q", n.ID, n.Kind)
	}
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
