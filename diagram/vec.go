package diagram

import (
	"fmt"

	"github.com/gogpu/gef/geom"
	"gopkg.in/yaml.v3"
)

// Vec is a point written as [x, y].
type Vec [2]float64

// Point converts v to a geom.Point.
func (v Vec) Point() geom.Point { return geom.Pt(v[0], v[1]) }

func (v *Vec) UnmarshalYAML(value *yaml.Node) error {
	var xs []float64
	if err := value.Decode(&xs); err != nil || len(xs) != 2 {
		return fmt.Errorf("line %d: point must be [x, y]", value.Line)
	}
	*v = Vec{xs[0], xs[1]}
	return nil
}

func (v Vec) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, x := range v {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: formatFloat(x)})
	}
	return n, nil
}

// Endpoint is a connection end: the id of a node or connection, or a fixed
// point in scene coordinates.
type Endpoint struct {
	Ref   string
	Point *Vec
}

func (e *Endpoint) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*e = Endpoint{Ref: value.Value}
		return nil
	case yaml.SequenceNode:
		var v Vec
		if err := value.Decode(&v); err != nil {
			return err
		}
		*e = Endpoint{Point: &v}
		return nil
	default:
		return fmt.Errorf("line %d: endpoint must be an id or [x, y]", value.Line)
	}
}

func (e Endpoint) MarshalYAML() (any, error) {
	if e.Point != nil {
		return *e.Point, nil
	}
	return e.Ref, nil
}

// IsZero reports whether the endpoint is unset.
func (e Endpoint) IsZero() bool { return e.Ref == "" && e.Point == nil }

// String returns the reference or the point.
func (e Endpoint) String() string {
	if e.Point != nil {
		return e.Point.Point().String()
	}
	return e.Ref
}
