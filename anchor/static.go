package anchor

import (
	"fmt"

	"github.com/gogpu/gef/geom"
	"github.com/gogpu/gef/scene"
)

// Static is an anchor with a fixed position in the anchorage's local
// coordinates. Every attached key gets that point, mapped into the
// anchored node's coordinates.
type Static struct {
	base
	point geom.Point
}

var _ Anchor = (*Static)(nil)

// NewStatic creates an anchor at p, given in anchorage coordinates.
func NewStatic(anchorage *scene.Node, p geom.Point, opts ...Option) *Static {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &Static{point: p}
	s.base = newBase(anchorage, o.logger, s.computePosition)
	return s
}

// Point returns the anchor point in anchorage coordinates.
func (s *Static) Point() geom.Point { return s.point }

// SetPoint moves the anchor point and updates all positions.
func (s *Static) SetPoint(p geom.Point) {
	s.point = p
	s.updateAll()
}

// Attach implements Anchor. info is ignored.
func (s *Static) Attach(key Key, _ any) error {
	return s.attach(key)
}

// Detach implements Anchor. info is ignored.
func (s *Static) Detach(key Key, _ any) error {
	if !s.IsAttached(key) {
		return fmt.Errorf("%w: %v", ErrNotAttached, key)
	}
	s.detach(key)
	return nil
}

func (s *Static) computePosition(key Key) (geom.Point, error) {
	return key.Anchored.SceneToLocal(s.anchorage.LocalToScene(s.point)), nil
}
