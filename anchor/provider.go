package anchor

import (
	"github.com/gogpu/gef/geom"
	"github.com/gogpu/gef/internal/notify"
)

// ReferencePointProvider supplies reference points to a ChopBox. Providers
// are compared by identity on detach, so implementations must be pointer
// types.
type ReferencePointProvider interface {
	ReferencePoints() *ReferencePoints
}

// ReferencePointChange describes a modification of a ReferencePoints map.
type ReferencePointChange struct {
	Key Key
	// Point is the new reference point, or the removed one if Removed is set.
	Point   geom.Point
	Removed bool
}

// ReferencePoints is an observable map from keys to reference points in
// the anchored node's local coordinates. The zero value is ready to use.
type ReferencePoints struct {
	points    map[Key]geom.Point
	listeners notify.Listeners[ReferencePointChange]
}

// NewReferencePoints creates an empty map.
func NewReferencePoints() *ReferencePoints {
	return &ReferencePoints{points: make(map[Key]geom.Point)}
}

// Put sets the reference point for key. Listeners are notified only if the
// point changed.
func (r *ReferencePoints) Put(key Key, p geom.Point) {
	if old, ok := r.points[key]; ok && old == p {
		return
	}
	if r.points == nil {
		r.points = make(map[Key]geom.Point)
	}
	r.points[key] = p
	r.listeners.Fire(ReferencePointChange{Key: key, Point: p})
}

// Get returns the reference point for key.
func (r *ReferencePoints) Get(key Key) (geom.Point, bool) {
	p, ok := r.points[key]
	return p, ok
}

// Remove deletes the reference point for key and reports whether it was
// present.
func (r *ReferencePoints) Remove(key Key) bool {
	p, ok := r.points[key]
	if !ok {
		return false
	}
	delete(r.points, key)
	r.listeners.Fire(ReferencePointChange{Key: key, Point: p, Removed: true})
	return true
}

// Len returns the number of reference points.
func (r *ReferencePoints) Len() int { return len(r.points) }

// OnChange registers fn to be called after every change.
func (r *ReferencePoints) OnChange(fn func(ReferencePointChange)) (cancel func()) {
	return r.listeners.Add(fn)
}

// PointProvider is a ReferencePointProvider whose points are set directly.
type PointProvider struct {
	points ReferencePoints
}

// NewPointProvider creates an empty provider.
func NewPointProvider() *PointProvider {
	return &PointProvider{}
}

// ReferencePoints implements ReferencePointProvider.
func (p *PointProvider) ReferencePoints() *ReferencePoints { return &p.points }

// Put sets the reference point for key.
func (p *PointProvider) Put(key Key, pt geom.Point) { p.points.Put(key, pt) }
