package anchor

import (
	"fmt"
	"math"
	"reflect"

	"github.com/gogpu/gef/geom"
	"github.com/gogpu/gef/scene"
)

// ChopBox is an anchor that places each key on the outline of the
// anchorage, where the line between the anchorage reference point and the
// key's reference point crosses it. Reference points come from the
// ReferencePointProvider passed as info to Attach.
type ChopBox struct {
	base
	strategy ComputationStrategy

	providers map[Key]ReferencePointProvider
	unsub     map[Key]func()
}

var _ Anchor = (*ChopBox)(nil)

// NewChopBox creates a chop-box anchor for anchorage.
func NewChopBox(anchorage *scene.Node, opts ...Option) *ChopBox {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &ChopBox{
		strategy:  o.strategy,
		providers: make(map[Key]ReferencePointProvider),
		unsub:     make(map[Key]func()),
	}
	c.base = newBase(anchorage, o.logger, c.computePosition)
	return c
}

// Strategy returns the computation strategy.
func (c *ChopBox) Strategy() ComputationStrategy { return c.strategy }

// Provider returns the provider key was attached with.
func (c *ChopBox) Provider(key Key) (ReferencePointProvider, bool) {
	p, ok := c.providers[key]
	return p, ok
}

// Attach implements Anchor. info must be a ReferencePointProvider holding a
// reference point for key; otherwise nothing is attached.
func (c *ChopBox) Attach(key Key, info any) error {
	provider, ok := providerOf(info)
	if !ok {
		return fmt.Errorf("%w: %T", ErrNoReferencePointProvider, info)
	}
	if err := checkKey(key); err != nil {
		return err
	}
	if c.IsAttached(key) {
		return fmt.Errorf("%w: %v", ErrAlreadyAttached, key)
	}

	// the provider must be known before the first computation
	c.providers[key] = provider
	if err := c.attach(key); err != nil {
		delete(c.providers, key)
		return err
	}
	c.unsub[key] = provider.ReferencePoints().OnChange(func(ch ReferencePointChange) {
		c.referencePointChanged(key, provider, ch)
	})
	return nil
}

// Detach implements Anchor. info must be the provider key was attached
// with.
func (c *ChopBox) Detach(key Key, info any) error {
	provider, ok := providerOf(info)
	if !ok {
		return fmt.Errorf("%w: %T", ErrNoReferencePointProvider, info)
	}
	recorded, ok := c.providers[key]
	if !ok {
		return fmt.Errorf("%w: %v", ErrNotAttached, key)
	}
	if recorded != provider {
		return fmt.Errorf("%w: %v", ErrProviderMismatch, key)
	}

	if cancel := c.unsub[key]; cancel != nil {
		cancel()
	}
	delete(c.unsub, key)
	c.detach(key)
	delete(c.providers, key)
	return nil
}

// referencePointChanged handles a change of the map of the provider key was
// attached with. Every attached key listens to its own provider, so changes
// for other keys are ignored.
func (c *ChopBox) referencePointChanged(key Key, provider ReferencePointProvider, ch ReferencePointChange) {
	if ch.Removed {
		return
	}
	if ch.Key.Anchored == nil {
		panic(fmt.Sprintf("anchor: reference point %v put for a key without anchored node", ch.Point))
	}
	if !isFinite(ch.Point) {
		panic(fmt.Sprintf("anchor: invalid reference point %v put for %v", ch.Point, ch.Key))
	}
	if ch.Key != key || c.providers[key] != provider {
		return
	}
	c.update(key)
}

func (c *ChopBox) computePosition(key Key) (geom.Point, error) {
	ref, ok := c.providers[key].ReferencePoints().Get(key)
	if !ok {
		return geom.Point{}, fmt.Errorf("%w: %v", ErrNoReferencePoint, key)
	}
	p, err := c.strategy.ComputePositionInScene(c.anchorage, key.Anchored, ref)
	if err != nil {
		return geom.Point{}, err
	}
	return key.Anchored.SceneToLocal(p), nil
}

// providerOf returns info as a provider unless it is nil or a nil pointer
// wrapped in the interface.
func providerOf(info any) (ReferencePointProvider, bool) {
	provider, ok := info.(ReferencePointProvider)
	if !ok || provider == nil {
		return nil, false
	}
	switch v := reflect.ValueOf(provider); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Interface, reflect.Slice, reflect.Chan:
		if v.IsNil() {
			return nil, false
		}
	}
	return provider, true
}

func isFinite(p geom.Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
