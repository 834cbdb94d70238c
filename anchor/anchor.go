package anchor

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gef"
	"github.com/gogpu/gef/geom"
	"github.com/gogpu/gef/internal/notify"
	"github.com/gogpu/gef/scene"
)

// Anchor computes positions for keys attached to an anchorage.
type Anchor interface {
	// Anchorage returns the node the anchor belongs to.
	Anchorage() *scene.Node

	// Attach starts computing a position for key. What info must be depends
	// on the implementation.
	Attach(key Key, info any) error

	// Detach stops computing a position for key. info must match the info
	// given to Attach as the implementation requires.
	Detach(key Key, info any) error

	// IsAttached reports whether key is attached.
	IsAttached(key Key) bool

	// Position returns the position of key in the anchored node's local
	// coordinates.
	Position(key Key) (geom.Point, bool)

	// Positions returns a copy of all positions.
	Positions() map[Key]geom.Point

	// Keys returns the attached keys in attach order.
	Keys() []Key

	// OnPositionChange registers fn to be called whenever a position is
	// computed for the first time or changes.
	OnPositionChange(fn func(PositionChange)) (cancel func())
}

// PositionChange is delivered to OnPositionChange listeners.
type PositionChange struct {
	Key      Key
	Position geom.Point
}

// base holds the bookkeeping shared by all anchors: attached keys, their
// positions, and the scene subscriptions that trigger recomputation.
type base struct {
	anchorage *scene.Node
	compute   func(Key) (geom.Point, error)
	logger    *slog.Logger

	keys      []Key
	positions map[Key]geom.Point
	unwatch   map[Key]func()

	unwatchAnchorage func()
	listeners        notify.Listeners[PositionChange]
}

func newBase(anchorage *scene.Node, logger *slog.Logger, compute func(Key) (geom.Point, error)) base {
	if anchorage == nil {
		panic("anchor: nil anchorage")
	}
	return base{
		anchorage: anchorage,
		compute:   compute,
		logger:    logger,
		positions: make(map[Key]geom.Point),
		unwatch:   make(map[Key]func()),
	}
}

func (b *base) log() *slog.Logger {
	if b.logger != nil {
		return b.logger
	}
	return gef.Logger()
}

// Anchorage implements Anchor.
func (b *base) Anchorage() *scene.Node { return b.anchorage }

// IsAttached implements Anchor.
func (b *base) IsAttached(key Key) bool {
	_, ok := b.positions[key]
	return ok
}

// Position implements Anchor.
func (b *base) Position(key Key) (geom.Point, bool) {
	p, ok := b.positions[key]
	return p, ok
}

// Positions implements Anchor.
func (b *base) Positions() map[Key]geom.Point {
	m := make(map[Key]geom.Point, len(b.positions))
	for k, p := range b.positions {
		m[k] = p
	}
	return m
}

// Keys implements Anchor.
func (b *base) Keys() []Key {
	keys := make([]Key, len(b.keys))
	copy(keys, b.keys)
	return keys
}

// OnPositionChange implements Anchor.
func (b *base) OnPositionChange(fn func(PositionChange)) (cancel func()) {
	return b.listeners.Add(fn)
}

func checkKey(key Key) error {
	if key.Anchored == nil {
		return fmt.Errorf("%w: role %q", ErrInvalidKey, key.Role)
	}
	return nil
}

// attach computes the first position of key and starts watching the
// anchored node and the anchorage. Nothing is recorded if the computation
// fails.
func (b *base) attach(key Key) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if b.IsAttached(key) {
		return fmt.Errorf("%w: %v", ErrAlreadyAttached, key)
	}
	pos, err := b.compute(key)
	if err != nil {
		return err
	}

	b.keys = append(b.keys, key)
	b.positions[key] = pos
	b.unwatch[key] = key.Anchored.OnChange(func(c scene.Change) {
		if c.Kind.MovesScene() {
			b.update(key)
		}
	})
	if b.unwatchAnchorage == nil {
		b.unwatchAnchorage = b.anchorage.OnChange(func(scene.Change) {
			b.updateAll()
		})
	}

	b.log().Debug("anchor: attached",
		"anchorage", b.anchorage.ID(), "key", key.String(), "position", pos.String())
	b.listeners.Fire(PositionChange{Key: key, Position: pos})
	return nil
}

// detach removes key and its subscriptions. The caller has checked that
// key is attached.
func (b *base) detach(key Key) {
	if cancel := b.unwatch[key]; cancel != nil {
		cancel()
	}
	delete(b.unwatch, key)
	delete(b.positions, key)
	for i, k := range b.keys {
		if k == key {
			b.keys = append(b.keys[:i:i], b.keys[i+1:]...)
			break
		}
	}
	if len(b.keys) == 0 && b.unwatchAnchorage != nil {
		b.unwatchAnchorage()
		b.unwatchAnchorage = nil
	}

	b.log().Debug("anchor: detached", "anchorage", b.anchorage.ID(), "key", key.String())
}

// update recomputes the position of key and notifies listeners if it
// changed. A failed recomputation keeps the previous position.
func (b *base) update(key Key) {
	old, ok := b.positions[key]
	if !ok {
		return
	}
	pos, err := b.compute(key)
	if err != nil {
		b.log().Warn("anchor: keeping previous position",
			"anchorage", b.anchorage.ID(), "key", key.String(), "err", err)
		return
	}
	if pos == old {
		return
	}
	b.positions[key] = pos
	b.listeners.Fire(PositionChange{Key: key, Position: pos})
}

func (b *base) updateAll() {
	for _, key := range b.Keys() {
		b.update(key)
	}
}
