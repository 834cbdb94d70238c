package anchor

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/gef/geom"
	"github.com/gogpu/gef/scene"
)

// fixture is a box anchorage at (100, 0) and an anchored node at (0, 50).
type fixture struct {
	root      *scene.Node
	box       *scene.Node
	anchored  *scene.Node
	key       Key
	anchor    *ChopBox
	refs      *PointProvider
	positions []PositionChange
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		root:     scene.New("root"),
		box:      scene.NewGeometryNode("box", geom.NewRectangle(0, 0, 100, 100)),
		anchored: scene.New("line"),
		refs:     NewPointProvider(),
	}
	f.root.Add(f.box, f.anchored)
	f.box.Relocate(100, 0)
	f.anchored.Relocate(0, 50)

	f.key = Key{Anchored: f.anchored, Role: "start"}
	f.anchor = NewChopBox(f.box, opts...)
	f.anchor.OnPositionChange(func(c PositionChange) { f.positions = append(f.positions, c) })
	return f
}

func (f *fixture) position(t *testing.T) geom.Point {
	t.Helper()
	p, ok := f.anchor.Position(f.key)
	if !ok {
		t.Fatalf("Position(%v) not found", f.key)
	}
	return p
}

func TestChopBox_Attach(t *testing.T) {
	f := newFixture(t)
	f.refs.Put(f.key, geom.Pt(400, 0))

	if err := f.anchor.Attach(f.key, f.refs); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if !f.anchor.IsAttached(f.key) {
		t.Error("IsAttached() = false after Attach")
	}
	// scene (400, 50) → right edge at scene (200, 50) → local (200, 0)
	if got := f.position(t); !got.Equal(geom.Pt(200, 0), epsilon) {
		t.Errorf("Position() = %v, want (200, 0)", got)
	}
	if len(f.positions) != 1 || f.positions[0].Key != f.key {
		t.Errorf("position changes = %v, want one for %v", f.positions, f.key)
	}
	if p, ok := f.anchor.Provider(f.key); !ok || p != ReferencePointProvider(f.refs) {
		t.Error("Provider() does not return the attached provider")
	}
}

func TestChopBox_AttachErrors(t *testing.T) {
	f := newFixture(t)

	if err := f.anchor.Attach(f.key, "not a provider"); !errors.Is(err, ErrNoReferencePointProvider) {
		t.Errorf("Attach(string) error = %v, want ErrNoReferencePointProvider", err)
	}
	if err := f.anchor.Attach(f.key, nil); !errors.Is(err, ErrNoReferencePointProvider) {
		t.Errorf("Attach(nil) error = %v, want ErrNoReferencePointProvider", err)
	}
	if err := f.anchor.Attach(f.key, (*PointProvider)(nil)); !errors.Is(err, ErrNoReferencePointProvider) {
		t.Errorf("Attach(nil *PointProvider) error = %v, want ErrNoReferencePointProvider", err)
	}
	if f.anchor.IsAttached(f.key) {
		t.Error("Attach(nil *PointProvider) attached the key")
	}
	if err := f.anchor.Attach(Key{Role: "start"}, f.refs); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Attach(no anchored) error = %v, want ErrInvalidKey", err)
	}

	// no reference point yet: nothing must be recorded
	if err := f.anchor.Attach(f.key, f.refs); !errors.Is(err, ErrNoReferencePoint) {
		t.Errorf("Attach() without point error = %v, want ErrNoReferencePoint", err)
	}
	if f.anchor.IsAttached(f.key) {
		t.Error("failed Attach left the key attached")
	}
	if _, ok := f.anchor.Provider(f.key); ok {
		t.Error("failed Attach left the provider recorded")
	}
	if n := f.refs.ReferencePoints().listeners.Len(); n != 0 {
		t.Errorf("failed Attach left %d reference point listeners", n)
	}

	f.refs.Put(f.key, geom.Pt(400, 0))
	if err := f.anchor.Attach(f.key, f.refs); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if err := f.anchor.Attach(f.key, f.refs); !errors.Is(err, ErrAlreadyAttached) {
		t.Errorf("second Attach() error = %v, want ErrAlreadyAttached", err)
	}
}

func TestChopBox_Detach(t *testing.T) {
	f := newFixture(t)
	f.refs.Put(f.key, geom.Pt(400, 0))

	other := NewPointProvider()
	other.Put(f.key, geom.Pt(400, 0))

	if err := f.anchor.Detach(f.key, f.refs); !errors.Is(err, ErrNotAttached) {
		t.Errorf("Detach() of a never attached key error = %v, want ErrNotAttached", err)
	}

	if err := f.anchor.Attach(f.key, f.refs); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if err := f.anchor.Detach(f.key, other); !errors.Is(err, ErrProviderMismatch) {
		t.Errorf("Detach() with another provider error = %v, want ErrProviderMismatch", err)
	}
	if err := f.anchor.Detach(f.key, 42); !errors.Is(err, ErrNoReferencePointProvider) {
		t.Errorf("Detach(int) error = %v, want ErrNoReferencePointProvider", err)
	}
	if err := f.anchor.Detach(f.key, (*PointProvider)(nil)); !errors.Is(err, ErrNoReferencePointProvider) {
		t.Errorf("Detach(nil *PointProvider) error = %v, want ErrNoReferencePointProvider", err)
	}
	if !f.anchor.IsAttached(f.key) {
		t.Fatal("failed Detach removed the key")
	}

	if err := f.anchor.Detach(f.key, f.refs); err != nil {
		t.Fatalf("Detach() error = %v", err)
	}
	if f.anchor.IsAttached(f.key) {
		t.Error("IsAttached() = true after Detach")
	}
	if _, ok := f.anchor.Position(f.key); ok {
		t.Error("Position() still present after Detach")
	}
	if n := f.refs.ReferencePoints().listeners.Len(); n != 0 {
		t.Errorf("Detach left %d reference point listeners", n)
	}
	if f.anchor.unwatchAnchorage != nil {
		t.Error("Detach of the last key kept watching the anchorage")
	}

	// updates stop after detach
	n := len(f.positions)
	f.refs.Put(f.key, geom.Pt(-400, 0))
	f.box.Relocate(0, 0)
	if len(f.positions) != n {
		t.Error("position changes delivered after Detach")
	}
}

func TestChopBox_ReattachRecomputes(t *testing.T) {
	f := newFixture(t)
	f.refs.Put(f.key, geom.Pt(400, 0))
	if err := f.anchor.Attach(f.key, f.refs); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if err := f.anchor.Detach(f.key, f.refs); err != nil {
		t.Fatalf("Detach() error = %v", err)
	}

	f.refs.Put(f.key, geom.Pt(-400, 0))
	if err := f.anchor.Attach(f.key, f.refs); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	// left edge at scene (100, 50)
	if got := f.position(t); !got.Equal(geom.Pt(100, 0), epsilon) {
		t.Errorf("Position() after reattach = %v, want (100, 0)", got)
	}
}

func TestChopBox_ReferencePointChange(t *testing.T) {
	f := newFixture(t)
	f.refs.Put(f.key, geom.Pt(400, 0))
	if err := f.anchor.Attach(f.key, f.refs); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}

	f.refs.Put(f.key, geom.Pt(150, 300))
	// bottom edge at scene (150, 100)
	if got := f.position(t); !got.Equal(geom.Pt(150, 50), epsilon) {
		t.Errorf("Position() = %v, want (150, 50)", got)
	}
	if len(f.positions) != 2 {
		t.Errorf("got %d position changes, want 2", len(f.positions))
	}

	// an unchanged point and a point for another key do not recompute
	f.refs.Put(f.key, geom.Pt(150, 300))
	f.refs.Put(Key{Anchored: f.anchored, Role: "end"}, geom.Pt(0, 0))
	if len(f.positions) != 2 {
		t.Errorf("got %d position changes, want 2", len(f.positions))
	}

	// removing the point keeps the last position
	f.refs.ReferencePoints().Remove(f.key)
	if got := f.position(t); !got.Equal(geom.Pt(150, 50), epsilon) {
		t.Errorf("Position() after Remove = %v, want (150, 50)", got)
	}
}

func TestChopBox_AnchorageAndAnchoredMoves(t *testing.T) {
	f := newFixture(t)
	f.refs.Put(f.key, geom.Pt(-300, 0))
	if err := f.anchor.Attach(f.key, f.refs); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}

	// box now spans (100..200, 100..200); line from (150, 150) to
	// (-300, 50) crosses x = 100 at y = 150 - 100/9
	f.box.Relocate(100, 100)
	want := geom.Pt(100, 150-100.0/9-50)
	if got := f.position(t); !got.Equal(want, 1e-9) {
		t.Errorf("Position() after anchorage move = %v, want %v", got, want)
	}

	// moving the anchored node moves its reference point too
	f.anchored.Relocate(0, 150)
	// line from (150, 150) to (-300, 150) hits x = 100 at y = 150
	if got := f.position(t); !got.Equal(geom.Pt(100, 0), 1e-9) {
		t.Errorf("Position() after anchored move = %v, want (100, 0)", got)
	}

	// a geometry change on the anchorage recomputes as well
	f.box.SetGeometry(geom.NewCircle(50, 50, 10))
	if got := f.position(t); !got.Equal(geom.Pt(140, 0), 1e-9) {
		t.Errorf("Position() after geometry change = %v, want (140, 0)", got)
	}
}

func TestChopBox_CircleAlongAxis(t *testing.T) {
	root := scene.New("root")
	circle := scene.NewGeometryNode("circle", geom.NewCircle(0, 0, 50))
	anchored := scene.New("anchored")
	root.Add(circle, anchored)

	refs := NewPointProvider()
	key := Key{Anchored: anchored, Role: "end"}
	refs.Put(key, geom.Pt(1000, 0))

	a := NewChopBox(circle)
	if err := a.Attach(key, refs); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	got, _ := a.Position(key)
	if !got.Equal(geom.Pt(50, 0), 1e-9) {
		t.Errorf("Position() = %v, want (50, 0)", got)
	}
	if d := got.Length(); math.Abs(d-50) > 1e-9 {
		t.Errorf("Position() is %v from the center, want 50", d)
	}
}

func TestChopBox_SharedProvider(t *testing.T) {
	f := newFixture(t)
	end := Key{Anchored: f.anchored, Role: "end"}
	f.refs.Put(f.key, geom.Pt(400, 0))
	f.refs.Put(end, geom.Pt(-400, 0))

	for _, k := range []Key{f.key, end} {
		if err := f.anchor.Attach(k, f.refs); err != nil {
			t.Fatalf("Attach(%v) error = %v", k, err)
		}
	}
	if got := f.anchor.Keys(); len(got) != 2 || got[0] != f.key || got[1] != end {
		t.Errorf("Keys() = %v, want [%v %v]", got, f.key, end)
	}

	f.positions = nil
	f.refs.Put(end, geom.Pt(150, -300))
	if len(f.positions) != 1 || f.positions[0].Key != end {
		t.Errorf("position changes = %v, want one for %v", f.positions, end)
	}

	positions := f.anchor.Positions()
	if len(positions) != 2 {
		t.Fatalf("Positions() has %d entries, want 2", len(positions))
	}
	delete(positions, end)
	if !f.anchor.IsAttached(end) {
		t.Error("modifying Positions() changed the anchor")
	}
}

func TestChopBox_MalformedChangePanics(t *testing.T) {
	tests := []struct {
		name string
		key  func(f *fixture) Key
		p    geom.Point
	}{
		{"no anchored node", func(*fixture) Key { return Key{Role: "start"} }, geom.Pt(1, 1)},
		{"invalid point", func(f *fixture) Key { return f.key }, geom.Pt(math.NaN(), 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.refs.Put(f.key, geom.Pt(400, 0))
			if err := f.anchor.Attach(f.key, f.refs); err != nil {
				t.Fatalf("Attach() error = %v", err)
			}

			defer func() {
				if recover() == nil {
					t.Error("malformed reference point change did not panic")
				}
			}()
			f.refs.Put(tt.key(f), tt.p)
		})
	}
}

type fixedStrategy geom.Point

func (s fixedStrategy) ComputePositionInScene(_, _ *scene.Node, _ geom.Point) (geom.Point, error) {
	return geom.Point(s), nil
}

func TestChopBox_WithStrategy(t *testing.T) {
	f := newFixture(t, WithStrategy(fixedStrategy{X: 10, Y: 60}))
	f.refs.Put(f.key, geom.Pt(400, 0))
	if err := f.anchor.Attach(f.key, f.refs); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if got := f.position(t); got != geom.Pt(10, 10) {
		t.Errorf("Position() = %v, want (10, 10)", got)
	}
	if _, ok := f.anchor.Strategy().(fixedStrategy); !ok {
		t.Errorf("Strategy() = %T, want fixedStrategy", f.anchor.Strategy())
	}
}

func TestChopBox_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	f := newFixture(t, WithLogger(logger))
	f.refs.Put(f.key, geom.Pt(400, 0))
	if err := f.anchor.Attach(f.key, f.refs); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if !strings.Contains(buf.String(), "anchor: attached") || !strings.Contains(buf.String(), "line#start") {
		t.Errorf("log output = %q, want an attach record for line#start", buf.String())
	}

	// a failing recomputation is logged and keeps the position
	before := f.position(t)
	f.box.SetGeometry(geom.NewPolygon())
	if got := f.position(t); got != before {
		t.Errorf("Position() = %v after failed recomputation, want %v", got, before)
	}
	if !strings.Contains(buf.String(), "keeping previous position") {
		t.Errorf("log output = %q, want a warning", buf.String())
	}
}
