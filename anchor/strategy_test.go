package anchor

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/gef"
	"github.com/gogpu/gef/geom"
	"github.com/gogpu/gef/scene"
)

const epsilon = 1e-9

func TestAnchorageReferencePoint(t *testing.T) {
	tests := []struct {
		name string
		g    geom.Geometry
		want geom.Point
	}{
		{"rectangle", geom.NewRectangle(0, 0, 100, 50), geom.Pt(50, 25)},
		{"circle", geom.NewCircle(10, 10, 5), geom.Pt(10, 10)},
		{
			"L-shaped polygon uses nearest vertex",
			geom.NewPolygon(geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(100, 10),
				geom.Pt(10, 10), geom.Pt(10, 100), geom.Pt(0, 100)),
			geom.Pt(10, 10),
		},
		{"line contains its center", geom.NewLine(geom.Pt(0, 0), geom.Pt(100, 0)), geom.Pt(50, 0)},
		{
			"polyline uses middle segment",
			geom.NewPolyline(geom.Pt(0, 0), geom.Pt(50, 50), geom.Pt(100, 0)),
			geom.Pt(75, 25),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AnchorageReferencePoint(tt.g)
			if err != nil {
				t.Fatalf("AnchorageReferencePoint() error = %v", err)
			}
			if !got.Equal(tt.want, epsilon) {
				t.Errorf("AnchorageReferencePoint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnchorageReferencePoint_Errors(t *testing.T) {
	tests := []struct {
		name string
		g    geom.Geometry
		want error
	}{
		{"path", geom.NewPath().MoveTo(0, 0).LineTo(10, 10), ErrUnsupportedGeometry},
		{"empty polygon", geom.NewPolygon(), ErrNoVertices},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := AnchorageReferencePoint(tt.g); !errors.Is(err, tt.want) {
				t.Errorf("AnchorageReferencePoint() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNearestVertex_FirstWins(t *testing.T) {
	// all four corners are equally far from the center
	r := geom.NewRectangle(0, 0, 10, 10)
	v, ok := nearestVertex(r.Center(), r)
	if !ok || v != geom.Pt(0, 0) {
		t.Errorf("nearestVertex() = %v, %v, want (0, 0), true", v, ok)
	}
}

func TestOutline(t *testing.T) {
	if _, err := Outline(geom.NewPath()); !errors.Is(err, ErrUnsupportedGeometry) {
		t.Errorf("Outline(path) error = %v, want ErrUnsupportedGeometry", err)
	}

	c := geom.NewPolyline(geom.Pt(0, 0), geom.Pt(1, 1))
	got, err := Outline(c)
	if err != nil || got != geom.Curve(c) {
		t.Errorf("Outline(curve) = %v, %v, want the curve itself", got, err)
	}

	got, err = Outline(geom.NewRectangle(0, 0, 1, 1))
	if err != nil {
		t.Fatalf("Outline(rectangle) error = %v", err)
	}
	if got.Start() != got.End() {
		t.Errorf("rectangle outline is not closed: %v..%v", got.Start(), got.End())
	}
}

func TestAnchorageGeometry(t *testing.T) {
	square := geom.NewPath().MoveTo(0, 0).LineTo(20, 0).LineTo(20, 20).LineTo(0, 20).Close()
	tests := []struct {
		name string
		node *scene.Node
		want geom.Geometry
	}{
		{"shape", scene.NewGeometryNode("s", geom.NewCircle(0, 0, 1)), geom.NewCircle(0, 0, 1)},
		{"path falls back to bounds", scene.NewGeometryNode("p", square), geom.NewRectangle(0, 0, 20, 20)},
		{"no geometry", scene.New("n"), geom.NewRectangle(0, 0, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AnchorageGeometry(tt.node); got != tt.want {
				t.Errorf("AnchorageGeometry() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestOutlineStrategy_ComputePositionInScene(t *testing.T) {
	root := scene.New("root")
	anchored := scene.New("anchored")
	root.Add(anchored)

	tests := []struct {
		name string
		g    geom.Geometry
		ref  geom.Point
		want geom.Point
	}{
		{"circle along x", geom.NewCircle(0, 0, 50), geom.Pt(200, 0), geom.Pt(50, 0)},
		{"circle along y", geom.NewCircle(0, 0, 50), geom.Pt(0, -300), geom.Pt(0, -50)},
		{"rectangle right edge", geom.NewRectangle(0, 0, 100, 100), geom.Pt(300, 50), geom.Pt(100, 50)},
		{"rectangle corner", geom.NewRectangle(0, 0, 100, 100), geom.Pt(150, 150), geom.Pt(100, 100)},
		{"reference at center", geom.NewRectangle(0, 0, 100, 100), geom.Pt(50, 50), geom.Pt(50, 50)},
		{"reference inside", geom.NewRectangle(0, 0, 100, 100), geom.Pt(60, 50), geom.Pt(50, 50)},
		{"rounded rectangle", geom.RoundedRectangle(0, 0, 100, 50, 10), geom.Pt(50, 200), geom.Pt(50, 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anchorage := scene.NewGeometryNode("anchorage", tt.g)
			root.Add(anchorage)
			defer root.Remove(anchorage)

			got, err := OutlineStrategy{}.ComputePositionInScene(anchorage, anchored, tt.ref)
			if err != nil {
				t.Fatalf("ComputePositionInScene() error = %v", err)
			}
			if !got.Equal(tt.want, 1e-6) {
				t.Errorf("ComputePositionInScene() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOutlineStrategy_Transforms(t *testing.T) {
	root := scene.New("root")
	anchorage := scene.NewGeometryNode("box", geom.NewRectangle(-10, -10, 20, 20))
	anchored := scene.New("line")
	root.Add(anchorage, anchored)

	// rotated by 45 degrees, the box becomes a diamond with its right
	// corner at (100 + 10*sqrt2, 100)
	anchorage.SetTransform(geom.Translate(100, 100).Multiply(geom.Rotate(0.7853981633974483)))
	anchored.Relocate(0, 100)

	got, err := OutlineStrategy{}.ComputePositionInScene(anchorage, anchored, geom.Pt(500, 0))
	if err != nil {
		t.Fatalf("ComputePositionInScene() error = %v", err)
	}
	want := geom.Pt(100+10*1.4142135623730951, 100)
	if !got.Equal(want, 1e-6) {
		t.Errorf("ComputePositionInScene() = %v, want %v", got, want)
	}
}

func TestOutlineStrategy_ReferenceGeometry(t *testing.T) {
	anchorage := scene.NewGeometryNode("box", geom.NewRectangle(0, 0, 100, 100))
	anchored := scene.New("anchored")

	s := OutlineStrategy{
		ReferenceGeometry: func(*scene.Node) geom.Geometry {
			return geom.NewCircle(50, 50, 10)
		},
	}
	got, err := s.ComputePositionInScene(anchorage, anchored, geom.Pt(500, 50))
	if err != nil {
		t.Fatalf("ComputePositionInScene() error = %v", err)
	}
	if !got.Equal(geom.Pt(60, 50), 1e-9) {
		t.Errorf("ComputePositionInScene() = %v, want (60, 50)", got)
	}
}

func TestOutlineStrategy_EmptyShapeFails(t *testing.T) {
	anchorage := scene.NewGeometryNode("empty", geom.NewPolygon())
	_, err := OutlineStrategy{}.ComputePositionInScene(anchorage, scene.New("a"), geom.Pt(1, 1))
	if !errors.Is(err, ErrNoVertices) {
		t.Errorf("ComputePositionInScene() error = %v, want ErrNoVertices", err)
	}
}

func TestOutlineStrategy_FallbackLogged(t *testing.T) {
	orig := gef.Logger()
	t.Cleanup(func() { gef.SetLogger(orig) })
	var buf bytes.Buffer
	gef.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	root := scene.New("root")
	circle := scene.NewGeometryNode("circle", geom.NewCircle(0, 0, 50))
	inside := scene.New("inside")
	root.Add(circle, inside)

	// a reference point inside the circle never reaches the outline
	got, err := OutlineStrategy{}.ComputePositionInScene(circle, inside, geom.Pt(10, 0))
	if err != nil {
		t.Fatalf("ComputePositionInScene() error = %v", err)
	}
	if !got.Equal(geom.Pt(0, 0), epsilon) {
		t.Errorf("ComputePositionInScene() = %v, want the center (0, 0)", got)
	}
	if !strings.Contains(buf.String(), "no outline intersection") {
		t.Errorf("log output = %q, want a fallback entry", buf.String())
	}
}
