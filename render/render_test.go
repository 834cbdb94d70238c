package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/gef/diagram"
	"github.com/gogpu/gef/geom"
	"github.com/gogpu/gg"
)

const testDiagram = `
width: 400
height: 200
background: "#ffffff"
nodes:
  - id: left
    kind: rectangle
    x: 20
    y: 50
    width: 100
    height: 100
    fill: "#0000ff"
  - id: right
    kind: circle
    x: 300
    y: 100
    radius: 50
    fill: "#00ff00"
connections:
  - id: link
    from: left
    to: right
    stroke: "#000000"
    line_width: 2
`

func buildDiagram(t *testing.T) *diagram.Diagram {
	t.Helper()
	doc, err := diagram.Parse([]byte(testDiagram))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	dia, err := doc.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return dia
}

// near reports whether the pixel at (x, y) is within 0x20 of want on
// every channel.
func near(img image.Image, x, y int, want color.NRGBA) bool {
	got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	d := func(a, b uint8) bool {
		if a > b {
			a, b = b, a
		}
		return b-a <= 0x20
	}
	return d(got.R, want.R) && d(got.G, want.G) && d(got.B, want.B) && d(got.A, want.A)
}

var (
	white = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	blue  = color.NRGBA{0x00, 0x00, 0xff, 0xff}
	green = color.NRGBA{0x00, 0xff, 0x00, 0xff}
	red   = color.NRGBA{0xff, 0x00, 0x00, 0xff}
	black = color.NRGBA{0x00, 0x00, 0x00, 0xff}
)

func TestDraw(t *testing.T) {
	dia := buildDiagram(t)
	dc := gg.NewContext(400, 200)
	defer func() { _ = dc.Close() }()

	if err := Draw(dc, dia, WithMarkers(4, red)); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	img := dc.Image()

	tests := []struct {
		name string
		x, y int
		want color.NRGBA
	}{
		{"background", 5, 5, white},
		{"rectangle fill", 60, 80, blue},
		{"circle fill", 300, 130, green},
		{"connection stroke", 200, 100, black},
		{"start marker", 120, 100, red},
		{"end marker", 250, 100, red},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !near(img, tt.x, tt.y, tt.want) {
				t.Errorf("pixel (%d, %d) = %v, want about %v", tt.x, tt.y, img.At(tt.x, tt.y), tt.want)
			}
		})
	}
}

func TestDrawWithoutMarkers(t *testing.T) {
	dia := buildDiagram(t)
	dc := gg.NewContext(400, 200)
	defer func() { _ = dc.Close() }()

	if err := Draw(dc, dia, WithMarkers(0, nil)); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	// just above the connection line, inside where a marker would be
	if near(dc.Image(), 250, 96, red) {
		t.Error("marker drawn with radius 0")
	}
}

func TestDrawBackgroundOption(t *testing.T) {
	dia := buildDiagram(t)
	dia.Document.Background = nil

	dc := gg.NewContext(400, 200)
	defer func() { _ = dc.Close() }()

	if err := Draw(dc, dia, WithBackground(gg.Black.Color())); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if !near(dc.Image(), 5, 5, black) {
		t.Errorf("background pixel = %v, want black", dc.Image().At(5, 5))
	}
}

func TestDrawWithView(t *testing.T) {
	dc := gg.NewContext(400, 200)
	defer func() { _ = dc.Close() }()

	if err := Draw(dc, buildDiagram(t), WithView(geom.Scale(0.5, 0.5))); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	img := dc.Image()
	if !near(img, 30, 40, blue) {
		t.Errorf("pixel (30, 40) = %v, want blue", img.At(30, 40))
	}
	if !near(img, 300, 150, white) {
		t.Errorf("pixel (300, 150) = %v, want white", img.At(300, 150))
	}
}

func TestDrawLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	dc := gg.NewContext(400, 200)
	defer func() { _ = dc.Close() }()

	if err := Draw(dc, buildDiagram(t), WithLogger(logger)); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if !strings.Contains(buf.String(), "render: drawn") {
		t.Errorf("log output = %q, want a render entry", buf.String())
	}
}

func TestToPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := ToPNG(path, buildDiagram(t), 400, 200); err != nil {
		t.Fatalf("ToPNG() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 200 {
		t.Errorf("image size = %dx%d, want 400x200", b.Dx(), b.Dy())
	}
	if !near(img, 60, 80, blue) {
		t.Errorf("pixel (60, 80) = %v, want blue", img.At(60, 80))
	}
}
