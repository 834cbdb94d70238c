package render

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gef"
	"github.com/gogpu/gef/diagram"
	"github.com/gogpu/gef/geom"
	"github.com/gogpu/gef/scene"
	"github.com/gogpu/gg"
)

// Draw paints d onto dc. Geometries are taken in scene coordinates and
// mapped to pixels by dc's transform combined with the view set by
// WithView.
func Draw(dc *gg.Context, d *diagram.Diagram, opts ...Option) error {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = gef.Logger()
	}

	bg := o.background
	if d.Document != nil && d.Document.Background != nil {
		bg = gg.FromColor(d.Document.Background.NRGBA)
	}
	dc.ClearWithColor(bg)

	dc.Push()
	defer dc.Pop()
	dc.Transform(gg.Matrix(o.view))

	var err error
	drawn := 0
	d.Root.Walk(func(n *scene.Node) bool {
		g := n.GeometryInScene()
		if g == nil {
			return true
		}
		if err = drawGeometry(dc, g, d.Styles[n.ID()], &o); err != nil {
			err = fmt.Errorf("render: node %s: %w", n.ID(), err)
			return false
		}
		drawn++
		return true
	})
	if err != nil {
		return err
	}

	if o.markerRadius > 0 {
		dc.SetColor(o.markerColor)
		for _, c := range d.Connections {
			for _, pt := range []func() (geom.Point, bool){c.StartPoint, c.EndPoint} {
				p, ok := pt()
				if !ok {
					continue
				}
				s := c.Node().LocalToScene(p)
				dc.DrawCircle(s.X, s.Y, o.markerRadius)
				if err := dc.Fill(); err != nil {
					return fmt.Errorf("render: marker of %s: %w", c.ID(), err)
				}
			}
		}
	}

	log.Debug("render: drawn", "geometries", drawn, "connections", len(d.Connections))
	return nil
}

func drawGeometry(dc *gg.Context, g geom.Geometry, st diagram.Style, o *options) error {
	dc.ClearPath()
	closed := tracePath(dc, g)

	if closed && st.Fill != nil {
		dc.SetColor(st.Fill.NRGBA)
		if err := dc.FillPreserve(); err != nil {
			return err
		}
	}
	if st.Stroke != nil {
		dc.SetColor(st.Stroke.NRGBA)
	} else {
		dc.SetColor(o.stroke)
	}
	w := st.LineWidth
	if w <= 0 {
		w = o.lineWidth
	}
	dc.SetLineWidth(w)
	return dc.Stroke()
}

// tracePath appends g to the current path of dc and reports whether the
// traced outline is closed.
func tracePath(dc *gg.Context, g geom.Geometry) bool {
	switch g := g.(type) {
	case *geom.Path:
		closed := false
		for _, e := range g.Elements() {
			switch e := e.(type) {
			case geom.MoveTo:
				dc.MoveTo(e.Point.X, e.Point.Y)
			case geom.LineTo:
				dc.LineTo(e.Point.X, e.Point.Y)
			case geom.QuadTo:
				dc.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
			case geom.CubicTo:
				dc.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
			case geom.Close:
				dc.ClosePath()
				closed = true
			}
		}
		return closed
	case geom.Shape:
		if traceSegments(dc, g.OutlineSegments()) {
			dc.ClosePath()
			return true
		}
		return false
	case geom.Curve:
		traceSegments(dc, g.ToBezier())
		return false
	}
	return false
}

func traceSegments(dc *gg.Context, segs []geom.Segment) bool {
	if len(segs) == 0 {
		return false
	}
	start := segs[0].Eval(0)
	dc.MoveTo(start.X, start.Y)
	for _, s := range segs {
		switch s := s.(type) {
		case geom.Line:
			dc.LineTo(s.P1.X, s.P1.Y)
		case geom.QuadBez:
			dc.QuadraticTo(s.P1.X, s.P1.Y, s.P2.X, s.P2.Y)
		case geom.CubicBez:
			dc.CubicTo(s.P1.X, s.P1.Y, s.P2.X, s.P2.Y, s.P3.X, s.P3.Y)
		default:
			end := s.Eval(1)
			dc.LineTo(end.X, end.Y)
		}
	}
	return true
}

// ToPNG renders d on a new width×height context and saves it to path.
func ToPNG(path string, d *diagram.Diagram, width, height int, opts ...Option) error {
	dc := gg.NewContext(width, height)
	defer func() { _ = dc.Close() }()

	if err := Draw(dc, d, opts...); err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	gef.Logger().Info("render: saved", slog.String("path", path),
		slog.Int("width", width), slog.Int("height", height))
	return nil
}
