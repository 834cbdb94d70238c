package render

import (
	"image/color"
	"log/slog"

	"github.com/gogpu/gef/geom"
	"github.com/gogpu/gg"
)

// Option configures drawing.
type Option func(*options)

type options struct {
	background   gg.RGBA
	stroke       color.Color
	lineWidth    float64
	markerRadius float64
	markerColor  color.Color
	view         geom.Matrix
	logger       *slog.Logger
}

func defaultOptions() options {
	return options{
		background:   gg.White,
		stroke:       gg.Black.Color(),
		lineWidth:    1,
		markerRadius: 3,
		markerColor:  gg.Red.Color(),
		view:         geom.Identity(),
	}
}

// WithBackground sets the color used when the document has no background.
func WithBackground(c color.Color) Option {
	return func(o *options) {
		if c != nil {
			o.background = gg.FromColor(c)
		}
	}
}

// WithStroke sets the stroke color and width for elements whose style
// leaves them unset.
func WithStroke(c color.Color, width float64) Option {
	return func(o *options) {
		if c != nil {
			o.stroke = c
		}
		if width > 0 {
			o.lineWidth = width
		}
	}
}

// WithMarkers sets the radius and color of anchor markers. A radius of zero
// disables markers.
func WithMarkers(radius float64, c color.Color) Option {
	return func(o *options) {
		o.markerRadius = radius
		if c != nil {
			o.markerColor = c
		}
	}
}

// WithView sets the transform from scene coordinates to pixels.
func WithView(m geom.Matrix) Option {
	return func(o *options) {
		o.view = m
	}
}

// WithLogger sets a logger instead of the package-wide one.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
