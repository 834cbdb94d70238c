// Package render rasterises a built diagram with github.com/gogpu/gg.
//
// Nodes are drawn in scene order with their document styles; connections
// are drawn as strokes and their anchored end points are marked with dots.
//
//	dia, _ := doc.Build()
//	dc := gg.NewContext(800, 600)
//	if err := render.Draw(dc, dia); err != nil {
//	    log.Fatal(err)
//	}
//	_ = dc.SavePNG("diagram.png")
package render
