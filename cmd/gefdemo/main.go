// Command gefdemo loads a YAML diagram, computes the anchor positions of its
// connections and renders it to PNG.
//
// With -watch it re-renders whenever the input file changes.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/gef"
	"github.com/gogpu/gef/diagram"
	"github.com/gogpu/gef/geom"
	"github.com/gogpu/gef/internal/watch"
	"github.com/gogpu/gef/render"
	"gopkg.in/yaml.v3"
)

type config struct {
	input, output string
	width, height int
	scale         float64
	routes        bool
}

func main() {
	var (
		input   = flag.String("input", "diagram.yaml", "diagram file")
		output  = flag.String("output", "diagram.png", "output file")
		width   = flag.Int("width", 0, "image width (default: document width or 800)")
		height  = flag.Int("height", 0, "image height (default: document height or 600)")
		scale   = flag.Float64("scale", 1, "scene to pixel scale factor")
		watchF  = flag.Bool("watch", false, "re-render when the input changes")
		routes  = flag.Bool("routes", false, "print connection routes as YAML")
		verbose = flag.Bool("v", false, "log anchor computations to stderr")
	)
	flag.Parse()

	if *verbose {
		gef.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := config{
		input:  *input,
		output: *output,
		width:  *width,
		height: *height,
		scale:  *scale,
		routes: *routes,
	}

	if err := run(cfg); err != nil {
		if !*watchF {
			log.Fatalf("Failed to render: %v", err)
		}
		log.Printf("Failed to render: %v", err)
	}
	if !*watchF {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := watchLoop(ctx, cfg); err != nil {
		log.Fatalf("Watch failed: %v", err)
	}
}

func run(cfg config) error {
	doc, err := diagram.LoadFile(cfg.input)
	if err != nil {
		return err
	}
	dia, err := doc.Build()
	if err != nil {
		return err
	}

	w, h := imageSize(cfg, doc)
	if err := render.ToPNG(cfg.output, dia, w, h, render.WithView(geom.Scale(cfg.scale, cfg.scale))); err != nil {
		return err
	}
	log.Printf("Diagram saved to %s (%dx%d)\n", cfg.output, w, h)

	if cfg.routes {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(dia.Routes()); err != nil {
			return err
		}
		return enc.Close()
	}
	return nil
}

func imageSize(cfg config, doc *diagram.Document) (int, int) {
	w, h := cfg.width, cfg.height
	if w <= 0 {
		w = int(float64(doc.Width) * cfg.scale)
	}
	if h <= 0 {
		h = int(float64(doc.Height) * cfg.scale)
	}
	if w <= 0 {
		w = 800
	}
	if h <= 0 {
		h = 600
	}
	return w, h
}

func watchLoop(ctx context.Context, cfg config) error {
	w, err := watch.New(cfg.input, 0)
	if err != nil {
		return err
	}
	defer w.Close()

	log.Printf("Watching %s\n", cfg.input)
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-w.Events:
			if !ok {
				return nil
			}
			if err := run(cfg); err != nil {
				log.Printf("Failed to render: %v", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watch error: %v", err)
		}
	}
}
