package render

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/beetlebugorg/oarender/internal/logging"
	"github.com/beetlebugorg/oarender/internal/metrics"
	"github.com/beetlebugorg/oarender/pkg/census"
	"github.com/paulmach/orb"
)

// DefaultProgressInterval is the number of areas between progress lines.
const DefaultProgressInterval = 500

// Options configures a Rasterizer
type Options struct {
	// Labels draws each area's label at its label point.
	Labels bool

	// CacheCentroids stores computed label points on the areas.
	// When false, label points are computed and discarded.
	CacheCentroids bool

	Style Style

	// ProgressInterval is the number of areas between progress lines.
	// Zero or less disables them.
	ProgressInterval int

	// SkipOutOfBounds logs and skips points that fall outside the grid
	// instead of aborting.
	SkipOutOfBounds bool

	Logger  logging.Logger
	Metrics *metrics.Collector
}

// DefaultOptions returns rasterizer defaults: no labels, no centroid caching,
// the default style and progress every 500 areas.
func DefaultOptions() Options {
	return Options{
		Style:            DefaultStyle(),
		ProgressInterval: DefaultProgressInterval,
	}
}

// Rasterizer draws every area of a map onto a canvas.
type Rasterizer struct {
	proj   Projection
	canvas Canvas
	opts   Options
	log    logging.Logger
}

// NewRasterizer creates a rasterizer for the given grid and canvas.
func NewRasterizer(proj Projection, canvas Canvas, opts Options) (*Rasterizer, error) {
	if err := proj.Validate(); err != nil {
		return nil, err
	}
	if canvas == nil {
		return nil, fmt.Errorf("canvas is nil")
	}
	opts.Style = opts.Style.withDefaults()
	return &Rasterizer{
		proj:   proj,
		canvas: canvas,
		opts:   opts,
		log:    logging.OrNoop(opts.Logger),
	}, nil
}

// Render draws all areas of m in order and flushes the canvas once.
//
// For each area the label is drawn first (when enabled), then one pixel per
// exterior vertex, then one pixel per hole vertex. Every point is checked
// against the grid before it is written. An error stops rendering before the
// flush, leaving the canvas unflushed.
func (r *Rasterizer) Render(ctx context.Context, m *census.Map) error {
	return r.render(ctx, m, r.opts.Labels)
}

// RenderWithLabels is Render with labels enabled regardless of Options.
func (r *Rasterizer) RenderWithLabels(ctx context.Context, m *census.Map) error {
	return r.render(ctx, m, true)
}

func (r *Rasterizer) render(ctx context.Context, m *census.Map, labels bool) error {
	progress := logging.NewProgress(r.log, "drawing areas", r.opts.ProgressInterval)
	r.log.Info(ctx, "rendering", logging.Int("areas", m.Len()), logging.Int("size", r.proj.Size),
		logging.Float64("scale", r.proj.Scale))

	for i, area := range m.Areas() {
		progress.Step(ctx, i)

		if err := ctx.Err(); err != nil {
			return err
		}

		if labels {
			if err := r.drawLabel(ctx, area); err != nil {
				return fmt.Errorf("area %d (%s): %w", i, area.Code, err)
			}
		}
		if err := r.drawRing(ctx, area.Boundary.Exterior, r.opts.Style.Exterior, metrics.KindExterior); err != nil {
			return fmt.Errorf("area %d (%s): %w", i, area.Code, err)
		}
		for _, hole := range area.Boundary.Holes {
			if err := r.drawRing(ctx, hole, r.opts.Style.Interior, metrics.KindInterior); err != nil {
				return fmt.Errorf("area %d (%s): %w", i, area.Code, err)
			}
		}
	}

	if err := r.canvas.Flush(); err != nil {
		return err
	}

	elapsed := progress.Elapsed()
	r.opts.Metrics.ObserveStage(metrics.StageRender, elapsed)
	r.log.Info(ctx, "render complete", logging.Duration("elapsed", elapsed))
	return nil
}

func (r *Rasterizer) drawLabel(ctx context.Context, area *census.Area) error {
	var (
		at  orb.Point
		err error
	)
	if r.opts.CacheCentroids {
		at, err = area.CachedCentroid()
	} else {
		at, err = area.Centroid()
	}
	if err != nil {
		return err
	}

	px, err := r.proj.project(at)
	if err != nil {
		return r.outOfBounds(ctx, err)
	}
	if err := r.canvas.DrawLabel(area.Label, px.X, px.Y, r.opts.Style.Label); err != nil {
		return fmt.Errorf("draw label: %w", err)
	}
	r.opts.Metrics.LabelDrawn()
	return nil
}

func (r *Rasterizer) drawRing(ctx context.Context, ring orb.Ring, c color.Color, kind string) error {
	for _, pt := range ring {
		px, err := r.proj.project(pt)
		if err != nil {
			if err := r.outOfBounds(ctx, err); err != nil {
				return err
			}
			continue
		}
		r.canvas.SetPixel(px.X, px.Y, c)
		r.opts.Metrics.VertexDrawn(kind)
	}
	return nil
}

// outOfBounds returns err unless out-of-bounds points are being skipped
func (r *Rasterizer) outOfBounds(ctx context.Context, err error) error {
	var oob *ErrOutOfBounds
	if !r.opts.SkipOutOfBounds || !errors.As(err, &oob) {
		return err
	}
	r.log.Warn(ctx, "skipping point outside grid", logging.Err(err))
	r.opts.Metrics.Skipped("out_of_bounds")
	return nil
}
