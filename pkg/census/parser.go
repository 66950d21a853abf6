package census

import (
	"context"
	"errors"
	"fmt"

	"github.com/beetlebugorg/oarender/internal/logging"
	"github.com/beetlebugorg/oarender/internal/metrics"
	"github.com/beetlebugorg/oarender/internal/parser"
)

// Required character fields of an output area record
const (
	FieldLabel   = "label"
	FieldCode    = "code"
	FieldName    = "name"
	FieldAltName = "altname"
)

// Parser loads output-area shapefiles.
//
// Create a parser with NewParser and use Parse or ParseWithOptions to read a
// dataset.
type Parser interface {
	// Parse reads a shapefile (.shp with its .dbf, or a .zip of both) and
	// returns every area in file order.
	//
	// The first invalid record aborts the load and no map is returned.
	Parse(ctx context.Context, path string) (*Map, error)

	// ParseWithOptions reads a shapefile with custom options.
	ParseWithOptions(ctx context.Context, path string, opts ParseOptions) (*Map, error)
}

// NewParser creates a parser with default settings.
//
// Example:
//
//	p := census.NewParser()
//	m, err := p.Parse(ctx, "OA_2011_EW.shp")
func NewParser() Parser {
	return &shapeParser{}
}

type shapeParser struct{}

func (p *shapeParser) Parse(ctx context.Context, path string) (*Map, error) {
	return p.ParseWithOptions(ctx, path, DefaultParseOptions())
}

func (p *shapeParser) ParseWithOptions(ctx context.Context, path string, opts ParseOptions) (*Map, error) {
	r, err := parser.Open(path, opts.readerOptions())
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return load(ctx, r, opts)
}

// load drains r into a Map
func load(ctx context.Context, r *parser.ShapeReader, opts ParseOptions) (*Map, error) {
	log := logging.OrNoop(opts.Logger).With(logging.String("dataset", r.Path()))
	progress := logging.NewProgress(log, "loading areas", opts.ProgressInterval)

	log.Info(ctx, "loading dataset")

	var areas []*Area
	for r.Next() {
		rec := r.Record()
		progress.Step(ctx, rec.Index)

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		area, err := buildArea(&rec, opts.ValidateGeometry)
		if err != nil {
			err = fmt.Errorf("record %d: %w", rec.Index, err)
			if !opts.SkipInvalidAreas {
				return nil, err
			}
			log.Warn(ctx, "skipping record", logging.Int("index", rec.Index), logging.Err(err))
			opts.Metrics.Skipped(skipReason(err))
			continue
		}

		areas = append(areas, area)
		opts.Metrics.AreaLoaded(len(area.Boundary.Holes))
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	m := NewMap(areas...)
	m.source = r.Path()

	elapsed := progress.Elapsed()
	opts.Metrics.ObserveStage(metrics.StageLoad, elapsed)
	log.Info(ctx, "dataset loaded", logging.Int("areas", m.Len()), logging.Duration("elapsed", elapsed))
	return m, nil
}

// buildArea turns one polygon record into an area
func buildArea(rec *parser.Record, validate bool) (*Area, error) {
	if validate {
		if err := parser.ValidateRings(rec.Rings); err != nil {
			return nil, err
		}
	}

	exterior, holes, err := parser.DecomposeRings(rec.Rings)
	if err != nil {
		return nil, err
	}

	var values [4]string
	for i, name := range []string{FieldLabel, FieldCode, FieldName, FieldAltName} {
		v, err := rec.Attributes.Text(name)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	return NewArea(values[0], values[1], values[2], values[3], Boundary{
		Exterior: exterior,
		Holes:    holes,
	}), nil
}

// skipReason labels a skipped record for metrics
func skipReason(err error) string {
	var (
		missing *parser.ErrMissingField
		wrong   *parser.ErrFieldType
		empty   *parser.ErrEmptyPolygon
		ring    *parser.ErrEmptyRing
		invalid *parser.ErrInvalidCoordinate
	)
	switch {
	case errors.As(err, &missing):
		return "missing_field"
	case errors.As(err, &wrong):
		return "field_type"
	case errors.As(err, &empty):
		return "empty_polygon"
	case errors.As(err, &ring):
		return "empty_ring"
	case errors.As(err, &invalid):
		return "invalid_coordinate"
	default:
		return "other"
	}
}
