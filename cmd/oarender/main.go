// Command oarender draws census output-area boundaries onto a PNG grid and
// inspects the census data files that go with them.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/beetlebugorg/oarender/internal/config"
	"github.com/beetlebugorg/oarender/internal/logging"
	"github.com/beetlebugorg/oarender/internal/metrics"
	"github.com/beetlebugorg/oarender/internal/population"
	"github.com/beetlebugorg/oarender/internal/tablename"
	"github.com/beetlebugorg/oarender/pkg/census"
	"github.com/beetlebugorg/oarender/pkg/render"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	_ = godotenv.Load(".env")

	var app App
	ctx := kong.Parse(&app,
		kong.Name("oarender"),
		kong.Description("Render census output-area boundaries."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run(&app.Globals))
}

// Globals are flags shared by every command.
type Globals struct {
	LogLevel  string `kong:"name=log-level,env=LOG_LEVEL,help='Log level (debug, info, warn, error).'"`
	LogFormat string `kong:"name=log-format,env=LOG_FORMAT,help='Log format (text or json).'"`
}

// App defines the application cli.
type App struct {
	Globals

	Render     RenderCmd     `kong:"cmd,help='Draw area outlines from a shapefile onto a PNG grid.'"`
	Classify   ClassifyCmd   `kong:"cmd,help='Describe census data files found under a directory.'"`
	Population PopulationCmd `kong:"cmd,help='Aggregate a population CSV export per output area.'"`
}

// RenderCmd loads a shapefile and writes the grid image.
type RenderCmd struct {
	Shapefile   string `kong:"arg,required,type=existingfile,help='Output-area shapefile (.shp or .zip).'"`
	Output      string `kong:"name=output,short=o,type=path,default='grid.png',help='Destination PNG.'"`
	Config      string `kong:"name=config,short=c,type=existingfile,help='TOML or YAML settings file.'"`
	Labels      bool   `kong:"name=labels,short=l,help='Draw area labels.'"`
	SkipInvalid bool   `kong:"name=skip-invalid,help='Skip invalid records instead of failing.'"`
	MetricsFile string `kong:"name=metrics-file,type=path,help='Write Prometheus metrics to this textfile.'"`
}

// Run executes the render command.
func (c *RenderCmd) Run(g *Globals) (err error) {
	cfg := config.Default()
	if c.Config != "" {
		if cfg, err = config.Load(c.Config); err != nil {
			return err
		}
	}
	if c.Labels {
		cfg.Render.Labels = true
	}
	if c.SkipInvalid {
		cfg.Load.SkipInvalidAreas = true
	}
	g.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := cfg.Logger()
	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(reg)
	if err != nil {
		return err
	}
	if c.MetricsFile != "" {
		defer func() {
			if werr := metrics.WriteTextfile(c.MetricsFile, reg); werr != nil && err == nil {
				err = werr
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	popts := cfg.ParseOptions(log)
	popts.Metrics = collector
	m, err := census.NewParser().ParseWithOptions(ctx, c.Shapefile, popts)
	if err != nil {
		return fmt.Errorf("load %s: %w", c.Shapefile, err)
	}

	ropts, err := cfg.RenderOptions(log)
	if err != nil {
		return err
	}
	ropts.Metrics = collector

	out, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := draw(ctx, m, cfg.GridProjection(), ropts, out); err != nil {
		out.Close()
		os.Remove(c.Output)
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	log.Info(ctx, "wrote grid", logging.String("output", c.Output), logging.Int("areas", m.Len()))
	return nil
}

func draw(ctx context.Context, m *census.Map, proj render.Projection, opts render.Options, out io.Writer) error {
	canvas, err := render.NewImageCanvas(proj.Size, opts.Style.Background, out)
	if err != nil {
		return err
	}
	r, err := render.NewRasterizer(proj, canvas, opts)
	if err != nil {
		return err
	}
	return r.Render(ctx, m)
}

// ClassifyCmd describes the census data files under a directory.
type ClassifyCmd struct {
	Dir string `kong:"arg,required,type=existingdir,help='Directory of bulk-download CSV files.'"`
}

// Run executes the classify command.
func (c *ClassifyCmd) Run(g *Globals) error {
	log := g.logger()

	entries, err := tablename.Discover(c.Dir)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		if e.Err != nil {
			log.Warn(context.Background(), "unclassified file", logging.String("path", e.Path), logging.Err(e.Err))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", e.Path, e.Description)
	}
	return w.Flush()
}

// PopulationCmd aggregates a population export.
type PopulationCmd struct {
	CSV string `kong:"arg,required,type=existingfile,help='NOMIS population CSV export.'"`
}

// Run executes the population command.
func (c *PopulationCmd) Run(g *Globals) error {
	log := g.logger()

	f, err := os.Open(c.CSV)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := population.ReadRows(f)
	if err != nil {
		return fmt.Errorf("%s: %w", c.CSV, err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tTYPE\tRESIDENTS\tHECTARES\tDENSITY")
	for _, group := range population.GroupByGeography(rows) {
		rec, err := population.Aggregate(group)
		if err != nil {
			return err
		}
		log.Debug(context.Background(), "aggregated area", logging.String("code", rec.GeographyCode))
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%.1f\n", rec.GeographyCode, rec.GeographyType,
			rec.Count(population.Total, population.AllResidents), rec.AreaSize, rec.Density)
	}
	return w.Flush()
}

func (g *Globals) apply(cfg *config.Config) {
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}
}

func (g *Globals) logger() logging.Logger {
	cfg := config.Default()
	g.apply(&cfg)
	return cfg.Logger()
}
