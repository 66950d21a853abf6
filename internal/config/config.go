// Package config loads runtime settings for loading and rendering from TOML
// or YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beetlebugorg/oarender/internal/logging"
	"github.com/beetlebugorg/oarender/internal/parser"
	"github.com/beetlebugorg/oarender/pkg/census"
	"github.com/beetlebugorg/oarender/pkg/render"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration.
type Config struct {
	Canvas     Canvas     `toml:"canvas" yaml:"canvas"`
	Projection Projection `toml:"projection" yaml:"projection"`
	Render     Render     `toml:"render" yaml:"render"`
	Style      Style      `toml:"style" yaml:"style"`
	Load       Loading    `toml:"load" yaml:"load"`
	Log        Log        `toml:"log" yaml:"log"`
}

// Canvas sets the output grid.
type Canvas struct {
	Size int `toml:"size" yaml:"size"`
}

// Projection places dataset coordinates on the grid.
type Projection struct {
	XOffset float64 `toml:"x_offset" yaml:"x_offset"`
	YOffset float64 `toml:"y_offset" yaml:"y_offset"`
	Scale   float64 `toml:"scale" yaml:"scale"`
}

// Render controls the draw pass.
type Render struct {
	Labels           bool `toml:"labels" yaml:"labels"`
	CacheCentroids   bool `toml:"cache_centroids" yaml:"cache_centroids"`
	SkipOutOfBounds  bool `toml:"skip_out_of_bounds" yaml:"skip_out_of_bounds"`
	ProgressInterval int  `toml:"progress_interval" yaml:"progress_interval"`
}

// Style holds colours as SVG names or hex triplets.
type Style struct {
	Background string  `toml:"background" yaml:"background"`
	Exterior   string  `toml:"exterior" yaml:"exterior"`
	Interior   string  `toml:"interior" yaml:"interior"`
	LabelColor string  `toml:"label_color" yaml:"label_color"`
	LabelSize  float64 `toml:"label_size" yaml:"label_size"`
}

// Loading controls dataset reading.
type Loading struct {
	Encoding         string `toml:"encoding" yaml:"encoding"`
	SkipInvalidAreas bool   `toml:"skip_invalid_areas" yaml:"skip_invalid_areas"`
	ValidateGeometry bool   `toml:"validate_geometry" yaml:"validate_geometry"`
	ProgressInterval int    `toml:"progress_interval" yaml:"progress_interval"`
}

// Log selects the log level and format.
type Log struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas: Canvas{Size: render.DefaultSize},
		Projection: Projection{
			XOffset: render.DefaultXOffset,
			YOffset: render.DefaultYOffset,
			Scale:   render.DefaultScale,
		},
		Render: Render{
			ProgressInterval: render.DefaultProgressInterval,
		},
		Style: Style{
			Background: "white",
			Exterior:   "black",
			Interior:   "red",
			LabelColor: "red",
			LabelSize:  render.DefaultLabelSize,
		},
		Load: Loading{
			Encoding:         parser.EncodingUTF8,
			ProgressInterval: census.DefaultProgressInterval,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults. The format follows the file extension:
// .toml, .yaml or .yml. Keys absent from the file keep their default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("config %s: unsupported format %q", path, filepath.Ext(path))
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and colour names.
func (c Config) Validate() error {
	if err := c.GridProjection().Validate(); err != nil {
		return err
	}
	if _, err := c.RenderStyle(); err != nil {
		return err
	}
	if err := parser.CheckEncoding(c.Load.Encoding); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.Log.Format)
	}
	return nil
}

// GridProjection returns the grid settings.
func (c Config) GridProjection() render.Projection {
	return render.Projection{
		Size:    c.Canvas.Size,
		XOffset: c.Projection.XOffset,
		YOffset: c.Projection.YOffset,
		Scale:   c.Projection.Scale,
	}
}

// RenderStyle resolves the configured colours.
func (c Config) RenderStyle() (render.Style, error) {
	var (
		s   render.Style
		err error
	)
	if s.Background, err = render.ParseColor(c.Style.Background); err != nil {
		return s, fmt.Errorf("style.background: %w", err)
	}
	if s.Exterior, err = render.ParseColor(c.Style.Exterior); err != nil {
		return s, fmt.Errorf("style.exterior: %w", err)
	}
	if s.Interior, err = render.ParseColor(c.Style.Interior); err != nil {
		return s, fmt.Errorf("style.interior: %w", err)
	}
	if s.Label.Color, err = render.ParseColor(c.Style.LabelColor); err != nil {
		return s, fmt.Errorf("style.label_color: %w", err)
	}
	if c.Style.LabelSize <= 0 {
		return s, fmt.Errorf("style.label_size must be positive, got %v", c.Style.LabelSize)
	}
	s.Label.Size = c.Style.LabelSize
	return s, nil
}

// RenderOptions returns rasterizer options using l for logging.
func (c Config) RenderOptions(l logging.Logger) (render.Options, error) {
	style, err := c.RenderStyle()
	if err != nil {
		return render.Options{}, err
	}
	return render.Options{
		Labels:           c.Render.Labels,
		CacheCentroids:   c.Render.CacheCentroids,
		Style:            style,
		ProgressInterval: c.Render.ProgressInterval,
		SkipOutOfBounds:  c.Render.SkipOutOfBounds,
		Logger:           l,
	}, nil
}

// ParseOptions returns loader options using l for logging.
func (c Config) ParseOptions(l logging.Logger) census.ParseOptions {
	return census.ParseOptions{
		SkipInvalidAreas: c.Load.SkipInvalidAreas,
		ValidateGeometry: c.Load.ValidateGeometry,
		Encoding:         c.Load.Encoding,
		ProgressInterval: c.Load.ProgressInterval,
		Logger:           l,
	}
}

// Logger builds the configured logger.
func (c Config) Logger() logging.Logger {
	return logging.New(logging.Config{Level: c.Log.Level, Format: c.Log.Format})
}
