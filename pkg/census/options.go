package census

import (
	"github.com/beetlebugorg/oarender/internal/logging"
	"github.com/beetlebugorg/oarender/internal/metrics"
	"github.com/beetlebugorg/oarender/internal/parser"
)

// DefaultProgressInterval is the number of records between progress lines.
const DefaultProgressInterval = 500

// ParseOptions configures loading behavior.
type ParseOptions struct {
	// SkipInvalidAreas logs and skips records that fail attribute or geometry
	// checks instead of aborting the load. A non-polygon shape or an
	// unreadable dataset still aborts.
	SkipInvalidAreas bool

	// ValidateGeometry rejects records with NaN or infinite coordinates.
	ValidateGeometry bool

	// Encoding is the character set of the dBase text fields
	// ("utf-8", "windows-1252" or "iso-8859-1").
	Encoding string

	// ProgressInterval is the number of records between progress lines.
	// Zero or less disables them.
	ProgressInterval int

	// Logger receives progress and skip lines. Nil means no logging.
	Logger logging.Logger

	// Metrics receives load counters. Nil means no metrics.
	Metrics *metrics.Collector
}

// DefaultParseOptions returns default options.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		SkipInvalidAreas: false,
		ValidateGeometry: false,
		Encoding:         parser.EncodingUTF8,
		ProgressInterval: DefaultProgressInterval,
	}
}

func (o ParseOptions) readerOptions() parser.Options {
	opts := parser.DefaultOptions()
	if o.Encoding != "" {
		opts.Encoding = o.Encoding
	}
	return opts
}
