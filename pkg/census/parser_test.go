package census

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/beetlebugorg/oarender/internal/metrics"
	"github.com/beetlebugorg/oarender/internal/parser"
	"github.com/beetlebugorg/oarender/internal/parser/parsertest"
	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func loadItems(t *testing.T, fields []shp.Field, opts ParseOptions, items ...parsertest.Item) (*Map, error) {
	t.Helper()
	r, err := parser.NewShapeReader("memory.shp", parsertest.NewSource(fields, items...), parser.DefaultOptions())
	if err != nil {
		t.Fatalf("NewShapeReader() error = %v", err)
	}
	return load(context.Background(), r, opts)
}

// TestPublicAPI tests the public parser API
func TestPublicAPI(t *testing.T) {
	if NewParser() == nil {
		t.Fatal("NewParser returned nil")
	}

	opts := DefaultParseOptions()
	if opts.SkipInvalidAreas {
		t.Error("Default SkipInvalidAreas should be false")
	}
	if opts.ProgressInterval != 500 {
		t.Errorf("Default ProgressInterval should be 500, got %d", opts.ProgressInterval)
	}
}

// TestParseShapefile tests loading a shapefile written to disk
func TestParseShapefile(t *testing.T) {
	path := parsertest.WriteShapefile(t, t.TempDir(), "oa", parsertest.AreaFields(),
		parsertest.Item{
			Shape:  parsertest.Polygon(parsertest.Square(75000, 1000, 45)),
			Values: []string{"A", "E00000001", "First", "Cyntaf"},
		},
		parsertest.Item{
			Shape:  parsertest.Polygon(parsertest.Square(75100, 1100, 10), parsertest.Square(75090, 1090, 90)),
			Values: []string{"B", "E00000002", "Second", ""},
		},
	)

	m, err := NewParser().Parse(context.Background(), path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if m.Len() != 2 {
		t.Fatalf("Expected 2 areas, got %d", m.Len())
	}
	if m.Source() != path {
		t.Errorf("Source() = %s, want %s", m.Source(), path)
	}

	first := m.Areas()[0]
	if first.Label != "A" || first.Code != "E00000001" || first.Name != "First" || first.AltName != "Cyntaf" {
		t.Errorf("Unexpected attributes: %+v", first)
	}
	if first.HasCentroid() {
		t.Error("Centroid should start out not computed")
	}

	second, ok := m.Lookup("E00000002")
	if !ok {
		t.Fatal("Lookup(E00000002) failed")
	}
	if len(second.Boundary.Holes) != 1 {
		t.Fatalf("Expected 1 hole, got %d", len(second.Boundary.Holes))
	}
	// Last ring is the exterior
	if second.Boundary.Exterior[0] != (orb.Point{75090, 1090}) {
		t.Errorf("Exterior should be the last ring, starts at %v", second.Boundary.Exterior[0])
	}
	if second.Boundary.Holes[0][0] != (orb.Point{75100, 1100}) {
		t.Errorf("Hole should be the first ring, starts at %v", second.Boundary.Holes[0][0])
	}
}

// TestParseMissingCode tests that a record without a code field aborts the load
func TestParseMissingCode(t *testing.T) {
	fields := []shp.Field{
		shp.StringField("label", 16),
		shp.StringField("name", 32),
		shp.StringField("altname", 32),
	}
	m, err := loadItems(t, fields, DefaultParseOptions(),
		parsertest.Item{Shape: parsertest.Polygon(parsertest.Square(0, 0, 1)), Values: []string{"A", "n", ""}},
	)

	if m != nil {
		t.Error("No map should be returned on failure")
	}
	var missing *parser.ErrMissingField
	if !errors.As(err, &missing) {
		t.Fatalf("Expected ErrMissingField, got %v", err)
	}
	if missing.Field != "code" {
		t.Errorf("Expected field code, got %s", missing.Field)
	}
	if !strings.Contains(err.Error(), "code") {
		t.Errorf("Error should name the field: %v", err)
	}
}

// TestParseWrongFieldType tests that a numeric code field is rejected
func TestParseWrongFieldType(t *testing.T) {
	fields := []shp.Field{
		shp.StringField("label", 16),
		shp.NumberField("code", 10),
		shp.StringField("name", 32),
		shp.StringField("altname", 32),
	}
	_, err := loadItems(t, fields, DefaultParseOptions(),
		parsertest.Item{Shape: parsertest.Polygon(parsertest.Square(0, 0, 1)), Values: []string{"A", "12", "n", ""}},
	)

	var wrongType *parser.ErrFieldType
	if !errors.As(err, &wrongType) || wrongType.Field != "code" {
		t.Fatalf("Expected ErrFieldType(code), got %v", err)
	}
}

// TestParseNonPolygonAborts tests that one non-polygon shape fails the whole load
func TestParseNonPolygonAborts(t *testing.T) {
	for _, skip := range []bool{false, true} {
		opts := DefaultParseOptions()
		opts.SkipInvalidAreas = skip

		m, err := loadItems(t, parsertest.AreaFields(), opts,
			parsertest.Item{Shape: parsertest.Polygon(parsertest.Square(0, 0, 1)), Values: []string{"A", "1", "", ""}},
			parsertest.Item{Shape: &shp.PolyLine{}, Values: []string{"B", "2", "", ""}},
			parsertest.Item{Shape: parsertest.Polygon(parsertest.Square(5, 5, 1)), Values: []string{"C", "3", "", ""}},
		)
		if m != nil {
			t.Errorf("skip=%v: no map should be returned", skip)
		}
		var unexpected *parser.ErrUnexpectedShape
		if !errors.As(err, &unexpected) || unexpected.Index != 1 {
			t.Errorf("skip=%v: expected ErrUnexpectedShape at 1, got %v", skip, err)
		}
	}
}

// TestParseEmptyPolygon tests that a polygon with no rings is rejected
func TestParseEmptyPolygon(t *testing.T) {
	_, err := loadItems(t, parsertest.AreaFields(), DefaultParseOptions(),
		parsertest.Item{Shape: parsertest.Polygon(), Values: []string{"A", "1", "", ""}},
	)
	var empty *parser.ErrEmptyPolygon
	if !errors.As(err, &empty) {
		t.Fatalf("Expected ErrEmptyPolygon, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "record 0:") {
		t.Errorf("Error should carry the record index: %v", err)
	}
}

// TestBuildAreaEmptyExterior tests that an area is never built around an empty exterior
func TestBuildAreaEmptyExterior(t *testing.T) {
	rec := &parser.Record{
		Rings: []orb.Ring{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}, {}},
		Attributes: parser.Attributes{
			FieldLabel:   {Type: parser.FieldTypeCharacter, Value: "A"},
			FieldCode:    {Type: parser.FieldTypeCharacter, Value: "1"},
			FieldName:    {Type: parser.FieldTypeCharacter},
			FieldAltName: {Type: parser.FieldTypeCharacter},
		},
	}

	area, err := buildArea(rec, false)
	var empty *parser.ErrEmptyRing
	if !errors.As(err, &empty) {
		t.Fatalf("Expected ErrEmptyRing, got area=%v err=%v", area, err)
	}
	if got := skipReason(err); got != "empty_ring" {
		t.Errorf("skipReason() = %q, want empty_ring", got)
	}
}

// TestParseSkipInvalidAreas tests the opt-in skip policy
func TestParseSkipInvalidAreas(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}

	opts := DefaultParseOptions()
	opts.SkipInvalidAreas = true
	opts.Metrics = collector

	m, err := loadItems(t, parsertest.AreaFields(), opts,
		parsertest.Item{Shape: parsertest.Polygon(parsertest.Square(0, 0, 1)), Values: []string{"A", "1", "", ""}},
		parsertest.Item{Shape: parsertest.Polygon(), Values: []string{"B", "2", "", ""}},
		parsertest.Item{Shape: parsertest.Polygon(parsertest.Square(5, 5, 1)), Values: []string{"C", "3", "", ""}},
	)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if m.Len() != 2 {
		t.Fatalf("Expected 2 areas, got %d", m.Len())
	}
	if m.Areas()[1].Code != "3" {
		t.Errorf("Order not preserved: %s", m.Areas()[1].Code)
	}
	if got := testutil.ToFloat64(collector.RecordsSkipped.WithLabelValues("empty_polygon")); got != 1 {
		t.Errorf("Expected 1 skipped record, got %v", got)
	}
	if got := testutil.ToFloat64(collector.AreasLoaded); got != 2 {
		t.Errorf("Expected 2 loaded areas, got %v", got)
	}
}

// TestParseValidateGeometry tests non-finite coordinate rejection
func TestParseValidateGeometry(t *testing.T) {
	nan := []float64{0, 0, 1, 0, 1, math.NaN(), 0, 1}

	opts := DefaultParseOptions()
	opts.ValidateGeometry = true
	_, err := loadItems(t, parsertest.AreaFields(), opts,
		parsertest.Item{Shape: parsertest.Polygon(nan), Values: []string{"A", "1", "", ""}},
	)
	var invalid *parser.ErrInvalidCoordinate
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected ErrInvalidCoordinate, got %v", err)
	}
	if invalid.Ring != 0 || invalid.Vertex != 2 {
		t.Errorf("Expected ring 0 vertex 2, got ring %d vertex %d", invalid.Ring, invalid.Vertex)
	}
}

// TestParseCancelled tests that a cancelled context stops the load
func TestParseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := parser.NewShapeReader("memory.shp", parsertest.NewSource(parsertest.AreaFields(),
		parsertest.Item{Shape: parsertest.Polygon(parsertest.Square(0, 0, 1)), Values: []string{"A", "1", "", ""}},
	), parser.DefaultOptions())
	if err != nil {
		t.Fatalf("NewShapeReader() error = %v", err)
	}

	m, err := load(ctx, r, DefaultParseOptions())
	if m != nil || !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled and no map, got %v, %v", m, err)
	}
}

// TestParseMissingFile tests that open failures are reported
func TestParseMissingFile(t *testing.T) {
	_, err := NewParser().Parse(context.Background(), "does-not-exist.shp")
	var open *parser.ErrOpenDataset
	if !errors.As(err, &open) {
		t.Fatalf("Expected ErrOpenDataset, got %v", err)
	}
}
