// Package parsertest provides in-memory and on-disk shapefile fixtures for tests.
package parsertest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
)

// Item is one record of a fixture: a shape and its attribute values in field order
type Item struct {
	Shape  shp.Shape
	Values []string
}

// Source is an in-memory parser.Source
type Source struct {
	fields []shp.Field
	items  []Item
	pos    int
	err    error

	Closed bool
}

// NewSource returns a source yielding items in order
func NewSource(fields []shp.Field, items ...Item) *Source {
	return &Source{fields: fields, items: items, pos: -1}
}

// FailAfter makes Next fail with err once all items have been returned
func (s *Source) FailAfter(err error) *Source {
	s.err = err
	return s
}

// Next advances to the next item
func (s *Source) Next() bool {
	if s.pos+1 >= len(s.items) {
		return false
	}
	s.pos++
	return true
}

// Shape returns the index and shape of the current item
func (s *Source) Shape() (int, shp.Shape) {
	return s.pos, s.items[s.pos].Shape
}

// Attribute returns the n-th value of the current item, or "" when it has none
func (s *Source) Attribute(n int) string {
	values := s.items[s.pos].Values
	if n < 0 || n >= len(values) {
		return ""
	}
	return values[n]
}

// Fields returns the fields the source was created with
func (s *Source) Fields() []shp.Field { return s.fields }

// Err returns the FailAfter error once every item has been read
func (s *Source) Err() error {
	if s.pos+1 >= len(s.items) {
		return s.err
	}
	return nil
}

// Close marks the source closed
func (s *Source) Close() error {
	s.Closed = true
	return nil
}

// AreaFields returns the four character fields an output area record carries
func AreaFields() []shp.Field {
	return []shp.Field{
		shp.StringField("label", 16),
		shp.StringField("code", 16),
		shp.StringField("name", 32),
		shp.StringField("altname", 32),
	}
}

// Polygon builds a go-shp polygon from rings given as flat x,y pairs
func Polygon(rings ...[]float64) *shp.Polygon {
	parts := make([][]shp.Point, 0, len(rings))
	for _, flat := range rings {
		pts := make([]shp.Point, 0, len(flat)/2)
		for i := 0; i+1 < len(flat); i += 2 {
			pts = append(pts, shp.Point{X: flat[i], Y: flat[i+1]})
		}
		parts = append(parts, pts)
	}
	poly := shp.Polygon(*shp.NewPolyLine(parts))
	return &poly
}

// Square returns a closed axis-aligned square ring as flat x,y pairs
func Square(x, y, size float64) []float64 {
	return []float64{
		x, y,
		x + size, y,
		x + size, y + size,
		x, y + size,
		x, y,
	}
}

// WriteShapefile writes a polygon shapefile (.shp, .shx, .dbf) into dir and
// returns the .shp path.
func WriteShapefile(t testing.TB, dir, name string, fields []shp.Field, items ...Item) string {
	t.Helper()

	base := filepath.Join(dir, name)
	w, err := shp.Create(base+".shp", shp.POLYGON)
	if err != nil {
		t.Fatalf("create shapefile: %v", err)
	}

	if err := w.SetFields(fields); err != nil {
		w.Close()
		t.Fatalf("set fields: %v", err)
	}
	for _, item := range items {
		row := w.Write(item.Shape)
		for i, v := range item.Values {
			if err := w.WriteAttribute(int(row), i, v); err != nil {
				w.Close()
				t.Fatalf("write attribute %d of row %d: %v", i, row, err)
			}
		}
	}
	w.Close()

	// go-shp names the attribute table base+"dbf", without the dot
	if _, err := os.Stat(base + "dbf"); err == nil {
		if err := os.Rename(base+"dbf", base+".dbf"); err != nil {
			t.Fatalf("rename dbf: %v", err)
		}
	}
	return base + ".shp"
}
