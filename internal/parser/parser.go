package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
)

// Source is a sequential shapefile reader.
//
// Both *shp.Reader (plain .shp/.dbf pair) and *shp.ZipReader (zipped dataset)
// satisfy it. Attribute reads the n-th dBase field of the record most recently
// returned by Next.
type Source interface {
	io.Closer
	Next() bool
	Shape() (int, shp.Shape)
	Attribute(n int) string
	Fields() []shp.Field
	Err() error
}

// Options configures the shape reader
type Options struct {
	// Encoding is the character set of dBase text fields.
	// Empty means UTF-8 (values passed through unchanged).
	Encoding string
}

// DefaultOptions returns reader options with defaults
func DefaultOptions() Options {
	return Options{
		Encoding: EncodingUTF8,
	}
}

// ShapeReader streams polygon records with their attributes in file order.
//
// The first non-polygon shape stops the reader: Next returns false and Err
// reports ErrUnexpectedShape. There is no skip path at this level.
type ShapeReader struct {
	path   string
	src    Source
	fields []shp.Field
	decode func(string) (string, error)

	rec  Record
	err  error
	done bool
}

// Open opens a shapefile dataset.
//
// The path may point to a .shp file (its .dbf sibling is read for attributes)
// or to a .zip archive containing both.
func Open(path string, opts Options) (*ShapeReader, error) {
	var (
		src Source
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		src, err = shp.OpenZip(path)
	} else {
		// go-shp opens the attribute table lazily and drops the error
		dbf := strings.TrimSuffix(path, filepath.Ext(path)) + ".dbf"
		if _, err := os.Stat(dbf); err != nil {
			return nil, &ErrOpenDataset{Path: path, Err: fmt.Errorf("attribute table: %w", err)}
		}
		src, err = shp.Open(path)
	}
	if err != nil {
		return nil, &ErrOpenDataset{Path: path, Err: err}
	}
	if len(src.Fields()) == 0 {
		src.Close()
		return nil, &ErrOpenDataset{Path: path, Err: errors.New("attribute table has no fields")}
	}

	r, err := NewShapeReader(path, src, opts)
	if err != nil {
		src.Close()
		return nil, err
	}
	return r, nil
}

// NewShapeReader wraps an already opened source. name is used in errors only.
func NewShapeReader(name string, src Source, opts Options) (*ShapeReader, error) {
	dec, err := charsetDecoder(opts.Encoding)
	if err != nil {
		return nil, &ErrOpenDataset{Path: name, Err: err}
	}
	return &ShapeReader{
		path:   name,
		src:    src,
		fields: src.Fields(),
		decode: decodeFunc(dec),
	}, nil
}

// Path returns the dataset path the reader was opened with
func (r *ShapeReader) Path() string {
	return r.path
}

// Next advances to the next record.
// It returns false at end of file or on the first error; check Err afterwards.
func (r *ShapeReader) Next() bool {
	if r.done {
		return false
	}
	if !r.src.Next() {
		r.done = true
		if err := r.src.Err(); err != nil {
			r.err = &ErrOpenDataset{Path: r.path, Err: err}
		}
		return false
	}

	index, shape := r.src.Shape()
	poly, ok := shape.(*shp.Polygon)
	if !ok {
		r.done = true
		r.err = &ErrUnexpectedShape{Index: index, Kind: shapeKind(shape)}
		return false
	}

	rings, err := PolygonRings(poly)
	if err != nil {
		var corrupt *ErrCorruptPolygon
		if errors.As(err, &corrupt) {
			corrupt.Index = index
		}
		r.done = true
		r.err = err
		return false
	}

	attrs, err := readAttributes(r.src, r.fields, r.decode)
	if err != nil {
		r.done = true
		r.err = fmt.Errorf("record %d: %w", index, err)
		return false
	}

	r.rec = Record{
		Index:      index,
		Rings:      rings,
		Attributes: attrs,
	}
	return true
}

// Record returns the record read by the last successful call to Next
func (r *ShapeReader) Record() Record {
	return r.rec
}

// Err returns the error that stopped the reader, if any
func (r *ShapeReader) Err() error {
	return r.err
}

// Close releases the underlying files
func (r *ShapeReader) Close() error {
	return r.src.Close()
}

// shapeKind names a go-shp shape for error messages
func shapeKind(s shp.Shape) string {
	switch s.(type) {
	case nil:
		return "nil"
	case *shp.Null:
		return "Null"
	case *shp.Point:
		return "Point"
	case *shp.PolyLine:
		return "PolyLine"
	case *shp.MultiPoint:
		return "MultiPoint"
	case *shp.PointZ:
		return "PointZ"
	case *shp.PolyLineZ:
		return "PolyLineZ"
	case *shp.PolygonZ:
		return "PolygonZ"
	case *shp.MultiPointZ:
		return "MultiPointZ"
	case *shp.PointM:
		return "PointM"
	case *shp.PolyLineM:
		return "PolyLineM"
	case *shp.PolygonM:
		return "PolygonM"
	case *shp.MultiPointM:
		return "MultiPointM"
	case *shp.MultiPatch:
		return "MultiPatch"
	default:
		return fmt.Sprintf("%T", s)
	}
}
