package parser

import (
	"fmt"
)

// ErrOpenDataset indicates the dataset could not be opened or decoded as a shapefile
type ErrOpenDataset struct {
	Path string
	Err  error
}

func (e *ErrOpenDataset) Error() string {
	return fmt.Sprintf("open dataset %s: %v", e.Path, e.Err)
}

func (e *ErrOpenDataset) Unwrap() error { return e.Err }

// ErrUnexpectedShape indicates a record whose geometry is not a polygon
type ErrUnexpectedShape struct {
	Index int
	Kind  string
}

func (e *ErrUnexpectedShape) Error() string {
	return fmt.Sprintf("record %d: unexpected shape %s (only polygons are supported)", e.Index, e.Kind)
}

// ErrEmptyPolygon indicates a polygon record without any ring
type ErrEmptyPolygon struct {
	Index int
}

func (e *ErrEmptyPolygon) Error() string {
	if e.Index < 0 {
		return "polygon has no rings"
	}
	return fmt.Sprintf("record %d: polygon has no rings", e.Index)
}

// ErrMissingField indicates a required attribute field is absent from the record
type ErrMissingField struct {
	Field string
}

func (e *ErrMissingField) Error() string {
	return fmt.Sprintf("missing required field '%s'", e.Field)
}

// ErrFieldType indicates a required attribute field has an unexpected dBase type
type ErrFieldType struct {
	Field string
	Type  byte
}

func (e *ErrFieldType) Error() string {
	return fmt.Sprintf("unexpected field value type for %s: %s", e.Field, FieldTypeName(e.Type))
}

// ErrInvalidCoordinate indicates a vertex that is NaN or infinite
type ErrInvalidCoordinate struct {
	Ring   int
	Vertex int
	X, Y   float64
}

func (e *ErrInvalidCoordinate) Error() string {
	return fmt.Sprintf("invalid coordinate in ring %d vertex %d: x=%f y=%f", e.Ring, e.Vertex, e.X, e.Y)
}

// ErrEmptyRing indicates a ring without vertices where one is required
type ErrEmptyRing struct {
	Ring int
}

func (e *ErrEmptyRing) Error() string {
	return fmt.Sprintf("ring %d has no vertices", e.Ring)
}

// ErrCorruptPolygon indicates a polygon whose part table does not address
// its point array
type ErrCorruptPolygon struct {
	Index      int
	Part       int
	Start, End int
	Points     int
}

func (e *ErrCorruptPolygon) Error() string {
	return fmt.Sprintf("record %d: part %d spans points %d..%d of %d", e.Index, e.Part, e.Start, e.End, e.Points)
}
