package parser

import (
	"fmt"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
)

// dBase field types as stored in the DBF header (Fieldtype byte)
const (
	FieldTypeCharacter byte = 'C'
	FieldTypeNumeric   byte = 'N'
	FieldTypeFloat     byte = 'F'
	FieldTypeDate      byte = 'D'
	FieldTypeLogical   byte = 'L'
)

// FieldTypeName returns a readable name for a dBase field type
func FieldTypeName(t byte) string {
	switch t {
	case FieldTypeCharacter:
		return "Character"
	case FieldTypeNumeric:
		return "Numeric"
	case FieldTypeFloat:
		return "Float"
	case FieldTypeDate:
		return "Date"
	case FieldTypeLogical:
		return "Logical"
	case 0:
		return "Unknown"
	default:
		return fmt.Sprintf("Type(%q)", t)
	}
}

// Field is one decoded dBase attribute of a record
type Field struct {
	Type  byte   // dBase field type ('C', 'N', ...)
	Value string // Raw value, blank-trimmed and charset-decoded
}

// Attributes holds all dBase fields of a record keyed by field name
type Attributes map[string]Field

// Text returns the value of a required character field.
//
// Returns ErrMissingField if the record has no such field and ErrFieldType if
// the field exists but is not a character field. Empty values are valid.
func (a Attributes) Text(name string) (string, error) {
	f, ok := a[name]
	if !ok {
		return "", &ErrMissingField{Field: name}
	}
	if f.Type != FieldTypeCharacter {
		return "", &ErrFieldType{Field: name, Type: f.Type}
	}
	return f.Value, nil
}

// Record is one shape + attribute pair read from the dataset, in file order
type Record struct {
	// Index is the zero-based position of the record in the file
	Index int
	// Rings are the polygon parts exactly as stored in the file
	Rings []orb.Ring
	// Attributes contains every dBase field of the record
	Attributes Attributes
}

// readAttributes captures all dBase fields of the current record of src
func readAttributes(src Source, fields []shp.Field, decode func(string) (string, error)) (Attributes, error) {
	attrs := make(Attributes, len(fields))
	for i, f := range fields {
		name := f.String()
		value, err := decode(src.Attribute(i))
		if err != nil {
			return nil, fmt.Errorf("decode field %s: %w", name, err)
		}
		attrs[name] = Field{
			Type:  f.Fieldtype,
			Value: value,
		}
	}
	return attrs, nil
}
