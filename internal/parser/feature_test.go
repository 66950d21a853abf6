package parser

import (
	"errors"
	"testing"

	"github.com/jonas-p/go-shp"
)

// TestFieldTypeName tests readable names for dBase field types
func TestFieldTypeName(t *testing.T) {
	tests := []struct {
		in   byte
		want string
	}{
		{FieldTypeCharacter, "Character"},
		{FieldTypeNumeric, "Numeric"},
		{FieldTypeFloat, "Float"},
		{FieldTypeDate, "Date"},
		{FieldTypeLogical, "Logical"},
		{0, "Unknown"},
		{'M', "Type('M')"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FieldTypeName(tt.in); got != tt.want {
				t.Errorf("FieldTypeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

type attrSource struct {
	Source
	values []string
}

func (s attrSource) Attribute(n int) string { return s.values[n] }

// TestReadAttributes tests capturing every dBase field of a record
func TestReadAttributes(t *testing.T) {
	fields := []shp.Field{
		shp.StringField("label", 16),
		shp.NumberField("pop", 8),
	}
	src := attrSource{values: []string{"E00000001", "194"}}

	attrs, err := readAttributes(src, fields, decodeFunc(nil))
	if err != nil {
		t.Fatalf("readAttributes failed: %v", err)
	}
	if len(attrs) != 2 {
		t.Fatalf("Expected 2 attributes, got %d", len(attrs))
	}
	if attrs["label"].Value != "E00000001" || attrs["label"].Type != FieldTypeCharacter {
		t.Errorf("Unexpected label field: %+v", attrs["label"])
	}
	if attrs["pop"].Type != FieldTypeNumeric {
		t.Errorf("Expected numeric pop field, got %s", FieldTypeName(attrs["pop"].Type))
	}

	failing := func(string) (string, error) { return "", errors.New("bad byte") }
	if _, err := readAttributes(src, fields, failing); err == nil {
		t.Error("Expected decode error")
	}
}
