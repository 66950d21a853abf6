package parser

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
)

// TestValidateCoordinate tests coordinate validation
func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		x, y    float64
		wantErr bool
	}{
		{"valid", 75000, 1000, false},
		{"negative", -12.5, -3, false},
		{"zero", 0, 0, false},
		{"NaN x", math.NaN(), 1, true},
		{"NaN y", 1, math.NaN(), true},
		{"+Inf", math.Inf(1), 1, true},
		{"-Inf", 1, math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinate(tt.x, tt.y)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestValidateRings tests validation reports ring and vertex
func TestValidateRings(t *testing.T) {
	rings := []orb.Ring{
		square(0, 0, 1),
		{{0, 0}, {1, math.NaN()}, {0, 0}},
	}

	err := ValidateRings(rings)
	var invalid *ErrInvalidCoordinate
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected ErrInvalidCoordinate, got %v", err)
	}
	if invalid.Ring != 1 || invalid.Vertex != 1 {
		t.Errorf("Expected ring 1 vertex 1, got ring %d vertex %d", invalid.Ring, invalid.Vertex)
	}

	if err := ValidateRings(nil); err != nil {
		t.Errorf("Unexpected error for no rings: %v", err)
	}
	if err := ValidateRings([]orb.Ring{square(0, 0, 1)}); err != nil {
		t.Errorf("Unexpected error for valid rings: %v", err)
	}
}
