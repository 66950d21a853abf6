package parser

import (
	"math"

	"github.com/paulmach/orb"
)

// ValidateCoordinate rejects NaN and infinite coordinates.
// Projected census grids have no fixed range, so finiteness is the only rule.
func ValidateCoordinate(x, y float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return &ErrInvalidCoordinate{Ring: -1, Vertex: -1, X: x, Y: y}
	}
	return nil
}

// ValidateRings checks every vertex of every ring
func ValidateRings(rings []orb.Ring) error {
	for i, ring := range rings {
		for j, p := range ring {
			if err := ValidateCoordinate(p[0], p[1]); err != nil {
				return &ErrInvalidCoordinate{Ring: i, Vertex: j, X: p[0], Y: p[1]}
			}
		}
	}
	return nil
}
