// Package render projects census areas onto a square pixel grid and draws
// their vertex outlines and labels.
package render

import (
	"fmt"
	"image"
	"math"

	"github.com/paulmach/orb"
)

// Default grid parameters for the England and Wales output-area grid.
const (
	DefaultSize    = 16384
	DefaultXOffset = 75000.0
	DefaultYOffset = 1000.0
	DefaultScale   = 45.0
)

// Projection maps dataset coordinates onto a Size x Size pixel grid.
//
// One pixel covers Scale dataset units on each axis. The y axis is flipped so
// that north is up. Projection never clamps; use Check to detect pixels that
// fall outside the grid.
type Projection struct {
	Size    int
	XOffset float64
	YOffset float64
	Scale   float64
}

// DefaultProjection returns the default grid.
func DefaultProjection() Projection {
	return Projection{
		Size:    DefaultSize,
		XOffset: DefaultXOffset,
		YOffset: DefaultYOffset,
		Scale:   DefaultScale,
	}
}

// Validate reports an unusable projection.
func (p Projection) Validate() error {
	if p.Size <= 0 {
		return fmt.Errorf("projection size must be positive, got %d", p.Size)
	}
	if !(p.Scale > 0) || math.IsInf(p.Scale, 0) {
		return fmt.Errorf("projection scale must be positive and finite, got %v", p.Scale)
	}
	if math.IsNaN(p.XOffset) || math.IsInf(p.XOffset, 0) || math.IsNaN(p.YOffset) || math.IsInf(p.YOffset, 0) {
		return fmt.Errorf("projection offsets must be finite, got (%v, %v)", p.XOffset, p.YOffset)
	}
	return nil
}

// Project returns the pixel for a dataset coordinate.
//
//	x = floor((X - XOffset) / Scale)
//	y = Size - floor((Y - YOffset) / Scale)
//
// Steps further off the grid than one pixel are clamped to one pixel outside
// it, so the violated side survives the conversion to int.
func (p Projection) Project(pt orb.Point) image.Point {
	x := p.clamp(math.Floor((pt[0] - p.XOffset) / p.Scale))
	y := p.clamp(math.Floor((pt[1] - p.YOffset) / p.Scale))
	return image.Point{X: x, Y: p.Size - y}
}

// clamp limits a floored step count to [-1, Size+1]. NaN maps to -1.
func (p Projection) clamp(v float64) int {
	switch {
	case v > float64(p.Size+1):
		return p.Size + 1
	case v >= -1:
		return int(v)
	default:
		return -1
	}
}

// Unproject returns the dataset coordinate of the corner of pixel px that
// projects onto px.
func (p Projection) Unproject(px image.Point) orb.Point {
	return orb.Point{
		float64(px.X)*p.Scale + p.XOffset,
		float64(p.Size-px.Y)*p.Scale + p.YOffset,
	}
}

// Check reports whether px lies on the grid. Both axes accept [0, Size].
//
// The checks run in a fixed order: x above Size, y above Size, x below zero,
// y below zero. The first failing check is reported.
func (p Projection) Check(px image.Point) error {
	switch {
	case px.X > p.Size:
		return &ErrOutOfBounds{Pixel: px, Axis: "x", Bound: p.Size, Size: p.Size}
	case px.Y > p.Size:
		return &ErrOutOfBounds{Pixel: px, Axis: "y", Bound: p.Size, Size: p.Size}
	case px.X < 0:
		return &ErrOutOfBounds{Pixel: px, Axis: "x", Bound: 0, Size: p.Size}
	case px.Y < 0:
		return &ErrOutOfBounds{Pixel: px, Axis: "y", Bound: 0, Size: p.Size}
	}
	return nil
}

// Bound returns the dataset rectangle covered by the grid.
func (p Projection) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{p.XOffset, p.YOffset},
		Max: orb.Point{p.XOffset + float64(p.Size)*p.Scale, p.YOffset + float64(p.Size)*p.Scale},
	}
}

// project maps pt and checks the result, filling in the dataset coordinate on
// failure.
func (p Projection) project(pt orb.Point) (image.Point, error) {
	px := p.Project(pt)
	if err := p.Check(px); err != nil {
		oob := err.(*ErrOutOfBounds)
		oob.World = pt
		return px, oob
	}
	return px, nil
}
