package render

import (
	"fmt"
	"image"

	"github.com/paulmach/orb"
)

// ErrOutOfBounds indicates a projected point that falls outside the grid
type ErrOutOfBounds struct {
	Pixel image.Point
	World orb.Point
	Axis  string // "x" or "y"
	Bound int    // the violated limit, 0 or Size
	Size  int
}

func (e *ErrOutOfBounds) Error() string {
	rel := ">"
	if e.Bound == 0 {
		rel = "<"
	}
	return fmt.Sprintf("point (%v, %v) projects to pixel (%d, %d): %s %d %s %d (grid %d)",
		e.World[0], e.World[1], e.Pixel.X, e.Pixel.Y, e.Axis, e.coord(), rel, e.Bound, e.Size)
}

func (e *ErrOutOfBounds) coord() int {
	if e.Axis == "y" {
		return e.Pixel.Y
	}
	return e.Pixel.X
}

// ErrCanvasFlushed indicates a canvas that has already been encoded
type ErrCanvasFlushed struct{}

func (e *ErrCanvasFlushed) Error() string {
	return "canvas already flushed"
}
