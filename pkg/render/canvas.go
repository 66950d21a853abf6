package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Canvas is a pixel surface the rasterizer draws on.
//
// Flush finalizes the surface. The rasterizer calls it exactly once, after
// every area has been drawn.
type Canvas interface {
	SetPixel(x, y int, c color.Color)
	DrawLabel(text string, x, y int, s LabelStyle) error
	Flush() error
}

// ImageCanvas is a Canvas backed by an in-memory RGBA image that is encoded
// as PNG on Flush.
//
// Pixels outside [0, size) are dropped.
type ImageCanvas struct {
	dc      *gg.Context
	out     io.Writer
	faces   map[float64]font.Face
	flushed bool
}

// NewImageCanvas creates a size x size canvas filled with background that
// writes its PNG encoding to out on Flush.
func NewImageCanvas(size int, background color.Color, out io.Writer) (*ImageCanvas, error) {
	if size <= 0 {
		return nil, fmt.Errorf("canvas size must be positive, got %d", size)
	}
	if out == nil {
		return nil, fmt.Errorf("canvas output is nil")
	}

	dc := gg.NewContext(size, size)
	if background != nil {
		dc.SetColor(background)
		dc.Clear()
	}
	return &ImageCanvas{
		dc:    dc,
		out:   out,
		faces: make(map[float64]font.Face),
	}, nil
}

// SetPixel colours one pixel
func (c *ImageCanvas) SetPixel(x, y int, col color.Color) {
	c.dc.SetColor(col)
	c.dc.SetPixel(x, y)
}

// DrawLabel draws text with its top-left corner at (x, y)
func (c *ImageCanvas) DrawLabel(text string, x, y int, s LabelStyle) error {
	c.dc.SetFontFace(c.face(s.Size))
	c.dc.SetColor(s.Color)
	c.dc.DrawStringAnchored(text, float64(x), float64(y), 0, 1)
	return nil
}

// face returns a Go Regular face of the given size, or the fixed 7x13 bitmap
// face when the size is unusable.
func (c *ImageCanvas) face(size float64) font.Face {
	if f, ok := c.faces[size]; ok {
		return f
	}

	var face font.Face = basicfont.Face7x13
	if size > 0 {
		if f, err := opentype.Parse(goregular.TTF); err == nil {
			if sized, err := opentype.NewFace(f, &opentype.FaceOptions{
				Size:    size,
				DPI:     72,
				Hinting: font.HintingFull,
			}); err == nil {
				face = sized
			}
		}
	}
	c.faces[size] = face
	return face
}

// Image returns the current bitmap
func (c *ImageCanvas) Image() image.Image {
	return c.dc.Image()
}

// Flush encodes the bitmap as PNG. A second call fails with ErrCanvasFlushed.
func (c *ImageCanvas) Flush() error {
	if c.flushed {
		return &ErrCanvasFlushed{}
	}
	c.flushed = true
	if err := c.dc.EncodePNG(c.out); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
