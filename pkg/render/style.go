package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// DefaultLabelSize is the label font size in points.
const DefaultLabelSize = 20.0

// LabelStyle controls how area labels are drawn
type LabelStyle struct {
	Color color.Color
	Size  float64
}

// Style holds the drawing colours
type Style struct {
	Background color.Color
	Exterior   color.Color
	Interior   color.Color
	Label      LabelStyle
}

// DefaultStyle returns black exterior vertices and red hole vertices and
// labels on white.
func DefaultStyle() Style {
	return Style{
		Background: colornames.White,
		Exterior:   colornames.Black,
		Interior:   colornames.Red,
		Label: LabelStyle{
			Color: colornames.Red,
			Size:  DefaultLabelSize,
		},
	}
}

// withDefaults fills unset colours from DefaultStyle
func (s Style) withDefaults() Style {
	d := DefaultStyle()
	if s.Background == nil {
		s.Background = d.Background
	}
	if s.Exterior == nil {
		s.Exterior = d.Exterior
	}
	if s.Interior == nil {
		s.Interior = d.Interior
	}
	if s.Label.Color == nil {
		s.Label.Color = d.Label.Color
	}
	if s.Label.Size <= 0 {
		s.Label.Size = d.Label.Size
	}
	return s
}

// ParseColor resolves an SVG colour name ("red", "darkslategray") or a hex
// triplet ("#ff0000", "#f00").
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return nil, fmt.Errorf("unknown colour %q", s)
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
