package render

import (
	"errors"
	"image"
	"testing"

	"github.com/paulmach/orb"
)

// TestProject tests the pixel formula
func TestProject(t *testing.T) {
	p := DefaultProjection()

	tests := []struct {
		name string
		in   orb.Point
		want image.Point
	}{
		{"origin", orb.Point{75000, 1000}, image.Point{0, 16384}},
		{"one step east", orb.Point{75045, 1000}, image.Point{1, 16384}},
		{"one step north", orb.Point{75000, 1045}, image.Point{0, 16383}},
		{"inside first pixel", orb.Point{75044.9, 1044.9}, image.Point{0, 16384}},
		{"west of origin floors down", orb.Point{74999, 1000}, image.Point{-1, 16384}},
		{"far corner", orb.Point{75000 + 45*16384, 1000 + 45*16384}, image.Point{16384, 0}},
		{"far east clamps", orb.Point{1e25, 1000}, image.Point{16385, 16384}},
		{"far west clamps", orb.Point{-1e25, 1000}, image.Point{-1, 16384}},
		{"far north clamps", orb.Point{75000, 1e25}, image.Point{0, -1}},
		{"far south clamps", orb.Point{75000, -1e25}, image.Point{0, 16385}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Project(tt.in); got != tt.want {
				t.Errorf("Project(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestProjectDeterministic tests repeatability and the one-pixel step
func TestProjectDeterministic(t *testing.T) {
	p := DefaultProjection()
	pt := orb.Point{512345.6, 234567.8}

	first := p.Project(pt)
	if again := p.Project(pt); again != first {
		t.Errorf("Project is not deterministic: %v vs %v", first, again)
	}

	east := p.Project(orb.Point{pt[0] + p.Scale, pt[1]})
	if east.X-first.X != 1 || east.Y != first.Y {
		t.Errorf("Moving east by one scale step should move one pixel: %v -> %v", first, east)
	}
	north := p.Project(orb.Point{pt[0], pt[1] + p.Scale})
	if first.Y-north.Y != 1 || north.X != first.X {
		t.Errorf("Moving north by one scale step should move one pixel up: %v -> %v", first, north)
	}
}

// TestUnproject tests that pixel corners round trip
func TestUnproject(t *testing.T) {
	p := DefaultProjection()
	for _, px := range []image.Point{{0, 16384}, {10, 100}, {16384, 0}} {
		if got := p.Project(p.Unproject(px)); got != px {
			t.Errorf("Project(Unproject(%v)) = %v", px, got)
		}
	}
}

// TestProjectReportsViolatedSide tests that points far off the grid break the bound on their side
func TestProjectReportsViolatedSide(t *testing.T) {
	p := DefaultProjection()

	tests := []struct {
		name  string
		in    orb.Point
		axis  string
		bound int
	}{
		{"east", orb.Point{1e25, 5000}, "x", 16384},
		{"west", orb.Point{-1e25, 5000}, "x", 0},
		{"north", orb.Point{80000, 1e25}, "y", 0},
		{"south", orb.Point{80000, -1e25}, "y", 16384},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.project(tt.in)
			var oob *ErrOutOfBounds
			if !errors.As(err, &oob) {
				t.Fatalf("Expected ErrOutOfBounds, got %v", err)
			}
			if oob.Axis != tt.axis || oob.Bound != tt.bound {
				t.Errorf("Got axis %s bound %d, want %s %d", oob.Axis, oob.Bound, tt.axis, tt.bound)
			}
			if oob.World != tt.in {
				t.Errorf("Expected world point %v, got %v", tt.in, oob.World)
			}
		})
	}
}

// TestCheck tests the bounds check order and inclusive limits
func TestCheck(t *testing.T) {
	p := Projection{Size: 100, Scale: 1}

	tests := []struct {
		name  string
		px    image.Point
		axis  string
		bound int
	}{
		{"inside", image.Point{50, 50}, "", 0},
		{"corner zero", image.Point{0, 0}, "", 0},
		{"corner size", image.Point{100, 100}, "", 0},
		{"x too large", image.Point{101, 50}, "x", 100},
		{"y too large", image.Point{50, 101}, "y", 100},
		{"x negative", image.Point{-1, 50}, "x", 0},
		{"y negative", image.Point{50, -1}, "y", 0},
		// x above size is reported before y below zero
		{"x large and y negative", image.Point{101, -1}, "x", 100},
		// y above size is reported before x below zero
		{"y large and x negative", image.Point{-1, 101}, "y", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Check(tt.px)
			if tt.axis == "" {
				if err != nil {
					t.Errorf("Check(%v) error = %v", tt.px, err)
				}
				return
			}
			var oob *ErrOutOfBounds
			if !errors.As(err, &oob) {
				t.Fatalf("Expected ErrOutOfBounds, got %v", err)
			}
			if oob.Axis != tt.axis || oob.Bound != tt.bound || oob.Size != 100 {
				t.Errorf("Got axis %s bound %d size %d", oob.Axis, oob.Bound, oob.Size)
			}
		})
	}
}

// TestParseColor tests named and hex colours
func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"red", false},
		{"DarkSlateGray", false},
		{"#ff8000", false},
		{"#f80", false},
		{"#12345", true},
		{"#gggggg", true},
		{"sans-serif", true},
	}
	for _, tt := range tests {
		_, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}

	c, _ := ParseColor("#f80")
	if r, g, b, _ := c.RGBA(); r>>8 != 0xff || g>>8 != 0x88 || b>>8 != 0 {
		t.Errorf("#f80 = %v", c)
	}
}
