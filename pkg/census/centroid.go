package census

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// CentroidPrecision is the distance tolerance of the label point search, in
// dataset units.
const CentroidPrecision = 0.1

// poleOfInaccessibility is the computation used by the area accessors.
var poleOfInaccessibility = PoleOfInaccessibility

// CachedCentroid returns the area's label point, computing and storing it on
// first use. Later calls return the stored value without recomputation.
//
// Not safe for concurrent use on the same area.
func (a *Area) CachedCentroid() (orb.Point, error) {
	if a.hasCentroid {
		return a.centroid, nil
	}
	p, err := a.computeCentroid()
	if err != nil {
		return orb.Point{}, err
	}
	a.centroid = p
	a.hasCentroid = true
	return p, nil
}

// Centroid returns the area's label point without storing it.
//
// A value stored by an earlier CachedCentroid call is returned as is;
// otherwise the point is computed and discarded.
func (a *Area) Centroid() (orb.Point, error) {
	if a.hasCentroid {
		return a.centroid, nil
	}
	return a.computeCentroid()
}

func (a *Area) computeCentroid() (orb.Point, error) {
	p, err := poleOfInaccessibility(a.Boundary.Polygon(), CentroidPrecision)
	if err != nil {
		return orb.Point{}, &ErrCentroid{Code: a.Code, Reason: err.Error()}
	}
	return p, nil
}

// PoleOfInaccessibility returns the interior point of poly farthest from its
// boundary, to within precision.
//
// The search covers the bounding box with square cells and keeps splitting
// the cells that could still hold a better point, best first. Holes count as
// boundary. A polygon whose bounding box has zero width or height returns the
// box minimum.
func PoleOfInaccessibility(poly orb.Polygon, precision float64) (orb.Point, error) {
	if precision <= 0 || math.IsNaN(precision) {
		return orb.Point{}, fmt.Errorf("precision must be positive, got %v", precision)
	}
	if len(poly) == 0 || len(poly[0]) == 0 {
		return orb.Point{}, fmt.Errorf("polygon has no exterior vertices")
	}
	for _, ring := range poly {
		for _, p := range ring {
			if !finite(p) {
				return orb.Point{}, fmt.Errorf("non-finite vertex (%v, %v)", p[0], p[1])
			}
		}
	}

	b := poly[0].Bound()
	width := b.Max[0] - b.Min[0]
	height := b.Max[1] - b.Min[1]
	cellSize := math.Min(width, height)
	if cellSize == 0 {
		return b.Min, nil
	}
	half := cellSize / 2

	queue := &cellQueue{}
	for x := b.Min[0]; x < b.Max[0]; x += cellSize {
		for y := b.Min[1]; y < b.Max[1]; y += cellSize {
			heap.Push(queue, newCell(orb.Point{x + half, y + half}, half, poly))
		}
	}

	best := newCell(b.Center(), 0, poly)
	if c, _ := planar.CentroidArea(poly); finite(c) {
		if guess := newCell(c, 0, poly); guess.dist > best.dist {
			best = guess
		}
	}

	for queue.Len() > 0 {
		c := heap.Pop(queue).(*cell)
		if c.dist > best.dist {
			best = c
		}
		if c.max-best.dist <= precision {
			continue
		}
		h := c.half / 2
		heap.Push(queue, newCell(orb.Point{c.center[0] - h, c.center[1] - h}, h, poly))
		heap.Push(queue, newCell(orb.Point{c.center[0] + h, c.center[1] - h}, h, poly))
		heap.Push(queue, newCell(orb.Point{c.center[0] - h, c.center[1] + h}, h, poly))
		heap.Push(queue, newCell(orb.Point{c.center[0] + h, c.center[1] + h}, h, poly))
	}

	return best.center, nil
}

// cell is a square search cell
type cell struct {
	center orb.Point
	half   float64 // half the side length
	dist   float64 // signed distance from center to the boundary
	max    float64 // best distance any point in the cell could reach
}

func newCell(center orb.Point, half float64, poly orb.Polygon) *cell {
	d := signedDistance(center, poly)
	return &cell{
		center: center,
		half:   half,
		dist:   d,
		max:    d + half*math.Sqrt2,
	}
}

// signedDistance is positive inside the polygon and negative outside
func signedDistance(p orb.Point, poly orb.Polygon) float64 {
	minDist := math.Inf(1)
	for _, ring := range poly {
		n := len(ring)
		for i := 0; i < n; i++ {
			a := ring[i]
			b := ring[(i+1)%n]
			if d := planar.DistanceFromSegment(a, b, p); d < minDist {
				minDist = d
			}
		}
	}
	if planar.PolygonContains(poly, p) {
		return minDist
	}
	return -minDist
}

func finite(p orb.Point) bool {
	return !math.IsNaN(p[0]) && !math.IsInf(p[0], 0) && !math.IsNaN(p[1]) && !math.IsInf(p[1], 0)
}

// cellQueue is a max-heap of cells ordered by potential distance
type cellQueue []*cell

func (q cellQueue) Len() int           { return len(q) }
func (q cellQueue) Less(i, j int) bool { return q[i].max > q[j].max }
func (q cellQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *cellQueue) Push(x any) {
	*q = append(*q, x.(*cell))
}

func (q *cellQueue) Pop() any {
	old := *q
	n := len(old)
	c := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return c
}
