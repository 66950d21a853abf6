package census

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// spatialIndex provides O(log n) bounding box queries using an R-tree.
type spatialIndex struct {
	rtree *rtreego.Rtree
}

// indexedArea wraps an area for R-tree storage.
type indexedArea struct {
	area  *Area
	bound orb.Bound
}

// Bounds implements rtreego.Spatial.
func (a *indexedArea) Bounds() rtreego.Rect {
	return boundRect(a.bound)
}

// boundRect converts a bound to an R-tree rectangle. The R-tree requires
// non-zero lengths, so flat bounds get a small epsilon.
func boundRect(b orb.Bound) rtreego.Rect {
	point := rtreego.Point{b.Min[0], b.Min[1]}

	const epsilon = 0.0001
	width := b.Max[0] - b.Min[0]
	height := b.Max[1] - b.Min[1]
	if width < epsilon {
		width = epsilon
	}
	if height < epsilon {
		height = epsilon
	}

	rect, _ := rtreego.NewRect(point, []float64{width, height})
	return rect
}

func newSpatialIndex(areas []*Area) *spatialIndex {
	// 2D, min 25 children, max 50 children
	rtree := rtreego.NewTree(2, 25, 50)
	for _, a := range areas {
		if len(a.Boundary.Exterior) == 0 {
			continue
		}
		rtree.Insert(&indexedArea{area: a, bound: a.Boundary.Bound()})
	}
	return &spatialIndex{rtree: rtree}
}

// AreasInBounds returns the areas whose exterior bounding box intersects b.
//
// Results are in dataset order.
//
// Example:
//
//	view := orb.Bound{Min: orb.Point{75000, 1000}, Max: orb.Point{80000, 6000}}
//	for _, area := range m.AreasInBounds(view) {
//	    fmt.Println(area.Code)
//	}
func (m *Map) AreasInBounds(b orb.Bound) []*Area {
	if m.spatialIndex == nil || m.spatialIndex.rtree == nil {
		return m.areasInBoundsLinear(b)
	}

	hits := m.spatialIndex.rtree.SearchIntersect(boundRect(b))
	found := make(map[*Area]bool, len(hits))
	for _, s := range hits {
		found[s.(*indexedArea).area] = true
	}

	result := make([]*Area, 0, len(hits))
	for _, a := range m.areas {
		if found[a] {
			result = append(result, a)
		}
	}
	return result
}

// areasInBoundsLinear scans all areas when no index exists.
func (m *Map) areasInBoundsLinear(b orb.Bound) []*Area {
	var result []*Area
	for _, a := range m.areas {
		if len(a.Boundary.Exterior) > 0 && b.Intersects(a.Boundary.Bound()) {
			result = append(result, a)
		}
	}
	return result
}
