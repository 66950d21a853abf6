// Package census loads census output-area boundaries from ESRI shapefiles.
//
// A dataset is read into a Map: an ordered registry of Areas, each carrying its
// identifying attributes, its boundary (exterior ring plus holes) and a lazily
// computed label point.
package census

import (
	"github.com/paulmach/orb"
)

// Boundary is the outline of one output area.
//
// Rings are kept vertex-for-vertex as read from the dataset and are implicitly
// closed. The exterior is never empty for an area built by the loader.
type Boundary struct {
	Exterior orb.Ring
	Holes    []orb.Ring
}

// Polygon returns the boundary as an orb.Polygon, exterior first.
func (b Boundary) Polygon() orb.Polygon {
	poly := make(orb.Polygon, 0, 1+len(b.Holes))
	poly = append(poly, b.Exterior)
	poly = append(poly, b.Holes...)
	return poly
}

// Bound returns the bounding box of the exterior ring.
func (b Boundary) Bound() orb.Bound {
	return b.Exterior.Bound()
}

// VertexCount returns the number of stored vertices over all rings.
func (b Boundary) VertexCount() int {
	n := len(b.Exterior)
	for _, h := range b.Holes {
		n += len(h)
	}
	return n
}

// Area is one census output area.
//
// The identifying fields are copied from the dataset's dBase record. Empty
// strings are valid values. The centroid starts out "not computed"; only
// CachedCentroid changes it.
type Area struct {
	Label    string
	Code     string
	Name     string
	AltName  string
	Boundary Boundary

	centroid    orb.Point
	hasCentroid bool
}

// NewArea creates an area with centroid state "not computed".
func NewArea(label, code, name, altName string, boundary Boundary) *Area {
	return &Area{
		Label:    label,
		Code:     code,
		Name:     name,
		AltName:  altName,
		Boundary: boundary,
	}
}

// HasCentroid reports whether the label point has been computed and stored.
func (a *Area) HasCentroid() bool {
	return a.hasCentroid
}

// Map is the ordered registry of areas read from one dataset.
//
// Iteration order is dataset order. The map is read-only after load apart from
// each area's centroid cache.
type Map struct {
	areas        []*Area
	byCode       map[string]*Area
	extent       orb.Bound
	spatialIndex *spatialIndex
	source       string
}

// NewMap builds a registry from areas, in the given order.
func NewMap(areas ...*Area) *Map {
	m := &Map{
		areas:  areas,
		byCode: make(map[string]*Area, len(areas)),
	}
	m.buildIndex()
	return m
}

// Areas returns all areas in dataset order.
func (m *Map) Areas() []*Area {
	return m.areas
}

// Len returns the number of areas.
func (m *Map) Len() int {
	return len(m.areas)
}

// Lookup returns the first area with the given code.
func (m *Map) Lookup(code string) (*Area, bool) {
	a, ok := m.byCode[code]
	return a, ok
}

// Extent returns the union of the exterior bounds of all areas.
//
// An empty map returns the zero Bound.
func (m *Map) Extent() orb.Bound {
	return m.extent
}

// Source returns the dataset path the map was loaded from, or "" for maps
// built with NewMap.
func (m *Map) Source() string {
	return m.source
}

// buildIndex fills the code lookup, the extent and the R-tree
func (m *Map) buildIndex() {
	if len(m.areas) == 0 {
		return
	}

	m.extent = m.areas[0].Boundary.Bound()
	for _, a := range m.areas {
		if _, dup := m.byCode[a.Code]; !dup {
			m.byCode[a.Code] = a
		}
		m.extent = m.extent.Union(a.Boundary.Bound())
	}

	m.spatialIndex = newSpatialIndex(m.areas)
}
