package parser

import (
	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
)

// PolygonRings splits a shapefile polygon into its rings.
//
// Shapefiles store all vertices of a polygon in one Points array; Parts holds
// the start offset of each ring. Ring vertices are copied unchanged, so a ring
// that is closed in the file (first == last) stays closed here. A part that is
// empty or reaches outside Points is an ErrCorruptPolygon with Index -1.
func PolygonRings(poly *shp.Polygon) ([]orb.Ring, error) {
	rings := make([]orb.Ring, 0, len(poly.Parts))
	for i, p := range poly.Parts {
		start, end := int(p), len(poly.Points)
		if i+1 < len(poly.Parts) {
			end = int(poly.Parts[i+1])
		}
		if start < 0 || start >= end || end > len(poly.Points) {
			return nil, &ErrCorruptPolygon{Index: -1, Part: i, Start: start, End: end, Points: len(poly.Points)}
		}
		ring := make(orb.Ring, 0, end-start)
		for _, pt := range poly.Points[start:end] {
			ring = append(ring, orb.Point{pt.X, pt.Y})
		}
		rings = append(rings, ring)
	}
	return rings, nil
}

// DecomposeRings splits the rings of one polygon into an exterior ring and holes.
//
// With a single ring, that ring is the exterior. With more than one, the ring
// appearing last in file order is the exterior and every earlier ring, in
// order, is a hole. Ring orientation is not consulted. An exterior without
// vertices is an ErrEmptyRing.
func DecomposeRings(rings []orb.Ring) (exterior orb.Ring, holes []orb.Ring, err error) {
	if len(rings) == 0 {
		return nil, nil, &ErrEmptyPolygon{Index: -1}
	}

	last := len(rings) - 1
	if len(rings[last]) == 0 {
		return nil, nil, &ErrEmptyRing{Ring: last}
	}
	if last == 0 {
		return rings[0], []orb.Ring{}, nil
	}
	holes = make([]orb.Ring, last)
	copy(holes, rings[:last])
	return rings[last], holes, nil
}
