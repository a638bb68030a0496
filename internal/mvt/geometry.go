package mvt

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/tobilg/tileserv/internal/geom"
	"github.com/tobilg/tileserv/internal/grid"
	"github.com/tobilg/tileserv/internal/screen"
)

// EncodeGeometry projects a world-space geometry into tile-local integer
// coordinates (internal/screen) and encodes the resulting command sequence
// per spec.md §4.5, choosing the wire GeomType for the outer tag — multi-*
// geometries reuse their singular tag, per spec.md's "Feature" paragraph.
func EncodeGeometry(g geom.Geometry, extent grid.Extent, tileSize uint32) (GeomType, []uint32, error) {
	cx, cy := int32(0), int32(0)

	switch v := g.Value.(type) {
	case orb.Point:
		pts := projectRing(extent, tileSize, orb.Ring{v})
		return GeomPoint, encodePoint(nil, &cx, &cy, pts[0][0], pts[0][1]), nil

	case orb.MultiPoint:
		pts := projectRing(extent, tileSize, orb.Ring(v))
		return GeomPoint, encodeMultiPoint(nil, &cx, &cy, pts), nil

	case orb.LineString:
		pts := projectRing(extent, tileSize, orb.Ring(v))
		return GeomLineString, encodeLineString(nil, &cx, &cy, pts), nil

	case orb.MultiLineString:
		var out []uint32
		for _, ls := range v {
			pts := projectRing(extent, tileSize, orb.Ring(ls))
			out = encodeLineString(out, &cx, &cy, pts)
		}
		return GeomLineString, out, nil

	case orb.Polygon:
		out := encodePolygonRings(extent, tileSize, &cx, &cy, v)
		return GeomPolygon, out, nil

	case orb.MultiPolygon:
		var out []uint32
		for _, poly := range v {
			out = append(out, encodePolygonRings(extent, tileSize, &cx, &cy, poly)...)
		}
		return GeomPolygon, out, nil

	case orb.Collection:
		return GeomUnknown, nil, fmt.Errorf("mvt: geometry collections have no single wire geom_type")

	default:
		return GeomUnknown, nil, fmt.Errorf("mvt: unsupported geometry value %T", g.Value)
	}
}

func projectRing(extent grid.Extent, tileSize uint32, ring orb.Ring) [][2]int32 {
	out := make([][2]int32, len(ring))
	for i, p := range ring {
		x, y := screen.Project(extent, tileSize, p[0], p[1])
		out[i] = [2]int32{x, y}
	}
	return out
}

// encodePolygonRings encodes a polygon's outer ring followed by its inner
// rings, sharing one running cursor across all rings (spec.md §4.5
// "Polygon ring": "Outer ring first; inner rings follow").
func encodePolygonRings(extent grid.Extent, tileSize uint32, cx, cy *int32, poly orb.Polygon) []uint32 {
	var out []uint32
	for _, ring := range poly {
		pts := projectRing(extent, tileSize, ring)
		pts = dropClosingPoint(pts)
		out = encodeRing(out, cx, cy, pts)
	}
	return out
}

// dropClosingPoint removes a ring's duplicated first/last point, since
// spec.md §4.5 requires rings not repeat their start point in the wire
// encoding ("do not duplicate the first point"). orb rings are closed
// (first == last) per OGC convention.
func dropClosingPoint(pts [][2]int32) [][2]int32 {
	if len(pts) >= 2 && pts[0] == pts[len(pts)-1] {
		return pts[:len(pts)-1]
	}
	return pts
}
