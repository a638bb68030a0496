// Package screen implements the affine map from a geographic extent to
// tile-local signed integer coordinates (spec.md §4.4).
package screen

import (
	"math"

	"github.com/tobilg/tileserv/internal/grid"
)

// Project maps a world-space point to tile-local integer coordinates for a
// tile covering extent, rendered at tileSize. The y-axis is not flipped: the
// reference implementation emits y increasing with projected y, and this is
// preserved for byte-compatibility (spec.md §4.4, §9 Open Question 1).
func Project(extent grid.Extent, tileSize uint32, px, py float64) (int32, int32) {
	sx := math.Trunc((px - extent.MinX) * float64(tileSize) / extent.Width())
	sy := math.Trunc((py - extent.MinY) * float64(tileSize) / extent.Height())
	return int32(sx), int32(sy)
}

// ProjectPoints maps a slice of world-space points point-wise, preserving
// order; used for LineString/Polygon rings and multi-geometries.
func ProjectPoints(extent grid.Extent, tileSize uint32, pts [][2]float64) [][2]int32 {
	out := make([][2]int32, len(pts))
	for i, p := range pts {
		x, y := Project(extent, tileSize, p[0], p[1])
		out[i] = [2]int32{x, y}
	}
	return out
}
