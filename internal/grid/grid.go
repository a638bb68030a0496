// Package grid maps tile coordinates to geographic extents on a named
// projected grid.
package grid

import "math"

// Extent is a projected bounding box, minx <= maxx and miny <= maxy.
type Extent struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns MaxX - MinX.
func (e Extent) Width() float64 { return e.MaxX - e.MinX }

// Height returns MaxY - MinY.
func (e Extent) Height() float64 { return e.MaxY - e.MinY }

// Grid is an immutable record describing a projected coordinate reference
// system and its tile scheme.
type Grid struct {
	// Name identifies the grid ("web_mercator", "wgs84").
	Name string
	// SRID is the projected coordinate reference system identifier.
	SRID int
	// World is the full projected extent covered by zoom 0.
	World Extent
	// TileWidth is the tile width in pixels; TileWidth*Resolution0 is the
	// projected width of one zoom-0 tile (independent of a layer's wire
	// tile_size).
	TileWidth int
	// Resolution0 is the projected units per pixel at zoom 0.
	Resolution0 float64
	// YFlip, when true, flips the Y tile index before computing extent()
	// (origin lower-left instead of upper-left). Both predefined grids
	// default to false to match reference tile output byte-for-byte.
	YFlip bool
}

// inchesPerMeter and pixelsPerInch are the OGC-standard factors used to turn
// a resolution (projected units/pixel) into a cartographic scale denominator.
const (
	inchesPerMeter = 39.37
	pixelsPerInch  = 90.71
)

// WebMercator is the predefined EPSG:3857 grid.
var WebMercator = Grid{
	Name:        "web_mercator",
	SRID:        3857,
	World:       Extent{-20037508.342789248, -20037508.342789248, 20037508.342789248, 20037508.342789248},
	TileWidth:   256,
	Resolution0: (2 * 20037508.342789248) / 256,
}

// WGS84 is the predefined EPSG:4326 geographic grid, two tiles wide at zoom 0.
var WGS84 = Grid{
	Name:        "wgs84",
	SRID:        4326,
	World:       Extent{-180, -90, 180, 90},
	TileWidth:   256,
	Resolution0: 360.0 / 512.0,
}

// Resolution returns the projected units per pixel at zoom z.
func (g Grid) Resolution(z int) float64 {
	return g.Resolution0 / math.Pow(2, float64(z))
}

// PixelWidth returns the same value as Resolution; named separately per the
// data model's vocabulary (resolution vs. pixel size of a rendered pixel).
func (g Grid) PixelWidth(z int) float64 {
	return g.Resolution(z)
}

// ScaleDenominator returns the cartographic scale denominator at zoom z.
func (g Grid) ScaleDenominator(z int) float64 {
	return g.Resolution(z) * inchesPerMeter * pixelsPerInch
}

// tilesPerAxis returns 2^z, the factor by which the zoom-0 tile count along
// each axis is multiplied at zoom z.
func tilesPerAxis(z int) int {
	return 1 << uint(z)
}

// Extent returns the projected bounding box of tile (x, y, z) using the
// grid's XYZ scheme: origin at upper-left, Y increasing downward, unless
// YFlip is set. The zoom-0 tile count along each axis is the number of
// TileWidth*Resolution0-wide tiles that fit the world: one by one for
// WebMercator, two columns by one row for WGS84.
func (g Grid) Extent(x, y, z int) Extent {
	n := tilesPerAxis(z)
	span := float64(g.TileWidth) * g.Resolution0
	cols := n * int(math.Round(g.World.Width()/span))
	rows := n * int(math.Round(g.World.Height()/span))
	tileW := g.World.Width() / float64(cols)
	tileH := g.World.Height() / float64(rows)

	row := y
	if g.YFlip {
		row = rows - 1 - y
	}

	minX := g.World.MinX + float64(x)*tileW
	maxX := minX + tileW
	maxY := g.World.MaxY - float64(row)*tileH
	minY := maxY - tileH

	return Extent{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}
