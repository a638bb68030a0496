// Package layer holds the Layer/Tileset data model (spec.md §3) and the
// per-zoom query selection rule (§4.1's invariant I1).
package layer

import "sort"

// LayerQuery is one candidate SQL template for a zoom range.
type LayerQuery struct {
	MinZoomValue *uint8
	MaxZoomValue *uint8
	SQL          string
}

const (
	defaultMinZoom uint8 = 0
	defaultMaxZoom uint8 = 22
)

// MinZoom returns the effective minimum zoom, defaulting to 0.
func (q LayerQuery) MinZoom() uint8 {
	if q.MinZoomValue == nil {
		return defaultMinZoom
	}
	return *q.MinZoomValue
}

// MaxZoom returns the effective maximum zoom, defaulting to 22.
func (q LayerQuery) MaxZoom() uint8 {
	if q.MaxZoomValue == nil {
		return defaultMaxZoom
	}
	return *q.MaxZoomValue
}

func (q LayerQuery) covers(zoom uint8) bool {
	return zoom >= q.MinZoom() && zoom <= q.MaxZoom()
}

// Layer binds a name to an optional table or set of zoom-ranged query
// templates, plus the geometry/fid column bindings and wire encoding knobs.
type Layer struct {
	Name          string
	Datasource    string
	GeometryField string
	GeometryType  string // uppercase OGC name, may be "GEOMETRY" (generic)
	SRID          int
	FidField      string
	TableName     string
	QueryLimit    uint32
	Query         []LayerQuery
	TileSize      uint32 // default 4096
	Simplify      bool
	BufferSize    *uint32
}

// EffectiveTileSize returns TileSize, defaulting to 4096 when unset.
func (l Layer) EffectiveTileSize() uint32 {
	if l.TileSize == 0 {
		return 4096
	}
	return l.TileSize
}

// SelectQuery implements the selection rule of spec.md §4.1/§4.2 (invariant
// I1, Open Question 2): of the queries covering zoom, the one with the
// greatest minzoom wins; ties on minzoom are broken by later declaration
// order. This is implemented, per the reference source, as a stable sort by
// ascending minzoom followed by a reverse scan for the first cover — not as
// a direct max-search — so that the tie-break matches exactly.
func (l Layer) SelectQuery(zoom uint8) (LayerQuery, bool) {
	if len(l.Query) == 0 {
		return LayerQuery{}, false
	}
	ordered := make([]LayerQuery, len(l.Query))
	copy(ordered, l.Query)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].MinZoom() < ordered[j].MinZoom()
	})
	for i := len(ordered) - 1; i >= 0; i-- {
		if ordered[i].covers(zoom) {
			return ordered[i], true
		}
	}
	return LayerQuery{}, false
}

// Tileset groups an ordered set of layers served under one name.
type Tileset struct {
	Name   string
	Layers []Layer
}

// LayerByName returns the layer with the given name, if any.
func (t Tileset) LayerByName(name string) (Layer, bool) {
	for _, l := range t.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return Layer{}, false
}

// Catalog is the simplest TilesetResolver: a name-indexed map, as produced
// by introspecting a PostGIS database at startup.
type Catalog map[string]Tileset

// TilesetByName implements tileservice.TilesetResolver.
func (c Catalog) TilesetByName(name string) (Tileset, bool) {
	ts, ok := c[name]
	return ts, ok
}
