package mvt

// TileBuilder accumulates an ordered sequence of encoded layers for one
// tile request.
type TileBuilder struct {
	layerBufs [][]byte
}

// NewTileBuilder starts an empty tile.
func NewTileBuilder() *TileBuilder {
	return &TileBuilder{}
}

// AppendLayer encodes and appends a completed layer, preserving the
// tileset's declared layer order (spec.md §5 "Ordering guarantees").
func (t *TileBuilder) AppendLayer(l *LayerBuilder) {
	t.layerBufs = append(t.layerBufs, l.Encode())
}

// Encode serialises the full tile message: a length-delimited sequence of
// layers (spec.md §4.5 "Outer structure").
func (t *TileBuilder) Encode() []byte {
	var out []byte
	for _, lb := range t.layerBufs {
		out = appendLengthDelimited(out, tileFieldLayers, lb)
	}
	return out
}
