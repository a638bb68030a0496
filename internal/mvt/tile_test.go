package mvt

import "testing"

func TestTileBuilderEmitsEmptyLayer(t *testing.T) {
	// spec.md §7: a layer with zero features is still emitted, preserving
	// tileset schema for downstream consumers.
	tb := NewTileBuilder()
	tb.AppendLayer(NewLayerBuilder("empty", 4096))
	out := tb.Encode()
	if len(out) == 0 {
		t.Fatalf("expected a non-empty tile message even for an empty layer")
	}
}

func TestTileBuilderPreservesLayerOrder(t *testing.T) {
	tb := NewTileBuilder()
	first := NewLayerBuilder("roads", 4096)
	second := NewLayerBuilder("buildings", 4096)
	tb.AppendLayer(first)
	tb.AppendLayer(second)
	if len(tb.layerBufs) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(tb.layerBufs))
	}
}
