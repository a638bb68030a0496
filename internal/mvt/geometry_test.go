package mvt

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/tobilg/tileserv/internal/geom"
	"github.com/tobilg/tileserv/internal/grid"
)

func TestEncodeGeometryPoint(t *testing.T) {
	extent := grid.Extent{MinX: 0, MinY: 0, MaxX: 4096, MaxY: 4096}
	g := geom.FromOrb(geom.TypePoint, 3857, orb.Point{1205, 1540})
	gt, cmds, err := EncodeGeometry(g, extent, 4096)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gt != GeomPoint {
		t.Fatalf("expected GeomPoint, got %v", gt)
	}
	want := []uint32{9, 2410, 3080}
	if len(cmds) != len(want) {
		t.Fatalf("got %v want %v", cmds, want)
	}
	for i := range want {
		if cmds[i] != want[i] {
			t.Fatalf("got %v want %v", cmds, want)
		}
	}
}

func TestEncodeGeometryPolygonDropsClosingPoint(t *testing.T) {
	extent := grid.Extent{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	ring := orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 0}}
	poly := orb.Polygon{ring}
	g := geom.FromOrb(geom.TypePolygon, 3857, poly)

	gt, cmds, err := EncodeGeometry(g, extent, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gt != GeomPolygon {
		t.Fatalf("expected GeomPolygon, got %v", gt)
	}
	// MoveTo(1), 2 params, LineTo(2), 4 params, ClosePath(1) = 9 words.
	if len(cmds) != 9 {
		t.Fatalf("expected 9 command words for a 3-point ring, got %d: %v", len(cmds), cmds)
	}
	lastCmd := cmds[len(cmds)-1]
	if lastCmd != commandWord(cmdClosePath, 1) {
		t.Fatalf("expected trailing ClosePath(1), got %d", lastCmd)
	}
}

func TestEncodeGeometryMultiPolygonConcatenates(t *testing.T) {
	extent := grid.Extent{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	ring1 := orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}
	ring2 := orb.Ring{{5, 5}, {6, 5}, {6, 6}, {5, 5}}
	mp := orb.MultiPolygon{orb.Polygon{ring1}, orb.Polygon{ring2}}
	g := geom.FromOrb(geom.TypeMultiPolygon, 3857, mp)

	gt, cmds, err := EncodeGeometry(g, extent, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gt != GeomPolygon {
		t.Fatalf("expected GeomPolygon (multi-* reuses singular tag), got %v", gt)
	}
	if len(cmds) != 18 {
		t.Fatalf("expected 18 command words (9 per ring), got %d", len(cmds))
	}
}

func TestEncodeGeometryCollectionIsUnsupported(t *testing.T) {
	g := geom.FromOrb(geom.TypeCollection, 3857, orb.Collection{orb.Point{0, 0}})
	if _, _, err := EncodeGeometry(g, grid.Extent{MaxX: 1, MaxY: 1}, 10); err == nil {
		t.Fatalf("expected an error for a geometry collection")
	}
}
