package screen

import (
	"testing"

	"github.com/tobilg/tileserv/internal/grid"
)

// TestProjectMatchesReferenceFixture reproduces spec.md scenario S4, taken
// directly from the reference implementation's screen-projection test.
func TestProjectMatchesReferenceFixture(t *testing.T) {
	extent := grid.Extent{MinX: 958826.08, MinY: 5987771.04, MaxX: 978393.96, MaxY: 6007338.92}
	sx, sy := Project(extent, 4096, 960000.0, 6002729.0)
	if sx != 245 || sy != 3131 {
		t.Fatalf("got (%d, %d) want (245, 3131)", sx, sy)
	}
}

func TestProjectRoundsTowardZero(t *testing.T) {
	extent := grid.Extent{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	// 0.9999... should truncate to 0, not round to 1.
	sx, sy := Project(extent, 1, 9.9999, 9.9999)
	if sx != 0 || sy != 0 {
		t.Fatalf("got (%d, %d) want (0, 0)", sx, sy)
	}
}

func TestProjectPointsPreservesOrder(t *testing.T) {
	extent := grid.Extent{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}
	pts := [][2]float64{{0, 0}, {50, 50}, {100, 100}}
	got := ProjectPoints(extent, 10, pts)
	want := [][2]int32{{0, 0}, {5, 5}, {10, 10}}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("point %d: got %v want %v", i, got[i], want[i])
		}
	}
}
