package mvt

// Command ids for the geometry command-sequence encoding (spec.md §4.5).
const (
	cmdMoveTo    = 1
	cmdLineTo    = 2
	cmdClosePath = 7
)

func commandWord(id, count uint32) uint32 {
	return (id & 0x7) | (count << 3)
}

// zigzag maps a signed 32-bit delta to its zig-zag encoded unsigned form,
// per spec.md §4.5: zz(n) = (n << 1) ^ (n >> 31), signed 32-bit arithmetic
// shift.
func zigzag(n int32) uint32 {
	return uint32((n << 1) ^ (n >> 31))
}

// unzigzag reverses zigzag, used only by tests to assert the round-trip
// property (spec.md P4).
func unzigzag(z uint32) int32 {
	return int32(z>>1) ^ -int32(z&1)
}

// encodePoint appends a MoveTo command plus the zig-zag delta for a single
// point (spec.md §4.5 "Point").
func encodePoint(out []uint32, cx, cy *int32, x, y int32) []uint32 {
	dx, dy := x-*cx, y-*cy
	out = append(out, commandWord(cmdMoveTo, 1), zigzag(dx), zigzag(dy))
	*cx, *cy = x, y
	return out
}

// encodeMultiPoint appends one MoveTo(N) command followed by N delta pairs
// (spec.md §4.5 "MultiPoint").
func encodeMultiPoint(out []uint32, cx, cy *int32, pts [][2]int32) []uint32 {
	if len(pts) == 0 {
		return out
	}
	out = append(out, commandWord(cmdMoveTo, uint32(len(pts))))
	for _, p := range pts {
		dx, dy := p[0]-*cx, p[1]-*cy
		out = append(out, zigzag(dx), zigzag(dy))
		*cx, *cy = p[0], p[1]
	}
	return out
}

// encodeLineString appends MoveTo(1) for the first point followed by
// LineTo(N-1) for the rest (spec.md §4.5 "LineString"). Requires len(pts)>=2.
func encodeLineString(out []uint32, cx, cy *int32, pts [][2]int32) []uint32 {
	if len(pts) < 2 {
		return out
	}
	out = encodePoint(out, cx, cy, pts[0][0], pts[0][1])
	out = append(out, commandWord(cmdLineTo, uint32(len(pts)-1)))
	for _, p := range pts[1:] {
		dx, dy := p[0]-*cx, p[1]-*cy
		out = append(out, zigzag(dx), zigzag(dy))
		*cx, *cy = p[0], p[1]
	}
	return out
}

// encodeRing appends a closed polygon ring: MoveTo(1), LineTo(N-1) over the
// remaining points (the ring must not repeat its first point), then
// ClosePath(1) (spec.md §4.5 "Polygon ring"). Requires len(pts)>=3.
func encodeRing(out []uint32, cx, cy *int32, pts [][2]int32) []uint32 {
	if len(pts) < 3 {
		return out
	}
	out = encodeLineString(out, cx, cy, pts)
	out = append(out, commandWord(cmdClosePath, 1))
	return out
}
