package cache

import "strconv"

// key renders the fingerprint the same way across all backends, matching
// the teacher's "%s:%s:%s:%s" tile-cache key shape.
func key(tileset string, x, y, z int) string {
	return tileset + ":" + strconv.Itoa(z) + ":" + strconv.Itoa(x) + ":" + strconv.Itoa(y)
}
