// Package cache implements the tile cache façade of spec.md §4.6: a uniform
// lookup/store contract with a pass-through backend and a content-addressed
// in-process backend.
package cache

import "io"

// Cache is the façade every backend implements. Lookup invokes reader with
// the cached payload and reports whether the fingerprint was present; Store
// invokes writer to obtain the bytes to persist under the fingerprint.
// Fingerprint is the opaque tuple (tileset, x, y, z).
type Cache interface {
	Lookup(tileset string, x, y, z int, reader func(io.Reader) error) (hit bool, err error)
	Store(tileset string, x, y, z int, writer func(io.Writer) error) error
}

// fingerprint renders the (tileset, x, y, z) tuple as the cache's internal
// key. Backends are free to choose their own encoding (spec.md §6); this
// one matches the teacher's "layer:z:x:y"-shaped cache keys.
func fingerprint(tileset string, x, y, z int) string {
	return key(tileset, x, y, z)
}
