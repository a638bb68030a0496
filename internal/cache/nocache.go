package cache

import "io"

var _ Cache = NoCache{}

// NoCache is the pass-through backend: lookup is always a miss, store
// discards its bytes (spec.md §4.6 "Backends").
type NoCache struct{}

func NewNoCache() NoCache { return NoCache{} }

func (NoCache) Lookup(tileset string, x, y, z int, reader func(io.Reader) error) (bool, error) {
	return false, nil
}

func (NoCache) Store(tileset string, x, y, z int, writer func(io.Writer) error) error {
	return writer(io.Discard)
}
