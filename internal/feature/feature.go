// Package feature defines the polymorphic Feature capability consumed by the
// wire encoder. It is implemented once per backend-row variant
// (internal/postgis) and once as a plain in-memory struct for tests.
package feature

import "github.com/tobilg/tileserv/internal/geom"

// Feature exposes the three operations the encoder needs from a row,
// regardless of where the row came from.
type Feature interface {
	// FID returns the feature's identifier, if one was configured and the
	// underlying column decoded as an integer.
	FID() (uint64, bool)
	// Attributes returns the feature's (key, value) pairs in column
	// declaration order, excluding the geometry column.
	Attributes() []geom.FeatureAttribute
	// Geometry decodes and returns the feature's geometry. An error here
	// does not imply the row itself is invalid — callers drop the feature
	// from the wire output but continue the layer.
	Geometry() (geom.Geometry, error)
}

// Static is a fully in-memory Feature, useful for tests and for any
// synthetic feature production outside the backend.
type Static struct {
	ID      uint64
	HasID   bool
	Attrs   []geom.FeatureAttribute
	Geom    geom.Geometry
	GeomErr error
}

func (s Static) FID() (uint64, bool)                 { return s.ID, s.HasID }
func (s Static) Attributes() []geom.FeatureAttribute { return s.Attrs }
func (s Static) Geometry() (geom.Geometry, error)    { return s.Geom, s.GeomErr }
