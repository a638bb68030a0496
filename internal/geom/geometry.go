// Package geom holds the tagged-union geometry and attribute-value models
// shared by the backend feature source, the screen projection, and the wire
// encoder.
package geom

import "github.com/paulmach/orb"

// Type identifies which OGC simple-feature variant a Geometry carries.
type Type int

const (
	TypeUnknown Type = iota
	TypePoint
	TypeLineString
	TypePolygon
	TypeMultiPoint
	TypeMultiLineString
	TypeMultiPolygon
	TypeCollection
)

// Geometry is a tagged union over the seven OGC simple-feature variants,
// expressed in the grid's projected world coordinates. SRID is carried for
// debug formatting only and never affects encoding.
type Geometry struct {
	Type  Type
	SRID  int
	Value orb.Geometry
}

// TypeFromOGCName maps an uppercase OGC geometry type name (as stored in
// spatial_ref metadata or returned by GeometryType()) to a Type.
func TypeFromOGCName(name string) Type {
	switch name {
	case "POINT":
		return TypePoint
	case "LINESTRING":
		return TypeLineString
	case "POLYGON":
		return TypePolygon
	case "MULTIPOINT":
		return TypeMultiPoint
	case "MULTILINESTRING":
		return TypeMultiLineString
	case "MULTIPOLYGON":
		return TypeMultiPolygon
	case "GEOMETRYCOLLECTION":
		return TypeCollection
	default:
		return TypeUnknown
	}
}

// FromOrb wraps a decoded orb.Geometry with its declared type tag and SRID.
func FromOrb(t Type, srid int, g orb.Geometry) Geometry {
	return Geometry{Type: t, SRID: srid, Value: g}
}
