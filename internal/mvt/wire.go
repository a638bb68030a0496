// Package mvt hand-encodes the Mapbox Vector Tile v2.1 binary wire format
// (spec.md §4.5, §6) using protowire's low-level tag/varint writer instead of
// a generated message type, so that dictionary append order and geometry
// command-sequence layout stay under direct control.
package mvt

import "google.golang.org/protobuf/encoding/protowire"

// Field numbers from the published Mapbox Vector Tile v2.1 schema
// (spec.md §6).
const (
	tileFieldLayers = protowire.Number(3)

	layerFieldVersion  = protowire.Number(15)
	layerFieldName     = protowire.Number(1)
	layerFieldFeatures = protowire.Number(2)
	layerFieldKeys     = protowire.Number(3)
	layerFieldValues   = protowire.Number(4)
	layerFieldExtent   = protowire.Number(5)

	featureFieldID       = protowire.Number(1)
	featureFieldTags     = protowire.Number(2)
	featureFieldType     = protowire.Number(3)
	featureFieldGeometry = protowire.Number(4)

	valueFieldString = protowire.Number(1)
	valueFieldFloat  = protowire.Number(2)
	valueFieldDouble = protowire.Number(3)
	valueFieldInt    = protowire.Number(4)
	valueFieldUInt   = protowire.Number(5)
	valueFieldSInt   = protowire.Number(6)
	valueFieldBool   = protowire.Number(7)
)

// GeomType mirrors the wire GeomType enum.
type GeomType int32

const (
	GeomUnknown GeomType = iota
	GeomPoint
	GeomLineString
	GeomPolygon
)

func appendLengthDelimited(dst []byte, num protowire.Number, payload []byte) []byte {
	dst = protowire.AppendTag(dst, num, protowire.BytesType)
	dst = protowire.AppendBytes(dst, payload)
	return dst
}

func appendVarintField(dst []byte, num protowire.Number, v uint64) []byte {
	dst = protowire.AppendTag(dst, num, protowire.VarintType)
	dst = protowire.AppendVarint(dst, v)
	return dst
}

func appendStringField(dst []byte, num protowire.Number, s string) []byte {
	dst = protowire.AppendTag(dst, num, protowire.BytesType)
	dst = protowire.AppendString(dst, s)
	return dst
}

// appendPackedVarints writes a length-delimited field whose payload is a
// concatenation of varints, matching the wire schema's [packed=true] tags
// and fields.
func appendPackedVarints(dst []byte, num protowire.Number, values []uint32) []byte {
	var payload []byte
	for _, v := range values {
		payload = protowire.AppendVarint(payload, uint64(v))
	}
	return appendLengthDelimited(dst, num, payload)
}
