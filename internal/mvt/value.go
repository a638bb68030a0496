package mvt

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/tobilg/tileserv/internal/geom"
)

// encodeValue serialises one AttributeValue into the wire Value message
// bytes (spec.md §6's Value oneof), translating from the closed
// AttributeValue union at the encode boundary (spec.md §9 design note).
//
// int_value is protobuf type int64: plain varint encoding of the two's
// complement bit pattern, not zig-zag (sint_value is the zig-zag arm and is
// unused here since AttributeValue's Int always maps to int_value).
func encodeValue(v geom.AttributeValue) []byte {
	var payload []byte
	switch v.Kind {
	case geom.KindString:
		payload = appendStringField(payload, valueFieldString, v.Str)
	case geom.KindFloat:
		payload = protowire.AppendTag(payload, valueFieldFloat, protowire.Fixed32Type)
		payload = protowire.AppendFixed32(payload, math.Float32bits(v.Float))
	case geom.KindDouble:
		payload = protowire.AppendTag(payload, valueFieldDouble, protowire.Fixed64Type)
		payload = protowire.AppendFixed64(payload, math.Float64bits(v.Double))
	case geom.KindInt:
		payload = appendVarintField(payload, valueFieldInt, uint64(v.Int))
	case geom.KindUInt:
		payload = appendVarintField(payload, valueFieldUInt, v.UInt)
	case geom.KindBool:
		b := uint64(0)
		if v.Bool {
			b = 1
		}
		payload = appendVarintField(payload, valueFieldBool, b)
	}
	return payload
}
