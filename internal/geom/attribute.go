package geom

// ValueKind tags which arm of AttributeValue's closed union is populated.
type ValueKind int

const (
	KindString ValueKind = iota
	KindFloat
	KindDouble
	KindInt
	KindUInt
	KindBool
)

// AttributeValue is the closed union {String, Float(f32), Double(f64),
// Int(i64), UInt(u64), Bool}. It is distinct from the wire Value oneof
// (internal/mvt) — translation happens at encode time, never before.
type AttributeValue struct {
	Kind ValueKind

	Str    string
	Float  float32
	Double float64
	Int    int64
	UInt   uint64
	Bool   bool
}

func StringValue(v string) AttributeValue  { return AttributeValue{Kind: KindString, Str: v} }
func FloatValue(v float32) AttributeValue  { return AttributeValue{Kind: KindFloat, Float: v} }
func DoubleValue(v float64) AttributeValue { return AttributeValue{Kind: KindDouble, Double: v} }
func IntValue(v int64) AttributeValue      { return AttributeValue{Kind: KindInt, Int: v} }
func UIntValue(v uint64) AttributeValue    { return AttributeValue{Kind: KindUInt, UInt: v} }
func BoolValue(v bool) AttributeValue      { return AttributeValue{Kind: KindBool, Bool: v} }

// Equal is structural equality over the union, required for dictionary
// deduplication (spec invariant I3): two values are equal iff they carry the
// same kind and the same payload.
func (v AttributeValue) Equal(other AttributeValue) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == other.Str
	case KindFloat:
		return v.Float == other.Float
	case KindDouble:
		return v.Double == other.Double
	case KindInt:
		return v.Int == other.Int
	case KindUInt:
		return v.UInt == other.UInt
	case KindBool:
		return v.Bool == other.Bool
	default:
		return false
	}
}

// FeatureAttribute is a (key, value) pair in a feature's attribute sequence.
type FeatureAttribute struct {
	Key   string
	Value AttributeValue
}
