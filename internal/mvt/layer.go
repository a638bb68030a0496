package mvt

import (
	"github.com/tobilg/tileserv/internal/geom"
)

// LayerBuilder accumulates one wire layer's features and dictionaries.
// Keys and values are append-only and deduplicated by equality (spec.md
// invariant I3); feature tags reference them by position.
type LayerBuilder struct {
	Name   string
	Extent uint32

	keys        []string
	values      []geom.AttributeValue
	featureBufs [][]byte
}

// NewLayerBuilder starts an empty layer with the given name and wire
// extent (spec.md §4.7 step 3: "extent = layer.tile_size").
func NewLayerBuilder(name string, extent uint32) *LayerBuilder {
	return &LayerBuilder{Name: name, Extent: extent}
}

// addKey returns the dictionary index of k, appending it if absent.
func (b *LayerBuilder) addKey(k string) uint32 {
	for i, existing := range b.keys {
		if existing == k {
			return uint32(i)
		}
	}
	b.keys = append(b.keys, k)
	return uint32(len(b.keys) - 1)
}

// addValue returns the dictionary index of v, appending it if absent, using
// AttributeValue's structural equality.
func (b *LayerBuilder) addValue(v geom.AttributeValue) uint32 {
	for i, existing := range b.values {
		if existing.Equal(v) {
			return uint32(i)
		}
	}
	b.values = append(b.values, v)
	return uint32(len(b.values) - 1)
}

// FeatureInput is everything needed to append one feature to the layer.
type FeatureInput struct {
	ID       uint64
	HasID    bool
	Attrs    []geom.FeatureAttribute
	GeomType GeomType
	Commands []uint32 // pre-encoded geometry command sequence
}

// AddFeature folds a feature's attributes into the layer's dictionaries
// (spec.md §4.5 "Dictionary maintenance") and appends the encoded feature
// message.
func (b *LayerBuilder) AddFeature(f FeatureInput) {
	tags := make([]uint32, 0, len(f.Attrs)*2)
	for _, a := range f.Attrs {
		ki := b.addKey(a.Key)
		vi := b.addValue(a.Value)
		tags = append(tags, ki, vi)
	}

	var buf []byte
	if f.HasID {
		buf = appendVarintField(buf, featureFieldID, f.ID)
	}
	if len(tags) > 0 {
		buf = appendPackedVarints(buf, featureFieldTags, tags)
	}
	buf = appendVarintField(buf, featureFieldType, uint64(f.GeomType))
	if len(f.Commands) > 0 {
		buf = appendPackedVarints(buf, featureFieldGeometry, f.Commands)
	}

	b.featureBufs = append(b.featureBufs, buf)
}

// Encode serialises the layer message (version=2, name, features, keys,
// values, extent) in that field order.
func (b *LayerBuilder) Encode() []byte {
	var out []byte
	out = appendVarintField(out, layerFieldVersion, 2)
	out = appendStringField(out, layerFieldName, b.Name)
	for _, fb := range b.featureBufs {
		out = appendLengthDelimited(out, layerFieldFeatures, fb)
	}
	for _, k := range b.keys {
		out = appendStringField(out, layerFieldKeys, k)
	}
	for _, v := range b.values {
		out = appendLengthDelimited(out, layerFieldValues, encodeValue(v))
	}
	out = appendVarintField(out, layerFieldExtent, uint64(b.Extent))
	return out
}

// Keys and Values expose the current dictionary contents, mainly for tests
// asserting spec.md scenario S5.
func (b *LayerBuilder) Keys() []string               { return append([]string(nil), b.keys...) }
func (b *LayerBuilder) Values() []geom.AttributeValue { return append([]geom.AttributeValue(nil), b.values...) }
