package postgis

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/paulmach/orb/encoding/wkb"
	log "github.com/sirupsen/logrus"

	"github.com/tobilg/tileserv/internal/feature"
	"github.com/tobilg/tileserv/internal/geom"
	"github.com/tobilg/tileserv/internal/layer"
)

var _ feature.Feature = (*row)(nil)

// row is the backend-row Feature variant (spec.md §9 "Polymorphic
// feature"): a view over one query result row, valid only until iteration
// advances.
type row struct {
	layer    layer.Layer
	colNames []string
	colTypes []*sql.ColumnType
	values   []interface{} // each element is a *interface{} as scanned
	geomIdx  int
}

// FID implements spec.md §4.3's "Row -> Feature" fid() rule: the fid_field
// column must resolve to an Int, else there is no fid.
func (r *row) FID() (uint64, bool) {
	if r.layer.FidField == "" {
		return 0, false
	}
	idx := indexOf(r.colNames, r.layer.FidField)
	if idx < 0 {
		log.Errorf("postgis: fid column %q not found in layer %s", r.layer.FidField, r.layer.Name)
		return 0, false
	}
	v, err := decodeValue(r.colTypes[idx].DatabaseTypeName(), deref(r.values[idx]))
	if err != nil || v.Kind != geom.KindInt {
		return 0, false
	}
	return uint64(v.Int), true
}

// Attributes implements spec.md §4.3's attributes() rule: iterate columns
// in declaration order, skip the geometry column, decode the rest per the
// type map; a decode failure warns and skips only that column.
func (r *row) Attributes() []geom.FeatureAttribute {
	attrs := make([]geom.FeatureAttribute, 0, len(r.colNames)-1)
	for i, name := range r.colNames {
		if i == r.geomIdx {
			continue
		}
		v, err := decodeValue(r.colTypes[i].DatabaseTypeName(), deref(r.values[i]))
		if err != nil {
			log.Warnf("postgis: decode column %s in layer %s: %v", name, r.layer.Name, err)
			continue
		}
		attrs = append(attrs, geom.FeatureAttribute{Key: name, Value: v})
	}
	return attrs
}

// Geometry implements spec.md §4.3's geometry() rule: decode the geometry
// column as EWKB, tagged with the layer's declared geometry type.
func (r *row) Geometry() (geom.Geometry, error) {
	raw := deref(r.values[r.geomIdx])
	b, ok := raw.([]byte)
	if !ok {
		return geom.Geometry{}, fmt.Errorf("postgis: geometry column %q is not binary (got %T)", r.layer.GeometryField, raw)
	}

	g, err := wkb.Unmarshal(b)
	if err != nil {
		return geom.Geometry{}, fmt.Errorf("postgis: decode WKB for layer %s: %w", r.layer.Name, err)
	}

	t := geom.TypeFromOGCName(r.layer.GeometryType)
	if t == geom.TypeUnknown {
		return geom.Geometry{}, fmt.Errorf("postgis: unknown geometry_type %q for layer %s", r.layer.GeometryType, r.layer.Name)
	}
	return geom.FromOrb(t, r.layer.SRID, g), nil
}

func deref(v interface{}) interface{} {
	if p, ok := v.(*interface{}); ok {
		return *p
	}
	return v
}

// decodeValue implements the backend type map of spec.md §4.3.
func decodeValue(dbType string, raw interface{}) (geom.AttributeValue, error) {
	if raw == nil {
		return geom.AttributeValue{}, fmt.Errorf("NULL value")
	}

	switch strings.ToUpper(dbType) {
	case "VARCHAR", "TEXT", "BPCHAR", "CHAR":
		return geom.StringValue(asString(raw)), nil
	case "FLOAT4":
		return geom.FloatValue(float32(asFloat64(raw))), nil
	case "FLOAT8":
		return geom.DoubleValue(asFloat64(raw)), nil
	case "INT2", "INT4":
		return geom.IntValue(asInt64(raw)), nil
	case "INT8":
		return geom.IntValue(asInt64(raw)), nil
	case "BOOL":
		b, ok := raw.(bool)
		if !ok {
			return geom.AttributeValue{}, fmt.Errorf("expected bool, got %T", raw)
		}
		return geom.BoolValue(b), nil
	default:
		return geom.AttributeValue{}, fmt.Errorf("unsupported column type %q", dbType)
	}
}

func asString(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func asFloat64(raw interface{}) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func asInt64(raw interface{}) int64 {
	switch v := raw.(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int16:
		return int64(v)
	default:
		return 0
	}
}
