// Package querycompiler turns a layer's query template into valid
// parameterised SQL for a given zoom, per spec.md §4.2.
package querycompiler

import (
	"fmt"
	"strings"

	"github.com/tobilg/tileserv/internal/grid"
	"github.com/tobilg/tileserv/internal/layer"
)

// Param names the runtime variable bound to one positional SQL parameter, in
// the fixed substitution order bbox, zoom, pixel_width, scale_denominator.
type Param string

const (
	ParamBBox             Param = "bbox"
	ParamZoom             Param = "zoom"
	ParamPixelWidth       Param = "pixel_width"
	ParamScaleDenominator Param = "scale_denominator"
)

// orderedScalarParams is the fixed order in which scalar placeholders are
// substituted after !bbox!, per spec.md §4.2.
var orderedScalarParams = []Param{ParamZoom, ParamPixelWidth, ParamScaleDenominator}

// CompiledQuery is the result of compiling a layer's query for one zoom:
// valid parameterised SQL plus the ordered list of bound variables.
type CompiledQuery struct {
	SQL    string
	Params []Param
}

const bboxPlaceholder = "!bbox!"

func placeholder(name Param) string {
	return "!" + string(name) + "!"
}

// Compile implements the selection (layer.SelectQuery), subquery wrapping,
// and placeholder substitution algorithm of spec.md §4.2. It returns
// (nil, nil) — not an error — when the layer yields no data for this zoom
// (invariant I2).
func Compile(l layer.Layer, zoom uint8, g grid.Grid) (*CompiledQuery, error) {
	sub, ok := selectSQL(l, zoom)
	if !ok {
		return nil, nil
	}

	outer := fmt.Sprintf("SELECT * FROM (%s) AS _q", sub)
	if !strings.Contains(outer, bboxPlaceholder) {
		outer += fmt.Sprintf(" WHERE %s && %s", l.GeometryField, bboxPlaceholder)
	}
	if l.QueryLimit > 0 {
		outer += fmt.Sprintf(" LIMIT %d", l.QueryLimit)
	}

	sql, params := substitutePlaceholders(outer, g.SRID)
	return &CompiledQuery{SQL: sql, Params: params}, nil
}

// selectSQL resolves the layer's effective query text for zoom, applying
// the selection rule, then falling back to a synthesised single-column
// select, then to "no data".
func selectSQL(l layer.Layer, zoom uint8) (string, bool) {
	if q, ok := l.SelectQuery(zoom); ok {
		return q.SQL, true
	}
	if l.TableName != "" {
		return fmt.Sprintf("SELECT %s FROM %s", l.GeometryField, l.TableName), true
	}
	return "", false
}

// substitutePlaceholders replaces !bbox! and the scalar placeholders with
// positional $k parameters, in the fixed order spec.md §4.2 requires,
// assigning indices starting at 1.
func substitutePlaceholders(sql string, srid int) (string, []Param) {
	next := 1
	var params []Param

	if strings.Contains(sql, bboxPlaceholder) {
		envelope := fmt.Sprintf("ST_MakeEnvelope($%d,$%d,$%d,$%d,%d)", next, next+1, next+2, next+3, srid)
		sql = strings.ReplaceAll(sql, bboxPlaceholder, envelope)
		next += 4
		params = append(params, ParamBBox)
	}

	for _, name := range orderedScalarParams {
		ph := placeholder(name)
		if strings.Contains(sql, ph) {
			sql = strings.ReplaceAll(sql, ph, fmt.Sprintf("$%d", next))
			next++
			params = append(params, name)
		}
	}

	return sql, params
}

// ValidSQLForParams replaces !bbox! with a degenerate envelope literal and
// the scalar placeholders with 0, yielding syntactically valid SQL usable
// for column introspection against the backend (spec.md §4.2).
func ValidSQLForParams(sql string, srid int) string {
	sql = strings.ReplaceAll(sql, bboxPlaceholder, fmt.Sprintf("ST_MakeEnvelope(0,0,0,0,%d)", srid))
	for _, name := range orderedScalarParams {
		sql = strings.ReplaceAll(sql, placeholder(name), "0")
	}
	return sql
}
