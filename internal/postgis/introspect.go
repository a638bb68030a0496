package postgis

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/tobilg/tileserv/internal/layer"
	"github.com/tobilg/tileserv/internal/querycompiler"
)

// DetectLayers enumerates geometry_columns metadata and constructs one
// Layer per spatial column (spec.md §4.3 "Layer introspection", supplemented
// from original_source's detect_layers). When a column's declared type is
// the generic GEOMETRY and detectGeometryTypes is true, it is queried for
// its actual runtime type and specialised if exactly one distinct value is
// found.
func (s *Source) DetectLayers(ctx context.Context, detectGeometryTypes bool) ([]layer.Layer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f_table_schema, f_table_name, f_geometry_column, srid, type
		FROM geometry_columns`)
	if err != nil {
		return nil, fmt.Errorf("postgis: detect_layers: %w", err)
	}
	defer rows.Close()

	var layers []layer.Layer
	for rows.Next() {
		var schema, table, geomCol, ogcType string
		var srid int
		if err := rows.Scan(&schema, &table, &geomCol, &srid, &ogcType); err != nil {
			log.Errorf("postgis: detect_layers scan: %v", err)
			continue
		}

		tableName := table
		if schema != "" && schema != "public" {
			tableName = schema + "." + table
		}

		l := layer.Layer{
			Name:          table,
			TableName:     tableName,
			GeometryField: geomCol,
			GeometryType:  strings.ToUpper(ogcType),
			SRID:          srid,
		}

		if l.GeometryType == "GEOMETRY" && detectGeometryTypes {
			if specialised, ok := s.detectGeometryType(ctx, tableName, geomCol); ok {
				l.GeometryType = specialised
			}
		}

		layers = append(layers, l)
	}
	return layers, rows.Err()
}

// detectGeometryType issues SELECT DISTINCT GeometryType(col) FROM table and
// specialises only if exactly one non-null value comes back (spec.md §4.3).
func (s *Source) detectGeometryType(ctx context.Context, table, col string) (string, bool) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT DISTINCT GeometryType(%s) FROM %s WHERE %s IS NOT NULL", col, table, col))
	if err != nil {
		log.Warnf("postgis: detect geometry type for %s.%s: %v", table, col, err)
		return "", false
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			continue
		}
		types = append(types, strings.ToUpper(t))
	}
	if len(types) == 1 {
		return types[0], true
	}
	return "", false
}

// DetectColumns runs the layer's validated query (see validatedSQL) and
// returns the resulting column names minus the geometry column (spec.md
// §4.3 "detect_columns"). The zoom argument does not affect which query
// text is used.
func (s *Source) DetectColumns(ctx context.Context, l layer.Layer, zoom uint8) ([]string, error) {
	sql, ok := validatedSQL(l)
	if !ok {
		return nil, fmt.Errorf("postgis: layer %s has no query for detect_columns", l.Name)
	}

	rows, err := s.db.QueryContext(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("postgis: detect_columns: %w", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == l.GeometryField {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// validatedSQL builds syntactically valid SQL for a layer's effective query
// text (ignoring zoom selection, since column shape doesn't vary by zoom),
// using querycompiler.ValidSQLForParams to fill in placeholder scalars.
func validatedSQL(l layer.Layer) (string, bool) {
	for _, q := range l.Query {
		return querycompiler.ValidSQLForParams(q.SQL, l.SRID), true
	}
	if l.TableName != "" {
		return fmt.Sprintf("SELECT %s FROM %s", l.GeometryField, l.TableName), true
	}
	return "", false
}
