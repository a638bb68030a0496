package querycompiler

import (
	"testing"

	"github.com/tobilg/tileserv/internal/grid"
	"github.com/tobilg/tileserv/internal/layer"
)

func TestCompileBBoxOnly(t *testing.T) {
	l := layer.Layer{
		Name:          "points",
		TableName:     "osm_place_point",
		GeometryField: "geometry",
	}
	cq, err := Compile(l, 10, grid.WebMercator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "SELECT * FROM (SELECT geometry FROM osm_place_point) AS _q WHERE geometry && ST_MakeEnvelope($1,$2,$3,$4,3857)"
	if cq.SQL != want {
		t.Fatalf("got %q want %q", cq.SQL, want)
	}
	if len(cq.Params) != 1 || cq.Params[0] != ParamBBox {
		t.Fatalf("got params %v want [bbox]", cq.Params)
	}
}

func TestCompileWithLimit(t *testing.T) {
	l := layer.Layer{
		Name:          "points",
		TableName:     "osm_place_point",
		GeometryField: "geometry",
		QueryLimit:    1,
	}
	cq, err := Compile(l, 10, grid.WebMercator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "SELECT * FROM (SELECT geometry FROM osm_place_point) AS _q WHERE geometry && ST_MakeEnvelope($1,$2,$3,$4,3857) LIMIT 1"
	if cq.SQL != want {
		t.Fatalf("got %q want %q", cq.SQL, want)
	}
}

func TestCompileEmbeddedBBoxAndZoom(t *testing.T) {
	l := layer.Layer{
		Name:          "landuse",
		GeometryField: "geometry",
		Query: []layer.LayerQuery{
			{SQL: "SELECT osm_id, geometry, typen FROM landuse WHERE !zoom! BETWEEN 13 AND 14"},
		},
	}
	cq, err := Compile(l, 13, grid.WebMercator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "SELECT * FROM (SELECT osm_id, geometry, typen FROM landuse WHERE $5 BETWEEN 13 AND 14) AS _q WHERE geometry && ST_MakeEnvelope($1,$2,$3,$4,3857)"
	if cq.SQL != want {
		t.Fatalf("got %q want %q", cq.SQL, want)
	}
	if len(cq.Params) != 2 || cq.Params[0] != ParamBBox || cq.Params[1] != ParamZoom {
		t.Fatalf("got params %v want [bbox zoom]", cq.Params)
	}
}

func TestCompileNoTableNoQueryYieldsNil(t *testing.T) {
	l := layer.Layer{Name: "empty"}
	cq, err := Compile(l, 5, grid.WebMercator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cq != nil {
		t.Fatalf("expected nil compiled query, got %+v", cq)
	}
}

func TestCompileNoPlaceholdersRemain(t *testing.T) {
	l := layer.Layer{
		TableName:     "osm_place_point",
		GeometryField: "geometry",
		Query: []layer.LayerQuery{
			{SQL: "SELECT geometry FROM landuse WHERE !scale_denominator! > 1000 AND !pixel_width! < 50"},
		},
	}
	cq, err := Compile(l, 5, grid.WebMercator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if containsPlaceholder(cq.SQL) {
		t.Fatalf("compiled SQL still contains a placeholder: %q", cq.SQL)
	}
	if len(cq.Params) != 3 {
		t.Fatalf("expected 3 params (bbox, pixel_width, scale_denominator), got %v", cq.Params)
	}
}

func containsPlaceholder(sql string) bool {
	depth := 0
	for _, r := range sql {
		if r == '!' {
			depth++
		}
	}
	return depth > 0
}

func TestValidSQLForParams(t *testing.T) {
	sql := "SELECT geometry FROM landuse WHERE geometry && !bbox! AND !zoom! > 0"
	got := ValidSQLForParams(sql, 3857)
	want := "SELECT geometry FROM landuse WHERE geometry && ST_MakeEnvelope(0,0,0,0,3857) AND 0 > 0"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
