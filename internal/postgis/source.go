// Package postgis implements the backend feature source of spec.md §4.3
// against PostgreSQL/PostGIS, using database/sql and the lib/pq driver.
package postgis

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"github.com/tobilg/tileserv/internal/feature"
	"github.com/tobilg/tileserv/internal/grid"
	"github.com/tobilg/tileserv/internal/layer"
	"github.com/tobilg/tileserv/internal/querycompiler"
)

// Source wraps a PostgreSQL/PostGIS connection pool, grounded on the
// teacher's dbConnect() pool-sizing pattern (internal/data/catalog_db.go)
// and MartinMeyer1-bike-map's sql.Open("postgres", ...) usage.
type Source struct {
	db *sql.DB
}

// Options configures the connection pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultOptions mirrors the teacher's pool defaults.
func DefaultOptions() Options {
	return Options{
		MaxOpenConns:    30,
		MaxIdleConns:    10,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 10 * time.Minute,
	}
}

// Open connects to dsn and verifies the connection is live.
func Open(dsn string, opts Options) (*Source, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgis: connect: %w", err)
	}

	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	db.SetConnMaxIdleTime(opts.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("postgis: ping: %w", err)
	}

	return &Source{db: db}, nil
}

// Close releases the connection pool.
func (s *Source) Close() error {
	return s.db.Close()
}

// Ping reports whether the backend is reachable, used by the health
// endpoint.
func (s *Source) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// RetrieveFeatures streams features to sink, invoked once per row in row
// order, per spec.md §4.3's protocol. Preparation and execution failures
// are logged and treated as "no output for this layer" (spec.md §7); they
// never return a partial result mixed with an error.
func (s *Source) RetrieveFeatures(
	ctx context.Context,
	l layer.Layer,
	extent grid.Extent,
	zoom uint8,
	g grid.Grid,
	sink func(feature.Feature) error,
) error {
	cq, err := querycompiler.Compile(l, zoom, g)
	if err != nil {
		log.Errorf("postgis: compile query for layer %s: %v", l.Name, err)
		return nil
	}
	if cq == nil {
		return nil
	}

	stmt, err := s.db.PrepareContext(ctx, cq.SQL)
	if err != nil {
		log.Errorf("postgis: prepare layer %s: %v", l.Name, err)
		return nil
	}
	defer stmt.Close()

	args := bindParams(cq.Params, extent, zoom, g)

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		log.Errorf("postgis: execute layer %s: %v", l.Name, err)
		return nil
	}
	defer rows.Close()

	colNames, err := rows.Columns()
	if err != nil {
		log.Errorf("postgis: columns for layer %s: %v", l.Name, err)
		return nil
	}
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		log.Errorf("postgis: column types for layer %s: %v", l.Name, err)
		return nil
	}

	geomIdx := indexOf(colNames, l.GeometryField)
	if geomIdx < 0 {
		log.Errorf("postgis: geometry column %q not found in layer %s", l.GeometryField, l.Name)
		return nil
	}

	for rows.Next() {
		dest := make([]interface{}, len(colNames))
		for i := range dest {
			dest[i] = new(interface{})
		}
		if err := rows.Scan(dest...); err != nil {
			log.Errorf("postgis: scan row in layer %s: %v", l.Name, err)
			continue
		}

		r := &row{
			layer:    l,
			colNames: colNames,
			colTypes: colTypes,
			values:   dest,
			geomIdx:  geomIdx,
		}
		if err := sink(r); err != nil {
			return err
		}
	}
	return rows.Err()
}

// bindParams expands the compiler's ordered params into driver arguments,
// per spec.md §4.3 step 3's binding order and types.
func bindParams(params []querycompiler.Param, extent grid.Extent, zoom uint8, g grid.Grid) []interface{} {
	var args []interface{}
	for _, p := range params {
		switch p {
		case querycompiler.ParamBBox:
			args = append(args, extent.MinX, extent.MinY, extent.MaxX, extent.MaxY)
		case querycompiler.ParamZoom:
			args = append(args, int16(zoom))
		case querycompiler.ParamPixelWidth:
			args = append(args, g.PixelWidth(int(zoom)))
		case querycompiler.ParamScaleDenominator:
			args = append(args, g.ScaleDenominator(int(zoom)))
		}
	}
	return args
}

func indexOf(names []string, target string) int {
	for i, n := range names {
		if n == target {
			return i
		}
	}
	return -1
}
