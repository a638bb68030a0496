// Package tileservice orchestrates the tile-production pipeline of
// spec.md §4.7: cache lookup, then per-layer compile/fetch/project/encode,
// then cache store.
package tileservice

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/tobilg/tileserv/internal/cache"
	"github.com/tobilg/tileserv/internal/feature"
	"github.com/tobilg/tileserv/internal/grid"
	"github.com/tobilg/tileserv/internal/layer"
	"github.com/tobilg/tileserv/internal/mvt"
)

// FeatureSource is the dependency tileservice needs from a backend (the
// postgis package implements it).
type FeatureSource interface {
	RetrieveFeatures(ctx context.Context, l layer.Layer, extent grid.Extent, zoom uint8, g grid.Grid, sink func(feature.Feature) error) error
}

// TilesetResolver looks up a tileset by name; unknown names return
// (Tileset{}, false), never an error (spec.md §4.7's "None if unknown").
type TilesetResolver interface {
	TilesetByName(name string) (layer.Tileset, bool)
}

// Service wires the cache façade, a feature source, a tileset resolver and
// a grid together for one (tileset, x, y, z) request (spec.md §4.7).
type Service struct {
	Source   FeatureSource
	Tilesets TilesetResolver
	Grid     grid.Grid
	Cache    cache.Cache

	// group coalesces concurrent production of the same fingerprint so
	// that only one worker actually queries the backend; latecomers share
	// its result (spec.md §4.6: "at-most-once materialisation per
	// fingerprint under concurrency").
	group singleflight.Group
}

// ErrUnknownTileset is returned by Tile when the tileset name is not
// registered; callers treat this the same as "no tile" (spec.md §4.7).
var ErrUnknownTileset = fmt.Errorf("tileservice: unknown tileset")

// Tile implements spec.md §4.7's operation: tile(tileset_name, x, y, z) ->
// bytes or ErrUnknownTileset.
func (s *Service) Tile(ctx context.Context, tilesetName string, x, y, z int) ([]byte, error) {
	ts, ok := s.Tilesets.TilesetByName(tilesetName)
	if !ok {
		return nil, ErrUnknownTileset
	}

	var hitPayload []byte
	hit, err := s.Cache.Lookup(tilesetName, x, y, z, func(r io.Reader) error {
		b, rerr := io.ReadAll(r)
		hitPayload = b
		return rerr
	})
	if err != nil {
		log.Warnf("tileservice: cache lookup failed for %s/%d/%d/%d: %v", tilesetName, z, x, y, err)
	}
	if hit {
		return hitPayload, nil
	}

	key := fmt.Sprintf("%s:%d:%d:%d", tilesetName, z, x, y)
	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.produce(ctx, ts, x, y, z)
	})
	if err != nil {
		return nil, err
	}
	payload := result.([]byte)

	if err := s.Cache.Store(tilesetName, x, y, z, func(w io.Writer) error {
		_, werr := w.Write(payload)
		return werr
	}); err != nil {
		// Cache store failure is a warning; the freshly produced bytes are
		// still returned to the caller (spec.md §7).
		log.Warnf("tileservice: cache store failed for %s/%d/%d/%d: %v", tilesetName, z, x, y, err)
	}

	return payload, nil
}

// produce builds and serialises the wire tile for one request, per
// spec.md §4.7 step 3: for each layer in declared order, stream backend
// rows, project and encode each feature, fold attributes into the layer's
// dictionary, append the completed layer to the tile.
func (s *Service) produce(ctx context.Context, ts layer.Tileset, x, y, z int) ([]byte, error) {
	extent := s.Grid.Extent(x, y, z)
	tb := mvt.NewTileBuilder()

	for _, l := range ts.Layers {
		lb := mvt.NewLayerBuilder(l.Name, l.EffectiveTileSize())

		err := s.Source.RetrieveFeatures(ctx, l, extent, uint8(z), s.Grid, func(f feature.Feature) error {
			g, gerr := f.Geometry()
			if gerr != nil {
				// Open Question 3: the row stream itself does not abort;
				// this single feature is dropped from the wire output.
				log.Errorf("tileservice: geometry decode failed in layer %s: %v", l.Name, gerr)
				return nil
			}

			geomType, commands, eerr := mvt.EncodeGeometry(g, extent, l.EffectiveTileSize())
			if eerr != nil {
				log.Errorf("tileservice: geometry encode failed in layer %s: %v", l.Name, eerr)
				return nil
			}

			id, hasID := f.FID()
			lb.AddFeature(mvt.FeatureInput{
				ID:       id,
				HasID:    hasID,
				Attrs:    f.Attributes(),
				GeomType: geomType,
				Commands: commands,
			})
			return nil
		})
		if err != nil {
			return nil, err
		}

		tb.AppendLayer(lb)
	}

	return tb.Encode(), nil
}

