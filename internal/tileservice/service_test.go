package tileservice

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/paulmach/orb"

	"github.com/tobilg/tileserv/internal/feature"
	"github.com/tobilg/tileserv/internal/geom"
	"github.com/tobilg/tileserv/internal/grid"
	"github.com/tobilg/tileserv/internal/layer"
)

type fakeResolver map[string]layer.Tileset

func (f fakeResolver) TilesetByName(name string) (layer.Tileset, bool) {
	ts, ok := f[name]
	return ts, ok
}

type fakeSource struct {
	calls int
	mu    sync.Mutex
}

func (f *fakeSource) RetrieveFeatures(ctx context.Context, l layer.Layer, extent grid.Extent, zoom uint8, g grid.Grid, sink func(feature.Feature) error) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	return sink(feature.Static{
		HasID: true,
		ID:    1,
		Attrs: []geom.FeatureAttribute{{Key: "name", Value: geom.StringValue("x")}},
		Geom:  geom.FromOrb(geom.TypePoint, 3857, orb.Point{0, 0}),
	})
}

type memCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newMemCache() *memCache { return &memCache{store: map[string][]byte{}} }

func (m *memCache) key(tileset string, x, y, z int) string {
	return tileset
}

func (m *memCache) Lookup(tileset string, x, y, z int, reader func(io.Reader) error) (bool, error) {
	m.mu.Lock()
	b, ok := m.store[m.key(tileset, x, y, z)]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, reader(byteReader(b))
}

func (m *memCache) Store(tileset string, x, y, z int, writer func(io.Writer) error) error {
	buf := &byteBuffer{}
	if err := writer(buf); err != nil {
		return err
	}
	m.mu.Lock()
	m.store[m.key(tileset, x, y, z)] = buf.b
	m.mu.Unlock()
	return nil
}

type byteBuffer struct{ b []byte }

func (w *byteBuffer) Write(p []byte) (int, error) {
	w.b = append(w.b, p...)
	return len(p), nil
}

func byteReader(b []byte) io.Reader { return &fixedReader{b: b} }

type fixedReader struct {
	b   []byte
	pos int
}

func (r *fixedReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.b) {
		return 0, io.EOF
	}
	n := copy(p, r.b[r.pos:])
	r.pos += n
	return n, nil
}

func testTileset() layer.Tileset {
	return layer.Tileset{
		Name: "osm",
		Layers: []layer.Layer{
			{Name: "points", GeometryField: "geometry", TableName: "osm_place_point"},
		},
	}
}

func TestTileUnknownTilesetReturnsSentinel(t *testing.T) {
	svc := &Service{
		Tilesets: fakeResolver{},
		Cache:    newMemCache(),
		Grid:     grid.WebMercator,
	}
	_, err := svc.Tile(context.Background(), "missing", 0, 0, 0)
	if err != ErrUnknownTileset {
		t.Fatalf("expected ErrUnknownTileset, got %v", err)
	}
}

func TestTileProducesAndCaches(t *testing.T) {
	src := &fakeSource{}
	svc := &Service{
		Source:   src,
		Tilesets: fakeResolver{"osm": testTileset()},
		Cache:    newMemCache(),
		Grid:     grid.WebMercator,
	}

	out1, err := svc.Tile(context.Background(), "osm", 1, 2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out1) == 0 {
		t.Fatalf("expected non-empty tile bytes")
	}

	out2, err := svc.Tile(context.Background(), "osm", 1, 2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out2) != string(out1) {
		t.Fatalf("expected the cached tile to match the produced tile byte-for-byte")
	}
	if src.calls != 1 {
		t.Fatalf("expected exactly 1 backend call (second request served from cache), got %d", src.calls)
	}
}

func TestTileConcurrentRequestsCoalesce(t *testing.T) {
	src := &fakeSource{}
	svc := &Service{
		Source:   src,
		Tilesets: fakeResolver{"osm": testTileset()},
		Cache:    newMemCache(),
		Grid:     grid.WebMercator,
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Tile(context.Background(), "osm", 5, 5, 5)
		}()
	}
	wg.Wait()

	if src.calls < 1 {
		t.Fatalf("expected at least one backend call")
	}
}
