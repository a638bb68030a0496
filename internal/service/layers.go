package service

/*
 Copyright 2019 - 2025 Crunchy Data Solutions, Inc.
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at
      http://www.apache.org/licenses/LICENSE-2.0
 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/tobilg/tileserv/internal/layer"
)

// LayerInfo describes one layer of a registered tileset for discovery
// purposes. TileJSON-style metadata documents are out of scope (spec.md
// Non-goals); this is a plain listing.
type LayerInfo struct {
	Tileset      string `json:"tileset"`
	Name         string `json:"name"`
	GeometryType string `json:"geometry_type"`
	MinZoom      uint8  `json:"minzoom"`
	MaxZoom      uint8  `json:"maxzoom"`
	TileURL      string `json:"tile_url"`
}

// LayersResponse represents the JSON response for the /layers endpoint.
type LayersResponse struct {
	Layers []LayerInfo `json:"layers"`
}

// handleLayers returns a list of all registered tileset layers.
func handleLayers(w http.ResponseWriter, r *http.Request) *appError {
	log.Debug("Layers request")

	if serviceInstance == nil {
		return appErrorInternal(nil, "service not initialized")
	}

	baseURL := getBaseURL(r)
	var infos []LayerInfo
	for tilesetName, ts := range serviceInstance.Tilesets {
		for _, l := range ts.Layers {
			infos = append(infos, LayerInfo{
				Tileset:      tilesetName,
				Name:         l.Name,
				GeometryType: l.GeometryType,
				MinZoom:      layerMinZoom(l),
				MaxZoom:      layerMaxZoom(l),
				TileURL:      formatTileURL(baseURL, tilesetName),
			})
		}
	}

	return writeJSON(w, ContentTypeJSON, LayersResponse{Layers: infos})
}

// layerMinZoom returns the lowest minzoom across a layer's declared
// queries, defaulting to 0 when the layer has no queries.
func layerMinZoom(l layer.Layer) uint8 {
	if len(l.Query) == 0 {
		return 0
	}
	min := l.Query[0].MinZoom()
	for _, q := range l.Query[1:] {
		if q.MinZoom() < min {
			min = q.MinZoom()
		}
	}
	return min
}

// layerMaxZoom returns the highest maxzoom across a layer's declared
// queries, defaulting to 22 when the layer has no queries.
func layerMaxZoom(l layer.Layer) uint8 {
	if len(l.Query) == 0 {
		return 22
	}
	max := l.Query[0].MaxZoom()
	for _, q := range l.Query[1:] {
		if q.MaxZoom() > max {
			max = q.MaxZoom()
		}
	}
	return max
}
