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
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/tobilg/tileserv/internal/conf"
)

// initRouter sets up the HTTP routes. TileJSON metadata generation and the
// HTML map viewer are out of this service's scope (spec.md Non-goals); the
// surface below is tiles, health, layer listing and, when enabled, cache
// administration.
func initRouter(basePath string) *mux.Router {
	router := mux.NewRouter()

	var r *mux.Router
	if basePath != "" {
		log.Infof("Using base path: %s", basePath)
		r = router.PathPrefix(basePath).Subrouter()
	} else {
		r = router
	}

	r.Handle("/", appHandler(handleRoot)).Methods("GET")
	r.Handle("/index.html", appHandler(handleRoot)).Methods("GET")

	r.Handle("/health", appHandler(handleHealth)).Methods("GET")

	r.Handle("/layers", appHandler(handleLayers)).Methods("GET")
	r.Handle("/layers.json", appHandler(handleLayers)).Methods("GET")

	r.Handle("/tiles/{layer}/{z:[0-9]+}/{x:[0-9]+}/{y:[0-9]+}.mvt", appHandler(handleTile)).Methods("GET")
	r.Handle("/tiles/{layer}/{z:[0-9]+}/{x:[0-9]+}/{y:[0-9]+}.pbf", appHandler(handleTile)).Methods("GET")

	if !conf.Configuration.Cache.DisableApi {
		log.Info("Cache management endpoints enabled")
		r.Handle("/cache/stats", appHandler(cacheAuthMiddleware(handleCacheStats))).Methods("GET")
		r.Handle("/cache/clear", appHandler(cacheAuthMiddleware(handleCacheClear))).Methods("DELETE")
		r.Handle("/cache/tileset/{tileset}", appHandler(cacheAuthMiddleware(handleCacheClearTileset))).Methods("DELETE")
	} else {
		log.Info("Cache management endpoints disabled")
	}

	router.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err == nil {
			log.Debugf("Registered route: %s", pathTemplate)
		}
		return nil
	})

	return router
}

// handleRoot returns a minimal service banner; the teacher's HTML map
// viewer is not part of this service's HTTP surface.
func handleRoot(w http.ResponseWriter, r *http.Request) *appError {
	return writeJSON(w, ContentTypeJSON, map[string]string{
		"name":    conf.AppConfig.Name,
		"version": conf.AppConfig.Version,
	})
}

// getBaseURL reconstructs the scheme+host the request arrived on, used to
// build absolute tile URLs.
func getBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return scheme + "://" + r.Host
}

// formatTileURL formats a tile URL pattern for use by layer discovery
// responses.
func formatTileURL(baseURL string, layer string) string {
	return fmt.Sprintf("%s/tiles/%s/{z}/{x}/{y}.mvt", baseURL, layer)
}
