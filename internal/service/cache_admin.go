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

	"github.com/tobilg/tileserv/internal/cache"
)

// adminLRUCache returns the process cache as an *cache.LRUCache, or nil if
// the configured backend doesn't support admin operations (NoCache).
func adminLRUCache() (*cache.LRUCache, bool) {
	if serviceInstance == nil || serviceInstance.cache == nil {
		return nil, false
	}
	lru, ok := serviceInstance.cache.(*cache.LRUCache)
	return lru, ok
}

// handleCacheStats returns cache statistics as JSON.
func handleCacheStats(w http.ResponseWriter, r *http.Request) *appError {
	lru, ok := adminLRUCache()
	if !ok {
		return writeJSON(w, ContentTypeJSON, map[string]string{"status": "disabled"})
	}
	return writeJSON(w, ContentTypeJSON, lru.Stats())
}

// handleCacheClear clears the entire cache.
func handleCacheClear(w http.ResponseWriter, r *http.Request) *appError {
	lru, ok := adminLRUCache()
	if !ok {
		return appErrorBadRequest(nil, "Cache is disabled")
	}
	lru.Clear()
	return writeJSON(w, ContentTypeJSON, map[string]string{"status": "ok", "message": "Cache cleared"})
}

// handleCacheClearTileset clears all cached tiles for one tileset.
func handleCacheClearTileset(w http.ResponseWriter, r *http.Request) *appError {
	lru, ok := adminLRUCache()
	if !ok {
		return appErrorBadRequest(nil, "Cache is disabled")
	}

	tileset := mux.Vars(r)["tileset"]
	removed := lru.ClearTileset(tileset)

	return writeJSON(w, ContentTypeJSON, map[string]interface{}{
		"status":  "ok",
		"message": fmt.Sprintf("Cleared %d tiles for tileset %s", removed, tileset),
		"removed": removed,
		"tileset": tileset,
	})
}
