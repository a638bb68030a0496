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

	"github.com/tobilg/tileserv/internal/cache"
)

// HealthResponse represents the JSON response for the /health endpoint.
type HealthResponse struct {
	Status   string      `json:"status"`
	Database string      `json:"database"`
	Cache    CacheStatus `json:"cache"`
}

// CacheStatus represents cache health information.
type CacheStatus struct {
	Enabled bool         `json:"enabled"`
	Stats   *cache.Stats `json:"stats,omitempty"`
}

// handleHealth returns health status of the service: the PostGIS
// connection and the tile cache.
func handleHealth(w http.ResponseWriter, r *http.Request) *appError {
	log.Debug("Health check request")

	health := HealthResponse{Status: "ok", Database: "unknown"}

	if serviceInstance == nil || serviceInstance.Source == nil {
		health.Status = "error"
		health.Database = "disconnected"
		w.WriteHeader(http.StatusServiceUnavailable)
		return writeJSON(w, ContentTypeJSON, health)
	}

	if err := serviceInstance.Source.Ping(r.Context()); err != nil {
		log.Warnf("Database ping failed: %v", err)
		health.Status = "error"
		health.Database = "disconnected"
		w.WriteHeader(http.StatusServiceUnavailable)
		return writeJSON(w, ContentTypeJSON, health)
	}
	health.Database = "connected"

	cacheStatus := CacheStatus{
		Enabled: serviceInstance.cache != nil,
	}
	if lru, ok := serviceInstance.cache.(*cache.LRUCache); ok {
		stats := lru.Stats()
		cacheStatus.Stats = &stats
	}
	health.Cache = cacheStatus

	w.WriteHeader(http.StatusOK)
	return writeJSON(w, ContentTypeJSON, health)
}
