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
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/tobilg/tileserv/internal/tileservice"
)

// handleTile serves MVT tiles for a given tileset and tile coordinates,
// delegating production (and caching) to tileservice.Service.Tile.
func handleTile(w http.ResponseWriter, r *http.Request) *appError {
	vars := mux.Vars(r)
	tileset := vars["layer"]
	zStr := vars["z"]
	xStr := vars["x"]
	yStr := vars["y"]

	z, err := strconv.Atoi(zStr)
	if err != nil {
		return appErrorBadRequest(err, fmt.Sprintf("Invalid zoom level: %s", zStr))
	}
	x, err := strconv.Atoi(xStr)
	if err != nil {
		return appErrorBadRequest(err, fmt.Sprintf("Invalid x coordinate: %s", xStr))
	}
	y, err := strconv.Atoi(yStr)
	if err != nil {
		return appErrorBadRequest(err, fmt.Sprintf("Invalid y coordinate: %s", yStr))
	}

	if z < 0 || z > 30 {
		return appErrorBadRequest(nil, fmt.Sprintf("Zoom level out of range: %d", z))
	}

	maxCoord := 1 << uint(z)
	if x < 0 || x >= maxCoord {
		return appErrorBadRequest(nil, fmt.Sprintf("X coordinate out of range: %d (max: %d)", x, maxCoord-1))
	}
	if y < 0 || y >= maxCoord {
		return appErrorBadRequest(nil, fmt.Sprintf("Y coordinate out of range: %d (max: %d)", y, maxCoord-1))
	}

	log.Debugf("Tile request: tileset=%s z=%d x=%d y=%d", tileset, z, x, y)

	if serviceInstance == nil || serviceInstance.Tiles == nil {
		return appErrorInternal(nil, "tile service not initialized")
	}

	tileData, err := serviceInstance.Tiles.Tile(r.Context(), tileset, x, y, z)
	if err != nil {
		if err == tileservice.ErrUnknownTileset {
			return appErrorNotFound(err, fmt.Sprintf("Tileset not found: %s", tileset))
		}
		return appErrorInternal(err, fmt.Sprintf("Error generating tile: %v", err))
	}

	if len(tileData) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}

	w.Header().Set("Content-Type", ContentTypeMVT)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(tileData); err != nil {
		return appErrorInternal(err, "Error writing tile data")
	}

	return nil
}
