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
	"os"

	"github.com/gorilla/handlers"

	"github.com/tobilg/tileserv/internal/cache"
	"github.com/tobilg/tileserv/internal/conf"
	"github.com/tobilg/tileserv/internal/layer"
	"github.com/tobilg/tileserv/internal/postgis"
	"github.com/tobilg/tileserv/internal/tileservice"
)

// Service bundles the process's long-lived dependencies: the tile
// production pipeline, the backend connection (for health checks), the
// registered tileset catalogue, and the cache façade (for the admin
// endpoints, which reach into it directly rather than through
// tileservice.Service).
type Service struct {
	Tiles    *tileservice.Service
	Source   *postgis.Source
	Tilesets layer.Catalog
	cache    cache.Cache
}

// serviceInstance is the process-wide Service, set by Initialize.
var serviceInstance *Service

// Initialize constructs the process-wide Service from its dependencies.
// It is called once from cmd/tileserver's main.
func Initialize(tiles *tileservice.Service, source *postgis.Source, tilesets layer.Catalog, c cache.Cache) {
	serviceInstance = &Service{
		Tiles:    tiles,
		Source:   source,
		Tilesets: tilesets,
		cache:    c,
	}
}

// Serve starts the HTTP server on the port and base path from
// conf.Configuration.Server, in the teacher's idiom of a single blocking
// ListenAndServe call wrapped with request logging.
func Serve() error {
	router := initRouter(conf.Configuration.Server.BasePath)
	loggedRouter := handlers.CombinedLoggingHandler(os.Stdout, router)
	addr := fmt.Sprintf(":%d", conf.Configuration.Server.HTTPPort)
	return http.ListenAndServe(addr, loggedRouter)
}
