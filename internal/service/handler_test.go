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
	"crypto/tls"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/tobilg/tileserv/internal/layer"
	"github.com/tobilg/tileserv/internal/tileservice"
)

func setupTestService() {
	serviceInstance = &Service{
		Tiles:    &tileservice.Service{},
		Source:   nil,
		Tilesets: layer.Catalog{},
		cache:    nil,
	}
}

func TestHandleHealthNoSource(t *testing.T) {
	setupTestService()

	req, err := http.NewRequest("GET", "/health", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	appHandler(handleHealth).ServeHTTP(rr, req)

	var response HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Errorf("failed to parse health response: %v", err)
	}

	if status := rr.Code; status != http.StatusServiceUnavailable {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusServiceUnavailable)
	}
	if response.Status != "error" {
		t.Errorf("expected status 'error' with no backend, got %q", response.Status)
	}
}

func TestHandleRoot(t *testing.T) {
	setupTestService()

	req, err := http.NewRequest("GET", "/", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	appHandler(handleRoot).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}
	if ct := rr.Header().Get("Content-Type"); ct != ContentTypeJSON {
		t.Errorf("expected Content-Type %s, got %s", ContentTypeJSON, ct)
	}
}

func TestHandleTileInvalidCoordinates(t *testing.T) {
	setupTestService()

	tests := []struct {
		name string
		url  string
		code int
	}{
		{"Invalid zoom", "/tiles/test/99/0/0.mvt", http.StatusBadRequest},
		{"Negative zoom", "/tiles/test/-1/0/0.mvt", http.StatusNotFound}, // route pattern rejects negative numbers
		{"Invalid x", "/tiles/test/10/9999/0.mvt", http.StatusBadRequest},
		{"Invalid y", "/tiles/test/10/0/9999.mvt", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest("GET", tt.url, nil)
			if err != nil {
				t.Fatal(err)
			}

			rr := httptest.NewRecorder()
			router := initRouter("")
			router.ServeHTTP(rr, req)

			if status := rr.Code; status != tt.code {
				t.Errorf("handler returned wrong status code: got %v want %v", status, tt.code)
			}
		})
	}
}

func TestRouter(t *testing.T) {
	router := initRouter("")

	tests := []struct {
		method string
		path   string
		match  bool
	}{
		{"GET", "/", true},
		{"GET", "/index.html", true},
		{"GET", "/health", true},
		{"GET", "/layers", true},
		{"GET", "/tiles/buildings/10/512/384.mvt", true},
		{"GET", "/tiles/buildings/10/512/384.pbf", true},
		{"POST", "/", false},
		{"GET", "/invalid", false},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, tt.path, nil)
			if err != nil {
				t.Fatal(err)
			}

			var match bool
			router.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
				if route.Match(req, &mux.RouteMatch{}) {
					match = true
				}
				return nil
			})

			if match != tt.match {
				t.Errorf("expected route match %v for %s %s, got %v", tt.match, tt.method, tt.path, match)
			}
		})
	}
}

func TestGetBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		scheme   string
		expected string
	}{
		{name: "Simple HTTP", host: "localhost:9000", scheme: "http", expected: "http://localhost:9000"},
		{name: "HTTPS", host: "example.com", scheme: "https", expected: "https://example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.Host = tt.host
			if tt.scheme == "https" {
				req.TLS = &tls.ConnectionState{}
			}

			if baseURL := getBaseURL(req); baseURL != tt.expected {
				t.Errorf("expected base URL %s, got %s", tt.expected, baseURL)
			}
		})
	}
}

func TestFormatTileURL(t *testing.T) {
	tests := []struct {
		baseURL  string
		layer    string
		expected string
	}{
		{baseURL: "http://localhost:9000", layer: "buildings", expected: "http://localhost:9000/tiles/buildings/{z}/{x}/{y}.mvt"},
		{baseURL: "https://example.com", layer: "roads", expected: "https://example.com/tiles/roads/{z}/{x}/{y}.mvt"},
	}

	for _, tt := range tests {
		t.Run(tt.layer, func(t *testing.T) {
			if result := formatTileURL(tt.baseURL, tt.layer); result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}
