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
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// Content types used across the HTTP surface.
const (
	ContentTypeJSON = "application/json"
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypeMVT  = "application/vnd.mapbox-vector-tile"
	ContentTypeText = "text/plain; charset=utf-8"
)

// appError carries an HTTP status and a message alongside the underlying
// error, so a handler can return a single value that appHandler knows how
// to render.
type appError struct {
	Err     error
	Message string
	Code    int
}

func appErrorBadRequest(err error, message string) *appError {
	return &appError{Err: err, Message: message, Code: http.StatusBadRequest}
}

func appErrorNotFound(err error, message string) *appError {
	return &appError{Err: err, Message: message, Code: http.StatusNotFound}
}

func appErrorUnauthorized(err error, message string) *appError {
	return &appError{Err: err, Message: message, Code: http.StatusUnauthorized}
}

func appErrorForbidden(err error, message string) *appError {
	return &appError{Err: err, Message: message, Code: http.StatusForbidden}
}

func appErrorInternal(err error, message string) *appError {
	return &appError{Err: err, Message: message, Code: http.StatusInternalServerError}
}

// appHandler is an http.Handler that centralises error rendering: a handler
// function returns an *appError instead of writing an error response itself.
type appHandler func(w http.ResponseWriter, r *http.Request) *appError

func (fn appHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if e := fn(w, r); e != nil {
		if e.Err != nil {
			log.Errorf("%s %s: %v", r.Method, r.URL.Path, e.Err)
		}
		w.Header().Set("Content-Type", ContentTypeJSON)
		w.WriteHeader(e.Code)
		json.NewEncoder(w).Encode(map[string]string{"error": e.Message})
	}
}

// writeJSON encodes v as the response body with the given content type,
// returning an *appError if encoding fails.
func writeJSON(w http.ResponseWriter, contentType string, v interface{}) *appError {
	w.Header().Set("Content-Type", contentType)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return appErrorInternal(err, "error encoding response")
	}
	return nil
}
