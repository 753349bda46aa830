/* Copyright 2025 Booksales Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/schema"
	pkgErrors "github.com/pkg/errors"

	"github.com/khwaab/booksales/pkg/server/analytics"
	"github.com/khwaab/booksales/pkg/server/app"
	"github.com/khwaab/booksales/pkg/server/log"
	"github.com/khwaab/booksales/pkg/server/middleware"
	"github.com/khwaab/booksales/pkg/server/store"
)

var formDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)

	return d
}()

// parseForm parses form data into the given struct
func parseForm(r *http.Request, dest interface{}) error {
	if err := r.ParseForm(); err != nil {
		return pkgErrors.Wrap(err, "parsing form")
	}

	return formDecoder.Decode(dest, r.PostForm)
}

// parseRequestData decodes the request payload into the given struct. JSON
// bodies and form bodies are both accepted.
func parseRequestData(r *http.Request, dest interface{}) error {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
			return pkgErrors.Wrap(err, "decoding json")
		}

		return nil
	}

	return parseForm(r, dest)
}

// errInvalidQuery marks a malformed query or path parameter
var errInvalidQuery = pkgErrors.New("invalid parameter")

type errorResponse struct {
	Message string `json:"message"`
}

// respondJSON writes the given payload as a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ErrorWrap(err, "encoding response")
	}
}

// statusCodeForError maps application errors onto HTTP status codes.
// Anything unmapped is a server fault.
func statusCodeForError(err error) int {
	cause := pkgErrors.Cause(err)

	switch cause {
	case app.ErrNotFound:
		return http.StatusNotFound
	case app.ErrLoginInvalid:
		return http.StatusUnauthorized
	case app.ErrUsernameRequired,
		app.ErrPasswordRequired,
		app.ErrPasswordTooShort,
		app.ErrDuplicateUsername,
		app.ErrInvalidRole,
		app.ErrTitleRequired,
		app.ErrInvalidGenre,
		app.ErrInvalidPrice,
		app.ErrInvalidRoyaltyRate,
		app.ErrInvalidOwner,
		app.ErrInvalidQuantity,
		analytics.ErrInvalidWindow,
		analytics.ErrInvalidCompareMode,
		store.ErrMissingColumns,
		errInvalidQuery:
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// handleJSONError logs the error and responds with a JSON error body. Client
// faults surface the cause message; server faults stay opaque.
func handleJSONError(w http.ResponseWriter, err error, msg string) {
	statusCode := statusCodeForError(err)

	if statusCode == http.StatusInternalServerError {
		log.ErrorWrap(err, msg)
		respondJSON(w, statusCode, errorResponse{Message: http.StatusText(statusCode)})
		return
	}

	respondJSON(w, statusCode, errorResponse{Message: pkgErrors.Cause(err).Error()})
}

func setSessionCookie(w http.ResponseWriter, key string, expiresAt time.Time) {
	cookie := http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    key,
		Expires:  expiresAt,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, &cookie)
}

func unsetSessionCookie(w http.ResponseWriter) {
	cookie := http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
	}
	http.SetCookie(w, &cookie)
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgErrors.Wrap(errInvalidQuery, name)
	}

	return val, nil
}
