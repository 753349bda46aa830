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
	"net/http"

	"github.com/khwaab/booksales/pkg/server/analytics"
	"github.com/khwaab/booksales/pkg/server/app"
	"github.com/khwaab/booksales/pkg/server/context"
	"github.com/khwaab/booksales/pkg/server/presenters"
)

// NewAnalytics creates a new Analytics controller
func NewAnalytics(app *app.App, analytics *analytics.Service) *Analytics {
	return &Analytics{app: app, analytics: analytics}
}

// Analytics is an analytics controller. Every endpoint is scoped to the
// principal resolved by the auth middleware.
type Analytics struct {
	app       *app.App
	analytics *analytics.Service
}

func windowParam(r *http.Request) (analytics.Window, error) {
	return analytics.ParseWindow(r.URL.Query().Get("window"))
}

// Summary handles GET /api/v1/analytics/summary
func (a *Analytics) Summary(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	window, err := windowParam(r)
	if err != nil {
		handleJSONError(w, err, "parsing window")
		return
	}

	compare, err := analytics.ParseCompareMode(r.URL.Query().Get("compare"))
	if err != nil {
		handleJSONError(w, err, "parsing compare mode")
		return
	}

	bookID, err := queryInt(r, "book_id", 0)
	if err != nil {
		handleJSONError(w, err, "parsing book id")
		return
	}

	summary, err := a.analytics.Summary(*user, analytics.SummaryParams{
		Window:  window,
		Compare: compare,
		BookID:  bookID,
	})
	if err != nil {
		handleJSONError(w, err, "computing summary")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentSummary(summary))
}

// Trend handles GET /api/v1/analytics/trend
func (a *Analytics) Trend(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	window, err := windowParam(r)
	if err != nil {
		handleJSONError(w, err, "parsing window")
		return
	}

	trend, err := a.analytics.Trend(*user, window)
	if err != nil {
		handleJSONError(w, err, "computing trend")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentTrend(trend))
}

// TopBooks handles GET /api/v1/analytics/top-books
func (a *Analytics) TopBooks(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	window, err := windowParam(r)
	if err != nil {
		handleJSONError(w, err, "parsing window")
		return
	}

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleJSONError(w, err, "parsing limit")
		return
	}

	ranks, err := a.analytics.TopBooks(*user, window, limit)
	if err != nil {
		handleJSONError(w, err, "ranking books")
		return
	}

	respondJSON(w, http.StatusOK, ranks)
}

// Genres handles GET /api/v1/analytics/genres
func (a *Analytics) Genres(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	window, err := windowParam(r)
	if err != nil {
		handleJSONError(w, err, "parsing window")
		return
	}

	totals, err := a.analytics.SalesByGenre(*user, window)
	if err != nil {
		handleJSONError(w, err, "grouping by genre")
		return
	}

	respondJSON(w, http.StatusOK, totals)
}

type royaltiesResponse struct {
	Total float64                 `json:"total"`
	Books []analytics.BookRoyalty `json:"books"`
}

// Royalties handles GET /api/v1/analytics/royalties
func (a *Analytics) Royalties(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	window, err := windowParam(r)
	if err != nil {
		handleJSONError(w, err, "parsing window")
		return
	}

	books, err := a.analytics.RoyaltiesByBook(*user, window)
	if err != nil {
		handleJSONError(w, err, "grouping royalties")
		return
	}

	var total float64
	for _, b := range books {
		total += b.Royalty
	}

	respondJSON(w, http.StatusOK, royaltiesResponse{Total: total, Books: books})
}
