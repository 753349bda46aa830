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
	"time"

	"github.com/gorilla/mux"
	pkgErrors "github.com/pkg/errors"

	"github.com/khwaab/booksales/pkg/server/analytics"
	"github.com/khwaab/booksales/pkg/server/app"
	"github.com/khwaab/booksales/pkg/server/context"
	"github.com/khwaab/booksales/pkg/server/presenters"
	"github.com/khwaab/booksales/pkg/server/store"
)

// NewSales creates a new Sales controller
func NewSales(app *app.App, analytics *analytics.Service) *Sales {
	return &Sales{app: app, analytics: analytics}
}

// Sales is a sale controller
type Sales struct {
	app       *app.App
	analytics *analytics.Service
}

// Index handles GET /api/v1/sales. It lists the principal's most recent
// sales, newest first, bounded by the limit parameter.
func (s *Sales) Index(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleJSONError(w, err, "parsing limit")
		return
	}

	sales, err := s.analytics.RecentSales(*user, limit)
	if err != nil {
		handleJSONError(w, err, "getting sales")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentSaleDetails(sales))
}

// CreateSaleForm is the payload for recording a sale
type CreateSaleForm struct {
	BookID   int      `schema:"book_id" json:"book_id"`
	Date     string   `schema:"date" json:"date"`
	Quantity int      `schema:"quantity" json:"quantity"`
	Price    *float64 `schema:"price" json:"price"`
}

// Create handles POST /api/v1/sales. Revenue and royalty are derived on the
// server; the payload cannot set them.
func (s *Sales) Create(w http.ResponseWriter, r *http.Request) {
	var form CreateSaleForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	date := s.app.Clock.Now().UTC()
	if form.Date != "" {
		parsed, err := time.Parse(store.DateLayout, form.Date)
		if err != nil {
			handleJSONError(w, pkgErrors.Wrap(errInvalidQuery, "date"), "parsing date")
			return
		}
		date = parsed
	}

	sale, err := s.app.AddSale(app.AddSaleParams{
		BookID:   form.BookID,
		Date:     date,
		Quantity: form.Quantity,
		Price:    form.Price,
	})
	if err != nil {
		handleJSONError(w, err, "adding sale")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentSale(sale))
}

// Delete handles DELETE /api/v1/sales/{saleID}
func (s *Sales) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := s.app.DeleteSale(vars["saleID"]); err != nil {
		handleJSONError(w, err, "deleting sale")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
