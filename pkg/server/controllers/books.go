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
	"strconv"

	"github.com/gorilla/mux"
	pkgErrors "github.com/pkg/errors"

	"github.com/khwaab/booksales/pkg/server/analytics"
	"github.com/khwaab/booksales/pkg/server/app"
	"github.com/khwaab/booksales/pkg/server/context"
	"github.com/khwaab/booksales/pkg/server/permissions"
	"github.com/khwaab/booksales/pkg/server/presenters"
	"github.com/khwaab/booksales/pkg/server/store"
)

// NewBooks creates a new Books controller
func NewBooks(app *app.App, analytics *analytics.Service) *Books {
	return &Books{app: app, analytics: analytics}
}

// Books is a book controller
type Books struct {
	app       *app.App
	analytics *analytics.Service
}

func bookIDParam(r *http.Request) (int, error) {
	vars := mux.Vars(r)

	id, err := strconv.Atoi(vars["bookID"])
	if err != nil {
		return 0, pkgErrors.Wrap(errInvalidQuery, "bookID")
	}

	return id, nil
}

// Index handles GET /api/v1/books. Clients get their own catalog, admins
// get everything.
func (b *Books) Index(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	books, err := b.analytics.UserBooks(*user)
	if err != nil {
		handleJSONError(w, err, "getting books")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentBooks(books))
}

// Show handles GET /api/v1/books/{bookID}. A book outside the principal's
// scope is indistinguishable from a missing one.
func (b *Books) Show(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	id, err := bookIDParam(r)
	if err != nil {
		handleJSONError(w, err, "parsing book id")
		return
	}

	book, err := b.app.GetBook(id)
	if err != nil {
		handleJSONError(w, err, "getting book")
		return
	}

	if !permissions.ViewBook(user, book) {
		handleJSONError(w, app.ErrNotFound, "getting book")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentBook(book))
}

// CreateBookForm is the payload for creating a book
type CreateBookForm struct {
	Title             string  `schema:"title" json:"title"`
	Author            string  `schema:"author" json:"author"`
	Genre             string  `schema:"genre" json:"genre"`
	Owner             string  `schema:"owner" json:"owner"`
	ISBN              string  `schema:"isbn" json:"isbn"`
	RoyaltyPercentage float64 `schema:"royalty_percentage" json:"royalty_percentage"`
	Price             float64 `schema:"price" json:"price"`
	PublicationDate   string  `schema:"publication_date" json:"publication_date"`
}

// Create handles POST /api/v1/books
func (b *Books) Create(w http.ResponseWriter, r *http.Request) {
	var form CreateBookForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	book, err := b.app.CreateBook(app.CreateBookParams{
		Title:             form.Title,
		Author:            form.Author,
		Genre:             form.Genre,
		Owner:             form.Owner,
		ISBN:              form.ISBN,
		RoyaltyPercentage: form.RoyaltyPercentage,
		Price:             form.Price,
		PublicationDate:   form.PublicationDate,
	})
	if err != nil {
		handleJSONError(w, err, "creating book")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentBook(book))
}

// UpdateBookForm is the payload for updating a book. Absent fields are left
// untouched.
type UpdateBookForm struct {
	Title             *string  `schema:"title" json:"title"`
	Author            *string  `schema:"author" json:"author"`
	Genre             *string  `schema:"genre" json:"genre"`
	Owner             *string  `schema:"owner" json:"owner"`
	ISBN              *string  `schema:"isbn" json:"isbn"`
	RoyaltyPercentage *float64 `schema:"royalty_percentage" json:"royalty_percentage"`
	Price             *float64 `schema:"price" json:"price"`
	PublicationDate   *string  `schema:"publication_date" json:"publication_date"`
}

// Update handles PATCH /api/v1/books/{bookID}
func (b *Books) Update(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDParam(r)
	if err != nil {
		handleJSONError(w, err, "parsing book id")
		return
	}

	var form UpdateBookForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	err = b.app.UpdateBook(id, store.BookUpdate{
		Title:             form.Title,
		Author:            form.Author,
		Genre:             form.Genre,
		Owner:             form.Owner,
		ISBN:              form.ISBN,
		RoyaltyPercentage: form.RoyaltyPercentage,
		Price:             form.Price,
		PublicationDate:   form.PublicationDate,
	})
	if err != nil {
		handleJSONError(w, err, "updating book")
		return
	}

	book, err := b.app.GetBook(id)
	if err != nil {
		handleJSONError(w, err, "getting book")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentBook(book))
}

// Delete handles DELETE /api/v1/books/{bookID}. Sales of the book go with it.
func (b *Books) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDParam(r)
	if err != nil {
		handleJSONError(w, err, "parsing book id")
		return
	}

	if err := b.app.DeleteBook(id); err != nil {
		handleJSONError(w, err, "deleting book")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
