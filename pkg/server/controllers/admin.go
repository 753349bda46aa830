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
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	pkgErrors "github.com/pkg/errors"

	"github.com/khwaab/booksales/pkg/server/app"
	"github.com/khwaab/booksales/pkg/server/presenters"
)

// NewAdmin creates a new Admin controller
func NewAdmin(app *app.App) *Admin {
	return &Admin{app: app}
}

// Admin is a controller for administrative operations: account management
// and bulk data import, export and reset. Its routes are mounted behind the
// admin-only middleware.
type Admin struct {
	app *app.App
}

// Users handles GET /api/v1/users
func (c *Admin) Users(w http.ResponseWriter, r *http.Request) {
	users, err := c.app.Store.Users()
	if err != nil {
		handleJSONError(w, err, "loading users")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentUsers(users))
}

// CreateUserForm is the payload for creating a user
type CreateUserForm struct {
	Username string `schema:"username" json:"username"`
	Password string `schema:"password" json:"password"`
	Role     string `schema:"role" json:"role"`
	Name     string `schema:"name" json:"name"`
	Email    string `schema:"email" json:"email"`
}

// CreateUser handles POST /api/v1/users
func (c *Admin) CreateUser(w http.ResponseWriter, r *http.Request) {
	var form CreateUserForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	user, err := c.app.CreateUser(app.CreateUserParams{
		Username: form.Username,
		Password: form.Password,
		Role:     form.Role,
		Name:     form.Name,
		Email:    form.Email,
	})
	if err != nil {
		handleJSONError(w, err, "creating user")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentUser(user))
}

// UpdateUserForm is the payload for updating a user. Absent fields are left
// untouched.
type UpdateUserForm struct {
	Password *string `schema:"password" json:"password"`
	Role     *string `schema:"role" json:"role"`
	Name     *string `schema:"name" json:"name"`
	Email    *string `schema:"email" json:"email"`
}

// UpdateUser handles PATCH /api/v1/users/{username}
func (c *Admin) UpdateUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	username := vars["username"]

	var form UpdateUserForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	err := c.app.UpdateUser(username, app.UpdateUserParams{
		Password: form.Password,
		Role:     form.Role,
		Name:     form.Name,
		Email:    form.Email,
	})
	if err != nil {
		handleJSONError(w, err, "updating user")
		return
	}

	user, err := c.app.GetUser(username)
	if err != nil {
		handleJSONError(w, err, "getting user")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentUser(user))
}

// DeleteUser handles DELETE /api/v1/users/{username}. The user's books stay
// behind; ownership is reassigned through book updates.
func (c *Admin) DeleteUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := c.app.RemoveUser(vars["username"]); err != nil {
		handleJSONError(w, err, "removing user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Export handles GET /api/v1/export/{entity}. The response is the CSV table
// as stored, served as an attachment.
func (c *Admin) Export(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entity := vars["entity"]

	var export func(io.Writer) error
	switch entity {
	case "books":
		export = c.app.ExportBooks
	case "sales":
		export = c.app.ExportSales
	default:
		handleJSONError(w, pkgErrors.Wrap(errInvalidQuery, entity), "resolving entity")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", entity))

	if err := export(w); err != nil {
		handleJSONError(w, err, "exporting "+entity)
	}
}

// Import handles POST /api/v1/import/{entity}. The uploaded CSV replaces
// the stored table wholesale after column validation; royalties and sale
// identifiers are reconciled on the way in.
func (c *Admin) Import(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entity := vars["entity"]

	body, err := importBody(r)
	if err != nil {
		handleJSONError(w, err, "reading upload")
		return
	}
	defer body.Close()

	switch entity {
	case "books":
		err = c.app.ImportBooks(body)
	case "sales":
		err = c.app.ImportSales(body)
	default:
		handleJSONError(w, pkgErrors.Wrap(errInvalidQuery, entity), "resolving entity")
		return
	}

	if err != nil {
		handleJSONError(w, err, "importing "+entity)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// importBody returns the CSV payload of an import request. Multipart
// uploads carry it in a "file" part; otherwise the raw body is the table.
func importBody(r *http.Request) (io.ReadCloser, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, pkgErrors.Wrap(err, "reading form file")
		}

		return file, nil
	}

	return r.Body, nil
}

// ClearData handles DELETE /api/v1/data/{entity}. Clearing books does not
// clear sales; orphaned sales simply stop joining.
func (c *Admin) ClearData(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entity := vars["entity"]

	var err error
	switch entity {
	case "books":
		err = c.app.Store.ClearBooks()
	case "sales":
		err = c.app.Store.ClearSales()
	default:
		handleJSONError(w, pkgErrors.Wrap(errInvalidQuery, entity), "resolving entity")
		return
	}

	if err != nil {
		handleJSONError(w, err, "clearing "+entity)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
