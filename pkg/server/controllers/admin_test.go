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
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/khwaab/booksales/pkg/assert"
	"github.com/khwaab/booksales/pkg/server/testutils"
)

func TestAdminUsers(t *testing.T) {
	f := setupBookFixture(t)

	t.Run("client forbidden", func(t *testing.T) {
		res := testutils.MakeAuthReq(t, f.server, "GET", "/api/v1/users", "", f.client1Key)

		assert.StatusCodeEquals(t, res, http.StatusForbidden, "status mismatch")
	})

	t.Run("admin lists without password hashes", func(t *testing.T) {
		res := testutils.MakeAuthReq(t, f.server, "GET", "/api/v1/users", "", f.adminKey)

		assert.StatusCodeEquals(t, res, http.StatusOK, "status mismatch")

		body, err := io.ReadAll(res.Body)
		if err != nil {
			t.Fatal(errors.Wrap(err, "reading body"))
		}
		defer res.Body.Close()

		if strings.Contains(string(body), "$2a$") {
			t.Error("response leaked a password hash")
		}
		if !strings.Contains(string(body), `"client1"`) {
			t.Error("response is missing a user")
		}
	})
}

func TestAdminCreateUser(t *testing.T) {
	f := setupBookFixture(t)

	res := testutils.MakeAuthReq(t, f.server, "POST", "/api/v1/users", `{"username":"client3","password":"client3pass","role":"client","name":"Third Client"}`, f.adminKey)

	assert.StatusCodeEquals(t, res, http.StatusCreated, "status mismatch")

	if _, err := f.app.Authenticate("client3", "client3pass"); err != nil {
		t.Errorf("created user cannot authenticate: %v", err)
	}

	t.Run("duplicate", func(t *testing.T) {
		res := testutils.MakeAuthReq(t, f.server, "POST", "/api/v1/users", `{"username":"client3","password":"otherpass1","role":"client"}`, f.adminKey)

		assert.StatusCodeEquals(t, res, http.StatusBadRequest, "status mismatch")
	})
}

func TestAdminDeleteUser(t *testing.T) {
	f := setupBookFixture(t)

	res := testutils.MakeAuthReq(t, f.server, "DELETE", "/api/v1/users/client2", "", f.adminKey)

	assert.StatusCodeEquals(t, res, http.StatusNoContent, "status mismatch")

	// the deleted client's session is gone
	res = testutils.MakeAuthReq(t, f.server, "GET", "/api/v1/books", "", f.client2Key)
	assert.StatusCodeEquals(t, res, http.StatusUnauthorized, "status mismatch")

	// the books stay behind
	books, err := f.app.Store.Books()
	if err != nil {
		t.Fatal(errors.Wrap(err, "loading books"))
	}
	assert.Equal(t, len(books), 2, "book count mismatch")
}

func TestAdminExport(t *testing.T) {
	f := setupBookFixture(t)
	testutils.MustAddSale(t, f.app, f.client1BookID, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), 2)

	t.Run("books", func(t *testing.T) {
		res := testutils.MakeAuthReq(t, f.server, "GET", "/api/v1/export/books", "", f.adminKey)

		assert.StatusCodeEquals(t, res, http.StatusOK, "status mismatch")
		assert.Equal(t, res.Header.Get("Content-Type"), "text/csv", "content type mismatch")

		body, err := io.ReadAll(res.Body)
		if err != nil {
			t.Fatal(errors.Wrap(err, "reading body"))
		}
		defer res.Body.Close()

		lines := strings.Split(strings.TrimSpace(string(body)), "\n")
		assert.Equal(t, len(lines), 3, "line count mismatch")
		assert.Equal(t, lines[0], "id,title,author,genre,owner,isbn,royalty_percentage,price,publication_date", "header mismatch")
	})

	t.Run("unknown entity", func(t *testing.T) {
		res := testutils.MakeAuthReq(t, f.server, "GET", "/api/v1/export/royalties", "", f.adminKey)

		assert.StatusCodeEquals(t, res, http.StatusBadRequest, "status mismatch")
	})
}

func TestAdminImport(t *testing.T) {
	f := setupBookFixture(t)

	t.Run("valid sales table", func(t *testing.T) {
		csv := "date,book_id,quantity,price,revenue\n2024-06-01,1,2,20,40\n"
		res := testutils.MakeAuthReq(t, f.server, "POST", "/api/v1/import/sales", csv, f.adminKey)

		assert.StatusCodeEquals(t, res, http.StatusNoContent, "status mismatch")

		sales, err := f.app.Store.Sales()
		if err != nil {
			t.Fatal(errors.Wrap(err, "loading sales"))
		}
		assert.Equal(t, len(sales), 1, "sale count mismatch")
		assert.NotEqual(t, sales[0].ID, "", "sale id was not assigned")
	})

	t.Run("missing columns", func(t *testing.T) {
		csv := "date,quantity\n2024-06-01,2\n"
		res := testutils.MakeAuthReq(t, f.server, "POST", "/api/v1/import/sales", csv, f.adminKey)

		assert.StatusCodeEquals(t, res, http.StatusBadRequest, "status mismatch")
	})
}

func TestAdminClearData(t *testing.T) {
	f := setupBookFixture(t)
	testutils.MustAddSale(t, f.app, f.client1BookID, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), 2)

	res := testutils.MakeAuthReq(t, f.server, "DELETE", "/api/v1/data/sales", "", f.adminKey)

	assert.StatusCodeEquals(t, res, http.StatusNoContent, "status mismatch")

	sales, err := f.app.Store.Sales()
	if err != nil {
		t.Fatal(errors.Wrap(err, "loading sales"))
	}
	assert.Equal(t, len(sales), 0, "sale count mismatch")

	// books are untouched
	books, err := f.app.Store.Books()
	if err != nil {
		t.Fatal(errors.Wrap(err, "loading books"))
	}
	assert.Equal(t, len(books), 2, "book count mismatch")
}
