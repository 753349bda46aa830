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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/khwaab/booksales/pkg/assert"
	"github.com/khwaab/booksales/pkg/server/app"
	"github.com/khwaab/booksales/pkg/server/store"
	"github.com/khwaab/booksales/pkg/server/testutils"
)

type bookFixture struct {
	app           *app.App
	server        *httptest.Server
	adminKey      string
	client1Key    string
	client2Key    string
	client1BookID int
	client2BookID int
}

func setupBookFixture(t *testing.T) *bookFixture {
	t.Helper()

	a := testutils.InitApp(t)

	admin := testutils.MustCreateUser(t, a, "boss", "admin1234", store.RoleAdmin)
	client1 := testutils.MustCreateUser(t, a, "client1", "client1pass", store.RoleClient)
	client2 := testutils.MustCreateUser(t, a, "client2", "client2pass", store.RoleClient)

	b1 := testutils.MustCreateBook(t, a, "Alpha", "client1", 20, 10)
	b2 := testutils.MustCreateBook(t, a, "Gamma", "client2", 30, 10)

	server := MustNewServer(t, a)
	t.Cleanup(server.Close)

	return &bookFixture{
		app:           a,
		server:        server,
		adminKey:      testutils.MustSignIn(t, a, admin).Key,
		client1Key:    testutils.MustSignIn(t, a, client1).Key,
		client2Key:    testutils.MustSignIn(t, a, client2).Key,
		client1BookID: b1.ID,
		client2BookID: b2.ID,
	}
}

func TestBooksIndex(t *testing.T) {
	f := setupBookFixture(t)

	testCases := []struct {
		name     string
		key      string
		expected []string
	}{
		{name: "admin sees all", key: f.adminKey, expected: []string{"Alpha", "Gamma"}},
		{name: "client sees own", key: f.client1Key, expected: []string{"Alpha"}},
		{name: "other client sees own", key: f.client2Key, expected: []string{"Gamma"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := testutils.MakeAuthReq(t, f.server, "GET", "/api/v1/books", "", tc.key)

			assert.StatusCodeEquals(t, res, http.StatusOK, "status mismatch")

			var body []struct {
				Title string `json:"title"`
			}
			testutils.MustUnmarshalJSON(t, res, &body)

			titles := []string{}
			for _, b := range body {
				titles = append(titles, b.Title)
			}
			assert.DeepEqual(t, titles, tc.expected, "titles mismatch")
		})
	}
}

func TestBooksShow(t *testing.T) {
	f := setupBookFixture(t)

	t.Run("owner", func(t *testing.T) {
		res := testutils.MakeAuthReq(t, f.server, "GET", fmt.Sprintf("/api/v1/books/%d", f.client1BookID), "", f.client1Key)

		assert.StatusCodeEquals(t, res, http.StatusOK, "status mismatch")
	})

	t.Run("foreign book looks missing", func(t *testing.T) {
		res := testutils.MakeAuthReq(t, f.server, "GET", fmt.Sprintf("/api/v1/books/%d", f.client2BookID), "", f.client1Key)

		assert.StatusCodeEquals(t, res, http.StatusNotFound, "status mismatch")
	})

	t.Run("unknown id", func(t *testing.T) {
		res := testutils.MakeAuthReq(t, f.server, "GET", "/api/v1/books/999", "", f.adminKey)

		assert.StatusCodeEquals(t, res, http.StatusNotFound, "status mismatch")
	})
}

func TestBooksCreate(t *testing.T) {
	f := setupBookFixture(t)

	payload := `{"title":"New Book","author":"An Author","genre":"Science","owner":"client1","royalty_percentage":12,"price":25,"publication_date":"2023-01-01"}`

	t.Run("client forbidden", func(t *testing.T) {
		res := testutils.MakeAuthReq(t, f.server, "POST", "/api/v1/books", payload, f.client1Key)

		assert.StatusCodeEquals(t, res, http.StatusForbidden, "status mismatch")
	})

	t.Run("admin creates", func(t *testing.T) {
		res := testutils.MakeAuthReq(t, f.server, "POST", "/api/v1/books", payload, f.adminKey)

		assert.StatusCodeEquals(t, res, http.StatusCreated, "status mismatch")

		var body struct {
			ID    int    `json:"id"`
			Title string `json:"title"`
		}
		testutils.MustUnmarshalJSON(t, res, &body)
		assert.NotEqual(t, body.ID, 0, "id was not assigned")
		assert.Equal(t, body.Title, "New Book", "title mismatch")
	})

	t.Run("invalid genre", func(t *testing.T) {
		res := testutils.MakeAuthReq(t, f.server, "POST", "/api/v1/books", `{"title":"X","genre":"Haiku","owner":"client1","price":5}`, f.adminKey)

		assert.StatusCodeEquals(t, res, http.StatusBadRequest, "status mismatch")
	})
}

func TestBooksUpdate(t *testing.T) {
	f := setupBookFixture(t)

	res := testutils.MakeAuthReq(t, f.server, "PATCH", fmt.Sprintf("/api/v1/books/%d", f.client1BookID), `{"price":22.5}`, f.adminKey)

	assert.StatusCodeEquals(t, res, http.StatusOK, "status mismatch")

	var body struct {
		Price float64 `json:"price"`
		Title string  `json:"title"`
	}
	testutils.MustUnmarshalJSON(t, res, &body)
	assert.Equal(t, body.Price, 22.5, "price mismatch")
	assert.Equal(t, body.Title, "Alpha", "title was clobbered")
}

func TestBooksDelete(t *testing.T) {
	f := setupBookFixture(t)

	res := testutils.MakeAuthReq(t, f.server, "DELETE", fmt.Sprintf("/api/v1/books/%d", f.client1BookID), "", f.adminKey)

	assert.StatusCodeEquals(t, res, http.StatusNoContent, "status mismatch")

	res = testutils.MakeAuthReq(t, f.server, "GET", fmt.Sprintf("/api/v1/books/%d", f.client1BookID), "", f.adminKey)
	assert.StatusCodeEquals(t, res, http.StatusNotFound, "status mismatch")
}
