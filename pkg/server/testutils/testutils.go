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

// Package testutils provides fixtures for server tests
package testutils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/khwaab/booksales/pkg/clock"
	"github.com/khwaab/booksales/pkg/server/app"
	"github.com/khwaab/booksales/pkg/server/store"
)

// InitApp returns an app over a store rooted in a fresh temporary
// directory, with the clock pinned so window arithmetic is deterministic
func InitApp(t *testing.T) *app.App {
	t.Helper()

	return app.NewApp(store.New(t.TempDir()), clock.NewMock())
}

// MustCreateUser creates a user through the app layer, failing the test on error
func MustCreateUser(t *testing.T, a *app.App, username, password, role string) store.User {
	t.Helper()

	user, err := a.CreateUser(app.CreateUserParams{
		Username: username,
		Password: password,
		Role:     role,
		Name:     username,
		Email:    username + "@example.com",
	})
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating user"))
	}

	return user
}

// MustCreateBook creates a book through the app layer, failing the test on error
func MustCreateBook(t *testing.T, a *app.App, title, owner string, price, rate float64) store.Book {
	t.Helper()

	book, err := a.CreateBook(app.CreateBookParams{
		Title:             title,
		Author:            "Test Author",
		Genre:             "Fiction",
		Owner:             owner,
		RoyaltyPercentage: rate,
		Price:             price,
		PublicationDate:   "2020-01-01",
	})
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating book"))
	}

	return book
}

// MustAddSale records a sale through the app layer, failing the test on error
func MustAddSale(t *testing.T, a *app.App, bookID int, date time.Time, quantity int) store.Sale {
	t.Helper()

	sale, err := a.AddSale(app.AddSaleParams{BookID: bookID, Date: date, Quantity: quantity})
	if err != nil {
		t.Fatal(errors.Wrap(err, "adding sale"))
	}

	return sale
}

// MustSignIn creates a session for the user, failing the test on error
func MustSignIn(t *testing.T, a *app.App, user store.User) app.Session {
	t.Helper()

	session, err := a.SignIn(&user)
	if err != nil {
		t.Fatal(errors.Wrap(err, "signing in"))
	}

	return session
}

// MakeReq makes an HTTP request against the test server
func MakeReq(t *testing.T, server *httptest.Server, method, path, data string) *http.Response {
	t.Helper()

	return doReq(t, server, method, path, data, "")
}

// MakeAuthReq makes an HTTP request carrying the session key as a bearer credential
func MakeAuthReq(t *testing.T, server *httptest.Server, method, path, data, sessionKey string) *http.Response {
	t.Helper()

	return doReq(t, server, method, path, data, sessionKey)
}

func doReq(t *testing.T, server *httptest.Server, method, path, data, sessionKey string) *http.Response {
	t.Helper()

	var body io.Reader
	if data != "" {
		body = strings.NewReader(data)
	}

	req, err := http.NewRequest(method, server.URL+path, body)
	if err != nil {
		t.Fatal(errors.Wrap(err, "constructing request"))
	}
	if data != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionKey != "" {
		req.Header.Set("Authorization", "Bearer "+sessionKey)
	}

	res, err := server.Client().Do(req)
	if err != nil {
		t.Fatal(errors.Wrap(err, "executing request"))
	}

	return res
}

// MustUnmarshalJSON decodes the response body into dest, failing the test on error
func MustUnmarshalJSON(t *testing.T, res *http.Response, dest interface{}) {
	t.Helper()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(errors.Wrap(err, "reading body"))
	}
	defer res.Body.Close()

	if err := json.Unmarshal(body, dest); err != nil {
		t.Fatal(errors.Wrapf(err, "unmarshalling %s", string(body)))
	}
}
