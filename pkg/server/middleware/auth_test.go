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

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/khwaab/booksales/pkg/assert"
	"github.com/khwaab/booksales/pkg/server/context"
	"github.com/khwaab/booksales/pkg/server/store"
	"github.com/khwaab/booksales/pkg/server/testutils"
)

func TestGetCredential(t *testing.T) {
	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer somekey")

		key, err := GetCredential(req)
		if err != nil {
			t.Fatal(err)
		}

		assert.Equal(t, key, "somekey", "key mismatch")
	})

	t.Run("session cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "cookiekey"})

		key, err := GetCredential(req)
		if err != nil {
			t.Fatal(err)
		}

		assert.Equal(t, key, "cookiekey", "key mismatch")
	})

	t.Run("no credential", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)

		key, err := GetCredential(req)
		if err != nil {
			t.Fatal(err)
		}

		assert.Equal(t, key, "", "key mismatch")
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "somekey")

		_, err := GetCredential(req)
		assert.NotEqual(t, err, nil, "expected an error")
	})
}

func TestAuth(t *testing.T) {
	a := testutils.InitApp(t)
	user := testutils.MustCreateUser(t, a, "client1", "client1pass", store.RoleClient)
	session := testutils.MustSignIn(t, a, user)

	handler := Auth(a, func(w http.ResponseWriter, r *http.Request) {
		principal := context.User(r.Context())
		if principal == nil {
			t.Error("principal was not set")
			return
		}

		w.Write([]byte(principal.Username))
	})

	t.Run("valid session", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+session.Key)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, rec.Code, http.StatusOK, "status mismatch")
		assert.Equal(t, rec.Body.String(), "client1", "body mismatch")
	})

	t.Run("missing credential", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, rec.Code, http.StatusUnauthorized, "status mismatch")
	})

	t.Run("bogus credential", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, rec.Code, http.StatusUnauthorized, "status mismatch")
	})
}

func TestAdminOnly(t *testing.T) {
	a := testutils.InitApp(t)
	admin := testutils.MustCreateUser(t, a, "boss", "admin1234", store.RoleAdmin)
	client := testutils.MustCreateUser(t, a, "client1", "client1pass", store.RoleClient)
	adminSession := testutils.MustSignIn(t, a, admin)
	clientSession := testutils.MustSignIn(t, a, client)

	handler := AdminOnly(a, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	testCases := []struct {
		name     string
		key      string
		expected int
	}{
		{name: "admin", key: adminSession.Key, expected: http.StatusOK},
		{name: "client", key: clientSession.Key, expected: http.StatusForbidden},
		{name: "guest", key: "", expected: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tc.key != "" {
				req.Header.Set("Authorization", "Bearer "+tc.key)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, rec.Code, tc.expected, "status mismatch")
		})
	}
}
