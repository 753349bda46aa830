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

	pkgErrors "github.com/pkg/errors"

	"github.com/khwaab/booksales/pkg/server/app"
	"github.com/khwaab/booksales/pkg/server/context"
	"github.com/khwaab/booksales/pkg/server/permissions"
	"github.com/khwaab/booksales/pkg/server/store"
)

// AuthWithSession resolves the request's credential to a user
func AuthWithSession(a *app.App, r *http.Request) (store.User, bool, error) {
	var user store.User

	sessionKey, err := GetCredential(r)
	if err != nil {
		return user, false, pkgErrors.Wrap(err, "getting credential")
	}
	if sessionKey == "" {
		return user, false, nil
	}

	session, ok := a.GetSession(sessionKey)
	if !ok {
		return user, false, nil
	}

	user, err = a.GetUser(session.Username)
	if err != nil {
		if pkgErrors.Is(err, app.ErrNotFound) {
			return user, false, nil
		}

		return user, false, pkgErrors.Wrap(err, "finding user")
	}

	return user, true, nil
}

// Auth is an authentication middleware. The resolved user is attached to
// the request context as the principal for downstream handlers.
func Auth(a *app.App, next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok, err := AuthWithSession(a, r)
		if err != nil {
			DoError(w, "authenticating with session", err, http.StatusInternalServerError)
			return
		}
		if !ok {
			RespondUnauthorized(w)
			return
		}

		ctx := context.WithUser(r.Context(), &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly is an authentication middleware that additionally requires the
// admin role
func AdminOnly(a *app.App, next http.HandlerFunc) http.HandlerFunc {
	return Auth(a, func(w http.ResponseWriter, r *http.Request) {
		user := context.User(r.Context())
		if !permissions.ManageUsers(user) {
			RespondForbidden(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}
