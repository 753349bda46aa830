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

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/khwaab/booksales/pkg/server/app"
	mw "github.com/khwaab/booksales/pkg/server/middleware"
)

// Route represents a single route
type Route struct {
	Method    string
	Pattern   string
	Handler   http.HandlerFunc
	RateLimit bool
}

// RouteConfig is the configuration for routes
type RouteConfig struct {
	Controllers *Controllers
	WebRoutes   []Route
	APIRoutes   []Route
}

// NewWebRoutes returns the top-level routes
func NewWebRoutes(a *app.App, c *Controllers) []Route {
	return []Route{
		{"POST", "/login", c.Users.Login, true},
		{"POST", "/logout", c.Users.Logout, true},
		{"GET", "/health", c.Health.Index, true},
	}
}

// NewAPIRoutes returns the api routes. Read endpoints are behind plain
// authentication and scope themselves to the principal; write endpoints and
// account management require the admin role.
func NewAPIRoutes(a *app.App, c *Controllers) []Route {
	return []Route{
		{"GET", "/v1/me", mw.Auth(a, c.Users.Me), true},

		{"GET", "/v1/books", mw.Auth(a, c.Books.Index), true},
		{"GET", "/v1/books/{bookID}", mw.Auth(a, c.Books.Show), true},
		{"POST", "/v1/books", mw.AdminOnly(a, c.Books.Create), true},
		{"PATCH", "/v1/books/{bookID}", mw.AdminOnly(a, c.Books.Update), true},
		{"DELETE", "/v1/books/{bookID}", mw.AdminOnly(a, c.Books.Delete), true},

		{"GET", "/v1/sales", mw.Auth(a, c.Sales.Index), true},
		{"POST", "/v1/sales", mw.AdminOnly(a, c.Sales.Create), true},
		{"DELETE", "/v1/sales/{saleID}", mw.AdminOnly(a, c.Sales.Delete), true},

		{"GET", "/v1/analytics/summary", mw.Auth(a, c.Analytics.Summary), true},
		{"GET", "/v1/analytics/trend", mw.Auth(a, c.Analytics.Trend), true},
		{"GET", "/v1/analytics/top-books", mw.Auth(a, c.Analytics.TopBooks), true},
		{"GET", "/v1/analytics/genres", mw.Auth(a, c.Analytics.Genres), true},
		{"GET", "/v1/analytics/royalties", mw.Auth(a, c.Analytics.Royalties), true},

		{"GET", "/v1/users", mw.AdminOnly(a, c.Admin.Users), true},
		{"POST", "/v1/users", mw.AdminOnly(a, c.Admin.CreateUser), true},
		{"PATCH", "/v1/users/{username}", mw.AdminOnly(a, c.Admin.UpdateUser), true},
		{"DELETE", "/v1/users/{username}", mw.AdminOnly(a, c.Admin.DeleteUser), true},

		{"GET", "/v1/export/{entity}", mw.AdminOnly(a, c.Admin.Export), true},
		{"POST", "/v1/import/{entity}", mw.AdminOnly(a, c.Admin.Import), true},
		{"DELETE", "/v1/data/{entity}", mw.AdminOnly(a, c.Admin.ClearData), true},
	}
}

func registerRoutes(router *mux.Router, wrapper mw.Middleware, app *app.App, routes []Route) {
	for _, route := range routes {
		wrappedHandler := wrapper(route.Handler, app, route.RateLimit)

		router.
			Handle(route.Pattern, wrappedHandler).
			Methods(route.Method)
	}
}

// NewRouter creates and returns a new router
func NewRouter(app *app.App, rc RouteConfig) (http.Handler, error) {
	if err := app.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating the app parameters")
	}

	router := mux.NewRouter().StrictSlash(true)

	webRouter := router.PathPrefix("/").Subrouter()
	apiRouter := router.PathPrefix("/api").Subrouter()
	registerRoutes(webRouter, mw.APIMw, app, rc.WebRoutes)
	registerRoutes(apiRouter, mw.APIMw, app, rc.APIRoutes)

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	router.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("User-agent: *\nDisallow: /"))
	})

	return mw.Global(router), nil
}
