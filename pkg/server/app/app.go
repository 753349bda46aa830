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

// Package app implements the business operations of the system on top of
// the record store: account management, book and sale mutations, sessions,
// and table import/export.
package app

import (
	"sync"

	"github.com/khwaab/booksales/pkg/clock"
	"github.com/khwaab/booksales/pkg/server/store"
	"github.com/pkg/errors"
)

var (
	// ErrEmptyStore is an error for missing store in the app configuration
	ErrEmptyStore = errors.New("No store was provided")
	// ErrEmptyClock is an error for missing clock in the app configuration
	ErrEmptyClock = errors.New("No clock was provided")

	// ErrNotFound is an error for a record that does not exist
	ErrNotFound = errors.New("not found")
	// ErrLoginInvalid is an error for invalid credentials
	ErrLoginInvalid = errors.New("invalid login")
	// ErrUsernameRequired is an error for a missing username
	ErrUsernameRequired = errors.New("username is required")
	// ErrPasswordRequired is an error for a missing password
	ErrPasswordRequired = errors.New("password is required")
	// ErrPasswordTooShort is an error for a password that is too short
	ErrPasswordTooShort = errors.New("password should be longer than 8 characters")
	// ErrDuplicateUsername is an error for a username that is already taken
	ErrDuplicateUsername = errors.New("username is already taken")
	// ErrInvalidRole is an error for a role outside the admin/client set
	ErrInvalidRole = errors.New("invalid role")
	// ErrTitleRequired is an error for a book without a title
	ErrTitleRequired = errors.New("title is required")
	// ErrInvalidGenre is an error for a genre outside the fixed category set
	ErrInvalidGenre = errors.New("invalid genre")
	// ErrInvalidPrice is an error for a negative price
	ErrInvalidPrice = errors.New("price must not be negative")
	// ErrInvalidRoyaltyRate is an error for a royalty percentage outside [0,100]
	ErrInvalidRoyaltyRate = errors.New("royalty percentage must be between 0 and 100")
	// ErrInvalidOwner is an error for a book owner that is not a client account
	ErrInvalidOwner = errors.New("owner must be an existing client")
	// ErrInvalidQuantity is an error for a non-positive sale quantity
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// App is an application context
type App struct {
	Store *store.Store
	Clock clock.Clock

	sessionMu sync.Mutex
	sessions  map[string]Session
}

// NewApp returns an app backed by the given store and clock
func NewApp(s *store.Store, clk clock.Clock) *App {
	return &App{
		Store:    s,
		Clock:    clk,
		sessions: map[string]Session{},
	}
}

// Validate validates the app configuration
func (a *App) Validate() error {
	if a.Store == nil {
		return ErrEmptyStore
	}
	if a.Clock == nil {
		return ErrEmptyClock
	}

	return nil
}

// Bootstrap prepares the store for serving: it seeds absent tables with
// defaults and reconciles sale rows whose derived values or identifiers are
// missing or stale.
func (a *App) Bootstrap() error {
	if err := a.Store.InitializeDefaults(a.Clock); err != nil {
		return errors.Wrap(err, "initializing defaults")
	}

	if err := a.RefreshRoyalties(); err != nil {
		return errors.Wrap(err, "refreshing royalties")
	}

	return nil
}
