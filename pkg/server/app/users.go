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

package app

import (
	"github.com/khwaab/booksales/pkg/server/store"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

func validRole(role string) bool {
	return role == store.RoleAdmin || role == store.RoleClient
}

// CreateUserParams are the parameters for creating a user
type CreateUserParams struct {
	Username string
	Password string
	Role     string
	Name     string
	Email    string
}

// CreateUser creates a user with a bcrypt password hash
func (a *App) CreateUser(p CreateUserParams) (store.User, error) {
	if p.Username == "" {
		return store.User{}, ErrUsernameRequired
	}
	if len(p.Password) < 8 {
		return store.User{}, ErrPasswordTooShort
	}
	if !validRole(p.Role) {
		return store.User{}, ErrInvalidRole
	}

	users, err := a.Store.Users()
	if err != nil {
		return store.User{}, errors.Wrap(err, "loading users")
	}
	for _, u := range users {
		if u.Username == p.Username {
			return store.User{}, ErrDuplicateUsername
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return store.User{}, errors.Wrap(err, "hashing password")
	}

	user := store.User{
		Username: p.Username,
		Password: string(hashed),
		Role:     p.Role,
		Name:     p.Name,
		Email:    p.Email,
	}
	if err := a.Store.AddUser(user); err != nil {
		return store.User{}, errors.Wrap(err, "saving user")
	}

	return user, nil
}

// UpdateUserParams are the parameters for updating a user. Nil fields are
// left untouched.
type UpdateUserParams struct {
	Password *string
	Role     *string
	Name     *string
	Email    *string
}

// UpdateUser overwrites the provided fields of the given user
func (a *App) UpdateUser(username string, p UpdateUserParams) error {
	fields := store.UserUpdate{
		Name:  p.Name,
		Email: p.Email,
	}

	if p.Role != nil {
		if !validRole(*p.Role) {
			return ErrInvalidRole
		}
		fields.Role = p.Role
	}

	if p.Password != nil {
		if len(*p.Password) < 8 {
			return ErrPasswordTooShort
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(*p.Password), bcrypt.DefaultCost)
		if err != nil {
			return errors.Wrap(err, "hashing password")
		}
		hashedStr := string(hashed)
		fields.Password = &hashedStr
	}

	ok, err := a.Store.UpdateUser(username, fields)
	if err != nil {
		return errors.Wrap(err, "updating user")
	}
	if !ok {
		return ErrNotFound
	}

	return nil
}

// RemoveUser removes the given user and invalidates its sessions
func (a *App) RemoveUser(username string) error {
	ok, err := a.Store.DeleteUser(username)
	if err != nil {
		return errors.Wrap(err, "deleting user")
	}
	if !ok {
		return ErrNotFound
	}

	a.DeleteUserSessions(username)

	return nil
}

// GetUser finds a user by username
func (a *App) GetUser(username string) (store.User, error) {
	users, err := a.Store.Users()
	if err != nil {
		return store.User{}, errors.Wrap(err, "loading users")
	}

	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}

	return store.User{}, ErrNotFound
}

// Clients returns all users with the client role
func (a *App) Clients() ([]store.User, error) {
	users, err := a.Store.Users()
	if err != nil {
		return nil, errors.Wrap(err, "loading users")
	}

	clients := []store.User{}
	for _, u := range users {
		if u.Role == store.RoleClient {
			clients = append(clients, u)
		}
	}

	return clients, nil
}

// Authenticate authenticates a user
func (a *App) Authenticate(username, password string) (*store.User, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	user, err := a.GetUser(username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrLoginInvalid
		}

		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrLoginInvalid
	}

	return &user, nil
}
