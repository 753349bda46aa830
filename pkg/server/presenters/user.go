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

package presenters

import (
	"github.com/khwaab/booksales/pkg/server/store"
)

// User is a result of PresentUser. It never carries the password hash.
type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// PresentUser presents a user
func PresentUser(user store.User) User {
	return User{
		Username: user.Username,
		Role:     user.Role,
		Name:     user.Name,
		Email:    user.Email,
	}
}

// PresentUsers presents users
func PresentUsers(users []store.User) []User {
	ret := []User{}

	for _, user := range users {
		p := PresentUser(user)
		ret = append(ret, p)
	}

	return ret
}
