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

package permissions

import (
	"github.com/khwaab/booksales/pkg/server/store"
)

// ViewBook checks if the given user can view the given book. Access derives
// from the role, never from the username: admins see everything, clients see
// books they own.
func ViewBook(user *store.User, book store.Book) bool {
	if user == nil {
		return false
	}
	if user.Role == store.RoleAdmin {
		return true
	}

	return book.Owner == user.Username
}

// ViewSale checks if the given user can view a sale of the given book
func ViewSale(user *store.User, book store.Book) bool {
	return ViewBook(user, book)
}

// ManageUsers checks if the given user can administer user accounts and
// bulk data
func ManageUsers(user *store.User) bool {
	return user != nil && user.Role == store.RoleAdmin
}
