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

package store

import "time"

const (
	// RoleAdmin is the role of an administrator account
	RoleAdmin = "admin"
	// RoleClient is the role of a client account
	RoleClient = "client"
)

// DateLayout is the calendar-day format used across all persisted tables
const DateLayout = "2006-01-02"

// DefaultRoyaltyPercentage is the royalty rate assumed when a book does not
// carry one
const DefaultRoyaltyPercentage = 10.0

// Genres is the fixed set of book categories
var Genres = []string{
	"Technology",
	"Business",
	"Marketing",
	"Science",
	"Fiction",
	"Non-Fiction",
	"Self-Help",
	"Other",
}

// ValidGenre checks if the given genre belongs to the fixed category set
func ValidGenre(genre string) bool {
	for _, g := range Genres {
		if g == genre {
			return true
		}
	}

	return false
}

// Book is a row of the books table
type Book struct {
	ID                int     `json:"id"`
	Title             string  `json:"title"`
	Author            string  `json:"author"`
	Genre             string  `json:"genre"`
	Owner             string  `json:"owner"`
	ISBN              string  `json:"isbn"`
	RoyaltyPercentage float64 `json:"royalty_percentage"`
	Price             float64 `json:"price"`
	PublicationDate   string  `json:"publication_date"`
}

// Sale is a row of the sales table. Revenue and royalty are always derived
// from quantity, price and the owning book's royalty rate; they are never
// edited independently.
type Sale struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	BookID   int       `json:"book_id"`
	Quantity int       `json:"quantity"`
	Price    float64   `json:"price"`
	Revenue  float64   `json:"revenue"`
	Royalty  float64   `json:"royalty"`
}

// User is a row of the users table. Password holds a one-way hash and must
// never be serialized outside the authentication layer.
type User struct {
	Username string `json:"username"`
	Password string `json:"-"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// BookUpdate carries the fields to overwrite on a book. Nil fields are left
// untouched.
type BookUpdate struct {
	Title             *string
	Author            *string
	Genre             *string
	Owner             *string
	ISBN              *string
	RoyaltyPercentage *float64
	Price             *float64
	PublicationDate   *string
}

// UserUpdate carries the fields to overwrite on a user. Nil fields are left
// untouched.
type UserUpdate struct {
	Password *string
	Role     *string
	Name     *string
	Email    *string
}
