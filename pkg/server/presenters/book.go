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

// Book is a result of PresentBook
type Book struct {
	ID                int     `json:"id"`
	Title             string  `json:"title"`
	Author            string  `json:"author"`
	Genre             string  `json:"genre"`
	Owner             string  `json:"owner"`
	ISBN              string  `json:"isbn,omitempty"`
	RoyaltyPercentage float64 `json:"royalty_percentage"`
	Price             float64 `json:"price"`
	PublicationDate   string  `json:"publication_date"`
}

// PresentBook presents a book
func PresentBook(book store.Book) Book {
	return Book{
		ID:                book.ID,
		Title:             book.Title,
		Author:            book.Author,
		Genre:             book.Genre,
		Owner:             book.Owner,
		ISBN:              book.ISBN,
		RoyaltyPercentage: book.RoyaltyPercentage,
		Price:             book.Price,
		PublicationDate:   book.PublicationDate,
	}
}

// PresentBooks presents books
func PresentBooks(books []store.Book) []Book {
	ret := []Book{}

	for _, book := range books {
		p := PresentBook(book)
		ret = append(ret, p)
	}

	return ret
}
