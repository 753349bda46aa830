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
)

// CreateBookParams are the parameters for creating a book
type CreateBookParams struct {
	Title             string
	Author            string
	Genre             string
	Owner             string
	ISBN              string
	RoyaltyPercentage float64
	Price             float64
	PublicationDate   string
}

func (a *App) validateOwner(owner string) error {
	clients, err := a.Clients()
	if err != nil {
		return err
	}

	for _, c := range clients {
		if c.Username == owner {
			return nil
		}
	}

	return ErrInvalidOwner
}

// CreateBook creates a book and returns it with its assigned identifier
func (a *App) CreateBook(p CreateBookParams) (store.Book, error) {
	if p.Title == "" {
		return store.Book{}, ErrTitleRequired
	}
	if !store.ValidGenre(p.Genre) {
		return store.Book{}, ErrInvalidGenre
	}
	if p.Price < 0 {
		return store.Book{}, ErrInvalidPrice
	}
	if p.RoyaltyPercentage < 0 || p.RoyaltyPercentage > 100 {
		return store.Book{}, ErrInvalidRoyaltyRate
	}
	if err := a.validateOwner(p.Owner); err != nil {
		return store.Book{}, err
	}

	book := store.Book{
		Title:             p.Title,
		Author:            p.Author,
		Genre:             p.Genre,
		Owner:             p.Owner,
		ISBN:              p.ISBN,
		RoyaltyPercentage: p.RoyaltyPercentage,
		Price:             p.Price,
		PublicationDate:   p.PublicationDate,
	}

	id, err := a.Store.AddBook(book)
	if err != nil {
		return store.Book{}, errors.Wrap(err, "adding book")
	}

	book.ID = id

	return book, nil
}

// UpdateBook overwrites the provided fields of the given book. When the
// royalty rate changes, every sale of the book has its royalty recomputed
// so that derived values never drift from the formula.
func (a *App) UpdateBook(id int, fields store.BookUpdate) error {
	if fields.Genre != nil && !store.ValidGenre(*fields.Genre) {
		return ErrInvalidGenre
	}
	if fields.Price != nil && *fields.Price < 0 {
		return ErrInvalidPrice
	}
	if fields.RoyaltyPercentage != nil && (*fields.RoyaltyPercentage < 0 || *fields.RoyaltyPercentage > 100) {
		return ErrInvalidRoyaltyRate
	}
	if fields.Owner != nil {
		if err := a.validateOwner(*fields.Owner); err != nil {
			return err
		}
	}

	ok, err := a.Store.UpdateBook(id, fields)
	if err != nil {
		return errors.Wrap(err, "updating book")
	}
	if !ok {
		return ErrNotFound
	}

	if fields.RoyaltyPercentage != nil {
		if err := a.RefreshRoyalties(); err != nil {
			return errors.Wrap(err, "refreshing royalties")
		}
	}

	return nil
}

// DeleteBook removes the given book and every sale referencing it
func (a *App) DeleteBook(id int) error {
	ok, err := a.Store.DeleteBook(id)
	if err != nil {
		return errors.Wrap(err, "deleting book")
	}
	if !ok {
		return ErrNotFound
	}

	return nil
}

// GetBook finds a book by id
func (a *App) GetBook(id int) (store.Book, error) {
	books, err := a.Store.Books()
	if err != nil {
		return store.Book{}, errors.Wrap(err, "loading books")
	}

	for _, b := range books {
		if b.ID == id {
			return b, nil
		}
	}

	return store.Book{}, ErrNotFound
}
