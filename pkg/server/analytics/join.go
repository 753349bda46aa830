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

package analytics

import (
	"github.com/pkg/errors"

	"github.com/khwaab/booksales/pkg/server/store"
)

// UserBooks returns the books visible to the principal. Admins see the
// whole catalog; clients see books whose owner matches their username.
func (s *Service) UserBooks(principal store.User) ([]store.Book, error) {
	books, err := s.Store.Books()
	if err != nil {
		return nil, errors.Wrap(err, "loading books")
	}

	if principal.Role == store.RoleAdmin {
		return books, nil
	}

	ret := []store.Book{}
	for _, b := range books {
		if b.Owner == principal.Username {
			ret = append(ret, b)
		}
	}

	return ret, nil
}

// UserSales inner-joins the sales log to the principal's visible books.
// Sales whose book_id resolves to no current book are dropped, so a cascade
// delete and a stale import row look the same from here.
func (s *Service) UserSales(principal store.User) ([]SaleView, error) {
	books, err := s.UserBooks(principal)
	if err != nil {
		return nil, err
	}

	byID := map[int]store.Book{}
	for _, b := range books {
		byID[b.ID] = b
	}

	sales, err := s.Store.Sales()
	if err != nil {
		return nil, errors.Wrap(err, "loading sales")
	}

	ret := []SaleView{}
	for _, sale := range sales {
		book, ok := byID[sale.BookID]
		if !ok {
			continue
		}

		ret = append(ret, SaleView{Sale: sale, Title: book.Title, Owner: book.Owner})
	}

	return ret, nil
}

// WindowSales returns the principal's joined sales restricted to the given
// window. Cutoffs are calendar days: a window of n days keeps sales dated
// strictly after today minus n days, so today's sales always count.
func (s *Service) WindowSales(principal store.User, w Window) ([]SaleView, error) {
	sales, err := s.UserSales(principal)
	if err != nil {
		return nil, err
	}

	days, bounded := w.Days()
	if !bounded {
		return sales, nil
	}

	cutoff := s.today().AddDate(0, 0, -days)

	ret := []SaleView{}
	for _, sale := range sales {
		if sale.Date.After(cutoff) {
			ret = append(ret, sale)
		}
	}

	return ret, nil
}
