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
	"time"

	"github.com/google/uuid"
	"github.com/khwaab/booksales/pkg/server/store"
	"github.com/pkg/errors"
)

// AddSaleParams are the parameters for recording a sale. Price overrides
// the book's current price when non-nil.
type AddSaleParams struct {
	BookID   int
	Date     time.Time
	Quantity int
	Price    *float64
}

// AddSale records a sale. Revenue and royalty are always computed from
// quantity, price and the book's royalty rate; callers cannot set them.
func (a *App) AddSale(p AddSaleParams) (store.Sale, error) {
	if p.Quantity <= 0 {
		return store.Sale{}, ErrInvalidQuantity
	}

	book, err := a.GetBook(p.BookID)
	if err != nil {
		return store.Sale{}, err
	}

	price := book.Price
	if p.Price != nil {
		if *p.Price < 0 {
			return store.Sale{}, ErrInvalidPrice
		}
		price = *p.Price
	}

	revenue := float64(p.Quantity) * price
	royalty := revenue * (book.RoyaltyPercentage / 100)

	id, err := uuid.NewRandom()
	if err != nil {
		return store.Sale{}, errors.Wrap(err, "generating sale id")
	}

	date := p.Date.UTC()
	sale := store.Sale{
		ID:       id.String(),
		Date:     time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		BookID:   p.BookID,
		Quantity: p.Quantity,
		Price:    price,
		Revenue:  revenue,
		Royalty:  royalty,
	}

	if err := a.Store.AddSale(sale); err != nil {
		return store.Sale{}, errors.Wrap(err, "adding sale")
	}

	return sale, nil
}

// DeleteSale removes the sale with the given stable identifier
func (a *App) DeleteSale(id string) error {
	ok, err := a.Store.DeleteSale(id)
	if err != nil {
		return errors.Wrap(err, "deleting sale")
	}
	if !ok {
		return ErrNotFound
	}

	return nil
}

// RefreshRoyalties reconciles the sales table with its invariants: every
// sale gets a stable identifier if it lacks one, and every sale whose book
// still exists gets its royalty recomputed from the book's current rate.
// Sales referencing deleted books are left untouched. The table is only
// rewritten when something actually changed.
func (a *App) RefreshRoyalties() error {
	sales, err := a.Store.Sales()
	if err != nil {
		return errors.Wrap(err, "loading sales")
	}
	books, err := a.Store.Books()
	if err != nil {
		return errors.Wrap(err, "loading books")
	}

	rateByID := make(map[int]float64, len(books))
	for _, b := range books {
		rateByID[b.ID] = b.RoyaltyPercentage
	}

	changed := false
	for i := range sales {
		if sales[i].ID == "" {
			id, err := uuid.NewRandom()
			if err != nil {
				return errors.Wrap(err, "generating sale id")
			}
			sales[i].ID = id.String()
			changed = true
		}

		rate, ok := rateByID[sales[i].BookID]
		if !ok {
			continue
		}

		royalty := sales[i].Revenue * (rate / 100)
		if sales[i].Royalty != royalty {
			sales[i].Royalty = royalty
			changed = true
		}
	}

	if !changed {
		return nil
	}

	return errors.Wrap(a.Store.SaveSales(sales), "saving sales")
}
