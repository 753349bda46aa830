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

import (
	"testing"

	"github.com/khwaab/booksales/pkg/assert"
	"github.com/khwaab/booksales/pkg/clock"
	"github.com/pkg/errors"
)

func TestInitializeDefaults(t *testing.T) {
	s := New(t.TempDir())
	clk := clock.NewMock()

	if err := s.InitializeDefaults(clk); err != nil {
		t.Fatal(errors.Wrap(err, "initializing defaults"))
	}

	books, err := s.Books()
	if err != nil {
		t.Fatal(errors.Wrap(err, "loading books"))
	}
	users, err := s.Users()
	if err != nil {
		t.Fatal(errors.Wrap(err, "loading users"))
	}
	sales, err := s.Sales()
	if err != nil {
		t.Fatal(errors.Wrap(err, "loading sales"))
	}

	assert.Equal(t, len(books), 5, "seed book count mismatch")
	assert.Equal(t, len(users), 3, "seed user count mismatch")
	assert.Equal(t, len(sales), seedSaleCount, "seed sale count mismatch")

	assert.Equal(t, users[0].Username, "admin", "admin user missing")
	assert.Equal(t, users[0].Role, RoleAdmin, "admin role mismatch")
	assert.NotEqual(t, users[0].Password, "admin123", "password must not be stored in the clear")

	bookByID := map[int]Book{}
	for _, b := range books {
		bookByID[b.ID] = b
	}

	today := clk.Now().UTC()
	for _, sl := range sales {
		b, ok := bookByID[sl.BookID]
		if !ok {
			t.Fatalf("sale references unknown book %d", sl.BookID)
		}

		if sl.Quantity < 1 || sl.Quantity > 10 {
			t.Errorf("quantity %d out of range", sl.Quantity)
		}
		if sl.ID == "" {
			t.Error("sale id should be assigned")
		}
		if sl.Date.After(today) {
			t.Errorf("sale date %s in the future", sl.Date)
		}
		if today.Sub(sl.Date).Hours() > 366*24 {
			t.Errorf("sale date %s older than a year", sl.Date)
		}

		assert.Equal(t, sl.Revenue, float64(sl.Quantity)*sl.Price, "revenue formula violated")
		assert.Equal(t, sl.Royalty, sl.Revenue*(b.RoyaltyPercentage/100), "royalty formula violated")
	}
}

func TestInitializeDefaultsIsIdempotent(t *testing.T) {
	s := New(t.TempDir())
	clk := clock.NewMock()

	if err := s.InitializeDefaults(clk); err != nil {
		t.Fatal(errors.Wrap(err, "initializing defaults"))
	}

	// mutate, then initialize again: existing tables must be left alone
	if err := s.ClearSales(); err != nil {
		t.Fatal(errors.Wrap(err, "clearing sales"))
	}
	if _, err := s.DeleteBook(1); err != nil {
		t.Fatal(errors.Wrap(err, "deleting book"))
	}

	if err := s.InitializeDefaults(clk); err != nil {
		t.Fatal(errors.Wrap(err, "re-initializing defaults"))
	}

	books, err := s.Books()
	if err != nil {
		t.Fatal(errors.Wrap(err, "loading books"))
	}
	sales, err := s.Sales()
	if err != nil {
		t.Fatal(errors.Wrap(err, "loading sales"))
	}

	assert.Equal(t, len(books), 4, "books should not be reseeded")
	assert.Equal(t, len(sales), 0, "sales should not be reseeded")
}
