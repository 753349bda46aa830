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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/khwaab/booksales/pkg/assert"
	"github.com/pkg/errors"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()

	d, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		t.Fatal(errors.Wrap(err, "parsing date"))
	}

	return d
}

func TestMissingFilesAreEmptyTables(t *testing.T) {
	s := New(t.TempDir())

	books, err := s.Books()
	if err != nil {
		t.Fatal(errors.Wrap(err, "loading books"))
	}
	sales, err := s.Sales()
	if err != nil {
		t.Fatal(errors.Wrap(err, "loading sales"))
	}
	users, err := s.Users()
	if err != nil {
		t.Fatal(errors.Wrap(err, "loading users"))
	}

	assert.Equal(t, len(books), 0, "books should be empty")
	assert.Equal(t, len(sales), 0, "sales should be empty")
	assert.Equal(t, len(users), 0, "users should be empty")
}

func TestAddBookAssignsIdentifiers(t *testing.T) {
	testCases := []struct {
		existingIDs []int
		expectedID  int
	}{
		{existingIDs: []int{}, expectedID: 1},
		{existingIDs: []int{1, 2, 3}, expectedID: 4},
		{existingIDs: []int{7, 2}, expectedID: 8},
	}

	for idx, tc := range testCases {
		s := New(t.TempDir())

		existing := []Book{}
		for _, id := range tc.existingIDs {
			existing = append(existing, Book{ID: id, Title: "existing", Genre: "Other", Price: 9.99})
		}
		if err := s.SaveBooks(existing); err != nil {
			t.Fatal(errors.Wrapf(err, "saving books for case %d", idx))
		}

		got, err := s.AddBook(Book{Title: "new book", Genre: "Fiction", Owner: "client1", Price: 19.99, RoyaltyPercentage: 10})
		if err != nil {
			t.Fatal(errors.Wrapf(err, "adding book for case %d", idx))
		}

		assert.Equal(t, got, tc.expectedID, "assigned id mismatch")
	}
}

func TestUpdateBook(t *testing.T) {
	s := New(t.TempDir())

	if err := s.SaveBooks([]Book{
		{ID: 1, Title: "Original", Author: "A", Genre: "Fiction", Owner: "client1", RoyaltyPercentage: 10, Price: 10, PublicationDate: "2020-01-01"},
	}); err != nil {
		t.Fatal(errors.Wrap(err, "saving books"))
	}

	title := "Updated"
	rate := 12.5
	ok, err := s.UpdateBook(1, BookUpdate{Title: &title, RoyaltyPercentage: &rate})
	if err != nil {
		t.Fatal(errors.Wrap(err, "updating book"))
	}
	assert.Equal(t, ok, true, "update should succeed")

	books, err := s.Books()
	if err != nil {
		t.Fatal(errors.Wrap(err, "loading books"))
	}
	assert.Equal(t, books[0].Title, "Updated", "title should be overwritten")
	assert.Equal(t, books[0].RoyaltyPercentage, 12.5, "royalty rate should be overwritten")
	assert.Equal(t, books[0].Author, "A", "untouched field should survive")
	assert.Equal(t, books[0].Price, 10.0, "untouched field should survive")

	ok, err = s.UpdateBook(42, BookUpdate{Title: &title})
	if err != nil {
		t.Fatal(errors.Wrap(err, "updating missing book"))
	}
	assert.Equal(t, ok, false, "updating an unknown id should report false")
}

func TestDeleteBookCascades(t *testing.T) {
	s := New(t.TempDir())

	if err := s.SaveBooks([]Book{
		{ID: 1, Title: "Keep", Genre: "Fiction", Owner: "client1", Price: 10},
		{ID: 2, Title: "Drop", Genre: "Fiction", Owner: "client1", Price: 10},
	}); err != nil {
		t.Fatal(errors.Wrap(err, "saving books"))
	}
	if err := s.SaveSales([]Sale{
		{ID: "s1", Date: mustDate(t, "2024-06-01"), BookID: 1, Quantity: 1, Price: 10, Revenue: 10},
		{ID: "s2", Date: mustDate(t, "2024-06-02"), BookID: 2, Quantity: 2, Price: 10, Revenue: 20},
		{ID: "s3", Date: mustDate(t, "2024-06-03"), BookID: 2, Quantity: 3, Price: 10, Revenue: 30},
	}); err != nil {
		t.Fatal(errors.Wrap(err, "saving sales"))
	}

	ok, err := s.DeleteBook(2)
	if err != nil {
		t.Fatal(errors.Wrap(err, "deleting book"))
	}
	assert.Equal(t, ok, true, "delete should succeed")

	books, err := s.Books()
	if err != nil {
		t.Fatal(errors.Wrap(err, "loading books"))
	}
	sales, err := s.Sales()
	if err != nil {
		t.Fatal(errors.Wrap(err, "loading sales"))
	}

	assert.Equal(t, len(books), 1, "book count mismatch")
	assert.Equal(t, books[0].ID, 1, "remaining book mismatch")
	assert.Equal(t, len(sales), 1, "sales referencing the book should be removed")
	assert.Equal(t, sales[0].ID, "s1", "remaining sale mismatch")

	ok, err = s.DeleteBook(42)
	if err != nil {
		t.Fatal(errors.Wrap(err, "deleting missing book"))
	}
	assert.Equal(t, ok, false, "deleting an unknown id should report false")
}

func TestDeleteSaleByStableID(t *testing.T) {
	s := New(t.TempDir())

	if err := s.SaveSales([]Sale{
		{ID: "s1", Date: mustDate(t, "2024-06-01"), BookID: 1, Quantity: 1, Price: 10, Revenue: 10},
		{ID: "s2", Date: mustDate(t, "2024-06-02"), BookID: 1, Quantity: 2, Price: 10, Revenue: 20},
	}); err != nil {
		t.Fatal(errors.Wrap(err, "saving sales"))
	}

	ok, err := s.DeleteSale("s1")
	if err != nil {
		t.Fatal(errors.Wrap(err, "deleting sale"))
	}
	assert.Equal(t, ok, true, "delete should succeed")

	sales, err := s.Sales()
	if err != nil {
		t.Fatal(errors.Wrap(err, "loading sales"))
	}
	assert.Equal(t, len(sales), 1, "sale count mismatch")
	assert.Equal(t, sales[0].ID, "s2", "remaining sale mismatch")

	ok, err = s.DeleteSale("nonexistent")
	if err != nil {
		t.Fatal(errors.Wrap(err, "deleting missing sale"))
	}
	assert.Equal(t, ok, false, "deleting an unknown id should report false")
}

func TestLoadBooksDefaultsOptionalColumns(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	// a table without the optional isbn and royalty_percentage columns
	content := "id,title,author,genre,owner,price,publication_date\n" +
		"1,Some Book,An Author,Fiction,client1,12.5,2021-05-01\n"
	if err := os.WriteFile(filepath.Join(dir, booksFile), []byte(content), 0644); err != nil {
		t.Fatal(errors.Wrap(err, "writing books file"))
	}

	books, err := s.Books()
	if err != nil {
		t.Fatal(errors.Wrap(err, "loading books"))
	}

	assert.Equal(t, len(books), 1, "book count mismatch")
	assert.Equal(t, books[0].ISBN, "", "isbn should default to empty")
	assert.Equal(t, books[0].RoyaltyPercentage, DefaultRoyaltyPercentage, "royalty rate should default")
}

func TestParseBooksCSVRejectsMissingColumns(t *testing.T) {
	_, err := ParseBooksCSV(strings.NewReader("id,title,author\n1,Book,Author\n"))
	assert.Equal(t, errors.Cause(err), ErrMissingColumns, "error mismatch")
}

func TestParseSalesCSVRejectsMissingColumns(t *testing.T) {
	_, err := ParseSalesCSV(strings.NewReader("date,book_id\n2024-01-01,1\n"))
	assert.Equal(t, errors.Cause(err), ErrMissingColumns, "error mismatch")
}

func TestParseSalesCSVAcceptsMissingRoyalty(t *testing.T) {
	sales, err := ParseSalesCSV(strings.NewReader("date,book_id,quantity,price,revenue\n2024-01-01,1,2,10,20\n"))
	if err != nil {
		t.Fatal(errors.Wrap(err, "parsing sales"))
	}

	assert.Equal(t, len(sales), 1, "sale count mismatch")
	assert.Equal(t, sales[0].Royalty, 0.0, "missing royalty should be zero")
	assert.Equal(t, sales[0].ID, "", "missing id should be empty")
}

func TestMalformedRowSurfacesError(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	content := "id,title,author,genre,owner,price,publication_date\n" +
		"not-a-number,Book,Author,Fiction,client1,12.5,2021-05-01\n"
	if err := os.WriteFile(filepath.Join(dir, booksFile), []byte(content), 0644); err != nil {
		t.Fatal(errors.Wrap(err, "writing books file"))
	}

	_, err := s.Books()
	if err == nil {
		t.Fatal("expected an error for a malformed row")
	}
}

func TestClearSalesLeavesHeaderOnlyTable(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	if err := s.SaveSales([]Sale{
		{ID: "s1", Date: mustDate(t, "2024-06-01"), BookID: 1, Quantity: 1, Price: 10, Revenue: 10},
	}); err != nil {
		t.Fatal(errors.Wrap(err, "saving sales"))
	}

	if err := s.ClearSales(); err != nil {
		t.Fatal(errors.Wrap(err, "clearing sales"))
	}

	sales, err := s.Sales()
	if err != nil {
		t.Fatal(errors.Wrap(err, "loading sales"))
	}
	assert.Equal(t, len(sales), 0, "sales should be empty")

	// the file must still exist so that seeding does not run again
	if _, err := os.Stat(filepath.Join(dir, salesFile)); err != nil {
		t.Fatal(errors.Wrap(err, "sales file should exist"))
	}
}
