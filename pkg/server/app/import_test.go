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
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/khwaab/booksales/pkg/assert"
	"github.com/khwaab/booksales/pkg/server/store"
)

func TestImportBooks(t *testing.T) {
	t.Run("replaces the table wholesale", func(t *testing.T) {
		a := initApp(t)
		setupClient(t, a, "client1")
		if _, err := a.CreateBook(CreateBookParams{Title: "Stale", Genre: "Fiction", Owner: "client1", Price: 5}); err != nil {
			t.Fatal(errors.Wrap(err, "creating book"))
		}

		csv := `id,title,author,genre,owner,price,publication_date
1,Imported One,Some Author,Fiction,client1,20,2020-01-01
2,Imported Two,Other Author,Science,client1,10,2021-05-01
`
		if err := a.ImportBooks(strings.NewReader(csv)); err != nil {
			t.Fatal(errors.Wrap(err, "importing books"))
		}

		books, err := a.Store.Books()
		if err != nil {
			t.Fatal(errors.Wrap(err, "loading books"))
		}

		assert.Equal(t, len(books), 2, "book count mismatch")
		assert.Equal(t, books[0].Title, "Imported One", "title mismatch")
		assert.Equal(t, books[0].RoyaltyPercentage, store.DefaultRoyaltyPercentage, "royalty rate did not default")
	})

	t.Run("rejects a table missing required columns", func(t *testing.T) {
		a := initApp(t)

		csv := `id,title,author
1,Imported One,Some Author
`
		err := a.ImportBooks(strings.NewReader(csv))

		assert.Equal(t, errors.Cause(err), store.ErrMissingColumns, "error mismatch")

		books, err := a.Store.Books()
		if err != nil {
			t.Fatal(errors.Wrap(err, "loading books"))
		}
		assert.Equal(t, len(books), 0, "rejected import mutated the table")
	})
}

func TestImportSales(t *testing.T) {
	a := initApp(t)
	book := setupBook(t, a)

	// no id column and a drifted royalty; the import reconciles both
	csv := `date,book_id,quantity,price,revenue
2024-06-01,1,2,20,40
2024-06-02,42,1,10,10
`
	if err := a.ImportSales(strings.NewReader(csv)); err != nil {
		t.Fatal(errors.Wrap(err, "importing sales"))
	}

	sales, err := a.Store.Sales()
	if err != nil {
		t.Fatal(errors.Wrap(err, "loading sales"))
	}

	assert.Equal(t, len(sales), 2, "sale count mismatch")
	assert.NotEqual(t, sales[0].ID, "", "sale id was not assigned")
	assert.Equal(t, sales[0].BookID, book.ID, "book id mismatch")
	assert.Equal(t, sales[0].Royalty, 4.0, "royalty was not reconciled")
	assert.Equal(t, sales[1].Royalty, 0.0, "orphan royalty mismatch")
}

func TestExportBooks(t *testing.T) {
	a := initApp(t)
	setupBook(t, a)

	var buf bytes.Buffer
	if err := a.ExportBooks(&buf); err != nil {
		t.Fatal(errors.Wrap(err, "exporting books"))
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, len(lines), 2, "line count mismatch")
	assert.Equal(t, lines[0], "id,title,author,genre,owner,isbn,royalty_percentage,price,publication_date", "header mismatch")
}

func TestExportSales(t *testing.T) {
	a := initApp(t)
	book := setupBook(t, a)
	if _, err := a.AddSale(AddSaleParams{BookID: book.ID, Date: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), Quantity: 2}); err != nil {
		t.Fatal(errors.Wrap(err, "adding sale"))
	}

	var buf bytes.Buffer
	if err := a.ExportSales(&buf); err != nil {
		t.Fatal(errors.Wrap(err, "exporting sales"))
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, len(lines), 2, "line count mismatch")
	assert.Equal(t, lines[0], "id,date,book_id,quantity,price,revenue,royalty", "header mismatch")
}
