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
	"io"

	"github.com/khwaab/booksales/pkg/server/store"
	"github.com/pkg/errors"
)

// ImportBooks validates that the uploaded table carries the required column
// set, then replaces the books store wholesale. There is no row-level merge.
func (a *App) ImportBooks(r io.Reader) error {
	books, err := store.ParseBooksCSV(r)
	if err != nil {
		return err
	}

	if err := a.Store.SaveBooks(books); err != nil {
		return errors.Wrap(err, "replacing books")
	}

	// royalty rates may have changed with the new table
	return a.RefreshRoyalties()
}

// ImportSales validates that the uploaded table carries the required column
// set, then replaces the sales store wholesale. Rows without a stable
// identifier are assigned one and royalties are reconciled afterwards.
func (a *App) ImportSales(r io.Reader) error {
	sales, err := store.ParseSalesCSV(r)
	if err != nil {
		return err
	}

	if err := a.Store.SaveSales(sales); err != nil {
		return errors.Wrap(err, "replacing sales")
	}

	return a.RefreshRoyalties()
}

// ExportBooks writes the current books table as CSV
func (a *App) ExportBooks(w io.Writer) error {
	books, err := a.Store.Books()
	if err != nil {
		return errors.Wrap(err, "loading books")
	}

	return store.WriteBooksCSV(w, books)
}

// ExportSales writes the current sales table as CSV
func (a *App) ExportSales(w io.Writer) error {
	sales, err := a.Store.Sales()
	if err != nil {
		return errors.Wrap(err, "loading sales")
	}

	return store.WriteSalesCSV(w, sales)
}
