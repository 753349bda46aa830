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

// Package store implements the record store: one CSV file per entity with
// full-table read and full-table overwrite as the only persistence
// primitives.
package store

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const (
	booksFile = "books.csv"
	salesFile = "sales.csv"
	usersFile = "users.csv"
)

// Required column sets for uploaded tables. Optional columns (isbn,
// royalty_percentage, sale id, royalty, email) may be absent.
var (
	RequiredBookColumns = []string{"id", "title", "author", "genre", "owner", "price", "publication_date"}
	RequiredSaleColumns = []string{"date", "book_id", "quantity", "price", "revenue"}
	RequiredUserColumns = []string{"username", "password", "role", "name"}
)

var (
	bookHeader = []string{"id", "title", "author", "genre", "owner", "isbn", "royalty_percentage", "price", "publication_date"}
	saleHeader = []string{"id", "date", "book_id", "quantity", "price", "revenue", "royalty"}
	userHeader = []string{"username", "password", "role", "name", "email"}
)

// Store is a durable mapping from entity type to an ordered CSV table.
//
// Every mutation is a read-modify-write cycle over the whole table. A single
// process-wide mutex serializes those cycles; the store assumes it is the
// only writer to the data directory. Two processes writing the same
// directory can still lose updates.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New returns a store rooted at the given data directory
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the data directory the store is rooted at
func (s *Store) Dir() string {
	return s.dir
}

// readTable reads the CSV table at the given path. A missing file is treated
// as an empty table, not an error.
func readTable(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading header of %s", path)
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading rows of %s", path)
	}

	return header, rows, nil
}

// writeTable overwrites the CSV table at the given path from scratch. It
// writes to a temporary file first and renames it into place so a crash
// mid-write cannot leave a truncated table behind.
func (s *Store) writeTable(name string, header []string, rows [][]string) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return errors.Wrap(err, "creating data directory")
	}

	path := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(s.dir, name+".tmp-")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing header")
	}
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing rows")
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "flushing table")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "replacing %s", name)
	}

	return nil
}

// columnIndex maps column names to their positions in the header
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}

	return idx
}

// HasColumns checks that every required column is present in the header
func HasColumns(header []string, required []string) bool {
	idx := columnIndex(header)
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return false
		}
	}

	return true
}

func field(row []string, idx map[string]int, name string) (string, bool) {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return "", false
	}

	return row[i], true
}

func parseBookRow(row []string, idx map[string]int, rowNum int) (Book, error) {
	var b Book
	var err error

	rawID, _ := field(row, idx, "id")
	b.ID, err = strconv.Atoi(rawID)
	if err != nil {
		return b, errors.Wrapf(err, "parsing id on row %d", rowNum)
	}

	b.Title, _ = field(row, idx, "title")
	b.Author, _ = field(row, idx, "author")
	b.Genre, _ = field(row, idx, "genre")
	b.Owner, _ = field(row, idx, "owner")
	b.ISBN, _ = field(row, idx, "isbn")
	b.PublicationDate, _ = field(row, idx, "publication_date")

	rawPrice, _ := field(row, idx, "price")
	b.Price, err = strconv.ParseFloat(rawPrice, 64)
	if err != nil {
		return b, errors.Wrapf(err, "parsing price on row %d", rowNum)
	}

	if raw, ok := field(row, idx, "royalty_percentage"); ok && raw != "" {
		b.RoyaltyPercentage, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return b, errors.Wrapf(err, "parsing royalty_percentage on row %d", rowNum)
		}
	} else {
		b.RoyaltyPercentage = DefaultRoyaltyPercentage
	}

	return b, nil
}

func parseSaleRow(row []string, idx map[string]int, rowNum int) (Sale, error) {
	var sl Sale
	var err error

	sl.ID, _ = field(row, idx, "id")

	rawDate, _ := field(row, idx, "date")
	sl.Date, err = time.ParseInLocation(DateLayout, rawDate, time.UTC)
	if err != nil {
		return sl, errors.Wrapf(err, "parsing date on row %d", rowNum)
	}

	rawBookID, _ := field(row, idx, "book_id")
	sl.BookID, err = strconv.Atoi(rawBookID)
	if err != nil {
		return sl, errors.Wrapf(err, "parsing book_id on row %d", rowNum)
	}

	rawQuantity, _ := field(row, idx, "quantity")
	sl.Quantity, err = strconv.Atoi(rawQuantity)
	if err != nil {
		return sl, errors.Wrapf(err, "parsing quantity on row %d", rowNum)
	}

	rawPrice, _ := field(row, idx, "price")
	sl.Price, err = strconv.ParseFloat(rawPrice, 64)
	if err != nil {
		return sl, errors.Wrapf(err, "parsing price on row %d", rowNum)
	}

	rawRevenue, _ := field(row, idx, "revenue")
	sl.Revenue, err = strconv.ParseFloat(rawRevenue, 64)
	if err != nil {
		return sl, errors.Wrapf(err, "parsing revenue on row %d", rowNum)
	}

	if raw, ok := field(row, idx, "royalty"); ok && raw != "" {
		sl.Royalty, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return sl, errors.Wrapf(err, "parsing royalty on row %d", rowNum)
		}
	}

	return sl, nil
}

func parseUserRow(row []string, idx map[string]int) User {
	var u User

	u.Username, _ = field(row, idx, "username")
	u.Password, _ = field(row, idx, "password")
	u.Role, _ = field(row, idx, "role")
	u.Name, _ = field(row, idx, "name")
	u.Email, _ = field(row, idx, "email")

	return u
}

func decodeBooks(header []string, rows [][]string) ([]Book, error) {
	books := []Book{}
	if header == nil {
		return books, nil
	}

	idx := columnIndex(header)
	for i, row := range rows {
		b, err := parseBookRow(row, idx, i+2)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}

	return books, nil
}

func decodeSales(header []string, rows [][]string) ([]Sale, error) {
	sales := []Sale{}
	if header == nil {
		return sales, nil
	}

	idx := columnIndex(header)
	for i, row := range rows {
		sl, err := parseSaleRow(row, idx, i+2)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sl)
	}

	return sales, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func encodeBooks(books []Book) [][]string {
	rows := make([][]string, 0, len(books))
	for _, b := range books {
		rows = append(rows, []string{
			strconv.Itoa(b.ID),
			b.Title,
			b.Author,
			b.Genre,
			b.Owner,
			b.ISBN,
			formatFloat(b.RoyaltyPercentage),
			formatFloat(b.Price),
			b.PublicationDate,
		})
	}

	return rows
}

func encodeSales(sales []Sale) [][]string {
	rows := make([][]string, 0, len(sales))
	for _, sl := range sales {
		rows = append(rows, []string{
			sl.ID,
			sl.Date.Format(DateLayout),
			strconv.Itoa(sl.BookID),
			strconv.Itoa(sl.Quantity),
			formatFloat(sl.Price),
			formatFloat(sl.Revenue),
			formatFloat(sl.Royalty),
		})
	}

	return rows
}

func encodeUsers(users []User) [][]string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.Username, u.Password, u.Role, u.Name, u.Email})
	}

	return rows
}

// Books loads the full books table. A missing file yields an empty table.
func (s *Store) Books() ([]Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadBooks()
}

func (s *Store) loadBooks() ([]Book, error) {
	header, rows, err := readTable(filepath.Join(s.dir, booksFile))
	if err != nil {
		return nil, err
	}

	return decodeBooks(header, rows)
}

// Sales loads the full sales table. A missing file yields an empty table.
func (s *Store) Sales() ([]Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadSales()
}

func (s *Store) loadSales() ([]Sale, error) {
	header, rows, err := readTable(filepath.Join(s.dir, salesFile))
	if err != nil {
		return nil, err
	}

	return decodeSales(header, rows)
}

// Users loads the full users table. A missing file yields an empty table.
func (s *Store) Users() ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadUsers()
}

func (s *Store) loadUsers() ([]User, error) {
	header, rows, err := readTable(filepath.Join(s.dir, usersFile))
	if err != nil {
		return nil, err
	}

	users := []User{}
	if header == nil {
		return users, nil
	}

	idx := columnIndex(header)
	for _, row := range rows {
		users = append(users, parseUserRow(row, idx))
	}

	return users, nil
}

// SaveBooks overwrites the books table from scratch
func (s *Store) SaveBooks(books []Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeTable(booksFile, bookHeader, encodeBooks(books))
}

// SaveSales overwrites the sales table from scratch
func (s *Store) SaveSales(sales []Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeTable(salesFile, saleHeader, encodeSales(sales))
}

// SaveUsers overwrites the users table from scratch
func (s *Store) SaveUsers(users []User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeTable(usersFile, userHeader, encodeUsers(users))
}

// ParseBooksCSV parses an uploaded books table, validating that the required
// column set is present before any row is decoded.
func ParseBooksCSV(r io.Reader) ([]Book, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty table")
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}
	if !HasColumns(header, RequiredBookColumns) {
		return nil, ErrMissingColumns
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading rows")
	}

	return decodeBooks(header, rows)
}

// ParseSalesCSV parses an uploaded sales table, validating that the required
// column set is present before any row is decoded.
func ParseSalesCSV(r io.Reader) ([]Sale, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty table")
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}
	if !HasColumns(header, RequiredSaleColumns) {
		return nil, ErrMissingColumns
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading rows")
	}

	return decodeSales(header, rows)
}

// WriteBooksCSV writes the given books as a CSV table
func WriteBooksCSV(w io.Writer, books []Book) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(bookHeader); err != nil {
		return errors.Wrap(err, "writing header")
	}
	if err := cw.WriteAll(encodeBooks(books)); err != nil {
		return errors.Wrap(err, "writing rows")
	}
	cw.Flush()

	return errors.Wrap(cw.Error(), "flushing")
}

// WriteSalesCSV writes the given sales as a CSV table
func WriteSalesCSV(w io.Writer, sales []Sale) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(saleHeader); err != nil {
		return errors.Wrap(err, "writing header")
	}
	if err := cw.WriteAll(encodeSales(sales)); err != nil {
		return errors.Wrap(err, "writing rows")
	}
	cw.Flush()

	return errors.Wrap(cw.Error(), "flushing")
}

// ErrMissingColumns is an error for an uploaded table missing required columns
var ErrMissingColumns = errors.New("missing required columns")
