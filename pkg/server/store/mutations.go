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
	"github.com/pkg/errors"
)

func (s *Store) saveBooks(books []Book) error {
	return s.writeTable(booksFile, bookHeader, encodeBooks(books))
}

func (s *Store) saveSales(sales []Sale) error {
	return s.writeTable(salesFile, saleHeader, encodeSales(sales))
}

func (s *Store) saveUsers(users []User) error {
	return s.writeTable(usersFile, userHeader, encodeUsers(users))
}

// AddBook appends the given book with a freshly assigned identifier and
// returns the identifier. Identifiers are max existing id + 1, or 1 for an
// empty table.
func (s *Store) AddBook(book Book) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.loadBooks()
	if err != nil {
		return 0, errors.Wrap(err, "loading books")
	}

	newID := 1
	for _, b := range books {
		if b.ID >= newID {
			newID = b.ID + 1
		}
	}

	book.ID = newID
	books = append(books, book)

	if err := s.saveBooks(books); err != nil {
		return 0, errors.Wrap(err, "saving books")
	}

	return newID, nil
}

// UpdateBook overwrites the provided fields of the book with the given id.
// It reports false, without error, when the id does not exist.
func (s *Store) UpdateBook(id int, fields BookUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.loadBooks()
	if err != nil {
		return false, errors.Wrap(err, "loading books")
	}

	found := false
	for i := range books {
		if books[i].ID != id {
			continue
		}

		found = true
		if fields.Title != nil {
			books[i].Title = *fields.Title
		}
		if fields.Author != nil {
			books[i].Author = *fields.Author
		}
		if fields.Genre != nil {
			books[i].Genre = *fields.Genre
		}
		if fields.Owner != nil {
			books[i].Owner = *fields.Owner
		}
		if fields.ISBN != nil {
			books[i].ISBN = *fields.ISBN
		}
		if fields.RoyaltyPercentage != nil {
			books[i].RoyaltyPercentage = *fields.RoyaltyPercentage
		}
		if fields.Price != nil {
			books[i].Price = *fields.Price
		}
		if fields.PublicationDate != nil {
			books[i].PublicationDate = *fields.PublicationDate
		}
		break
	}

	if !found {
		return false, nil
	}

	if err := s.saveBooks(books); err != nil {
		return false, errors.Wrap(err, "saving books")
	}

	return true, nil
}

// DeleteBook removes the book with the given id along with every sale that
// references it. The two overwrites are independent, not atomic: a crash
// between them can leave orphaned sales behind, which joins silently drop.
func (s *Store) DeleteBook(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.loadBooks()
	if err != nil {
		return false, errors.Wrap(err, "loading books")
	}

	kept := books[:0]
	found := false
	for _, b := range books {
		if b.ID == id {
			found = true
			continue
		}
		kept = append(kept, b)
	}

	if !found {
		return false, nil
	}

	if err := s.saveBooks(kept); err != nil {
		return false, errors.Wrap(err, "saving books")
	}

	sales, err := s.loadSales()
	if err != nil {
		return false, errors.Wrap(err, "loading sales")
	}

	keptSales := sales[:0]
	for _, sl := range sales {
		if sl.BookID == id {
			continue
		}
		keptSales = append(keptSales, sl)
	}

	if err := s.saveSales(keptSales); err != nil {
		return false, errors.Wrap(err, "saving sales")
	}

	return true, nil
}

// AddSale appends the given sale to the sales table
func (s *Store) AddSale(sale Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sales, err := s.loadSales()
	if err != nil {
		return errors.Wrap(err, "loading sales")
	}

	sales = append(sales, sale)

	return errors.Wrap(s.saveSales(sales), "saving sales")
}

// DeleteSale removes the sale with the given stable identifier. It reports
// false, without error, when the identifier does not exist.
func (s *Store) DeleteSale(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sales, err := s.loadSales()
	if err != nil {
		return false, errors.Wrap(err, "loading sales")
	}

	kept := sales[:0]
	found := false
	for _, sl := range sales {
		if sl.ID == id {
			found = true
			continue
		}
		kept = append(kept, sl)
	}

	if !found {
		return false, nil
	}

	if err := s.saveSales(kept); err != nil {
		return false, errors.Wrap(err, "saving sales")
	}

	return true, nil
}

// AddUser appends the given user to the users table
func (s *Store) AddUser(user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return errors.Wrap(err, "loading users")
	}

	users = append(users, user)

	return errors.Wrap(s.saveUsers(users), "saving users")
}

// UpdateUser overwrites the provided fields of the user with the given
// username. It reports false, without error, when the username does not
// exist.
func (s *Store) UpdateUser(username string, fields UserUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return false, errors.Wrap(err, "loading users")
	}

	found := false
	for i := range users {
		if users[i].Username != username {
			continue
		}

		found = true
		if fields.Password != nil {
			users[i].Password = *fields.Password
		}
		if fields.Role != nil {
			users[i].Role = *fields.Role
		}
		if fields.Name != nil {
			users[i].Name = *fields.Name
		}
		if fields.Email != nil {
			users[i].Email = *fields.Email
		}
		break
	}

	if !found {
		return false, nil
	}

	if err := s.saveUsers(users); err != nil {
		return false, errors.Wrap(err, "saving users")
	}

	return true, nil
}

// DeleteUser removes the user with the given username. Books owned by the
// user are left in place; ownership is reassigned through book updates.
func (s *Store) DeleteUser(username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return false, errors.Wrap(err, "loading users")
	}

	kept := users[:0]
	found := false
	for _, u := range users {
		if u.Username == username {
			found = true
			continue
		}
		kept = append(kept, u)
	}

	if !found {
		return false, nil
	}

	if err := s.saveUsers(kept); err != nil {
		return false, errors.Wrap(err, "saving users")
	}

	return true, nil
}

// ClearBooks truncates the books table to its header
func (s *Store) ClearBooks() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveBooks([]Book{})
}

// ClearSales truncates the sales table to its header
func (s *Store) ClearSales() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveSales([]Sale{})
}
