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
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/khwaab/booksales/pkg/clock"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// seedSaleCount is the number of random historical sales synthesized on
// first run
const seedSaleCount = 500

func seedBooks() []Book {
	return []Book{
		{ID: 1, Title: "The Art of Programming", Author: "John Doe", Genre: "Technology", Owner: "client1", ISBN: "978-1-234567-89-0", RoyaltyPercentage: 15.0, Price: 29.99, PublicationDate: "2020-03-15"},
		{ID: 2, Title: "Data Science Fundamentals", Author: "Jane Smith", Genre: "Technology", Owner: "client1", ISBN: "978-1-234567-90-6", RoyaltyPercentage: 12.5, Price: 24.99, PublicationDate: "2021-07-22"},
		{ID: 3, Title: "Business Strategy", Author: "Robert Johnson", Genre: "Business", Owner: "client2", ISBN: "978-1-234567-91-3", RoyaltyPercentage: 10.0, Price: 19.99, PublicationDate: "2019-11-08"},
		{ID: 4, Title: "Marketing 101", Author: "Emily Williams", Genre: "Marketing", Owner: "client2", ISBN: "978-1-234567-92-0", RoyaltyPercentage: 12.0, Price: 14.99, PublicationDate: "2022-01-30"},
		{ID: 5, Title: "Leadership Principles", Author: "Michael Brown", Genre: "Business", Owner: "client2", ISBN: "978-1-234567-93-7", RoyaltyPercentage: 14.0, Price: 22.99, PublicationDate: "2020-09-12"},
	}
}

func seedUsers() ([]User, error) {
	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hashing admin password")
	}
	clientHash, err := bcrypt.GenerateFromPassword([]byte("client123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hashing client password")
	}

	return []User{
		{Username: "admin", Password: string(adminHash), Role: RoleAdmin, Name: "Administrator"},
		{Username: "client1", Password: string(clientHash), Role: RoleClient, Name: "John Smith"},
		{Username: "client2", Password: string(clientHash), Role: RoleClient, Name: "Emily Johnson"},
	}, nil
}

// seedSales synthesizes random historical sales over the past 365 days:
// book drawn uniformly from the given books, quantity uniform in [1,10],
// revenue and royalty computed from the drawn book's price and rate.
func seedSales(clk clock.Clock, rng *rand.Rand, books []Book) ([]Sale, error) {
	sales := make([]Sale, 0, seedSaleCount)
	if len(books) == 0 {
		return sales, nil
	}

	now := clk.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	for i := 0; i < seedSaleCount; i++ {
		book := books[rng.Intn(len(books))]
		daysAgo := rng.Intn(365)
		quantity := rng.Intn(10) + 1

		revenue := float64(quantity) * book.Price
		royalty := revenue * (book.RoyaltyPercentage / 100)

		id, err := uuid.NewRandom()
		if err != nil {
			return nil, errors.Wrap(err, "generating sale id")
		}

		sales = append(sales, Sale{
			ID:       id.String(),
			Date:     today.AddDate(0, 0, -daysAgo),
			BookID:   book.ID,
			Quantity: quantity,
			Price:    book.Price,
			Revenue:  revenue,
			Royalty:  royalty,
		})
	}

	return sales, nil
}

// InitializeDefaults populates each table with seed data if, and only if,
// the corresponding file is entirely absent. It is idempotent: tables that
// exist, even empty ones, are left alone.
func (s *Store) InitializeDefaults(clk clock.Clock) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(filepath.Join(s.dir, booksFile)); os.IsNotExist(err) {
		if err := s.saveBooks(seedBooks()); err != nil {
			return errors.Wrap(err, "seeding books")
		}
	}

	if _, err := os.Stat(filepath.Join(s.dir, usersFile)); os.IsNotExist(err) {
		users, err := seedUsers()
		if err != nil {
			return err
		}
		if err := s.saveUsers(users); err != nil {
			return errors.Wrap(err, "seeding users")
		}
	}

	if _, err := os.Stat(filepath.Join(s.dir, salesFile)); os.IsNotExist(err) {
		books, err := s.loadBooks()
		if err != nil {
			return errors.Wrap(err, "loading books for seeding")
		}

		rng := rand.New(rand.NewSource(clk.Now().UnixNano()))
		sales, err := seedSales(clk, rng, books)
		if err != nil {
			return err
		}
		if err := s.saveSales(sales); err != nil {
			return errors.Wrap(err, "seeding sales")
		}
	}

	return nil
}
