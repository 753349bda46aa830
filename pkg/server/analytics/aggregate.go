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
	"sort"
	"time"

	"github.com/khwaab/booksales/pkg/server/store"
)

// DefaultTopBooksLimit caps the ranked-book listing when the request does
// not give a limit.
const DefaultTopBooksLimit = 5

// DefaultRecentSalesLimit caps the recent-sales listing when the request
// does not give a limit.
const DefaultRecentSalesLimit = 10

// TrendPoint is the sales volume of one calendar day
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Sales int       `json:"sales"`
}

// BookRank is a title's total volume and revenue within a window
type BookRank struct {
	Title   string  `json:"title"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}

// GenreSales is the sales volume attributed to one genre within a window
type GenreSales struct {
	Genre string `json:"genre"`
	Sales int    `json:"sales"`
}

// BookRoyalty is the royalty total attributed to one title within a window
type BookRoyalty struct {
	Title   string  `json:"title"`
	Royalty float64 `json:"royalty"`
}

// Trend buckets the principal's windowed sales by calendar day, summing
// quantities. Days between the first and last sale with no sales appear
// with an explicit zero so the series plots without gaps. An empty window
// yields an empty series.
func (s *Service) Trend(principal store.User, w Window) ([]TrendPoint, error) {
	sales, err := s.WindowSales(principal, w)
	if err != nil {
		return nil, err
	}

	if len(sales) == 0 {
		return []TrendPoint{}, nil
	}

	byDay := map[time.Time]int{}
	first := sales[0].Date
	last := sales[0].Date
	for _, sale := range sales {
		byDay[sale.Date] += sale.Quantity

		if sale.Date.Before(first) {
			first = sale.Date
		}
		if sale.Date.After(last) {
			last = sale.Date
		}
	}

	ret := []TrendPoint{}
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		ret = append(ret, TrendPoint{Date: day, Sales: byDay[day]})
	}

	return ret, nil
}

// TopBooks ranks the principal's titles by windowed sales volume, descending.
// Grouping is by title, so books that share one merge into a single rank.
// Ties break by title ascending so the ranking is stable across runs. A
// non-positive limit selects DefaultTopBooksLimit.
func (s *Service) TopBooks(principal store.User, w Window, limit int) ([]BookRank, error) {
	if limit <= 0 {
		limit = DefaultTopBooksLimit
	}

	sales, err := s.WindowSales(principal, w)
	if err != nil {
		return nil, err
	}

	type total struct {
		sales   int
		revenue float64
	}
	totals := map[string]*total{}
	for _, sale := range sales {
		t, ok := totals[sale.Title]
		if !ok {
			t = &total{}
			totals[sale.Title] = t
		}

		t.sales += sale.Quantity
		t.revenue += sale.Revenue
	}

	ret := []BookRank{}
	for title, t := range totals {
		ret = append(ret, BookRank{Title: title, Sales: t.sales, Revenue: t.revenue})
	}

	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Sales != ret[j].Sales {
			return ret[i].Sales > ret[j].Sales
		}

		return ret[i].Title < ret[j].Title
	})

	if len(ret) > limit {
		ret = ret[:limit]
	}

	return ret, nil
}

// RecentSales returns the principal's latest sales, newest first. Sales on
// the same day keep their stored order. A non-positive limit selects
// DefaultRecentSalesLimit.
func (s *Service) RecentSales(principal store.User, limit int) ([]SaleView, error) {
	if limit <= 0 {
		limit = DefaultRecentSalesLimit
	}

	sales, err := s.UserSales(principal)
	if err != nil {
		return nil, err
	}

	ret := make([]SaleView, len(sales))
	copy(ret, sales)

	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].Date.After(ret[j].Date)
	})

	if len(ret) > limit {
		ret = ret[:limit]
	}

	return ret, nil
}

// SalesByGenre sums windowed sales volume per genre, descending with ties
// broken by genre ascending. Only genres with sales appear.
func (s *Service) SalesByGenre(principal store.User, w Window) ([]GenreSales, error) {
	books, err := s.UserBooks(principal)
	if err != nil {
		return nil, err
	}

	genres := map[int]string{}
	for _, b := range books {
		genres[b.ID] = b.Genre
	}

	sales, err := s.WindowSales(principal, w)
	if err != nil {
		return nil, err
	}

	totals := map[string]int{}
	for _, sale := range sales {
		totals[genres[sale.BookID]] += sale.Quantity
	}

	ret := []GenreSales{}
	for genre, quantity := range totals {
		ret = append(ret, GenreSales{Genre: genre, Sales: quantity})
	}

	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Sales != ret[j].Sales {
			return ret[i].Sales > ret[j].Sales
		}

		return ret[i].Genre < ret[j].Genre
	})

	return ret, nil
}

// RoyaltiesByBook sums windowed royalties per title, descending by royalty
// with ties broken by title ascending.
func (s *Service) RoyaltiesByBook(principal store.User, w Window) ([]BookRoyalty, error) {
	sales, err := s.WindowSales(principal, w)
	if err != nil {
		return nil, err
	}

	totals := map[string]float64{}
	for _, sale := range sales {
		totals[sale.Title] += sale.Royalty
	}

	ret := []BookRoyalty{}
	for title, royalty := range totals {
		ret = append(ret, BookRoyalty{Title: title, Royalty: royalty})
	}

	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Royalty != ret[j].Royalty {
			return ret[i].Royalty > ret[j].Royalty
		}

		return ret[i].Title < ret[j].Title
	})

	return ret, nil
}

// TotalRoyalties sums the principal's windowed royalties
func (s *Service) TotalRoyalties(principal store.User, w Window) (float64, error) {
	sales, err := s.WindowSales(principal, w)
	if err != nil {
		return 0, err
	}

	var ret float64
	for _, sale := range sales {
		ret += sale.Royalty
	}

	return ret, nil
}
