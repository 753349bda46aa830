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
	"time"

	"github.com/pkg/errors"

	"github.com/khwaab/booksales/pkg/server/store"
)

// CompareMode names how a summary's baseline period is chosen
type CompareMode string

const (
	CompareNone           CompareMode = "none"
	ComparePreviousPeriod CompareMode = "previous-period"
	CompareYearOverYear   CompareMode = "year-over-year"
)

// ErrInvalidCompareMode is returned when a compare string is not recognized
var ErrInvalidCompareMode = errors.New("invalid compare mode")

// ParseCompareMode maps a request parameter onto a CompareMode. An empty
// string selects CompareNone.
func ParseCompareMode(s string) (CompareMode, error) {
	if s == "" {
		return CompareNone, nil
	}

	switch m := CompareMode(s); m {
	case CompareNone, ComparePreviousPeriod, CompareYearOverYear:
		return m, nil
	}

	return "", errors.Wrap(ErrInvalidCompareMode, s)
}

// PeriodTotals is the volume, revenue and royalty total of one period
type PeriodTotals struct {
	Sales     int     `json:"sales"`
	Revenue   float64 `json:"revenue"`
	Royalties float64 `json:"royalties"`
}

// Growth pairs a growth rate with its performance indicator. The rate may
// be positive infinity; presenters map that to null.
type Growth struct {
	Rate      float64
	Indicator string
}

// Comparison holds a baseline period's totals and the growth of the current
// period against it
type Comparison struct {
	Mode      CompareMode
	Previous  PeriodTotals
	Sales     Growth
	Revenue   Growth
	Royalties Growth
}

// Summary is the headline block of the dashboard: current-period totals,
// per-day and per-sale averages, and an optional comparison to a baseline
// period.
type Summary struct {
	Window            Window
	Totals            PeriodTotals
	AverageDailySales float64
	AverageSalePrice  float64
	Comparison        *Comparison
}

// SummaryParams selects what a summary covers. A zero BookID covers the
// principal's whole catalog.
type SummaryParams struct {
	Window  Window
	Compare CompareMode
	BookID  int
}

// Summary computes the headline metrics for the principal. The comparison
// baseline is cut from the unwindowed sales view with inclusive day bounds:
// previous-period is the window-length stretch ending where the current
// window begins, year-over-year is the same stretch shifted back a year.
func (s *Service) Summary(principal store.User, params SummaryParams) (Summary, error) {
	sales, err := s.WindowSales(principal, params.Window)
	if err != nil {
		return Summary{}, err
	}
	sales = filterByBook(sales, params.BookID)

	totals := sumTotals(sales)

	ret := Summary{
		Window:            params.Window,
		Totals:            totals,
		AverageDailySales: AverageDailySales(totals.Sales, params.Window),
		AverageSalePrice:  AverageSalePrice(totals.Revenue, totals.Sales),
	}

	if params.Compare == CompareNone || params.Compare == "" {
		return ret, nil
	}

	all, err := s.UserSales(principal)
	if err != nil {
		return Summary{}, err
	}
	all = filterByBook(all, params.BookID)

	days := params.Window.DenominatorDays()
	today := s.today()

	// The current window covers days calendar days ending today. The
	// baseline must cover exactly as many, so with inclusive bounds the
	// start sits days-1 before the end.
	var start, end time.Time
	switch params.Compare {
	case ComparePreviousPeriod:
		end = today.AddDate(0, 0, -days)
		start = end.AddDate(0, 0, -(days - 1))
	case CompareYearOverYear:
		end = today.AddDate(0, 0, -365)
		start = end.AddDate(0, 0, -(days - 1))
	default:
		return Summary{}, errors.Wrap(ErrInvalidCompareMode, string(params.Compare))
	}

	previous := sumTotals(filterByRange(all, start, end))

	ret.Comparison = &Comparison{
		Mode:      params.Compare,
		Previous:  previous,
		Sales:     growthOf(float64(totals.Sales), float64(previous.Sales)),
		Revenue:   growthOf(totals.Revenue, previous.Revenue),
		Royalties: growthOf(totals.Royalties, previous.Royalties),
	}

	return ret, nil
}

func growthOf(current, previous float64) Growth {
	rate := GrowthRate(current, previous)

	return Growth{Rate: rate, Indicator: PerformanceIndicator(rate)}
}

func sumTotals(sales []SaleView) PeriodTotals {
	var ret PeriodTotals
	for _, sale := range sales {
		ret.Sales += sale.Quantity
		ret.Revenue += sale.Revenue
		ret.Royalties += sale.Royalty
	}

	return ret
}

func filterByBook(sales []SaleView, bookID int) []SaleView {
	if bookID == 0 {
		return sales
	}

	ret := []SaleView{}
	for _, sale := range sales {
		if sale.BookID == bookID {
			ret = append(ret, sale)
		}
	}

	return ret
}

// filterByRange keeps sales dated within [start, end], both ends inclusive
func filterByRange(sales []SaleView, start, end time.Time) []SaleView {
	ret := []SaleView{}
	for _, sale := range sales {
		if sale.Date.Before(start) || sale.Date.After(end) {
			continue
		}

		ret = append(ret, sale)
	}

	return ret
}
