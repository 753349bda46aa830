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

package presenters

import (
	"math"

	"github.com/khwaab/booksales/pkg/server/analytics"
	"github.com/khwaab/booksales/pkg/server/store"
)

// TrendPoint is one day of a sales trend
type TrendPoint struct {
	Date  string `json:"date"`
	Sales int    `json:"sales"`
}

// Growth is a presented growth rate. Rate is null when the baseline period
// had no activity, since a percentage is undefined over a zero base.
type Growth struct {
	Rate      *float64 `json:"rate"`
	Indicator string   `json:"indicator"`
}

// PeriodTotals is a presented totals block
type PeriodTotals struct {
	Sales     int     `json:"sales"`
	Revenue   float64 `json:"revenue"`
	Royalties float64 `json:"royalties"`
}

// Comparison is a presented baseline comparison
type Comparison struct {
	Mode      string       `json:"mode"`
	Previous  PeriodTotals `json:"previous"`
	Sales     Growth       `json:"sales"`
	Revenue   Growth       `json:"revenue"`
	Royalties Growth       `json:"royalties"`
}

// Summary is a presented summary block
type Summary struct {
	Window            string       `json:"window"`
	Totals            PeriodTotals `json:"totals"`
	AverageDailySales float64      `json:"average_daily_sales"`
	AverageSalePrice  float64      `json:"average_sale_price"`
	Comparison        *Comparison  `json:"comparison,omitempty"`
}

// PresentTrend presents a sales trend
func PresentTrend(trend []analytics.TrendPoint) []TrendPoint {
	ret := []TrendPoint{}

	for _, point := range trend {
		ret = append(ret, TrendPoint{
			Date:  point.Date.Format(store.DateLayout),
			Sales: point.Sales,
		})
	}

	return ret
}

// PresentGrowth presents a growth rate. Infinite rates have no JSON
// representation and become null.
func PresentGrowth(growth analytics.Growth) Growth {
	ret := Growth{Indicator: growth.Indicator}

	if !math.IsInf(growth.Rate, 0) {
		rate := growth.Rate
		ret.Rate = &rate
	}

	return ret
}

func presentTotals(totals analytics.PeriodTotals) PeriodTotals {
	return PeriodTotals{
		Sales:     totals.Sales,
		Revenue:   totals.Revenue,
		Royalties: totals.Royalties,
	}
}

// PresentSummary presents a summary
func PresentSummary(summary analytics.Summary) Summary {
	ret := Summary{
		Window:            string(summary.Window),
		Totals:            presentTotals(summary.Totals),
		AverageDailySales: summary.AverageDailySales,
		AverageSalePrice:  summary.AverageSalePrice,
	}

	if summary.Comparison != nil {
		ret.Comparison = &Comparison{
			Mode:      string(summary.Comparison.Mode),
			Previous:  presentTotals(summary.Comparison.Previous),
			Sales:     PresentGrowth(summary.Comparison.Sales),
			Revenue:   PresentGrowth(summary.Comparison.Revenue),
			Royalties: PresentGrowth(summary.Comparison.Royalties),
		}
	}

	return ret
}
