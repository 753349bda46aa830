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

import "math"

// Performance indicators classify a growth rate against a dead band of
// five percentage points in either direction.
const (
	IndicatorUp   = "up"
	IndicatorDown = "down"
	IndicatorFlat = "flat"
)

// indicatorDeadBand is the half-width of the flat band, in percentage points
const indicatorDeadBand = 5.0

// GrowthRate returns the percentage change from previous to current. Growth
// from a zero baseline is positive infinity only when the current value is
// positive, otherwise zero; callers rendering JSON must map the infinity to
// null.
func GrowthRate(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return math.Inf(1)
		}

		return 0
	}

	return (current - previous) / previous * 100
}

// PerformanceIndicator classifies a growth rate. Rates strictly above the
// dead band read up, strictly below it read down, and everything within it,
// endpoints included, reads flat. Infinite growth reads up.
func PerformanceIndicator(growth float64) string {
	switch {
	case growth > indicatorDeadBand:
		return IndicatorUp
	case growth < -indicatorDeadBand:
		return IndicatorDown
	}

	return IndicatorFlat
}

// AverageDailySales divides a window's sales volume by the window's
// denominator days. For the all-time window the denominator is the fixed
// AllTimeDenominatorDays approximation.
func AverageDailySales(totalSales int, w Window) float64 {
	return float64(totalSales) / float64(w.DenominatorDays())
}

// AverageSalePrice divides revenue by volume. No sales means no average,
// reported as zero rather than NaN.
func AverageSalePrice(totalRevenue float64, totalSales int) float64 {
	if totalSales == 0 {
		return 0
	}

	return totalRevenue / float64(totalSales)
}
