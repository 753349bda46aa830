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

import "github.com/pkg/errors"

// Window names a relative time range anchored at the current day
type Window string

const (
	WindowLast7Days  Window = "last-7-days"
	WindowLast30Days Window = "last-30-days"
	WindowLast90Days Window = "last-90-days"
	WindowLastYear   Window = "last-year"
	WindowAllTime    Window = "all-time"
)

// DefaultWindow is what analytics endpoints use when the request does not
// name a window.
const DefaultWindow = WindowLast30Days

// AllTimeDenominatorDays stands in for the unbounded all-time window in
// per-day averages and period comparisons. Two years approximates the age
// of the catalog; averages computed with it are rough by construction.
const AllTimeDenominatorDays = 730

// ErrInvalidWindow is returned when a window string is not recognized
var ErrInvalidWindow = errors.New("invalid window")

// ParseWindow maps a request parameter onto a Window. An empty string
// selects DefaultWindow.
func ParseWindow(s string) (Window, error) {
	if s == "" {
		return DefaultWindow, nil
	}

	switch w := Window(s); w {
	case WindowLast7Days, WindowLast30Days, WindowLast90Days, WindowLastYear, WindowAllTime:
		return w, nil
	}

	return "", errors.Wrap(ErrInvalidWindow, s)
}

// Days returns the length of the window in days. The second return is
// false for the all-time window, which has no bound.
func (w Window) Days() (int, bool) {
	switch w {
	case WindowLast7Days:
		return 7, true
	case WindowLast30Days:
		return 30, true
	case WindowLast90Days:
		return 90, true
	case WindowLastYear:
		return 365, true
	}

	return 0, false
}

// DenominatorDays returns the day count used as the denominator for
// averages and as the period length for comparisons. Unlike Days it is
// defined for every window: all-time maps to AllTimeDenominatorDays.
func (w Window) DenominatorDays() int {
	if days, ok := w.Days(); ok {
		return days
	}

	return AllTimeDenominatorDays
}
