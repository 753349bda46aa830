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
	"testing"

	"github.com/pkg/errors"

	"github.com/khwaab/booksales/pkg/assert"
)

func TestParseWindow(t *testing.T) {
	testCases := []struct {
		input    string
		window   Window
		expected error
	}{
		{
			input:  "",
			window: WindowLast30Days,
		},
		{
			input:  "last-7-days",
			window: WindowLast7Days,
		},
		{
			input:  "last-30-days",
			window: WindowLast30Days,
		},
		{
			input:  "last-90-days",
			window: WindowLast90Days,
		},
		{
			input:  "last-year",
			window: WindowLastYear,
		},
		{
			input:  "all-time",
			window: WindowAllTime,
		},
		{
			input:    "last-14-days",
			expected: ErrInvalidWindow,
		},
		{
			input:    "Last 7 Days",
			expected: ErrInvalidWindow,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			w, err := ParseWindow(tc.input)

			assert.Equal(t, errors.Cause(err), tc.expected, "error mismatch")
			if tc.expected == nil {
				assert.Equal(t, w, tc.window, "window mismatch")
			}
		})
	}
}

func TestWindowDays(t *testing.T) {
	testCases := []struct {
		window  Window
		days    int
		bounded bool
	}{
		{window: WindowLast7Days, days: 7, bounded: true},
		{window: WindowLast30Days, days: 30, bounded: true},
		{window: WindowLast90Days, days: 90, bounded: true},
		{window: WindowLastYear, days: 365, bounded: true},
		{window: WindowAllTime, days: 0, bounded: false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.window), func(t *testing.T) {
			days, bounded := tc.window.Days()

			assert.Equal(t, days, tc.days, "days mismatch")
			assert.Equal(t, bounded, tc.bounded, "bounded mismatch")
		})
	}
}

func TestDenominatorDays(t *testing.T) {
	testCases := []struct {
		window   Window
		expected int
	}{
		{window: WindowLast7Days, expected: 7},
		{window: WindowLast30Days, expected: 30},
		{window: WindowLast90Days, expected: 90},
		{window: WindowLastYear, expected: 365},
		{window: WindowAllTime, expected: 730},
	}

	for _, tc := range testCases {
		t.Run(string(tc.window), func(t *testing.T) {
			assert.Equal(t, tc.window.DenominatorDays(), tc.expected, "denominator mismatch")
		})
	}
}
