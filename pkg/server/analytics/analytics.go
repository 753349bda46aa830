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

// Package analytics turns the flat sales log into the shapes the dashboard
// renders: ownership-scoped views, time-filtered trends, rankings, royalty
// totals and period-over-period growth.
//
// Every function is empty-safe: empty inputs produce empty, correctly-shaped
// results, never errors. Callers do not guard call sites.
package analytics

import (
	"time"

	"github.com/khwaab/booksales/pkg/clock"
	"github.com/khwaab/booksales/pkg/server/store"
)

// Service computes aggregate statistics over the record store, scoped to a
// principal. The clock anchors relative windows at call time; results for
// relative windows are deliberately not reproducible across days.
type Service struct {
	Store *store.Store
	Clock clock.Clock
}

// NewService returns an analytics service over the given store
func NewService(s *store.Store, clk clock.Clock) *Service {
	return &Service{Store: s, Clock: clk}
}

// SaleView is a sale joined to its book's title and owner
type SaleView struct {
	store.Sale
	Title string `json:"title"`
	Owner string `json:"owner"`
}

// today returns the current calendar day in UTC
func (s *Service) today() time.Time {
	now := s.Clock.Now().UTC()

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
