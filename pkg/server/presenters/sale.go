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
	"github.com/khwaab/booksales/pkg/server/analytics"
	"github.com/khwaab/booksales/pkg/server/store"
)

// Sale is a result of PresentSale
type Sale struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	BookID   int     `json:"book_id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Revenue  float64 `json:"revenue"`
	Royalty  float64 `json:"royalty"`
}

// SaleDetail is a sale together with its book's title and owner
type SaleDetail struct {
	Sale
	Title string `json:"title"`
	Owner string `json:"owner"`
}

// PresentSale presents a sale
func PresentSale(sale store.Sale) Sale {
	return Sale{
		ID:       sale.ID,
		Date:     sale.Date.Format(store.DateLayout),
		BookID:   sale.BookID,
		Quantity: sale.Quantity,
		Price:    sale.Price,
		Revenue:  sale.Revenue,
		Royalty:  sale.Royalty,
	}
}

// PresentSaleDetail presents a joined sale
func PresentSaleDetail(view analytics.SaleView) SaleDetail {
	return SaleDetail{
		Sale:  PresentSale(view.Sale),
		Title: view.Title,
		Owner: view.Owner,
	}
}

// PresentSaleDetails presents joined sales
func PresentSaleDetails(views []analytics.SaleView) []SaleDetail {
	ret := []SaleDetail{}

	for _, view := range views {
		p := PresentSaleDetail(view)
		ret = append(ret, p)
	}

	return ret
}
