package usecase

import (
	"github.com/shopspring/decimal"

	domain "github.com/renanbmello/api-ecommerce/internal/entity"
)

// Currency is fixed for the whole API.
const Currency = "BRL"

// Subtotal sums cart line-item prices, rounded to 2 decimal places.
// A missing product snapshot or a negative price is a data fault and
// fails with ErrInvalidPrice. An empty cart totals zero.
func Subtotal(items []domain.CartProduct) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, it := range items {
		if it.Product == nil || it.Product.Price.IsNegative() {
			return decimal.Zero, domain.ErrInvalidPrice
		}
		sum = sum.Add(it.Product.Price)
	}
	return sum.Round(2), nil
}
