package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage  DiscountType = "PERCENTAGE"
	DiscountFixedAmount DiscountType = "FIXED_AMOUNT"
)

type Discount struct {
	ID         string
	Code       string
	Type       DiscountType
	Value      decimal.Decimal
	MinValue   *decimal.Decimal
	MaxUses    *int
	UsedCount  int
	ValidFrom  time.Time
	ValidUntil time.Time
	Active     bool
}

// WindowContains reports whether now falls inside [ValidFrom, ValidUntil].
func (d *Discount) WindowContains(now time.Time) bool {
	return !now.Before(d.ValidFrom) && !now.After(d.ValidUntil)
}

// Exhausted reports whether the usage cap, if any, has been reached.
func (d *Discount) Exhausted() bool {
	return d.MaxUses != nil && d.UsedCount >= *d.MaxUses
}

// DiscountUse de-duplicates one use per user per discount. OrderID is nil
// while the use is only a cart-preview reservation; checkout claims it.
type DiscountUse struct {
	ID         string
	DiscountID string
	UserID     string
	OrderID    *string
	UsedAt     time.Time
}
