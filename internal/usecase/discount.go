package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/renanbmello/api-ecommerce/internal/entity"
)

// Discounts validates and applies discount codes against the cart.
type Discounts struct {
	discounts DiscountRepo
	carts     CartRepo
	now       func() time.Time
}

func NewDiscounts(discounts DiscountRepo, carts CartRepo) *Discounts {
	return &Discounts{discounts: discounts, carts: carts, now: time.Now}
}

type CreateDiscountInput struct {
	Code       string
	Type       domain.DiscountType
	Value      decimal.Decimal
	MinValue   *decimal.Decimal
	MaxUses    *int
	ValidFrom  time.Time
	ValidUntil time.Time
}

// Create registers a new code, active immediately. Codes are globally
// unique; the repo surfaces a duplicate as ErrUniqueViolation.
func (s *Discounts) Create(ctx context.Context, in CreateDiscountInput) (*domain.Discount, error) {
	if in.Type != domain.DiscountPercentage && in.Type != domain.DiscountFixedAmount {
		return nil, domain.ErrDiscountType
	}
	d := &domain.Discount{
		ID:         uuid.NewString(),
		Code:       in.Code,
		Type:       in.Type,
		Value:      in.Value,
		MinValue:   in.MinValue,
		MaxUses:    in.MaxUses,
		ValidFrom:  in.ValidFrom,
		ValidUntil: in.ValidUntil,
		Active:     true,
	}
	if err := s.discounts.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate resolves a code to a usable discount for this user: active,
// inside its validity window, never used by the user, cap not reached.
func (s *Discounts) Validate(ctx context.Context, code, userID string) (*domain.Discount, error) {
	d, err := s.discounts.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if d == nil || !d.Active || !d.WindowContains(s.now()) {
		return nil, domain.ErrDiscountInvalid
	}
	use, err := s.discounts.FindUse(ctx, d.ID, userID)
	if err != nil {
		return nil, err
	}
	if use != nil {
		return nil, domain.ErrDiscountUsed
	}
	if d.Exhausted() {
		return nil, domain.ErrDiscountMaxUses
	}
	return d, nil
}

// ComputeDiscount returns the amount a discount takes off subtotal.
// FIXED_AMOUNT never exceeds the subtotal.
func ComputeDiscount(d *domain.Discount, subtotal decimal.Decimal) (decimal.Decimal, error) {
	switch d.Type {
	case domain.DiscountPercentage:
		return subtotal.Mul(d.Value).Div(decimal.NewFromInt(100)).Round(2), nil
	case domain.DiscountFixedAmount:
		if d.Value.GreaterThan(subtotal) {
			return subtotal.Round(2), nil
		}
		return d.Value.Round(2), nil
	}
	return decimal.Zero, domain.ErrDiscountType
}

// ApplyAmount floors the result at zero so a total is never negative.
func ApplyAmount(subtotal, amount decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(amount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total.Round(2)
}

// EnforceMinValue rejects subtotals below the discount's minimum cart value.
func EnforceMinValue(d *domain.Discount, subtotal decimal.Decimal) error {
	if d.MinValue != nil && subtotal.LessThan(*d.MinValue) {
		return domain.BelowMinimum(*d.MinValue)
	}
	return nil
}

// DiscountPreview is the result of applying a code to the current cart.
type DiscountPreview struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	Discount       *domain.Discount
}

// ApplyToCart runs the full validation set against the user's cart and
// records the use as a reservation (a DiscountUse with no order yet);
// checkout later claims it. The insert and the used_count increment are
// one transaction inside RecordUse.
func (s *Discounts) ApplyToCart(ctx context.Context, userID, code string) (*DiscountPreview, error) {
	d, err := s.Validate(ctx, code, userID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart.Empty() {
		return nil, domain.ErrCartEmpty
	}

	subtotal, err := Subtotal(cart.Products)
	if err != nil {
		return nil, err
	}
	if err := EnforceMinValue(d, subtotal); err != nil {
		return nil, err
	}
	amount, err := ComputeDiscount(d, subtotal)
	if err != nil {
		return nil, err
	}

	if err := s.discounts.RecordUse(ctx, &domain.DiscountUse{
		DiscountID: d.ID,
		UserID:     userID,
		UsedAt:     s.now(),
	}); err != nil {
		return nil, err
	}

	return &DiscountPreview{
		Subtotal:       subtotal,
		DiscountAmount: amount,
		Total:          ApplyAmount(subtotal, amount),
		Discount:       d,
	}, nil
}
