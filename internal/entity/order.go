package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

type Order struct {
	ID         string
	UserID     string
	Status     Status
	Subtotal   decimal.Decimal
	Total      decimal.Decimal
	DiscountID *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Products   []OrderProduct
	Discount   *Discount
}

// OrderProduct snapshots the price at the time of order.
type OrderProduct struct {
	OrderID   string
	ProductID string
	Price     decimal.Decimal
	Product   *Product
}

// Deletable orders are the ones that never shipped.
func (o *Order) Deletable() bool {
	return o.Status == StatusPending || o.Status == StatusCancelled
}

func (o *Order) OwnedBy(userID string) bool { return o.UserID == userID }
