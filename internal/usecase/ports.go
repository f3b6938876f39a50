package usecase

import (
	"context"

	domain "github.com/renanbmello/api-ecommerce/internal/entity"
)

// Persistence ports. Implementations translate driver errors into the
// domain error taxonomy (unique violation, FK violation, not found).

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ProductRepo interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	// AdjustStock applies delta guarded so stock never goes negative;
	// returns false when the guard rejected the update.
	AdjustStock(ctx context.Context, id string, delta int) (bool, error)
}

type CartRepo interface {
	// GetByUser loads the cart with its line items and current product
	// snapshots. Returns domain.ErrCartNotFound when the user has none.
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	CreateForUser(ctx context.Context, userID string) (*domain.Cart, error)
	AddProduct(ctx context.Context, cartID, productID string) (*domain.CartProduct, error)
	RemoveProduct(ctx context.Context, cartID, productID string) error
	ClearProducts(ctx context.Context, cartID string) error
}

type DiscountRepo interface {
	Create(ctx context.Context, d *domain.Discount) error
	GetByCode(ctx context.Context, code string) (*domain.Discount, error)
	GetByID(ctx context.Context, id string) (*domain.Discount, error)
	// FindUse returns the DiscountUse for (discount, user), if any.
	FindUse(ctx context.Context, discountID, userID string) (*domain.DiscountUse, error)
	// RecordUse inserts a DiscountUse and increments used_count in one
	// transaction; the increment is guarded by max_uses and reports
	// domain.ErrDiscountMaxUses when the cap was hit concurrently.
	RecordUse(ctx context.Context, use *domain.DiscountUse) error
}

// CheckoutWrite is the all-or-nothing write set of a checkout: the order
// with its line items, the stock decrements implied by those items, the
// optional discount usage, the cart clearing, and the outbox event.
type CheckoutWrite struct {
	Order  *domain.Order
	CartID string
	// ClaimUseID, when set, marks an existing reservation (DiscountUse
	// with no order) as consumed instead of inserting a new row.
	ClaimUseID    *string
	OutboxPayload []byte
}

type CheckoutStore interface {
	// CreateOrder commits the whole write set in a single transaction,
	// rolling everything back on any failure. Stock decrements and the
	// used_count increment are conditional updates verified by affected
	// row count.
	CreateOrder(ctx context.Context, w CheckoutWrite) error
}

type OrderRepo interface {
	// GetByID loads the order with products and discount joined in.
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string, status *domain.Status, offset, limit int) ([]domain.Order, int, error)
	UpdateStatus(ctx context.Context, id string, to domain.Status) error
	// UpdateStatusIf performs a guarded transition; false means the order
	// was not in fromStatus (or does not exist).
	UpdateStatusIf(ctx context.Context, id string, from, to domain.Status) (bool, error)
	// Delete removes the order, its line items and discount-use rows and
	// decrements the discount counter, all in one transaction.
	Delete(ctx context.Context, o *domain.Order) error
}

type OutboxRepo interface {
	Insert(ctx context.Context, channel string, payload []byte) error
	FetchPending(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkSent(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64) error
}

type OutboxRecord struct {
	ID      int64
	Channel string
	Payload []byte
}

type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

type OrderCache interface {
	SetStatus(ctx context.Context, orderID string, status string) error
	GetStatus(ctx context.Context, orderID string) (string, error)
}
