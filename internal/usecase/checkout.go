package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/renanbmello/api-ecommerce/internal/entity"
)

var ErrDuplicate = errors.New("duplicate idempotency key")

// OutboxChannelOrderCreated is the outbox channel drained to RabbitMQ.
const OutboxChannelOrderCreated = "order.created.v1"

type CheckoutInput struct {
	UserID         string
	DiscountID     *string
	IdempotencyKey string
}

// Checkout converts a cart into an order: validates stock and discount
// up front, then commits the order, the guarded stock decrements, the
// discount usage, the cart clearing and the order.created outbox row as
// one transaction. Nothing is written before the transaction; any
// failure inside it rolls back everything.
type Checkout struct {
	carts     CartRepo
	discounts DiscountRepo
	store     CheckoutStore
	idem      IdempotencyStore
	cache     OrderCache
	now       func() time.Time
}

func NewCheckout(carts CartRepo, discounts DiscountRepo, store CheckoutStore, idem IdempotencyStore, cache OrderCache) *Checkout {
	return &Checkout{carts: carts, discounts: discounts, store: store, idem: idem, cache: cache, now: time.Now}
}

func (uc *Checkout) Execute(ctx context.Context, in CheckoutInput) (*domain.Order, error) {
	// Fast path: idempotency recall. The status cache may already hold a
	// newer status applied by the fulfillment feed since the first call.
	if in.IdempotencyKey != "" {
		if id, ok, _ := uc.idem.Recall(ctx, in.UserID, in.IdempotencyKey); ok {
			return &domain.Order{ID: id, UserID: in.UserID, Status: uc.cachedStatus(ctx, id)}, nil
		}
	}

	cart, err := uc.carts.GetByUser(ctx, in.UserID)
	if errors.Is(err, domain.ErrCartNotFound) {
		return nil, domain.ErrCartEmpty
	}
	if err != nil {
		return nil, err
	}
	if cart.Empty() {
		return nil, domain.ErrCartEmpty
	}

	// Stock precheck before any mutation, naming the offending product.
	// The transactional guarded decrement is the real race barrier.
	for _, it := range cart.Products {
		if it.Product == nil {
			return nil, domain.ErrProductNotFound
		}
		if !it.Product.InStock() {
			return nil, domain.OutOfStockProduct(it.Product.Name)
		}
	}

	subtotal, err := Subtotal(cart.Products)
	if err != nil {
		return nil, err
	}

	total := subtotal
	var claimUseID *string
	if in.DiscountID != nil {
		amount, claim, err := uc.resolveDiscount(ctx, *in.DiscountID, in.UserID, subtotal)
		if err != nil {
			return nil, err
		}
		total = ApplyAmount(subtotal, amount)
		claimUseID = claim
	}

	if in.IdempotencyKey != "" {
		ok, err := uc.idem.TryLock(ctx, in.UserID, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrDuplicate
		}
	}

	order := uc.buildOrder(cart, in, subtotal, total)

	payload, err := json.Marshal(OrderCreatedMsg{
		OrderID:  order.ID,
		UserID:   order.UserID,
		Status:   string(order.Status),
		Total:    order.Total.StringFixed(2),
		Currency: Currency,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.store.CreateOrder(ctx, CheckoutWrite{
		Order:         order,
		CartID:        cart.ID,
		ClaimUseID:    claimUseID,
		OutboxPayload: payload,
	}); err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" {
		_ = uc.idem.Remember(ctx, in.UserID, in.IdempotencyKey, order.ID)
	}
	_ = uc.cache.SetStatus(ctx, order.ID, string(order.Status))
	return order, nil
}

func (uc *Checkout) cachedStatus(ctx context.Context, orderID string) domain.Status {
	raw, err := uc.cache.GetStatus(ctx, orderID)
	if err != nil || raw == "" {
		return domain.StatusPending
	}
	status, err := domain.ParseStatus(raw)
	if err != nil {
		return domain.StatusPending
	}
	return status
}

// resolveDiscount runs the full validation set at checkout as well as at
// cart preview. A reservation made by the preview path (DiscountUse with
// no order) is claimed instead of counted twice; one already bound to an
// order means the user spent it.
func (uc *Checkout) resolveDiscount(ctx context.Context, discountID, userID string, subtotal decimal.Decimal) (decimal.Decimal, *string, error) {
	d, err := uc.discounts.GetByID(ctx, discountID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return decimal.Zero, nil, domain.ErrDiscountInvalid
		}
		return decimal.Zero, nil, err
	}
	if !d.Active || !d.WindowContains(uc.now()) {
		return decimal.Zero, nil, domain.ErrDiscountInvalid
	}

	use, err := uc.discounts.FindUse(ctx, d.ID, userID)
	if err != nil {
		return decimal.Zero, nil, err
	}
	var claim *string
	switch {
	case use != nil && use.OrderID != nil:
		return decimal.Zero, nil, domain.ErrDiscountUsed
	case use != nil:
		claim = &use.ID
	case d.Exhausted():
		return decimal.Zero, nil, domain.ErrDiscountMaxUses
	}

	if err := EnforceMinValue(d, subtotal); err != nil {
		return decimal.Zero, nil, err
	}
	amount, err := ComputeDiscount(d, subtotal)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return amount, claim, nil
}

func (uc *Checkout) buildOrder(cart *domain.Cart, in CheckoutInput, subtotal, total decimal.Decimal) *domain.Order {
	order := &domain.Order{
		ID:         uuid.NewString(),
		UserID:     in.UserID,
		Status:     domain.StatusPending,
		Subtotal:   subtotal,
		Total:      total,
		DiscountID: in.DiscountID,
		CreatedAt:  uc.now(),
	}
	for _, it := range cart.Products {
		order.Products = append(order.Products, domain.OrderProduct{
			OrderID:   order.ID,
			ProductID: it.ProductID,
			Price:     it.Product.Price,
			Product:   it.Product,
		})
	}
	return order
}
