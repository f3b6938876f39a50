package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	domain "github.com/renanbmello/api-ecommerce/internal/entity"
	"github.com/renanbmello/api-ecommerce/internal/usecase"
)

// MySQLCheckoutStore commits the checkout write set (order, line items,
// stock decrements, discount usage, cart clearing, outbox event) as a
// single transaction.
type MySQLCheckoutStore struct{ db *sql.DB }

func NewMySQLCheckoutStore(db *sql.DB) *MySQLCheckoutStore { return &MySQLCheckoutStore{db: db} }

func (s *MySQLCheckoutStore) CreateOrder(ctx context.Context, w usecase.CheckoutWrite) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	o := w.Order
	var discountID any
	if o.DiscountID != nil {
		discountID = *o.DiscountID
	}
	if _, err := tx.ExecContext(ctx, `
INSERT INTO orders (id,user_id,status,subtotal,total,discount_id,created_at,updated_at)
VALUES (?,?,?,?,?,?,NOW(),NOW())
`, o.ID, o.UserID, string(o.Status), o.Subtotal, o.Total, discountID); err != nil {
		return translate(err, domain.ErrRecordNotFound)
	}

	for _, item := range o.Products {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO order_products (order_id,product_id,price) VALUES (?,?,?)`,
			o.ID, item.ProductID, item.Price); err != nil {
			return translate(err, domain.ErrRecordNotFound)
		}
		if err := s.decrementStock(ctx, tx, item.ProductID); err != nil {
			return err
		}
	}

	if o.DiscountID != nil {
		if err := s.recordDiscountUse(ctx, tx, o, w.ClaimUseID); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_products WHERE cart_id=?`, w.CartID); err != nil {
		return err
	}

	if len(w.OutboxPayload) > 0 {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO outbox (channel,payload,status,retry_count,next_attempt_at,created_at)
VALUES (?, ?, 'PENDING', 0, NOW(), NOW())`,
			usecase.OutboxChannelOrderCreated, w.OutboxPayload); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// decrementStock is the race barrier: the conditional update refuses to
// take stock below zero regardless of what the precheck saw.
func (s *MySQLCheckoutStore) decrementStock(ctx context.Context, tx *sql.Tx, productID string) error {
	res, err := tx.ExecContext(ctx, `
UPDATE products SET stock = stock - 1, updated_at = NOW()
WHERE id = ? AND stock > 0`, productID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		var name string
		if err := tx.QueryRowContext(ctx,
			`SELECT name FROM products WHERE id=?`, productID).Scan(&name); err != nil {
			return domain.ErrOutOfStock
		}
		return domain.OutOfStockProduct(name)
	}
	return nil
}

// recordDiscountUse either claims the reservation made by the cart
// preview or inserts a fresh use and takes a guarded use slot.
func (s *MySQLCheckoutStore) recordDiscountUse(ctx context.Context, tx *sql.Tx, o *domain.Order, claimUseID *string) error {
	if claimUseID != nil {
		res, err := tx.ExecContext(ctx, `
UPDATE discount_uses SET order_id = ? WHERE id = ? AND order_id IS NULL`,
			o.ID, *claimUseID)
		if err != nil {
			return err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrDiscountUsed
		}
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO discount_uses (id,discount_id,user_id,order_id,used_at)
VALUES (?,?,?,?,NOW())`,
		uuid.NewString(), *o.DiscountID, o.UserID, o.ID); err != nil {
		return translate(err, domain.ErrRecordNotFound)
	}

	res, err := tx.ExecContext(ctx, `
UPDATE discounts SET used_count = used_count + 1
WHERE id = ? AND (max_uses IS NULL OR used_count < max_uses)`, *o.DiscountID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrDiscountMaxUses
	}
	return nil
}

var _ usecase.CheckoutStore = (*MySQLCheckoutStore)(nil)
