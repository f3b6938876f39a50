package repo

import (
	"context"
	"database/sql"

	domain "github.com/renanbmello/api-ecommerce/internal/entity"
	"github.com/renanbmello/api-ecommerce/internal/usecase"
)

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

func (r *MySQLOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,user_id,status,subtotal,total,discount_id,created_at,updated_at
FROM orders WHERE id=?`, id)

	var (
		o          domain.Order
		discountID sql.NullString
	)
	if err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.Subtotal, &o.Total,
		&discountID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, translate(err, domain.ErrOrderNotFound)
	}
	if discountID.Valid {
		o.DiscountID = &discountID.String
	}

	if err := r.loadProducts(ctx, &o); err != nil {
		return nil, err
	}
	if o.DiscountID != nil {
		d, err := NewMySQLDiscountRepo(r.db).GetByID(ctx, *o.DiscountID)
		if err != nil {
			return nil, err
		}
		o.Discount = d
	}
	return &o, nil
}

func (r *MySQLOrderRepo) loadProducts(ctx context.Context, o *domain.Order) error {
	rows, err := r.db.QueryContext(ctx, `
SELECT op.product_id, op.price, p.id, p.name, p.price, p.stock, p.created_at, p.updated_at
FROM order_products op
JOIN products p ON p.id = op.product_id
WHERE op.order_id=?`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		item := domain.OrderProduct{OrderID: o.ID, Product: &domain.Product{}}
		p := item.Product
		if err := rows.Scan(&item.ProductID, &item.Price,
			&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return err
		}
		o.Products = append(o.Products, item)
	}
	return rows.Err()
}

func (r *MySQLOrderRepo) ListByUser(ctx context.Context, userID string, status *domain.Status, offset, limit int) ([]domain.Order, int, error) {
	where := `WHERE user_id=?`
	args := []any{userID}
	if status != nil {
		where += ` AND status=?`
		args = append(args, string(*status))
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id,user_id,status,subtotal,total,discount_id,created_at,updated_at
FROM orders `+where+` ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var (
			o          domain.Order
			discountID sql.NullString
		)
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.Subtotal, &o.Total,
			&discountID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, err
		}
		if discountID.Valid {
			o.DiscountID = &discountID.String
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	discounts := NewMySQLDiscountRepo(r.db)
	for i := range orders {
		if err := r.loadProducts(ctx, &orders[i]); err != nil {
			return nil, 0, err
		}
		if orders[i].DiscountID != nil {
			d, err := discounts.GetByID(ctx, *orders[i].DiscountID)
			if err != nil {
				return nil, 0, err
			}
			orders[i].Discount = d
		}
	}
	return orders, total, nil
}

func (r *MySQLOrderRepo) UpdateStatus(ctx context.Context, id string, to domain.Status) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE orders
        SET status = ?, updated_at = NOW()
        WHERE id = ?`,
		string(to), id,
	)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *MySQLOrderRepo) UpdateStatusIf(ctx context.Context, id string, from, to domain.Status) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE orders
        SET status = ?, updated_at = NOW()
        WHERE id = ? AND status = ?`,
		string(to), id, string(from),
	)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	// rows == 0 → nothing matched (either not found or status mismatch)
	return rows > 0, nil
}

// Delete removes the order and its relations and gives the discount its
// use slot back, all in one transaction.
func (r *MySQLOrderRepo) Delete(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if o.DiscountID != nil {
		if _, err := tx.ExecContext(ctx, `
UPDATE discounts SET used_count = used_count - 1
WHERE id = ? AND used_count > 0`, *o.DiscountID); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM discount_uses WHERE order_id=?`, o.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM order_products WHERE order_id=?`, o.ID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id=?`, o.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrOrderNotFound
	}
	return tx.Commit()
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)
