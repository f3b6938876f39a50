package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	domain "github.com/renanbmello/api-ecommerce/internal/entity"
	"github.com/renanbmello/api-ecommerce/internal/usecase"
)

type MySQLCartRepo struct{ db *sql.DB }

func NewMySQLCartRepo(db *sql.DB) *MySQLCartRepo { return &MySQLCartRepo{db: db} }

// GetByUser loads the cart and joins in the current product snapshot for
// every line item.
func (r *MySQLCartRepo) GetByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id,user_id FROM carts WHERE user_id=?`, userID)
	var c domain.Cart
	if err := row.Scan(&c.ID, &c.UserID); err != nil {
		return nil, translate(err, domain.ErrCartNotFound)
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT cp.product_id, p.id, p.name, p.price, p.stock, p.created_at, p.updated_at
FROM cart_products cp
JOIN products p ON p.id = cp.product_id
WHERE cp.cart_id=?`, c.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item := domain.CartProduct{CartID: c.ID, Product: &domain.Product{}}
		p := item.Product
		if err := rows.Scan(&item.ProductID, &p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		c.Products = append(c.Products, item)
	}
	return &c, rows.Err()
}

func (r *MySQLCartRepo) CreateForUser(ctx context.Context, userID string) (*domain.Cart, error) {
	c := &domain.Cart{ID: uuid.NewString(), UserID: userID}
	_, err := r.db.ExecContext(ctx, `INSERT INTO carts (id,user_id) VALUES (?,?)`, c.ID, c.UserID)
	if err != nil {
		// lost a race with another request creating it first
		if errors.Is(translate(err, nil), domain.ErrUniqueViolation) {
			return r.GetByUser(ctx, userID)
		}
		return nil, err
	}
	return c, nil
}

func (r *MySQLCartRepo) AddProduct(ctx context.Context, cartID, productID string) (*domain.CartProduct, error) {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO cart_products (cart_id,product_id) VALUES (?,?)`, cartID, productID)
	if err != nil {
		return nil, translate(err, domain.ErrCartNotFound)
	}
	return &domain.CartProduct{CartID: cartID, ProductID: productID}, nil
}

func (r *MySQLCartRepo) RemoveProduct(ctx context.Context, cartID, productID string) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM cart_products WHERE cart_id=? AND product_id=?`, cartID, productID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotInCart
	}
	return nil
}

func (r *MySQLCartRepo) ClearProducts(ctx context.Context, cartID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_products WHERE cart_id=?`, cartID)
	return err
}

var _ usecase.CartRepo = (*MySQLCartRepo)(nil)
