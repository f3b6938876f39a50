package repo

import (
	"context"
	"database/sql"

	domain "github.com/renanbmello/api-ecommerce/internal/entity"
	"github.com/renanbmello/api-ecommerce/internal/usecase"
)

type MySQLProductRepo struct{ db *sql.DB }

func NewMySQLProductRepo(db *sql.DB) *MySQLProductRepo { return &MySQLProductRepo{db: db} }

func (r *MySQLProductRepo) Create(ctx context.Context, p *domain.Product) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO products (id,name,price,stock,created_at,updated_at)
VALUES (?,?,?,?,NOW(),NOW())
`, p.ID, p.Name, p.Price, p.Stock)
	return translate(err, domain.ErrRecordNotFound)
}

func (r *MySQLProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,name,price,stock,created_at,updated_at
FROM products WHERE id=?`, id)
	var p domain.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, translate(err, domain.ErrProductNotFound)
	}
	return &p, nil
}

func (r *MySQLProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id,name,price,stock,created_at,updated_at
FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *MySQLProductRepo) Update(ctx context.Context, p *domain.Product) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE products SET name=?, price=?, stock=?, updated_at=NOW()
WHERE id=?`, p.Name, p.Price, p.Stock, p.ID)
	if err != nil {
		return translate(err, domain.ErrProductNotFound)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *MySQLProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id=?`, id)
	if err != nil {
		return translate(err, domain.ErrProductNotFound)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// AdjustStock applies delta with a non-negative guard; rows == 0 means
// the guard rejected it (or the product does not exist).
func (r *MySQLProductRepo) AdjustStock(ctx context.Context, id string, delta int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE products SET stock = stock + ?, updated_at = NOW()
WHERE id = ? AND stock + ? >= 0`, delta, id, delta)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if rows == 0 {
		// distinguish a missing product from a rejected adjustment
		if _, err := r.GetByID(ctx, id); err != nil {
			return false, err
		}
	}
	return rows > 0, nil
}

var _ usecase.ProductRepo = (*MySQLProductRepo)(nil)
