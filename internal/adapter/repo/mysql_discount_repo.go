package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/renanbmello/api-ecommerce/internal/entity"
	"github.com/renanbmello/api-ecommerce/internal/usecase"
)

type MySQLDiscountRepo struct{ db *sql.DB }

func NewMySQLDiscountRepo(db *sql.DB) *MySQLDiscountRepo { return &MySQLDiscountRepo{db: db} }

const discountColumns = `id,code,type,value,min_value,max_uses,used_count,valid_from,valid_until,active`

func scanDiscount(row interface{ Scan(...any) error }) (*domain.Discount, error) {
	var (
		d        domain.Discount
		minValue decimal.NullDecimal
		maxUses  sql.NullInt64
	)
	err := row.Scan(&d.ID, &d.Code, &d.Type, &d.Value, &minValue, &maxUses,
		&d.UsedCount, &d.ValidFrom, &d.ValidUntil, &d.Active)
	if err != nil {
		return nil, err
	}
	if minValue.Valid {
		d.MinValue = &minValue.Decimal
	}
	if maxUses.Valid {
		n := int(maxUses.Int64)
		d.MaxUses = &n
	}
	return &d, nil
}

func (r *MySQLDiscountRepo) Create(ctx context.Context, d *domain.Discount) error {
	var minValue any
	if d.MinValue != nil {
		minValue = *d.MinValue
	}
	var maxUses any
	if d.MaxUses != nil {
		maxUses = *d.MaxUses
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO discounts (id,code,type,value,min_value,max_uses,used_count,valid_from,valid_until,active)
VALUES (?,?,?,?,?,?,0,?,?,?)
`, d.ID, d.Code, d.Type, d.Value, minValue, maxUses, d.ValidFrom, d.ValidUntil, d.Active)
	return translate(err, domain.ErrRecordNotFound)
}

func (r *MySQLDiscountRepo) GetByCode(ctx context.Context, code string) (*domain.Discount, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM discounts WHERE code=?`, discountColumns), code)
	d, err := scanDiscount(row)
	if err != nil {
		return nil, translate(err, domain.ErrDiscountInvalid)
	}
	return d, nil
}

func (r *MySQLDiscountRepo) GetByID(ctx context.Context, id string) (*domain.Discount, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM discounts WHERE id=?`, discountColumns), id)
	d, err := scanDiscount(row)
	if err != nil {
		return nil, translate(err, domain.ErrRecordNotFound)
	}
	return d, nil
}

func (r *MySQLDiscountRepo) FindUse(ctx context.Context, discountID, userID string) (*domain.DiscountUse, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,discount_id,user_id,order_id,used_at
FROM discount_uses WHERE discount_id=? AND user_id=?`, discountID, userID)
	var (
		use     domain.DiscountUse
		orderID sql.NullString
	)
	if err := row.Scan(&use.ID, &use.DiscountID, &use.UserID, &orderID, &use.UsedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if orderID.Valid {
		use.OrderID = &orderID.String
	}
	return &use, nil
}

// RecordUse inserts the use row and takes one use slot in a single
// transaction. The guarded increment closes the check-then-increment
// race on max_uses.
func (r *MySQLDiscountRepo) RecordUse(ctx context.Context, use *domain.DiscountUse) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if use.ID == "" {
		use.ID = uuid.NewString()
	}
	var orderID any
	if use.OrderID != nil {
		orderID = *use.OrderID
	}
	if _, err := tx.ExecContext(ctx, `
INSERT INTO discount_uses (id,discount_id,user_id,order_id,used_at)
VALUES (?,?,?,?,?)`, use.ID, use.DiscountID, use.UserID, orderID, use.UsedAt); err != nil {
		return translate(err, domain.ErrRecordNotFound)
	}

	res, err := tx.ExecContext(ctx, `
UPDATE discounts SET used_count = used_count + 1
WHERE id = ? AND (max_uses IS NULL OR used_count < max_uses)`, use.DiscountID)
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

	return tx.Commit()
}

var _ usecase.DiscountRepo = (*MySQLDiscountRepo)(nil)
