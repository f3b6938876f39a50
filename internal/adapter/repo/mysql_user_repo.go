package repo

import (
	"context"
	"database/sql"

	domain "github.com/renanbmello/api-ecommerce/internal/entity"
	"github.com/renanbmello/api-ecommerce/internal/usecase"
)

type MySQLUserRepo struct{ db *sql.DB }

func NewMySQLUserRepo(db *sql.DB) *MySQLUserRepo { return &MySQLUserRepo{db: db} }

func (r *MySQLUserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id,email,password_hash,name,created_at)
VALUES (?,?,?,?,NOW())
`, u.ID, u.Email, u.PasswordHash, u.Name)
	return translate(err, domain.ErrRecordNotFound)
}

func (r *MySQLUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,email,password_hash,name,created_at
FROM users WHERE email=?`, email)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt); err != nil {
		return nil, translate(err, domain.ErrUserNotFound)
	}
	return &u, nil
}

var _ usecase.UserRepo = (*MySQLUserRepo)(nil)
