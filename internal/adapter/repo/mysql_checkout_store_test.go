package repo

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	domain "github.com/renanbmello/api-ecommerce/internal/entity"
	"github.com/renanbmello/api-ecommerce/internal/usecase"
)

func checkoutWrite() usecase.CheckoutWrite {
	price := decimal.RequireFromString("120.00")
	return usecase.CheckoutWrite{
		Order: &domain.Order{
			ID:       "order-1",
			UserID:   "user-1",
			Status:   domain.StatusPending,
			Subtotal: price,
			Total:    price,
			Products: []domain.OrderProduct{
				{OrderID: "order-1", ProductID: "p1", Price: price},
			},
		},
		CartID:        "cart-1",
		OutboxPayload: []byte(`{"orderId":"order-1"}`),
	}
}

func TestMySQLCheckoutStoreCreateOrder(t *testing.T) {
	t.Run("commits the full write set", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatal(err)
		}
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO orders").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_products").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE products SET stock = stock - 1").
			WithArgs("p1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM cart_products").
			WithArgs("cart-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO outbox").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		store := NewMySQLCheckoutStore(db)
		if err := store.CreateOrder(context.Background(), checkoutWrite()); err != nil {
			t.Fatalf("CreateOrder() error = %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})

	t.Run("rejected stock decrement rolls everything back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatal(err)
		}
		defer db.Close()

		// The guard refuses the decrement (zero rows) after the order and
		// line item were already inserted. Nothing may survive the failure.
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO orders").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_products").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE products SET stock = stock - 1").
			WithArgs("p1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT name FROM products").
			WithArgs("p1").
			WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Keyboard"))
		mock.ExpectRollback()

		store := NewMySQLCheckoutStore(db)
		err = store.CreateOrder(context.Background(), checkoutWrite())
		if !errors.Is(err, domain.ErrOutOfStock) {
			t.Fatalf("CreateOrder() error = %v, want %v", err, domain.ErrOutOfStock)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("transaction was not rolled back cleanly: %v", err)
		}
	})

	t.Run("statement failure mid transaction rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatal(err)
		}
		defer db.Close()

		boom := errors.New("mysql has gone away")
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO orders").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_products").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE products SET stock = stock - 1").
			WithArgs("p1").
			WillReturnError(boom)
		mock.ExpectRollback()

		store := NewMySQLCheckoutStore(db)
		if err := store.CreateOrder(context.Background(), checkoutWrite()); !errors.Is(err, boom) {
			t.Fatalf("CreateOrder() error = %v, want %v", err, boom)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("transaction was not rolled back cleanly: %v", err)
		}
	})
}
