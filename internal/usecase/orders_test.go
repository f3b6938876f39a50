package usecase

import (
	"context"
	"errors"
	"testing"

	domain "github.com/renanbmello/api-ecommerce/internal/entity"
)

func order(id, userID string, st domain.Status) *domain.Order {
	return &domain.Order{ID: id, UserID: userID, Status: st, Subtotal: dec("10.00"), Total: dec("10.00")}
}

func TestOrdersList(t *testing.T) {
	repo := newFakeOrderRepo(
		order("o1", "user-1", domain.StatusPending),
		order("o2", "user-1", domain.StatusCompleted),
		order("o3", "user-2", domain.StatusPending),
	)
	uc := NewOrders(repo)

	t.Run("only the caller's orders", func(t *testing.T) {
		orders, page, err := uc.List(context.Background(), "user-1", "", 0, 0)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(orders) != 2 || page.Total != 2 {
			t.Errorf("got %d orders, total %d, want 2/2", len(orders), page.Total)
		}
		if page.Page != 1 || page.Limit != 10 || page.TotalPages != 1 {
			t.Errorf("pagination defaults = %+v", page)
		}
	})

	t.Run("status filter", func(t *testing.T) {
		orders, _, err := uc.List(context.Background(), "user-1", "COMPLETED", 1, 10)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(orders) != 1 || orders[0].ID != "o2" {
			t.Errorf("orders = %+v", orders)
		}
	})

	t.Run("bad status", func(t *testing.T) {
		_, _, err := uc.List(context.Background(), "user-1", "SHIPPED", 1, 10)
		if !errors.Is(err, domain.ErrInvalidStatus) {
			t.Fatalf("List() error = %v, want %v", err, domain.ErrInvalidStatus)
		}
	})

	t.Run("page past the end", func(t *testing.T) {
		orders, page, err := uc.List(context.Background(), "user-1", "", 5, 10)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(orders) != 0 || page.Total != 2 {
			t.Errorf("got %d orders, total %d", len(orders), page.Total)
		}
	})
}

func TestOrdersGetByID(t *testing.T) {
	repo := newFakeOrderRepo(order("o1", "user-1", domain.StatusPending))
	uc := NewOrders(repo)

	t.Run("owner reads it", func(t *testing.T) {
		got, err := uc.GetByID(context.Background(), "o1", "user-1")
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if got.ID != "o1" {
			t.Errorf("got %q", got.ID)
		}
	})

	t.Run("another user is forbidden", func(t *testing.T) {
		_, err := uc.GetByID(context.Background(), "o1", "user-2")
		if !errors.Is(err, domain.ErrOrderForbidden) {
			t.Fatalf("GetByID() error = %v, want %v", err, domain.ErrOrderForbidden)
		}
	})

	t.Run("missing order", func(t *testing.T) {
		_, err := uc.GetByID(context.Background(), "nope", "user-1")
		if !errors.Is(err, domain.ErrOrderNotFound) {
			t.Fatalf("GetByID() error = %v, want %v", err, domain.ErrOrderNotFound)
		}
	})
}

func TestOrdersUpdateStatus(t *testing.T) {
	t.Run("persists the transition", func(t *testing.T) {
		repo := newFakeOrderRepo(order("o1", "user-1", domain.StatusPending))
		uc := NewOrders(repo)

		got, err := uc.UpdateStatus(context.Background(), "o1", "user-1", "PROCESSING")
		if err != nil {
			t.Fatalf("UpdateStatus() error = %v", err)
		}
		if got.Status != domain.StatusProcessing {
			t.Errorf("Status = %s, want PROCESSING", got.Status)
		}
	})

	t.Run("rejects unknown status before loading", func(t *testing.T) {
		uc := NewOrders(newFakeOrderRepo())
		_, err := uc.UpdateStatus(context.Background(), "o1", "user-1", "SHIPPED")
		if !errors.Is(err, domain.ErrInvalidStatus) {
			t.Fatalf("UpdateStatus() error = %v, want %v", err, domain.ErrInvalidStatus)
		}
	})

	t.Run("not the owner", func(t *testing.T) {
		repo := newFakeOrderRepo(order("o1", "user-1", domain.StatusPending))
		uc := NewOrders(repo)
		_, err := uc.UpdateStatus(context.Background(), "o1", "user-2", "CANCELLED")
		if !errors.Is(err, domain.ErrOrderForbidden) {
			t.Fatalf("UpdateStatus() error = %v, want %v", err, domain.ErrOrderForbidden)
		}
	})
}

func TestOrdersDelete(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.Status
		userID  string
		wantErr error
	}{
		{name: "pending is deletable", status: domain.StatusPending, userID: "user-1"},
		{name: "cancelled is deletable", status: domain.StatusCancelled, userID: "user-1"},
		{name: "processing is not", status: domain.StatusProcessing, userID: "user-1", wantErr: domain.ErrOrderNotDeletable},
		{name: "completed is not", status: domain.StatusCompleted, userID: "user-1", wantErr: domain.ErrOrderNotDeletable},
		{name: "not the owner", status: domain.StatusPending, userID: "user-2", wantErr: domain.ErrOrderForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeOrderRepo(order("o1", "user-1", tt.status))
			uc := NewOrders(repo)

			err := uc.Delete(context.Background(), "o1", tt.userID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Delete() error = %v, want %v", err, tt.wantErr)
				}
				if _, err := repo.GetByID(context.Background(), "o1"); err != nil {
					t.Error("order must survive a rejected delete")
				}
				return
			}
			if err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if _, err := repo.GetByID(context.Background(), "o1"); !errors.Is(err, domain.ErrOrderNotFound) {
				t.Error("order should be gone")
			}
		})
	}
}
