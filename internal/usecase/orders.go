package usecase

import (
	"context"

	domain "github.com/renanbmello/api-ecommerce/internal/entity"
)

// Orders covers the post-checkout lifecycle: list, retrieve, status
// transitions and deletion, all scoped to the owning user.
type Orders struct {
	repo OrderRepo
}

func NewOrders(repo OrderRepo) *Orders {
	return &Orders{repo: repo}
}

type Pagination struct {
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// List returns the user's orders, newest first, optionally filtered by
// status.
func (s *Orders) List(ctx context.Context, userID, status string, page, limit int) ([]domain.Order, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var filter *domain.Status
	if status != "" {
		st, err := domain.ParseStatus(status)
		if err != nil {
			return nil, Pagination{}, err
		}
		filter = &st
	}

	orders, total, err := s.repo.ListByUser(ctx, userID, filter, (page-1)*limit, limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	return orders, Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

func (s *Orders) GetByID(ctx context.Context, orderID, userID string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.OwnedBy(userID) {
		return nil, domain.ForbiddenOrder("access")
	}
	return order, nil
}

// UpdateStatus persists a new status after ownership and enum checks and
// returns the reloaded order with products and discount.
func (s *Orders) UpdateStatus(ctx context.Context, orderID, userID, status string) (*domain.Order, error) {
	st, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.OwnedBy(userID) {
		return nil, domain.ForbiddenOrder("update")
	}

	if err := s.repo.UpdateStatus(ctx, orderID, st); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, orderID)
}

// Delete removes a PENDING or CANCELLED order. The repo deletes the
// order, its line items and discount-use rows and gives back the
// discount's use slot in one transaction.
func (s *Orders) Delete(ctx context.Context, orderID, userID string) error {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.OwnedBy(userID) {
		return domain.ForbiddenOrder("delete")
	}
	if !order.Deletable() {
		return domain.ErrOrderNotDeletable
	}
	return s.repo.Delete(ctx, order)
}
