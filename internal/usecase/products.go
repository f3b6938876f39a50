package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/renanbmello/api-ecommerce/internal/entity"
)

// Products is the admin-facing catalog CRUD.
type Products struct {
	repo ProductRepo
}

func NewProducts(repo ProductRepo) *Products {
	return &Products{repo: repo}
}

type CreateProductInput struct {
	Name  string
	Price decimal.Decimal
	Stock int
}

func (s *Products) Create(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	p := &domain.Product{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Price:     in.Price.Round(2),
		Stock:     in.Stock,
		CreatedAt: time.Now(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Products) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Products) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

type UpdateProductInput struct {
	Name  *string
	Price *decimal.Decimal
	Stock *int
}

// Update patches the provided fields only.
func (s *Products) Update(ctx context.Context, id string, in UpdateProductInput) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Price != nil {
		p.Price = in.Price.Round(2)
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Products) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// AdjustStock applies a signed delta; the storage-level guard rejects
// any adjustment that would take stock below zero.
func (s *Products) AdjustStock(ctx context.Context, id string, delta int) (*domain.Product, error) {
	ok, err := s.repo.AdjustStock(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidStock
	}
	return s.repo.GetByID(ctx, id)
}
