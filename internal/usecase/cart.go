package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	domain "github.com/renanbmello/api-ecommerce/internal/entity"
)

// Carts owns the per-user cart: add/remove/clear line items and totals.
type Carts struct {
	carts    CartRepo
	products ProductRepo
}

func NewCarts(carts CartRepo, products ProductRepo) *Carts {
	return &Carts{carts: carts, products: products}
}

// AddItem puts a product in the user's cart, creating the cart on first
// use. Duplicate products and products without stock are rejected.
func (s *Carts) AddItem(ctx context.Context, userID, productID string) (*domain.CartProduct, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.InStock() {
		return nil, domain.ErrOutOfStock
	}

	cart, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, domain.ErrCartNotFound) {
		cart, err = s.carts.CreateForUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	if cart.Contains(productID) {
		return nil, domain.ErrAlreadyInCart
	}

	item, err := s.carts.AddProduct(ctx, cart.ID, productID)
	if err != nil {
		// unique (cart_id, product_id) key lost a race with a
		// concurrent add of the same product
		if errors.Is(err, domain.ErrUniqueViolation) {
			return nil, domain.ErrAlreadyInCart
		}
		return nil, err
	}
	item.Product = product
	return item, nil
}

func (s *Carts) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.carts.GetByUser(ctx, userID)
}

// RemoveItem takes one product out of the cart and returns the removed
// line item.
func (s *Carts) RemoveItem(ctx context.Context, userID, productID string) (*domain.CartProduct, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var removed *domain.CartProduct
	for i := range cart.Products {
		if cart.Products[i].ProductID == productID {
			removed = &cart.Products[i]
			break
		}
	}
	if removed == nil {
		return nil, domain.ErrNotInCart
	}
	if err := s.carts.RemoveProduct(ctx, cart.ID, productID); err != nil {
		return nil, err
	}
	return removed, nil
}

// Clear deletes every line item atomically and returns the emptied cart.
func (s *Carts) Clear(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.carts.ClearProducts(ctx, cart.ID); err != nil {
		return nil, err
	}
	cart.Products = nil
	return cart, nil
}

type CartTotal struct {
	Total     decimal.Decimal
	ItemCount int
	Items     []CartTotalItem
}

type CartTotalItem struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
}

// Total computes the cart subtotal. A cart that exists but is empty
// totals {0, 0, []}; a user without a cart fails ErrCartNotFound.
func (s *Carts) Total(ctx context.Context, userID string) (*CartTotal, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := &CartTotal{Total: decimal.Zero, Items: []CartTotalItem{}}
	if cart.Empty() {
		return result, nil
	}

	total, err := Subtotal(cart.Products)
	if err != nil {
		return nil, err
	}
	result.Total = total
	result.ItemCount = len(cart.Products)
	for _, it := range cart.Products {
		result.Items = append(result.Items, CartTotalItem{
			ProductID: it.ProductID,
			Name:      it.Product.Name,
			Price:     it.Product.Price,
		})
	}
	return result, nil
}
