package usecase

import (
	"context"
	"fmt"

	domain "github.com/renanbmello/api-ecommerce/internal/entity"
)

// in-memory fakes shared by the usecase tests

type fakeProductRepo struct {
	products map[string]*domain.Product
}

func newFakeProductRepo(ps ...*domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*domain.Product{}}
	for _, p := range ps {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *domain.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) List(_ context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) AdjustStock(_ context.Context, id string, delta int) (bool, error) {
	p, ok := r.products[id]
	if !ok {
		return false, domain.ErrProductNotFound
	}
	if p.Stock+delta < 0 {
		return false, nil
	}
	p.Stock += delta
	return true, nil
}

type fakeCartRepo struct {
	carts  map[string]*domain.Cart // keyed by userID
	nextID int
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]*domain.Cart{}}
}

func (r *fakeCartRepo) seed(userID string, products ...*domain.Product) *domain.Cart {
	c, _ := r.CreateForUser(context.Background(), userID)
	for _, p := range products {
		c.Products = append(c.Products, domain.CartProduct{CartID: c.ID, ProductID: p.ID, Product: p})
	}
	return c
}

func (r *fakeCartRepo) GetByUser(_ context.Context, userID string) (*domain.Cart, error) {
	c, ok := r.carts[userID]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	return c, nil
}

func (r *fakeCartRepo) CreateForUser(_ context.Context, userID string) (*domain.Cart, error) {
	r.nextID++
	c := &domain.Cart{ID: fmt.Sprintf("cart-%d", r.nextID), UserID: userID}
	r.carts[userID] = c
	return c, nil
}

func (r *fakeCartRepo) AddProduct(_ context.Context, cartID, productID string) (*domain.CartProduct, error) {
	for _, c := range r.carts {
		if c.ID != cartID {
			continue
		}
		if c.Contains(productID) {
			return nil, domain.ErrUniqueViolation
		}
		item := domain.CartProduct{CartID: cartID, ProductID: productID}
		c.Products = append(c.Products, item)
		return &item, nil
	}
	return nil, domain.ErrCartNotFound
}

func (r *fakeCartRepo) RemoveProduct(_ context.Context, cartID, productID string) error {
	for _, c := range r.carts {
		if c.ID != cartID {
			continue
		}
		for i, p := range c.Products {
			if p.ProductID == productID {
				c.Products = append(c.Products[:i], c.Products[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotInCart
	}
	return domain.ErrCartNotFound
}

func (r *fakeCartRepo) ClearProducts(_ context.Context, cartID string) error {
	for _, c := range r.carts {
		if c.ID == cartID {
			c.Products = nil
			return nil
		}
	}
	return domain.ErrCartNotFound
}

type fakeDiscountRepo struct {
	discounts map[string]*domain.Discount // keyed by ID
	uses      []*domain.DiscountUse
	nextUse   int
}

func newFakeDiscountRepo(ds ...*domain.Discount) *fakeDiscountRepo {
	r := &fakeDiscountRepo{discounts: map[string]*domain.Discount{}}
	for _, d := range ds {
		r.discounts[d.ID] = d
	}
	return r
}

func (r *fakeDiscountRepo) Create(_ context.Context, d *domain.Discount) error {
	for _, existing := range r.discounts {
		if existing.Code == d.Code {
			return domain.ErrUniqueViolation
		}
	}
	r.discounts[d.ID] = d
	return nil
}

func (r *fakeDiscountRepo) GetByCode(_ context.Context, code string) (*domain.Discount, error) {
	for _, d := range r.discounts {
		if d.Code == code {
			return d, nil
		}
	}
	return nil, domain.ErrDiscountInvalid
}

func (r *fakeDiscountRepo) GetByID(_ context.Context, id string) (*domain.Discount, error) {
	d, ok := r.discounts[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return d, nil
}

func (r *fakeDiscountRepo) FindUse(_ context.Context, discountID, userID string) (*domain.DiscountUse, error) {
	for _, u := range r.uses {
		if u.DiscountID == discountID && u.UserID == userID {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeDiscountRepo) RecordUse(_ context.Context, use *domain.DiscountUse) error {
	d := r.discounts[use.DiscountID]
	if d.Exhausted() {
		return domain.ErrDiscountMaxUses
	}
	r.nextUse++
	use.ID = fmt.Sprintf("use-%d", r.nextUse)
	r.uses = append(r.uses, use)
	d.UsedCount++
	return nil
}

// fakeCheckoutStore records writes and optionally fails to let tests
// assert that nothing else was persisted.
type fakeCheckoutStore struct {
	writes  []CheckoutWrite
	failErr error
}

func (s *fakeCheckoutStore) CreateOrder(_ context.Context, w CheckoutWrite) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.writes = append(s.writes, w)
	return nil
}

type fakeIdemStore struct {
	locks    map[string]bool
	recalled map[string]string
}

func newFakeIdemStore() *fakeIdemStore {
	return &fakeIdemStore{locks: map[string]bool{}, recalled: map[string]string{}}
}

func (s *fakeIdemStore) key(scope, key string) string { return scope + "|" + key }

func (s *fakeIdemStore) TryLock(_ context.Context, scope, key string) (bool, error) {
	k := s.key(scope, key)
	if s.locks[k] {
		return false, nil
	}
	s.locks[k] = true
	return true, nil
}

func (s *fakeIdemStore) Remember(_ context.Context, scope, key, value string) error {
	s.recalled[s.key(scope, key)] = value
	return nil
}

func (s *fakeIdemStore) Recall(_ context.Context, scope, key string) (string, bool, error) {
	v, ok := s.recalled[s.key(scope, key)]
	return v, ok, nil
}

type fakeOrderCache struct {
	statuses map[string]string
}

func newFakeOrderCache() *fakeOrderCache {
	return &fakeOrderCache{statuses: map[string]string{}}
}

func (c *fakeOrderCache) SetStatus(_ context.Context, orderID, status string) error {
	c.statuses[orderID] = status
	return nil
}

func (c *fakeOrderCache) GetStatus(_ context.Context, orderID string) (string, error) {
	return c.statuses[orderID], nil
}

type fakeOrderRepo struct {
	orders map[string]*domain.Order
}

func newFakeOrderRepo(os ...*domain.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[string]*domain.Order{}}
	for _, o := range os {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID string, status *domain.Status, offset, limit int) ([]domain.Order, int, error) {
	var all []domain.Order
	for _, o := range r.orders {
		if o.UserID != userID {
			continue
		}
		if status != nil && o.Status != *status {
			continue
		}
		all = append(all, *o)
	}
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id string, to domain.Status) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = to
	return nil
}

func (r *fakeOrderRepo) UpdateStatusIf(_ context.Context, id string, from, to domain.Status) (bool, error) {
	o, ok := r.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	return true, nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, o *domain.Order) error {
	if _, ok := r.orders[o.ID]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.orders, o.ID)
	return nil
}

type fakeUserRepo struct {
	users map[string]*domain.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.Email]; ok {
		return domain.ErrUniqueViolation
	}
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}
