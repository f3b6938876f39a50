package domain

// Cart is 1:1 with a user, created lazily on first add.
// Clearing empties it; the row itself is never deleted.
type Cart struct {
	ID       string
	UserID   string
	Products []CartProduct
}

// CartProduct is one line item. Product carries the current snapshot
// when the cart was loaded with its products joined in.
type CartProduct struct {
	CartID    string
	ProductID string
	Product   *Product
}

func (c *Cart) Empty() bool { return len(c.Products) == 0 }

func (c *Cart) Contains(productID string) bool {
	for _, p := range c.Products {
		if p.ProductID == productID {
			return true
		}
	}
	return false
}
