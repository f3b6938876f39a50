package domain

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// Error is a business-rule failure carrying the HTTP status it maps to.
// Handlers serialize it directly; everything else becomes a 500.
type Error struct {
	Code    string // stable machine-readable kind
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches on Code so errors.Is works against the sentinels below
// even when the message was customized (e.g. names a product).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func newError(code string, status int, msg string) *Error {
	return &Error{Code: code, Status: status, Message: msg}
}

var (
	ErrNotAuthenticated   = newError("unauthenticated", http.StatusUnauthorized, "User not authenticated")
	ErrInvalidCredentials = newError("invalid_credentials", http.StatusUnauthorized, "Invalid credentials")
	ErrUserNotFound       = newError("user_not_found", http.StatusNotFound, "User not found")

	ErrProductNotFound = newError("product_not_found", http.StatusNotFound, "Product not found")
	ErrOutOfStock      = newError("out_of_stock", http.StatusBadRequest, "Product out of stock")
	ErrInvalidPrice    = newError("invalid_price", http.StatusBadRequest, "Invalid product price")
	ErrInvalidStock    = newError("invalid_stock", http.StatusBadRequest, "Stock cannot be negative")

	ErrCartNotFound   = newError("cart_not_found", http.StatusNotFound, "Cart not found")
	ErrAlreadyInCart  = newError("already_in_cart", http.StatusBadRequest, "Product already in cart")
	ErrNotInCart      = newError("not_in_cart", http.StatusNotFound, "Product not found in cart")
	ErrCartEmpty      = newError("cart_empty", http.StatusBadRequest, "Cart is empty")

	ErrDiscountInvalid  = newError("discount_invalid", http.StatusBadRequest, "Invalid or expired discount code")
	ErrDiscountUsed     = newError("discount_used", http.StatusBadRequest, "Discount code already used by this user")
	ErrDiscountMaxUses  = newError("discount_max_uses", http.StatusBadRequest, "Discount code has reached maximum uses")
	ErrDiscountBelowMin = newError("discount_below_min", http.StatusBadRequest, "Cart total below discount minimum")
	ErrDiscountType     = newError("discount_type", http.StatusBadRequest, "Invalid discount type")

	ErrOrderNotFound     = newError("order_not_found", http.StatusNotFound, "Order not found")
	ErrOrderForbidden    = newError("order_forbidden", http.StatusForbidden, "You are not authorized to access this order")
	ErrInvalidStatus     = newError("invalid_status", http.StatusBadRequest, "Invalid order status")
	ErrOrderNotDeletable = newError("order_not_deletable", http.StatusBadRequest, "Only cancelled or pending orders can be deleted")

	ErrUniqueViolation = newError("unique_violation", http.StatusBadRequest, "Unique constraint violation")
	ErrForeignKey      = newError("foreign_key", http.StatusBadRequest, "Foreign key constraint violation")
	ErrRecordNotFound  = newError("record_not_found", http.StatusNotFound, "Record not found")
)

// OutOfStockProduct names the offending product, matching ErrOutOfStock
// under errors.Is.
func OutOfStockProduct(name string) *Error {
	return newError(ErrOutOfStock.Code, ErrOutOfStock.Status,
		fmt.Sprintf("Product %s is out of stock", name))
}

// BelowMinimum carries the discount's minimum cart value in the message.
func BelowMinimum(min decimal.Decimal) *Error {
	return newError(ErrDiscountBelowMin.Code, ErrDiscountBelowMin.Status,
		fmt.Sprintf("Cart total must be at least %s to use this discount", min.StringFixed(2)))
}

// ForbiddenOrder customizes the action verb ("update", "delete").
func ForbiddenOrder(action string) *Error {
	return newError(ErrOrderForbidden.Code, ErrOrderForbidden.Status,
		fmt.Sprintf("You are not authorized to %s this order", action))
}
