package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/renanbmello/api-ecommerce/internal/entity"
	"github.com/renanbmello/api-ecommerce/internal/logging"
	"github.com/renanbmello/api-ecommerce/internal/usecase"
)

// respondError is the single place application errors become HTTP. The
// domain taxonomy carries its own status; anything unrecognized is a 500
// with details only outside release mode.
func respondError(c *gin.Context, err error) {
	var appErr *domain.Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{"message": appErr.Message})
		return
	}
	if errors.Is(err, usecase.ErrDuplicate) {
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
		return
	}

	logging.From(c).Error("unhandled error", "err", err.Error())
	body := gin.H{"message": "Internal server error"}
	if gin.Mode() != gin.ReleaseMode {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

// userID reads the authenticated user set by the authz middleware.
func userID(c *gin.Context) (string, bool) {
	id := c.GetString("userID")
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": domain.ErrNotAuthenticated.Message})
		return "", false
	}
	return id, true
}

func productJSON(p *domain.Product) gin.H {
	return gin.H{
		"id":    p.ID,
		"name":  p.Name,
		"price": p.Price,
		"stock": p.Stock,
	}
}

func cartProductJSON(cp *domain.CartProduct) gin.H {
	out := gin.H{
		"cartId":    cp.CartID,
		"productId": cp.ProductID,
	}
	if cp.Product != nil {
		out["product"] = productJSON(cp.Product)
	}
	return out
}

func cartJSON(cart *domain.Cart) gin.H {
	products := make([]gin.H, 0, len(cart.Products))
	for i := range cart.Products {
		products = append(products, cartProductJSON(&cart.Products[i]))
	}
	return gin.H{
		"id":       cart.ID,
		"userId":   cart.UserID,
		"products": products,
	}
}

func orderJSON(o *domain.Order) gin.H {
	products := make([]gin.H, 0, len(o.Products))
	for _, op := range o.Products {
		if op.Product != nil {
			products = append(products, gin.H{
				"id":    op.Product.ID,
				"name":  op.Product.Name,
				"price": op.Product.Price,
			})
		} else {
			products = append(products, gin.H{"id": op.ProductID, "price": op.Price})
		}
	}
	out := gin.H{
		"id":        o.ID,
		"status":    o.Status,
		"subtotal":  o.Subtotal,
		"total":     o.Total,
		"createdAt": o.CreatedAt,
		"products":  products,
	}
	if o.Discount != nil {
		out["discount"] = gin.H{
			"code":  o.Discount.Code,
			"type":  o.Discount.Type,
			"value": o.Discount.Value,
		}
	} else {
		out["discount"] = nil
	}
	return out
}
