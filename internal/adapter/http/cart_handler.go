package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/renanbmello/api-ecommerce/internal/adapter/http/middleware"
	"github.com/renanbmello/api-ecommerce/internal/usecase"
)

type CartHandler struct {
	carts     *usecase.Carts
	discounts *usecase.Discounts
}

func NewCartHandler(carts *usecase.Carts, discounts *usecase.Discounts) *CartHandler {
	return &CartHandler{carts: carts, discounts: discounts}
}

type addToCartReq struct {
	ProductID string `json:"productId" binding:"required"`
}

// POST /cart
func (h *CartHandler) AddToCart(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req addToCartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product ID is required"})
		return
	}

	item, err := h.carts.AddItem(c.Request.Context(), uid, req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cartProductJSON(item))
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	cart, err := h.carts.Get(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartJSON(cart))
}

// DELETE /cart/:productId
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	removed, err := h.carts.RemoveItem(c.Request.Context(), uid, c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Product removed from cart successfully",
		"removedProduct": cartProductJSON(removed),
	})
}

// DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	cart, err := h.carts.Clear(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"cart":    cartJSON(cart),
	})
}

// GET /cart/total
func (h *CartHandler) CartTotal(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	total, err := h.carts.Total(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]gin.H, 0, len(total.Items))
	for _, it := range total.Items {
		items = append(items, gin.H{
			"productId": it.ProductID,
			"name":      it.Name,
			"price":     it.Price,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"total":     total.Total,
		"itemCount": total.ItemCount,
		"items":     items,
		"currency":  usecase.Currency,
	})
}

type applyDiscountReq struct {
	DiscountCode string `json:"discountCode" binding:"required"`
}

// POST /cart/discount
func (h *CartHandler) ApplyDiscount(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req applyDiscountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Discount code is required"})
		return
	}

	preview, err := h.discounts.ApplyToCart(c.Request.Context(), uid, req.DiscountCode)
	if err != nil {
		middleware.ObserveDiscountApply("rejected")
		respondError(c, err)
		return
	}
	middleware.ObserveDiscountApply("applied")

	c.JSON(http.StatusOK, gin.H{
		"subtotal":       preview.Subtotal,
		"discountAmount": preview.DiscountAmount,
		"total":          preview.Total,
		"discount": gin.H{
			"code":     preview.Discount.Code,
			"type":     preview.Discount.Type,
			"value":    preview.Discount.Value,
			"minValue": preview.Discount.MinValue,
		},
		"message": "Discount applied successfully",
	})
}
