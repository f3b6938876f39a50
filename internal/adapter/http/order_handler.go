package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/renanbmello/api-ecommerce/internal/adapter/http/middleware"
	"github.com/renanbmello/api-ecommerce/internal/usecase"
)

type OrderHandler struct {
	checkout *usecase.Checkout
	orders   *usecase.Orders
}

func NewOrderHandler(checkout *usecase.Checkout, orders *usecase.Orders) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders}
}

type createOrderReq struct {
	DiscountID *string `json:"discountId"`
}

// POST /orders is checkout: convert the cart into an order.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req createOrderReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "bad request"})
			return
		}
	}

	idemKey := c.GetHeader("X-Idempotency-Key") // prevent duplicated requests

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	order, err := h.checkout.Execute(ctx, usecase.CheckoutInput{
		UserID:         uid,
		DiscountID:     req.DiscountID,
		IdempotencyKey: idemKey,
	})
	if err != nil {
		middleware.ObserveCheckout("failed")
		respondError(c, err)
		return
	}
	middleware.ObserveCheckout("created")

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   orderJSON(order),
	})
}

// GET /orders/:id
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	order, err := h.orders.GetByID(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"order":   orderJSON(order),
	})
}

// GET /orders?status=&page=&limit=
func (h *OrderHandler) ListOrders(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	orders, pg, err := h.orders.List(c.Request.Context(), uid, c.Query("status"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(orders))
	for i := range orders {
		out = append(out, orderJSON(&orders[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data": gin.H{
			"orders": out,
			"pagination": gin.H{
				"total":      pg.Total,
				"page":       pg.Page,
				"limit":      pg.Limit,
				"totalPages": pg.TotalPages,
			},
		},
	})
}

type updateOrderReq struct {
	Status string `json:"status" binding:"required"`
}

// PUT /orders/:id
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req updateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order status"})
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), uid, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderJSON(order))
}

// DELETE /orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if err := h.orders.Delete(c.Request.Context(), id, uid); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Order deleted successfully",
		"orderId": id,
	})
}
