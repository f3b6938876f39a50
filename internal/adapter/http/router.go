package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/renanbmello/api-ecommerce/internal/adapter/http/middleware"
	"github.com/renanbmello/api-ecommerce/internal/logging"
)

type Handlers struct {
	Auth     *AuthHandler
	Product  *ProductHandler
	Cart     *CartHandler
	Order    *OrderHandler
	Discount *DiscountHandler
}

func NewRouter(h Handlers, authz *middleware.Authz) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		logging.From(c).Info("health check")
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/auth/register", h.Auth.Register)
	r.POST("/auth/login", h.Auth.Login)

	products := r.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.GetByID)
		products.POST("", authz.Authenticate(), h.Product.Create)
		products.PUT("/:id", authz.Authenticate(), h.Product.Update)
		products.DELETE("/:id", authz.Authenticate(), h.Product.Delete)
		products.POST("/:id/stock", authz.Authenticate(), h.Product.AdjustStock)
	}

	cart := r.Group("/cart", authz.Authenticate())
	{
		cart.POST("", h.Cart.AddToCart)
		cart.GET("", h.Cart.GetCart)
		cart.GET("/total", h.Cart.CartTotal)
		cart.POST("/discount", h.Cart.ApplyDiscount)
		cart.DELETE("/:productId", h.Cart.RemoveFromCart)
		cart.DELETE("", h.Cart.ClearCart)
	}

	orders := r.Group("/orders", authz.Authenticate())
	{
		orders.POST("", h.Order.CreateOrder)
		orders.GET("", h.Order.ListOrders)
		orders.GET("/:id", h.Order.GetOrderByID)
		orders.PUT("/:id", h.Order.UpdateOrder)
		orders.DELETE("/:id", h.Order.DeleteOrder)
	}

	r.POST("/discounts", authz.Authenticate(), h.Discount.Create)

	return r
}
