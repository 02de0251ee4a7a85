package http

import (
	"github.com/faisalawaludin/kasir-chain/internal/adapter/http/middleware"
	"github.com/faisalawaludin/kasir-chain/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Cart    *CartHandler
	Catalog *CatalogHandler
	Orders  *OrderHandler
	Queue   *QueueHandler
	Voucher *VoucherHandler
}

func NewRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		// storefront
		v1.GET("/catalog/products", h.Catalog.ListProducts)
		v1.GET("/catalog/categories", h.Catalog.ListCategories)

		v1.GET("/cart", h.Cart.GetCart)
		v1.POST("/cart/items", h.Cart.AddItem)
		v1.POST("/cart/items/increase", h.Cart.IncreaseQuantity)
		v1.POST("/cart/items/decrease", h.Cart.DecreaseQuantity)
		v1.DELETE("/cart/items", h.Cart.RemoveItem)
		v1.DELETE("/cart", h.Cart.ClearCart)

		v1.POST("/vouchers/resolve", h.Cart.ResolveVoucher)
		v1.POST("/checkout", h.Cart.Checkout)

		// kitchen / pickup queue
		v1.GET("/queue", h.Queue.ListCurrent)
		v1.GET("/queue/stats", h.Queue.Stats)
		v1.PATCH("/queue/:id/status", h.Queue.SetStatus)
		v1.PATCH("/queue/:id/estimate", h.Queue.SetEstimate)
		v1.DELETE("/queue/:id", h.Queue.Remove)

		admin := v1.Group("/admin")
		{
			admin.GET("/orders", h.Orders.ListOrders)
			admin.GET("/orders/:id", h.Orders.GetOrder)
			admin.POST("/orders/:id/accept", h.Orders.AcceptOrder)
			admin.POST("/orders/:id/complete", h.Orders.CompleteOrder)
			admin.POST("/orders/:id/cancel", h.Orders.CancelOrder)
			admin.DELETE("/orders/:id", h.Orders.DeleteOrder)

			admin.POST("/products", h.Catalog.CreateProduct)
			admin.PUT("/products/:id", h.Catalog.UpdateProduct)
			admin.DELETE("/products/:id", h.Catalog.DeleteProduct)

			admin.POST("/categories", h.Catalog.CreateCategory)
			admin.PUT("/categories/:id", h.Catalog.UpdateCategory)
			admin.DELETE("/categories/:id", h.Catalog.DeleteCategory)

			admin.GET("/vouchers", h.Voucher.List)
			admin.POST("/vouchers", h.Voucher.Create)
			admin.PUT("/vouchers/:id", h.Voucher.Update)
			admin.DELETE("/vouchers/:id", h.Voucher.Delete)
		}
	}

	return r
}
