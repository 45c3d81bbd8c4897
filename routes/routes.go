// Package routes maps the HTTP surface onto the controllers.
package routes

import (
	"net/http"
	"time"

	"storefront-service/controllers"
	"storefront-service/middleware"
	"storefront-service/pkg/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Controllers bundles every handler group the router needs.
type Controllers struct {
	Catalog *controllers.CatalogController
	Session *controllers.SessionController
	Admin   *controllers.AdminController
	Orders  *controllers.OrderController
}

// Options carries the settings the route-level middleware needs.
type Options struct {
	Tokens       *auth.Tokens
	SessionTTL   time.Duration
	SecureCookie bool
	Logger       *zap.Logger
}

func RegisterRoutes(r *gin.Engine, ctrl Controllers, opts Options) {
	controllers.RegisterValidators()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	r.GET("/products", ctrl.Catalog.GetProducts)
	r.GET("/products/new", ctrl.Catalog.GetNewArrivals)
	r.GET("/products/:id", ctrl.Catalog.GetProduct)
	r.GET("/products/:id/related", ctrl.Catalog.GetRelated)
	r.GET("/products/:id/decant", ctrl.Catalog.GetDecantQuote)
	r.GET("/collections", ctrl.Catalog.GetCollections)
	r.GET("/brands", ctrl.Catalog.GetBrands)
	r.GET("/shipping/wilayas", ctrl.Catalog.GetWilayas)
	r.GET("/shipping/quote", ctrl.Catalog.GetShippingQuote)

	shopper := r.Group("/", middleware.Session(opts.SessionTTL, opts.SecureCookie))
	{
		shopper.GET("/cart", ctrl.Session.GetCart)
		shopper.POST("/cart/items", ctrl.Session.AddCartItem)
		shopper.PUT("/cart/items/:product_id", ctrl.Session.UpdateCartItem)
		shopper.DELETE("/cart/items/:product_id", ctrl.Session.RemoveCartItem)
		shopper.DELETE("/cart", ctrl.Session.ClearCart)

		shopper.GET("/favorites", ctrl.Session.GetFavorites)
		shopper.POST("/favorites", ctrl.Session.AddFavorite)
		shopper.GET("/favorites/:product_id", ctrl.Session.IsFavorite)
		shopper.DELETE("/favorites/:product_id", ctrl.Session.RemoveFavorite)

		shopper.POST("/checkout", ctrl.Session.Checkout)
		shopper.DELETE("/session", ctrl.Session.EndSession)
	}

	r.POST("/admin/login", ctrl.Admin.Login)

	admin := r.Group("/admin", middleware.AdminAuth(opts.Tokens, opts.Logger))
	{
		admin.GET("/dashboard", ctrl.Orders.GetDashboard)

		admin.GET("/products", ctrl.Admin.ListProducts)
		admin.POST("/products", ctrl.Admin.CreateProduct)
		admin.PUT("/products/:id", ctrl.Admin.UpdateProduct)
		admin.DELETE("/products/:id", ctrl.Admin.DeleteProduct)

		admin.GET("/collections", ctrl.Admin.ListCollections)
		admin.POST("/collections", ctrl.Admin.CreateCollection)
		admin.PUT("/collections/:id", ctrl.Admin.UpdateCollection)
		admin.DELETE("/collections/:id", ctrl.Admin.DeleteCollection)

		admin.GET("/brands", ctrl.Admin.ListBrands)
		admin.POST("/brands", ctrl.Admin.CreateBrand)
		admin.PUT("/brands/:id", ctrl.Admin.UpdateBrand)
		admin.DELETE("/brands/:id", ctrl.Admin.DeleteBrand)

		admin.GET("/orders", ctrl.Orders.GetOrders)
		admin.GET("/orders/statuses", ctrl.Orders.GetStatuses)
		admin.GET("/orders/:id", ctrl.Orders.GetOrder)
		admin.PATCH("/orders/:id/status", ctrl.Orders.UpdateStatus)
		admin.DELETE("/orders/:id", ctrl.Orders.DeleteOrder)

		admin.POST("/images", ctrl.Admin.UploadImage)
	}
}
