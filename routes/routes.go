package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/toyfront/storefront-gateway/auth"
	"github.com/toyfront/storefront-gateway/controllers"
	"github.com/toyfront/storefront-gateway/middleware"
)

// Controllers groups everything the router wires up.
type Controllers struct {
	Auth      *controllers.AuthController
	Cart      *controllers.CartController
	Checkout  *controllers.CheckoutController
	Catalog   *controllers.CatalogController
	Dashboard *controllers.DashboardController
	POS       *controllers.POSController
	Webhook   *controllers.PaymentWebhookController
}

// Register wires all route groups onto the engine.
func Register(r *gin.Engine, tokens *auth.TokenService, c Controllers) {
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := r.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	{
		authGroup.POST("/login", c.Auth.Login)
	}
	authed := r.Group("/auth")
	authed.Use(middleware.AuthMiddleware(tokens))
	{
		authed.POST("/logout", c.Auth.Logout)
		authed.GET("/me", c.Auth.Me)
	}

	// Storefront catalog reads are public.
	catalog := r.Group("/catalog")
	{
		catalog.GET("/products", c.Catalog.ListProducts)
		catalog.GET("/products/:id", c.Catalog.GetProduct)
		catalog.GET("/categories", c.Catalog.ListCategories)
		catalog.GET("/collections", c.Catalog.ListCollections)
	}

	cart := r.Group("/cart")
	cart.Use(middleware.AuthMiddleware(tokens))
	{
		cart.GET("/", c.Cart.GetCart)
		cart.POST("/add", c.Cart.AddItem)
		cart.PUT("/quantity", c.Cart.UpdateQuantity)
		cart.DELETE("/remove/:product_id", c.Cart.RemoveItem)
		cart.DELETE("/clear", c.Cart.ClearCart)
	}

	checkout := r.Group("/checkout")
	checkout.Use(middleware.AuthMiddleware(tokens))
	{
		checkout.GET("/", c.Checkout.GetSession)
		checkout.GET("/address", c.Checkout.SavedAddress)
		checkout.GET("/shipping-zones", c.Checkout.ShippingZones)
		checkout.POST("/delivery", c.Checkout.SetDelivery)
		checkout.POST("/shipping", c.Checkout.SetShipping)
		checkout.POST("/coupon", c.Checkout.ApplyCoupon)
		checkout.POST("/order", c.Checkout.PlaceOrder)
	}

	// Back-office routes are gated per permission.
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokens))
	{
		admin.POST("/products", middleware.RequirePermission("edit_products"), c.Catalog.CreateProduct)
		admin.PUT("/products/:id", middleware.RequirePermission("edit_products"), c.Catalog.UpdateProduct)
		admin.DELETE("/products/:id", middleware.RequirePermission("delete_products"), c.Catalog.DeleteProduct)
		admin.PUT("/products/:id/stock", middleware.RequirePermission("manage_inventory"), c.Catalog.UpdateStock)

		admin.GET("/orders", middleware.RequirePermission("view_orders"), c.Catalog.ListOrders)
		admin.GET("/orders/:id", middleware.RequirePermission("view_orders"), c.Catalog.GetOrder)
		admin.PUT("/orders/:id/status", middleware.RequirePermission("edit_orders"), c.Catalog.UpdateOrderStatus)

		admin.GET("/customers", middleware.RequirePermission("view_customers"), c.Catalog.ListCustomers)
		admin.GET("/customers/:id", middleware.RequirePermission("view_customers"), c.Catalog.GetCustomer)
		admin.PUT("/customers/:id", middleware.RequirePermission("edit_customers"), c.Catalog.UpdateCustomer)

		// Staff enrollment feeds the POS login below.
		admin.POST("/staff", middleware.RequirePermission("manage_staff"), c.POS.RegisterStaff)
		admin.GET("/staff", middleware.RequirePermission("manage_staff"), c.POS.ListStaff)
		admin.PUT("/staff/:user_id/active", middleware.RequirePermission("manage_staff"), c.POS.SetStaffActive)
	}

	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware(tokens), middleware.RequirePermission("view_reports"))
	{
		dashboard.GET("/metrics", c.Dashboard.Metrics)
		dashboard.GET("/analytics", c.Dashboard.Analytics)
	}

	pos := r.Group("/pos")
	pos.Use(middleware.AuthMiddleware(tokens), middleware.RequirePermission("use_pos"))
	{
		pos.POST("/login", c.POS.StaffLogin)
		pos.POST("/orders", c.POS.CreateOrder)
		pos.GET("/orders", c.POS.RemoteOrders)
		pos.GET("/journal", c.POS.Journal)
		pos.GET("/journal/:id", c.POS.JournalEntry)
	}

	r.POST("/payments/webhook", c.Webhook.Handle)
}
