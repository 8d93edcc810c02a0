package routes

import (
	"time"

	"hearthside_back_end/internal/handlers/admin"
	"hearthside_back_end/internal/handlers/delivery"
	"hearthside_back_end/internal/handlers/invoice"
	"hearthside_back_end/internal/handlers/payment"
	"hearthside_back_end/internal/handlers/product"
	"hearthside_back_end/internal/handlers/user"
	"hearthside_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint. Three tiers: public storefront,
// authenticated customer, admin back office.
func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// --- Public storefront ---
	api.GET("/products", product.GetAllProducts)
	api.GET("/products/search", product.SearchProducts)
	api.GET("/products/:slug", product.GetProductBySlug)
	api.GET("/categories", product.GetAllCategories)
	api.GET("/payment-methods", payment.GetActivePaymentMethods)
	api.GET("/delivery/quote", middleware.RateLimit("quote", 60, time.Minute), delivery.QuoteDelivery)

	// --- Customer (JWT required) ---
	auth := api.Group("")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/cart", user.GetCart)
		auth.POST("/cart/add", user.AddToCart)
		auth.PUT("/cart/items/:id", user.UpdateCartItem)
		auth.DELETE("/cart/items/:id", user.RemoveCartItem)
		auth.DELETE("/cart", user.ClearCart)

		auth.POST("/orders", middleware.RateLimit("checkout", 10, time.Minute), user.PlaceOrder)
		auth.GET("/orders", user.GetMyOrders)
		auth.GET("/orders/:id", user.GetOrderByID)
		auth.POST("/orders/:id/payment-proof", user.UploadPaymentProof)
	}

	// --- Admin back office ---
	adm := api.Group("/admin")
	adm.Use(middleware.AuthRequired(), middleware.RequireAdmin())
	{
		adm.GET("/orders", admin.GetAllOrders)
		adm.GET("/orders/stats", admin.GetOrderStats)
		adm.POST("/orders/reconcile", admin.ReconcileOrders)
		adm.GET("/orders/:id", admin.GetOrderDetail)
		adm.PUT("/orders/:id/status", admin.UpdateOrderStatus)
		adm.PUT("/orders/:id/payment-status", admin.UpdatePaymentStatus)
		adm.GET("/orders/:id/invoice", invoice.DownloadInvoice)

		adm.POST("/products", admin.CreateProduct)
		adm.PUT("/products/:id", admin.UpdateProduct)
		adm.DELETE("/products/:id", admin.DeleteProduct)
		adm.POST("/products/:id/image", admin.UploadProductImage)

		adm.POST("/categories", admin.CreateCategory)
		adm.PUT("/categories/:id", admin.UpdateCategory)
		adm.DELETE("/categories/:id", admin.DeleteCategory)

		adm.GET("/payment-methods", admin.GetAllPaymentMethods)
		adm.POST("/payment-methods", admin.CreatePaymentMethod)
		adm.PUT("/payment-methods/:id", admin.UpdatePaymentMethod)
		adm.DELETE("/payment-methods/:id", admin.DeletePaymentMethod)
		adm.POST("/payment-methods/:id/qr", admin.GeneratePaymentMethodQR)

		adm.GET("/users", admin.GetAllUsers)
		adm.PUT("/users/:id/role", admin.UpdateUserRole)
	}
}
