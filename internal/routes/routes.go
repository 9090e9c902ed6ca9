package routes

import (
	"giftwrap_back_end/internal/handlers/admin"
	"giftwrap_back_end/internal/handlers/payement"
	"giftwrap_back_end/internal/handlers/product"
	"giftwrap_back_end/internal/handlers/user"
	"giftwrap_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Auth
	r.POST("/api/users", middleware.RegisterRateLimit(), user.CreateUser)
	r.POST("/api/login", middleware.LoginRateLimit(), user.Login)
	r.GET("/api/verify-email", user.VerifyEmail)

	// Catalogue (public)
	r.GET("/api/products", product.GetProducts)
	r.GET("/api/products/search", product.SearchProducts)
	r.GET("/api/products/:id", product.GetProductByID)
	r.GET("/api/filters", product.GetFilters)

	// Callbacks de la passerelle de paiement (appelés hors session)
	r.GET("/payment/success/:token", payement.PaymentSuccess)
	r.GET("/payment/fail/:token", payement.PaymentFail)
	r.GET("/payment/cancel/:token", payement.PaymentCancel)

	// Routes authentifiées
	auth := r.Group("/api", middleware.AuthRequired())
	{
		auth.GET("/me", user.GetProfile)

		// Panier
		auth.GET("/cart", user.GetCart)
		auth.POST("/cart/add", user.AddToCart)
		auth.POST("/cart/qty", user.ChangeQty)
		auth.POST("/cart/select", user.ToggleSelect)
		auth.DELETE("/cart/:index", user.RemoveFromCart)
		auth.DELETE("/cart", user.ClearCart)
		auth.POST("/cart/checkout", user.CheckoutSelected)
		auth.GET("/cart/ws", user.CartWebSocket)

		// Achat
		auth.POST("/purchase", payement.PlaceOrder)
		auth.DELETE("/purchase", payement.AbandonCheckout)
		auth.GET("/purchase/status", payement.CheckoutStatus)

		// Commandes
		auth.GET("/orders", user.GetMyOrders)
		auth.GET("/orders/:id", user.GetOrderByID)

		// Rappels
		auth.POST("/reminders", user.CreateReminder)
		auth.GET("/reminders", user.GetReminders)
		auth.DELETE("/reminders/:id", user.DeleteReminder)
	}

	// Console admin
	adminGroup := r.Group("/api/admin", middleware.AuthRequired(), middleware.RequireAdmin())
	{
		adminGroup.POST("/products", admin.CreateProduct)
		adminGroup.PUT("/products/:id", admin.UpdateProduct)
		adminGroup.DELETE("/products/:id", admin.DeleteProduct)
		adminGroup.POST("/images", admin.UploadProductImages)
		adminGroup.POST("/filters", admin.CreateFilter)
		adminGroup.DELETE("/filters/:name", admin.DeleteFilter)
		adminGroup.GET("/orders", admin.GetAllOrders)
		adminGroup.PATCH("/orders/:id/delivered", admin.SetOrderDelivered)
	}
}
