package routes

import (
	"time"

	"rewardify-backend/firebase"
	"rewardify-backend/handlers"
	"rewardify-backend/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, storage firebase.StorageClient) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	profileHandler := &handlers.ProfileHandler{DB: db, Storage: storage}
	customerHandler := &handlers.CustomerHandler{DB: db}
	transactionHandler := &handlers.TransactionHandler{DB: db}
	policyHandler := &handlers.RewardPolicyHandler{DB: db}
	promotionHandler := &handlers.PromotionHandler{DB: db, Storage: storage}
	employeeHandler := &handlers.EmployeeHandler{DB: db}
	giftCardHandler := &handlers.GiftCardHandler{DB: db}
	invoiceHandler := &handlers.InvoiceHandler{DB: db}
	overviewHandler := &handlers.OverviewHandler{DB: db}
	subscriptionHandler := &handlers.SubscriptionHandler{DB: db}

	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		auth.Use(authLimiter.Middleware())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/employee-login", authHandler.EmployeeLogin)
			auth.POST("/refresh", authHandler.RefreshTokenHandler)
		}

		// shared invoice links carry an unguessable reference
		api.GET("/invoices/:reference", invoiceHandler.GetInvoiceByReference)
	}

	// Protected routes (vendor or employee token)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/overview", overviewHandler.GetOverview)

		customers := protected.Group("/customers")
		customers.Use(middleware.RequirePermission(db, "canManageCustomers"))
		{
			customers.POST("", customerHandler.CreateCustomer)
			customers.GET("", customerHandler.GetCustomers)
			customers.GET("/:id", customerHandler.GetCustomer)
			customers.PUT("/:id", customerHandler.UpdateCustomer)
			customers.DELETE("/:id", customerHandler.DeleteCustomer)
			customers.GET("/:id/rewards", customerHandler.GetCustomerRewards)
		}

		viewTx := protected.Group("/transactions")
		viewTx.Use(middleware.RequirePermission(db, "canViewTransactions"))
		{
			viewTx.GET("", transactionHandler.GetTransactions)
			viewTx.GET("/:id", transactionHandler.GetTransaction)
		}

		writeTx := protected.Group("/transactions")
		writeTx.Use(middleware.RequirePermission(db, "canCreateTransactions"))
		{
			writeTx.POST("", transactionHandler.CreateTransaction)
			writeTx.PUT("/:id", transactionHandler.UpdateTransaction)
			writeTx.DELETE("/:id", transactionHandler.DeleteTransaction)
			writeTx.POST("/:id/invoice", invoiceHandler.GenerateInvoice)
		}

		protected.GET("/promotions", promotionHandler.GetPromotions)
		protected.GET("/promotions/:id", promotionHandler.GetPromotion)
		protected.GET("/gift-cards", giftCardHandler.GetGiftCards)
		protected.GET("/gift-cards/:id", giftCardHandler.GetGiftCard)
		protected.POST("/gift-cards/redeem", giftCardHandler.RedeemGiftCard)
	}

	// Vendor-only routes (no employee tokens)
	vendor := api.Group("")
	vendor.Use(middleware.AuthMiddleware())
	vendor.Use(middleware.VendorMiddleware())
	{
		vendor.GET("/profile", profileHandler.GetProfile)
		vendor.PUT("/profile", profileHandler.UpdateProfile)
		vendor.PUT("/profile/settings", profileHandler.UpdateSettings)
		vendor.POST("/profile/logo", profileHandler.UploadCompanyLogo)

		vendor.GET("/reward-policy", policyHandler.GetRewardPolicy)
		vendor.PUT("/reward-policy", policyHandler.UpsertRewardPolicy)

		vendor.POST("/promotions", promotionHandler.CreatePromotion)
		vendor.PUT("/promotions/:id", promotionHandler.UpdatePromotion)
		vendor.DELETE("/promotions/:id", promotionHandler.DeletePromotion)
		vendor.POST("/promotions/:id/images", promotionHandler.UploadPromotionImage)

		vendor.POST("/employees", employeeHandler.InviteEmployee)
		vendor.GET("/employees", employeeHandler.GetEmployees)
		vendor.PUT("/employees/:id", employeeHandler.UpdateEmployee)
		vendor.DELETE("/employees/:id", employeeHandler.DeleteEmployee)

		vendor.POST("/gift-cards", giftCardHandler.CreateGiftCard)
		vendor.DELETE("/gift-cards/:id", giftCardHandler.DeleteGiftCard)

		vendor.GET("/subscription", subscriptionHandler.GetSubscription)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
