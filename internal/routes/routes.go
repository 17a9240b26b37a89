package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	handler "business-management-backend/internal/handlers"
	"business-management-backend/internal/middleware"
	"business-management-backend/internal/repository"
	"business-management-backend/internal/services/auth"
	"business-management-backend/internal/services/billing"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, jwtSecret []byte) {
	customerRepo := repository.NewCustomerRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	itemRepo := repository.NewInvoiceItemRepository(db)
	userRepo := repository.NewUserRepository(db)

	billingService := billing.NewService(customerRepo, invoiceRepo, itemRepo)
	authService := auth.NewService(userRepo, jwtSecret)

	authHandler := handler.NewAuthHandler(authService)
	customerHandler := handler.NewCustomerHandler(billingService)
	invoiceHandler := handler.NewInvoiceHandler(billingService)
	dashboardHandler := handler.NewDashboardHandler(billingService)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/session", authHandler.Session)

	// Everything below requires an authenticated session
	authed := api.Group("")
	authed.Use(middleware.RequireSession(authService))

	customers := authed.Group("/customers")
	{
		customers.GET("", customerHandler.List)
		customers.POST("", customerHandler.Create)
		customers.GET("/:id", customerHandler.Get)
	}

	invoices := authed.Group("/invoices")
	{
		invoices.GET("", invoiceHandler.List)
		invoices.POST("", invoiceHandler.Create)
		invoices.GET("/:id", invoiceHandler.Get)
		invoices.GET("/:id/pdf", invoiceHandler.DownloadPDF)
	}

	authed.GET("/dashboard", dashboardHandler.Summary)
	authed.GET("/settings", dashboardHandler.Settings)
}
