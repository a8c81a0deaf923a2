package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartbiz/smartbiz-api/internal/config"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	domainRepo "github.com/smartbiz/smartbiz-api/internal/domain/repository"
	"github.com/smartbiz/smartbiz-api/internal/presentation/http/handler"
	"github.com/smartbiz/smartbiz-api/internal/presentation/http/middleware"
	"github.com/smartbiz/smartbiz-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Business  *handler.BusinessHandler
	Product   *handler.ProductHandler
	Purchase  *handler.PurchaseHandler
	Invoice   *handler.InvoiceHandler
	Customer  *handler.CustomerHandler
	Expense   *handler.ExpenseHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerPublicRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-business rate limiter
		rateLimiter := middleware.NewBusinessRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerPublicRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
	v1.POST("/businesses/register", h.Business.Register)
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/auth/password", h.Auth.ChangePassword)

	// Everything below operates inside one business
	scoped := protected.Group("")
	scoped.Use(middleware.BusinessMiddleware())

	scoped.GET("/dashboard", h.Dashboard.Get)

	registerBusinessRoutes(scoped, h)
	registerProductRoutes(scoped, h)
	registerPurchaseRoutes(scoped, h, deps)
	registerInvoiceRoutes(scoped, h, deps)
	registerCustomerRoutes(scoped, h)
	registerExpenseRoutes(scoped, h)
	registerAdminRoutes(scoped, h)
}

func registerBusinessRoutes(scoped *gin.RouterGroup, h *Handlers) {
	business := scoped.Group("/business")
	{
		business.GET("", h.Business.GetProfile)
		business.PUT("", h.Business.UpdateProfile)
	}
}

func registerProductRoutes(scoped *gin.RouterGroup, h *Handlers) {
	products := scoped.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/categories", h.Product.Categories)
		products.GET("/low-stock", h.Product.LowStock)
		products.POST("/low-stock/notify", h.Product.NotifyLowStock)
		products.GET("/export", h.Product.ExportCSV)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
		products.POST("/:id/adjust-stock", h.Product.AdjustStock)
		products.POST("/:id/quote", h.Product.QuotePrice)
	}

	scoped.GET("/stock-transactions", h.Product.StockTransactions)
}

func registerPurchaseRoutes(scoped *gin.RouterGroup, h *Handlers, deps *Deps) {
	purchases := scoped.Group("/purchases")
	{
		purchases.GET("", h.Purchase.List)
		// Purchase creation uses idempotency middleware to prevent duplicates
		purchases.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Purchase.Create)
		purchases.GET("/export", h.Purchase.ExportCSV)
		purchases.GET("/:id", h.Purchase.Get)
		purchases.PUT("/:id", h.Purchase.Update)
		purchases.DELETE("/:id", h.Purchase.Delete)
	}
}

func registerInvoiceRoutes(scoped *gin.RouterGroup, h *Handlers, deps *Deps) {
	invoices := scoped.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		// Invoice creation uses idempotency middleware to prevent duplicates
		invoices.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Invoice.Create)
		invoices.GET("/next-number", h.Invoice.NextNumber)
		invoices.GET("/export", h.Invoice.ExportCSV)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PUT("/:id", h.Invoice.Update)
		invoices.DELETE("/:id", h.Invoice.Delete)
		invoices.POST("/:id/recalc", h.Invoice.Recalc)
		invoices.POST("/:id/payments", h.Invoice.AddPayment)
		invoices.DELETE("/:id/payments/:paymentId", h.Invoice.DeletePayment)
	}
}

func registerCustomerRoutes(scoped *gin.RouterGroup, h *Handlers) {
	customers := scoped.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerExpenseRoutes(scoped *gin.RouterGroup, h *Handlers) {
	expenses := scoped.Group("/expenses")
	{
		expenses.GET("", h.Expense.List)
		expenses.POST("", h.Expense.Create)
		expenses.GET("/:id", h.Expense.Get)
		expenses.PUT("/:id", h.Expense.Update)
		expenses.DELETE("/:id", h.Expense.Delete)
	}
}

func registerAdminRoutes(scoped *gin.RouterGroup, h *Handlers) {
	admin := scoped.Group("/admin")
	admin.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		admin.GET("/businesses", h.Business.List)
		admin.GET("/businesses/:id", h.Business.Get)
		admin.POST("/businesses/:id/approve", h.Business.Approve)
		admin.POST("/businesses/:id/reject", h.Business.Reject)
	}
}
