package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/smartbiz/smartbiz-api/internal/application/service"
	"github.com/smartbiz/smartbiz-api/internal/config"
	"github.com/smartbiz/smartbiz-api/internal/infrastructure/database"
	"github.com/smartbiz/smartbiz-api/internal/infrastructure/repository"
	"github.com/smartbiz/smartbiz-api/internal/presentation/http/handler"
	"github.com/smartbiz/smartbiz-api/internal/presentation/http/routes"
	"github.com/smartbiz/smartbiz-api/pkg/email"
	"github.com/smartbiz/smartbiz-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	productRepo := repository.NewProductRepository(db)
	stockLedger := repository.NewStockLedger(db)
	stockTxnRepo := repository.NewStockTransactionRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, businessRepo, jwtManager)
	businessService := service.NewBusinessService(businessRepo, userRepo, emailService)
	productService := service.NewProductService(productRepo, stockLedger, stockTxnRepo, businessRepo, emailService)
	purchaseService := service.NewPurchaseService(purchaseRepo, productRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, productRepo, customerRepo)
	customerService := service.NewCustomerService(customerRepo)
	expenseService := service.NewExpenseService(expenseRepo)
	dashboardService := service.NewDashboardService(analyticsRepo, productRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Business:  handler.NewBusinessHandler(businessService),
		Product:   handler.NewProductHandler(productService),
		Purchase:  handler.NewPurchaseHandler(purchaseService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		Customer:  handler.NewCustomerHandler(customerService),
		Expense:   handler.NewExpenseHandler(expenseService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
