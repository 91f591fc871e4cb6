package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-billing-ws/internal/billing"
	"go-billing-ws/internal/handler"
	"go-billing-ws/internal/middleware"
	"go-billing-ws/internal/model"
	"go-billing-ws/internal/repository"
	"go-billing-ws/internal/service"
	"go-billing-ws/internal/ws"
	"go-billing-ws/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.Owner{}, &model.Product{}, &model.Customer{}, &model.FirmDetails{}, &model.Invoice{})

	// 3. Seed the default owner account
	seedDefaultOwner(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	firmRepo := repository.NewFirmRepo(db)
	invoiceRepo := repository.NewInvoiceRepo(db)
	ownerRepo := repository.NewOwnerRepo(db)

	calc := billing.NewCalculator(defaultTaxRate())

	catalogService := service.NewCatalogService(productRepo, db, wsHub)
	customerService := service.NewCustomerService(customerRepo, wsHub)
	firmService := service.NewFirmService(firmRepo)
	billingService := service.NewBillingService(invoiceRepo, productRepo, customerRepo, firmRepo, calc, wsHub)
	dashService := service.NewDashboardService(invoiceRepo)
	authService := service.NewAuthService(ownerRepo)

	productHandler := handler.NewProductHandler(catalogService)
	customerHandler := handler.NewCustomerHandler(customerService)
	firmHandler := handler.NewFirmHandler(firmService)
	invoiceHandler := handler.NewInvoiceHandler(billingService)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Billing Desk v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	// All routes below are owner-scoped behind authentication
	protected := api.Group("", middleware.RequireAuth(ownerRepo))

	// Product master data
	protected.Get("/products", productHandler.GetProducts)
	protected.Post("/products", productHandler.CreateProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Delete("/products/:id", productHandler.DeleteProduct)

	// Customer master data (listed sorted by name)
	protected.Get("/customers", customerHandler.GetCustomers)
	protected.Post("/customers", customerHandler.CreateCustomer)
	protected.Put("/customers/:id", customerHandler.UpdateCustomer)
	protected.Delete("/customers/:id", customerHandler.DeleteCustomer)

	// Firm configuration
	protected.Get("/firm", firmHandler.GetFirm)
	protected.Put("/firm", firmHandler.SaveFirm)
	protected.Put("/firm/preferences", firmHandler.UpdatePreferences)
	protected.Post("/firm/logo", firmHandler.UploadLogo)
	protected.Delete("/firm/logo", firmHandler.DeleteLogo)

	// Invoices
	protected.Get("/invoices", invoiceHandler.GetInvoices)
	protected.Get("/invoices/:id", invoiceHandler.GetInvoice)
	protected.Post("/invoices/preview", invoiceHandler.Preview)
	protected.Post("/invoices", invoiceHandler.CreateInvoice)
	protected.Put("/invoices/:id", invoiceHandler.UpdateInvoice)

	// Dashboard
	protected.Get("/dashboard/stats", dashHandler.GetDashboardStats)
	protected.Get("/dashboard/sales-movement", dashHandler.GetSalesMovement)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// defaultTaxRate reads the global default tax percentage applied to
// line items that carry no explicit rate
func defaultTaxRate() decimal.Decimal {
	env := os.Getenv("DEFAULT_TAX_RATE")
	if env == "" {
		return decimal.Zero
	}
	rate, err := decimal.NewFromString(env)
	if err != nil || rate.IsNegative() {
		log.Printf("Warning: invalid DEFAULT_TAX_RATE %q, using 0", env)
		return decimal.Zero
	}
	return rate
}

// seedDefaultOwner creates the shop owner account if it doesn't exist
func seedDefaultOwner(db *gorm.DB) {
	ownerRepo := repository.NewOwnerRepo(db)

	email := os.Getenv("OWNER_EMAIL")
	if email == "" {
		email = "owner@example.com"
	}

	if _, err := ownerRepo.FindByEmail(email); err == nil {
		return
	}

	password := os.Getenv("OWNER_PASSWORD")
	if password == "" {
		password = "owner123"
	}

	owner := &model.Owner{
		Email:    email,
		FullName: "Shop Owner",
		IsActive: true,
	}
	owner.CreatedBy = "system"
	owner.UpdatedBy = "system"

	if err := owner.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash owner password: %v", err)
		return
	}

	if err := ownerRepo.Create(owner); err != nil {
		log.Printf("Warning: Failed to create owner account: %v", err)
	} else {
		log.Printf("✅ Owner account created: %s", email)
	}
}
