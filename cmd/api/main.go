package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/nimbusoft/invoicing-api/internal/application/service"
	"github.com/nimbusoft/invoicing-api/internal/config"
	"github.com/nimbusoft/invoicing-api/internal/infrastructure/database"
	"github.com/nimbusoft/invoicing-api/internal/infrastructure/repository"
	"github.com/nimbusoft/invoicing-api/internal/presentation/http/handler"
	"github.com/nimbusoft/invoicing-api/internal/presentation/http/routes"
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

	// Initialize repositories
	invoiceRepo := repository.NewInvoiceRepository(db)

	// Initialize services
	invoiceService := service.NewInvoiceService(invoiceRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Invoice: handler.NewInvoiceHandler(invoiceService, &cfg.Company),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{Cfg: cfg})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
