package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"pharmatrace/internal/adapters/http/middleware"
	"pharmatrace/internal/adapters/http/routes"
	"pharmatrace/internal/adapters/persistence/models"
	"pharmatrace/internal/adapters/persistence/repositories"
	"pharmatrace/internal/config"
	"pharmatrace/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "pharmatrace/docs" // Swagger docs
)

// @title PharmaTrace API
// @version 1.0
// @description Regulated pharmaceutical supply chain: certification registry, formulation catalog, and drug lot lifecycle.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@pharmatrace.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.pharmatrace.io
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed the registry admin (and a dev login in dev mode)
	if err := config.SeedAll(db, cfg); err != nil {
		log.Fatalf("❌ Failed to seed registry: %v", err)
	}

	// Notification service shared by HTTP services and the cron sweep
	notificationRepo := repositories.NewNotificationRepository(db)
	notifyService := services.NewNotificationService(notificationRepo, cfg.Notify.WebhookURL)

	// Daily patent expiry sweep (08:30)
	registryRepo := repositories.NewRegistryRepository(db)
	sweepService := services.NewPatentSweepService(registryRepo, notifyService)
	sweepService.Start()
	defer sweepService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "PharmaTrace API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg, notifyService)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
