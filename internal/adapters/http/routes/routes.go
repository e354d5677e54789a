package routes

import (
	"pharmatrace/internal/adapters/http/handlers"
	"pharmatrace/internal/adapters/http/middleware"
	"pharmatrace/internal/adapters/persistence/repositories"
	"pharmatrace/internal/config"
	"pharmatrace/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, notifyService *services.NotificationService) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	registryRepo := repositories.NewRegistryRepository(db)
	ingredientRepo := repositories.NewIngredientRepository(db)
	formulationRepo := repositories.NewFormulationRepository(db)
	lotRepo := repositories.NewLotRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	registryService := services.NewRegistryService(registryRepo, notifyService)
	ingredientService := services.NewIngredientService(ingredientRepo)
	formulationService := services.NewFormulationService(formulationRepo, registryService)
	lotService := services.NewLotService(lotRepo, registryService, notifyService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	registryHandler := handlers.NewRegistryHandler(registryService)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService)
	formulationHandler := handlers.NewFormulationHandler(formulationService)
	lotHandler := handlers.NewLotHandler(lotService)
	notificationHandler := handlers.NewNotificationHandler(notifyService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public, rate limited)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Registry routes (reads public, mutations authenticated)
	registryRoutes := apiV1.Group("/registry")
	setupRegistryRoutes(registryRoutes, registryHandler, cfg)

	// Ingredient catalog routes
	ingredientRoutes := apiV1.Group("/ingredients")
	setupIngredientRoutes(ingredientRoutes, ingredientHandler, cfg)

	// Formulation catalog routes
	formulationRoutes := apiV1.Group("/formulations")
	setupFormulationRoutes(formulationRoutes, formulationHandler, cfg)

	// Lot lifecycle routes
	lotRoutes := apiV1.Group("/lots")
	setupLotRoutes(lotRoutes, lotHandler, cfg)

	// Notification feed
	notificationRoutes := apiV1.Group("/notifications")
	notificationRoutes.Use(middleware.AuthMiddleware(cfg))
	notificationRoutes.Get("/", notificationHandler.List)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", middleware.AuthRateLimiter(), handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupRegistryRoutes configures certification registry routes.
// Certification reads are public; every mutation requires an
// authenticated caller, whose registry role is checked in the service
// against stored state.
func setupRegistryRoutes(router fiber.Router, handler *handlers.RegistryHandler, cfg *config.Config) {
	// Public reads
	router.Get("/apis/:identity", handler.GetAPI)
	router.Get("/excipients/:identity", handler.GetExcipient)

	// Admin operations
	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Post("/approvers", handler.AddApprover)
	adminRoutes.Delete("/approvers/:identity", handler.RemoveApprover)
	adminRoutes.Put("/admin", handler.ChangeAdmin)

	// Approver operations
	adminRoutes.Post("/apis/:identity/approve", handler.ApproveAPI)
	adminRoutes.Post("/apis/:identity/reject", handler.RejectAPI)
	adminRoutes.Post("/excipients/:identity/approve", handler.ApproveExcipient)
	adminRoutes.Post("/excipients/:identity/reject", handler.RejectExcipient)
	adminRoutes.Post("/formulations/:identity/approve", handler.ApproveFormulation)
}

// setupIngredientRoutes configures ingredient catalog routes
func setupIngredientRoutes(router fiber.Router, handler *handlers.IngredientHandler, cfg *config.Config) {
	router.Get("/", handler.List)
	router.Get("/:identity", handler.Get)

	router.Post("/", middleware.AuthMiddleware(cfg), handler.Create)
}

// setupFormulationRoutes configures formulation catalog routes
func setupFormulationRoutes(router fiber.Router, handler *handlers.FormulationHandler, cfg *config.Config) {
	router.Get("/", handler.List)
	router.Get("/:identity", handler.Get)
	router.Get("/:identity/ingredients/:ingredient", handler.Quantity)

	router.Post("/", middleware.AuthMiddleware(cfg), handler.Create)
}

// setupLotRoutes configures lot lifecycle routes
func setupLotRoutes(router fiber.Router, handler *handlers.LotHandler, cfg *config.Config) {
	router.Get("/", handler.List)
	router.Get("/:identity", handler.Get)

	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(cfg))
	protected.Post("/", handler.Create)
	protected.Post("/:identity/roles", handler.BindRole)
	protected.Post("/:identity/manufacturing/start", handler.StartManufacturing)
	protected.Post("/:identity/manufacturing/complete", handler.CompleteManufacturing)
}
