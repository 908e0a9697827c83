package routes

import (
	"hima-kasku/internal/adapters/http/handlers"
	"hima-kasku/internal/adapters/http/middleware"
	"hima-kasku/internal/adapters/persistence/repositories"
	"hima-kasku/internal/config"
	"hima-kasku/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	dueRepo := repositories.NewDueRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo, transactionRepo)
	dueService := services.NewDueService(dueRepo, transactionRepo)
	statusService := services.NewStatusService(userRepo, dueRepo, transactionRepo)
	paymentService := services.NewPaymentService(userRepo, dueRepo, transactionRepo, statusService)
	reportService := services.NewReportService(statusService, transactionRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	dueHandler := handlers.NewDueHandler(dueService, paymentService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	dashboardHandler := handlers.NewDashboardHandler(reportService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, userHandler,
		dueHandler, paymentHandler, dashboardHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	dueHandler *handlers.DueHandler,
	paymentHandler *handlers.PaymentHandler,
	dashboardHandler *handlers.DashboardHandler,
	cfg *config.Config,
) {
	// API Info
	router.Get("/", healthHandler.APIInfo)

	// Auth routes (public, rate limited)
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Roster routes
	userRoutes := router.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	setupUserRoutes(userRoutes, userHandler, paymentHandler)

	// Due catalog routes
	dueRoutes := router.Group("/dues")
	dueRoutes.Use(middleware.AuthMiddleware(cfg))
	setupDueRoutes(dueRoutes, dueHandler)

	// Payment routes (Admin only)
	paymentRoutes := router.Group("/payments")
	paymentRoutes.Use(middleware.AuthMiddleware(cfg))
	paymentRoutes.Use(middleware.AdminOnly())
	paymentRoutes.Post("/", paymentHandler.Record)

	// Dashboard routes (derived data, never cached)
	dashboardRoutes := router.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Use(middleware.NoCacheHeaders())
	setupDashboardRoutes(dashboardRoutes, dashboardHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupUserRoutes configures roster routes. Writes are admin only; reads on
// a specific member are limited to the member themselves or an admin.
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler, paymentHandler *handlers.PaymentHandler) {
	router.Post("/", middleware.AdminOnly(), handler.Create)
	router.Get("/", middleware.AdminOnly(), handler.List)
	router.Put("/:id", middleware.AdminOnly(), handler.Update)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)

	router.Get("/:id", middleware.SelfOrAdmin(), handler.Get)
	router.Get("/:id/outstanding", middleware.SelfOrAdmin(), paymentHandler.Outstanding)
	router.Get("/:id/transactions", middleware.SelfOrAdmin(), paymentHandler.History)
}

// setupDueRoutes configures due catalog routes. The catalog is readable by
// every member; writes are admin only.
func setupDueRoutes(router fiber.Router, handler *handlers.DueHandler) {
	router.Get("/", middleware.CatalogCache(), handler.List)
	router.Get("/:id", middleware.CatalogCache(), handler.Get)

	router.Post("/", middleware.AdminOnly(), handler.Create)
	router.Put("/:id", middleware.AdminOnly(), handler.Update)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
	router.Get("/:id/transactions", middleware.AdminOnly(), handler.Transactions)
}

// setupDashboardRoutes configures dashboard routes
func setupDashboardRoutes(router fiber.Router, handler *handlers.DashboardHandler) {
	// Admin roll-up (Admin only)
	router.Get("/admin", middleware.AdminOnly(), handler.Admin)

	// Student self view (students only; admins have their own roll-up)
	router.Get("/student", middleware.RoleMiddleware("STUDENT"), handler.Student)
}
