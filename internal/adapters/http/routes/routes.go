package routes

import (
	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/http/handlers"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/http/middleware"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/persistence/repositories"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/config"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Deps carries the services that are wired outside the HTTP layer
// (model provider, vector retriever, web search, object storage, telegram).
type Deps struct {
	Assistant *services.AssistantService
	Telegram  *services.TelegramService
	Searcher  services.Searcher
	Uploader  services.Uploader
}

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, deps Deps) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	newsRepo := repositories.NewNewsRepository(db)
	resourceRepo := repositories.NewResourceRepository(db)
	clearanceRepo := repositories.NewClearanceRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo, clearanceRepo)
	newsService := services.NewNewsService(newsRepo, deps.Searcher)
	clearanceService := services.NewClearanceService(clearanceRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService)
	dataHandler := handlers.NewDataHandler(newsService, resourceRepo, authService)
	clearanceHandler := handlers.NewClearanceHandler(clearanceService, authService, deps.Uploader)
	adminHandler := handlers.NewAdminHandler(userService, newsService, resourceRepo)
	askHandler := handlers.NewAskHandler(deps.Assistant)
	telegramHandler := handlers.NewTelegramHandler(deps.Telegram, deps.Assistant)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Assistant routes (public)
	app.Post("/ask", askHandler.Ask)
	app.Post("/telegram", telegramHandler.Webhook)

	// Auth routes
	authRoutes := app.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Public data + authenticated timeline
	apiRoutes := app.Group("/api")
	setupAPIRoutes(apiRoutes, dataHandler, cfg)

	// Clearance routes (authenticated)
	clearanceRoutes := app.Group("/clearance")
	clearanceRoutes.Use(middleware.AuthMiddleware(cfg))
	setupClearanceRoutes(clearanceRoutes, clearanceHandler)

	// Admin routes (Official/Admin only)
	adminRoutes := app.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Use(middleware.OfficialOrAdmin())
	setupAdminRoutes(adminRoutes, adminHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (tighter rate limit against credential stuffing)
	router.Post("/signup", middleware.AuthRateLimiter(), handler.Signup)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/social-login", middleware.AuthRateLimiter(), handler.SocialLogin)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Put("/profile", middleware.AuthMiddleware(cfg), handler.UpdateProfile)
}

// setupAPIRoutes configures public data routes
func setupAPIRoutes(router fiber.Router, handler *handlers.DataHandler, cfg *config.Config) {
	router.Get("/news", handler.GetNews)
	router.Get("/resources", handler.GetResources)

	// Timeline is personalized, so it requires a token
	router.Get("/timeline", middleware.AuthMiddleware(cfg), handler.GetTimeline)
}

// setupClearanceRoutes configures the clearance workflow routes
func setupClearanceRoutes(router fiber.Router, handler *handlers.ClearanceHandler) {
	// Corps Member
	router.Post("/request", handler.Submit)
	router.Get("/my-history", handler.MyHistory)

	// Official/Admin
	router.Get("/pending", middleware.OfficialOrAdmin(), handler.Pending)
	router.Put("/:id/action", middleware.OfficialOrAdmin(), handler.Action)
}

// setupAdminRoutes configures admin routes (Official/Admin only)
func setupAdminRoutes(router fiber.Router, handler *handlers.AdminHandler) {
	router.Get("/users", handler.ListUsers)
	router.Get("/stats", handler.GetStats)

	router.Post("/news", handler.CreateNews)
	router.Post("/news/refresh", handler.RefreshNews)
	router.Post("/resources", handler.CreateResource)
}
