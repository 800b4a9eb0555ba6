package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/http/middleware"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/http/routes"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/persistence/models"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/persistence/repositories"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/config"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/core/services"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/knowledge"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/pkg/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if err := logging.Init(cfg.IsProduction()); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		logging.L().Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase(db)

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		logging.L().Fatalf("❌ Failed to auto migrate: %v", err)
	}
	logging.L().Info("✅ Database migration completed")

	ctx := context.Background()

	// Language-model provider (nil = assistant in maintenance mode)
	model := services.SelectChatModel(ctx, cfg.AI)

	// Vector retriever needs Postgres and a Gemini embedder; without either
	// the assistant answers from web search + model alone.
	var retriever services.Retriever
	var kbPool *pgxpool.Pool
	if gemini, ok := model.(*services.GeminiModel); ok && cfg.UsePostgres() {
		kbPool, err = knowledge.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			logging.L().Warnw("knowledge base unavailable, continuing without it", "error", err)
		} else {
			defer kbPool.Close()
			retriever = knowledge.NewRetriever(kbPool, gemini)
			logging.L().Info("✅ Knowledge base retriever ready")
		}
	}

	// Web search (nil key = disabled)
	var searcher services.Searcher
	searchService := services.NewSearchService(cfg.Search.TavilyAPIKey)
	if searchService.Enabled() {
		searcher = searchService
	} else {
		logging.L().Warn("web search not configured, assistant runs without live results")
	}

	assistant := services.NewAssistantService(model, retriever, searcher)
	telegram := services.NewTelegramService(cfg.Telegram.BotToken)
	uploader := services.NewUploadService(cfg.Storage)

	// Background news refresh
	newsService := services.NewNewsService(repositories.NewNewsRepository(db), searcher)
	cronService := services.NewCronService(newsService, cfg.News.CronSpec)
	if err := cronService.Start(); err != nil {
		logging.L().Fatalf("❌ Failed to start cron: %v", err)
	}
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "NYSC Smart Bot API",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, db, cfg, routes.Deps{
		Assistant: assistant,
		Telegram:  telegram,
		Searcher:  searcher,
		Uploader:  uploader,
	})

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	logging.L().Infof("🚀 Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logging.L().Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.L().Info("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		logging.L().Errorf("❌ Error during shutdown: %v", err)
	}
	logging.L().Info("✅ Server stopped gracefully")
}
