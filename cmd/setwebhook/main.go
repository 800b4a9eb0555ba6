package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/CryptoLab-service/nysc-smart-bot/internal/config"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/core/services"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/pkg/logging"
)

// One-shot tool that points the Telegram bot at this deployment's
// /telegram webhook endpoint.
func main() {
	base := flag.String("url", "", "public base URL of the deployment, e.g. https://bot.example.com")
	flag.Parse()

	if *base == "" {
		log.Fatal("❌ -url is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if err := logging.Init(false); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	telegram := services.NewTelegramService(cfg.Telegram.BotToken)
	if err := telegram.SetWebhook(ctx, *base+"/telegram"); err != nil {
		logging.L().Fatalf("❌ Webhook registration failed: %v", err)
	}

	logging.L().Infof("✅ Telegram webhook set to %s/telegram", *base)
}
