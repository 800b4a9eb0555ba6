package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/CryptoLab-service/nysc-smart-bot/internal/config"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/core/services"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/knowledge"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/pkg/logging"
)

// Offline knowledge-base builder. Reads .txt and .md files from a
// directory, chunks and embeds them, and upserts the chunks into the
// kb_documents table. Safe to re-run after editing a source document.
func main() {
	dir := flag.String("dir", "knowledge_docs", "directory of .txt/.md source documents")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if err := logging.Init(false); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	if !cfg.UsePostgres() {
		logging.L().Fatal("❌ DATABASE_URL must point at Postgres to build the knowledge base")
	}
	if cfg.AI.GeminiAPIKey == "" {
		logging.L().Fatal("❌ GEMINI_API_KEY is required for embeddings")
	}

	ctx := context.Background()

	gemini, err := services.NewGeminiModel(ctx, cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel, cfg.AI.EmbeddingModel)
	if err != nil {
		logging.L().Fatalf("❌ Gemini client init failed: %v", err)
	}

	pool, err := knowledge.Connect(ctx, cfg.PostgresDSN())
	if err != nil {
		logging.L().Fatalf("❌ Database connection failed: %v", err)
	}
	defer pool.Close()

	ingestor := knowledge.NewIngestor(pool, gemini)
	if err := ingestor.EnsureSchema(ctx); err != nil {
		logging.L().Fatalf("❌ Schema setup failed: %v", err)
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		logging.L().Fatalf("❌ Cannot read source directory %s: %v", *dir, err)
	}

	total := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && ext != ".md" {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(*dir, entry.Name()))
		if err != nil {
			logging.L().Errorw("skipping unreadable file", "file", entry.Name(), "error", err)
			continue
		}

		n, err := ingestor.IngestDocument(ctx, entry.Name(), string(raw))
		if err != nil {
			logging.L().Fatalf("❌ Ingest of %s failed after %d chunks: %v", entry.Name(), n, err)
		}
		logging.L().Infow("✅ document indexed", "file", entry.Name(), "chunks", n)
		total += n
	}

	logging.L().Infof("🚀 Knowledge base ready: %d chunks indexed", total)
}
