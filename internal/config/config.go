package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// Every external credential is optional: a missing key puts that subsystem
// into disabled mode instead of failing startup.
type Config struct {
	Port     string
	AppEnv   string
	Database DatabaseConfig
	JWT      JWTConfig
	AI       AIConfig
	Search   SearchConfig
	Telegram TelegramConfig
	Storage  StorageConfig
	News     NewsConfig

	AllowedOrigins string
}

// DatabaseConfig holds database configuration.
// When URL is empty the server falls back to an embedded SQLite file.
type DatabaseConfig struct {
	URL        string
	SQLitePath string
}

// JWTConfig holds token issuing configuration
type JWTConfig struct {
	Secret        string
	ExpiryMinutes int
}

// AIConfig holds language-model provider configuration.
// Two alternative providers; whichever initializes first is used for the
// lifetime of the process.
type AIConfig struct {
	GeminiAPIKey   string
	OpenAIAPIKey   string
	GeminiModel    string
	OpenAIModel    string
	EmbeddingModel string
}

// SearchConfig holds web-search API configuration
type SearchConfig struct {
	TavilyAPIKey string
}

// TelegramConfig holds messaging-platform bot configuration
type TelegramConfig struct {
	BotToken string
}

// StorageConfig holds object-storage (S3-compatible) configuration
type StorageConfig struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// NewsConfig holds news ingestion job configuration
type NewsConfig struct {
	CronSpec string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	expiryMins, _ := strconv.Atoi(getEnv("TOKEN_EXPIRY_MINUTES", "1440"))

	config := &Config{
		Port:   getEnv("PORT", "8000"),
		AppEnv: getEnv("APP_ENV", "development"),
		Database: DatabaseConfig{
			URL:        strings.TrimSpace(getEnv("DATABASE_URL", "")),
			SQLitePath: getEnv("SQLITE_PATH", "nysc_bot.db"),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-me-in-production"),
			ExpiryMinutes: expiryMins,
		},
		AI: AIConfig{
			GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
			OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
			GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
			EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-004"),
		},
		Search: SearchConfig{
			TavilyAPIKey: getEnv("TAVILY_API_KEY", ""),
		},
		Telegram: TelegramConfig{
			BotToken: getEnv("TELEGRAM_TOKEN", ""),
		},
		Storage: StorageConfig{
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			Region:    getEnv("S3_REGION", "us-east-1"),
			Bucket:    getEnv("S3_BUCKET", "nysc-clearance-docs"),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
		},
		News: NewsConfig{
			CronSpec: getEnv("NEWS_CRON", "@every 6h"),
		},
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
	}

	return config, nil
}

// UsePostgres reports whether a Postgres connection string is configured
func (c *Config) UsePostgres() bool {
	return c.Database.URL != ""
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// PostgresDSN normalizes the connection string. Some hosting providers hand
// out "postgresql://" URLs; the pgx-backed drivers want "postgres://".
func (c *Config) PostgresDSN() string {
	url := c.Database.URL
	if strings.HasPrefix(url, "postgresql://") {
		url = "postgres://" + strings.TrimPrefix(url, "postgresql://")
	}
	return url
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
