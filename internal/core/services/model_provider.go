package services

import (
	"context"

	"github.com/CryptoLab-service/nysc-smart-bot/internal/config"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/pkg/logging"
)

// Factual/government-process answers should be consistent across repeated
// asks, so both providers sample at the same fixed low temperature.
const modelTemperature = 0.3

// ChatModel is the minimal surface the assistant needs from a
// language-model provider.
type ChatModel interface {
	// Name identifies the provider in logs
	Name() string
	// Generate sends a two-message exchange (instruction block + raw
	// question) and returns the model text verbatim.
	Generate(ctx context.Context, system, user string) (string, error)
}

// SelectChatModel picks the language-model provider once at process start.
// Gemini is preferred whenever its key is present; OpenAI is the
// alternative, not a per-request fallback. A nil return means no provider
// is configured and the assistant runs in maintenance mode.
func SelectChatModel(ctx context.Context, cfg config.AIConfig) ChatModel {
	if cfg.GeminiAPIKey != "" {
		model, err := NewGeminiModel(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.EmbeddingModel)
		if err != nil {
			logging.L().Errorw("gemini client init failed", "error", err)
		} else {
			logging.L().Infow("language model ready", "provider", model.Name(), "model", cfg.GeminiModel)
			return model
		}
	}

	if cfg.OpenAIAPIKey != "" {
		model := NewOpenAIModel(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		logging.L().Infow("language model ready", "provider", model.Name(), "model", cfg.OpenAIModel)
		return model
	}

	logging.L().Warn("no language-model provider configured, assistant in maintenance mode")
	return nil
}
