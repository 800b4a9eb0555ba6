package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiModel wraps the Google GenAI client. It also serves as the
// embedder for the knowledge retriever.
type GeminiModel struct {
	client         *genai.Client
	chatModel      string
	embeddingModel string
}

// NewGeminiModel creates a Gemini-backed chat model
func NewGeminiModel(ctx context.Context, apiKey, chatModel, embeddingModel string) (*GeminiModel, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GeminiModel{
		client:         client,
		chatModel:      chatModel,
		embeddingModel: embeddingModel,
	}, nil
}

// Name identifies the provider in logs
func (m *GeminiModel) Name() string {
	return "gemini"
}

// Generate sends the instruction block and question to Gemini
func (m *GeminiModel) Generate(ctx context.Context, system, user string) (string, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.chatModel,
		genai.Text(user),
		&genai.GenerateContentConfig{
			Temperature:       genai.Ptr[float32](modelTemperature),
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		})
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned empty response")
	}
	return text, nil
}

// Embed generates a 768-dimension embedding for the given text
func (m *GeminiModel) Embed(ctx context.Context, text string) ([]float32, error) {
	dim := int32(768)
	resp, err := m.client.Models.EmbedContent(ctx, m.embeddingModel,
		genai.Text(text),
		&genai.EmbedContentConfig{OutputDimensionality: &dim})
	if err != nil {
		return nil, fmt.Errorf("embedding text: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}
	return resp.Embeddings[0].Values, nil
}
