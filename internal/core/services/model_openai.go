package services

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIModel wraps the OpenAI chat-completion client
type OpenAIModel struct {
	client *openai.Client
	model  string
}

// NewOpenAIModel creates an OpenAI-backed chat model
func NewOpenAIModel(apiKey, model string) *OpenAIModel {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIModel{
		client: &client,
		model:  model,
	}
}

// Name identifies the provider in logs
func (m *OpenAIModel) Name() string {
	return "openai"
}

// Generate sends the instruction block and question to OpenAI
func (m *OpenAIModel) Generate(ctx context.Context, system, user string) (string, error) {
	resp, err := m.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(m.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(modelTemperature),
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai returned empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
