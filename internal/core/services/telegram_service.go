package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/CryptoLab-service/nysc-smart-bot/internal/pkg/logging"
)

const telegramAPIBase = "https://api.telegram.org/bot"

// TelegramUpdate is the inbound webhook payload (the fields we read)
type TelegramUpdate struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		Text string `json:"text"`
	} `json:"message"`
}

// Answerer produces an assistant answer for free text
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// TelegramService bridges the Telegram bot webhook to the assistant.
// Without a bot token it is disabled; the webhook endpoint still responds
// ok so Telegram does not retry forever.
type TelegramService struct {
	token  string
	client *http.Client
}

// NewTelegramService creates a new telegram service
func NewTelegramService(token string) *TelegramService {
	return &TelegramService{
		token:  token,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether a bot token is configured
func (s *TelegramService) Enabled() bool {
	return s.token != ""
}

// ExtractQuestion pulls the chat id and text out of an update. ok is
// false for updates we ignore (edits, joins, empty text).
func ExtractQuestion(update *TelegramUpdate) (chatID int64, text string, ok bool) {
	if update == nil || update.Message == nil || update.Message.Text == "" {
		return 0, "", false
	}
	return update.Message.Chat.ID, update.Message.Text, true
}

// HandleUpdate answers an inbound message and posts the reply back.
// Failures are logged, never returned: the webhook always acks.
func (s *TelegramService) HandleUpdate(ctx context.Context, update *TelegramUpdate, assistant Answerer) {
	chatID, text, ok := ExtractQuestion(update)
	if !ok {
		return
	}

	answer, err := assistant.Answer(ctx, text)
	if err != nil {
		answer = FallbackMessage(err)
	}

	if err := s.SendMessage(ctx, chatID, answer); err != nil {
		logging.L().Errorw("telegram reply failed", "chat_id", chatID, "error", err)
	}
}

// SendMessage posts a text message to a chat
func (s *TelegramService) SendMessage(ctx context.Context, chatID int64, text string) error {
	if !s.Enabled() {
		return nil
	}

	payload := map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s%s/sendMessage", telegramAPIBase, s.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram sendMessage error: %s", string(body))
	}

	return nil
}

// SetWebhook registers the public HTTPS URL Telegram should deliver
// updates to. Used by the setwebhook CLI.
func (s *TelegramService) SetWebhook(ctx context.Context, webhookURL string) error {
	if !s.Enabled() {
		return fmt.Errorf("TELEGRAM_TOKEN not configured")
	}

	payload := map[string]string{"url": webhookURL}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s%s/setWebhook", telegramAPIBase, s.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram setWebhook error: %s", string(body))
	}

	logging.L().Infow("telegram webhook registered", "url", webhookURL, "response", string(body))
	return nil
}
