package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractQuestion(t *testing.T) {
	var update TelegramUpdate
	raw := `{"update_id":12,"message":{"chat":{"id":98765},"text":"How do I relocate?"}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &update))

	chatID, text, ok := ExtractQuestion(&update)
	assert.True(t, ok)
	assert.Equal(t, int64(98765), chatID)
	assert.Equal(t, "How do I relocate?", text)
}

func TestExtractQuestionIgnoredUpdates(t *testing.T) {
	_, _, ok := ExtractQuestion(nil)
	assert.False(t, ok)

	// no message at all (e.g. edited_message, channel_post)
	var noMsg TelegramUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"update_id":13}`), &noMsg))
	_, _, ok = ExtractQuestion(&noMsg)
	assert.False(t, ok)

	// message without text (photo, sticker, member join)
	var noText TelegramUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"update_id":14,"message":{"chat":{"id":1}}}`), &noText))
	_, _, ok = ExtractQuestion(&noText)
	assert.False(t, ok)
}
