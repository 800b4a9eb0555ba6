package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/CryptoLab-service/nysc-smart-bot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	lastSystem string
	lastUser   string
	reply      string
	err        error
}

func (m *fakeModel) Name() string { return "fake" }

func (m *fakeModel) Generate(_ context.Context, system, user string) (string, error) {
	m.lastSystem = system
	m.lastUser = user
	return m.reply, m.err
}

type fakeRetriever struct {
	passages []string
	err      error
}

func (r *fakeRetriever) Retrieve(_ context.Context, _ string, _ int) ([]string, error) {
	return r.passages, r.err
}

type fakeSearcher struct {
	lastQuery string
	results   []SearchResult
	err       error
}

func (s *fakeSearcher) Search(_ context.Context, query, _ string, _ int) ([]SearchResult, error) {
	s.lastQuery = query
	return s.results, s.err
}

func TestAnswerMaintenanceMode(t *testing.T) {
	svc := NewAssistantService(nil, nil, nil)

	_, err := svc.Answer(context.Background(), "When is camp?")
	assert.ErrorIs(t, err, domain.ErrAssistantDisabled)
	assert.False(t, svc.Enabled())
}

func TestAnswerAssemblesBothContextBlocks(t *testing.T) {
	model := &fakeModel{reply: "Camp starts in November."}
	retriever := &fakeRetriever{passages: []string{"Bye-law section 4", "Bye-law section 9"}}
	searcher := &fakeSearcher{results: []SearchResult{
		{Content: "Batch C orientation announced"},
		{Content: "Camps open nationwide"},
	}}

	svc := NewAssistantService(model, retriever, searcher)

	answer, err := svc.Answer(context.Background(), "When is camp?")
	require.NoError(t, err)
	assert.Equal(t, "Camp starts in November.", answer)

	// question goes through verbatim, search query gets the country scope
	assert.Equal(t, "When is camp?", model.lastUser)
	assert.Equal(t, "NYSC Nigeria When is camp?", searcher.lastQuery)

	assert.Contains(t, model.lastSystem, "Bye-law section 4\nBye-law section 9")
	assert.Contains(t, model.lastSystem, "Batch C orientation announced\nCamps open nationwide")
	assert.Contains(t, model.lastSystem, "<bye_laws>")
	assert.Contains(t, model.lastSystem, "<web_search>")
}

func TestAnswerDegradesWhenSourcesFail(t *testing.T) {
	model := &fakeModel{reply: "ok"}
	retriever := &fakeRetriever{err: errors.New("pool closed")}
	searcher := &fakeSearcher{err: errors.New("timeout")}

	svc := NewAssistantService(model, retriever, searcher)

	answer, err := svc.Answer(context.Background(), "question")
	require.NoError(t, err)
	assert.Equal(t, "ok", answer)

	// failed sources leave their tagged sections empty
	assert.Contains(t, model.lastSystem, "<bye_laws>\n\n</bye_laws>")
	assert.Contains(t, model.lastSystem, "<web_search>\n\n</web_search>")
}

func TestAnswerNilSources(t *testing.T) {
	model := &fakeModel{reply: "ok"}
	svc := NewAssistantService(model, nil, nil)

	_, err := svc.Answer(context.Background(), "question")
	require.NoError(t, err)
	assert.Contains(t, model.lastSystem, "<bye_laws>\n\n</bye_laws>")
}

func TestAnswerModelFailure(t *testing.T) {
	model := &fakeModel{err: errors.New("quota exceeded")}
	svc := NewAssistantService(model, nil, nil)

	_, err := svc.Answer(context.Background(), "question")
	assert.ErrorIs(t, err, domain.ErrModelFailure)

	// provider detail must not surface
	assert.NotContains(t, err.Error(), "quota")
}

func TestFallbackMessage(t *testing.T) {
	assert.Equal(t, MsgMaintenance, FallbackMessage(domain.ErrAssistantDisabled))
	assert.Equal(t, MsgTryAgain, FallbackMessage(domain.ErrModelFailure))
	assert.Equal(t, MsgTryAgain, FallbackMessage(errors.New("anything else")))

	// wrapped sentinels map the same way
	wrapped := fmt.Errorf("answering: %w", domain.ErrAssistantDisabled)
	assert.Equal(t, MsgMaintenance, FallbackMessage(wrapped))
}

func TestBuildInstructionBlockDate(t *testing.T) {
	now := time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC)
	block := buildInstructionBlock(now, "kb", "web")

	assert.Contains(t, block, "Monday, 09 March 2026")
	assert.True(t, strings.Index(block, "<bye_laws>") < strings.Index(block, "<web_search>"))
}
