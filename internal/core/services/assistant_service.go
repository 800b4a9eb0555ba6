package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/CryptoLab-service/nysc-smart-bot/internal/core/domain"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/pkg/logging"
)

// User-facing fallback sentences. The composer itself only reports typed
// errors; boundary layers (ask handler, telegram bridge) translate them
// so third-party failure detail never leaks to callers.
const (
	MsgMaintenance = "The NYSC Assistant is currently in maintenance mode. Please try again later."
	MsgTryAgain    = "Sorry, I could not process your question right now. Please try again."
)

// How many knowledge-base passages feed the prompt, and how many web
// snippets back them up.
const (
	retrieveTopK     = 3
	searchMaxResults = 2
	searchDepthBasic = "basic"
)

// Retriever returns the nearest-match passages from the precomputed
// document embedding index. A nil Retriever means the knowledge base is
// unavailable; the assistant then answers from web context alone.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]string, error)
}

// Searcher is the web-search surface the assistant consumes
type Searcher interface {
	Search(ctx context.Context, query, depth string, maxResults int) ([]SearchResult, error)
}

// AssistantService composes answers from the knowledge base, live web
// search and a language-model call. Sources degrade independently: a dead
// retriever or searcher just leaves its context block empty.
type AssistantService struct {
	model     ChatModel
	retriever Retriever
	searcher  Searcher
}

// NewAssistantService creates the assistant. model may be nil (maintenance
// mode); retriever and searcher may be nil (their blocks stay empty).
func NewAssistantService(model ChatModel, retriever Retriever, searcher Searcher) *AssistantService {
	return &AssistantService{
		model:     model,
		retriever: retriever,
		searcher:  searcher,
	}
}

// Enabled reports whether a language-model provider initialized
func (s *AssistantService) Enabled() bool {
	return s.model != nil
}

// Answer runs the retrieve → search → prompt-assembly → model pipeline.
// It returns the model text verbatim, or domain.ErrAssistantDisabled /
// domain.ErrModelFailure.
func (s *AssistantService) Answer(ctx context.Context, question string) (string, error) {
	if s.model == nil {
		return "", domain.ErrAssistantDisabled
	}

	kbContext := s.retrieveContext(ctx, question)
	webContext := s.searchContext(ctx, question)

	system := buildInstructionBlock(time.Now(), kbContext, webContext)

	answer, err := s.model.Generate(ctx, system, question)
	if err != nil {
		logging.L().Errorw("answer generation failed", "provider", s.model.Name(), "error", err)
		return "", domain.ErrModelFailure
	}

	return answer, nil
}

// FallbackMessage maps a composer error to the fixed user-facing sentence
func FallbackMessage(err error) string {
	if errors.Is(err, domain.ErrAssistantDisabled) {
		return MsgMaintenance
	}
	return MsgTryAgain
}

// retrieveContext fetches the top-k nearest passages. Retriever problems
// are logged and reduced to an empty section, never an error.
func (s *AssistantService) retrieveContext(ctx context.Context, question string) string {
	if s.retriever == nil {
		return ""
	}

	passages, err := s.retriever.Retrieve(ctx, question, retrieveTopK)
	if err != nil {
		logging.L().Warnw("knowledge retrieval failed, continuing without it", "error", err)
		return ""
	}

	return strings.Join(passages, "\n")
}

// searchContext fetches recent web snippets scoped to NYSC Nigeria.
// Search failures are swallowed the same way.
func (s *AssistantService) searchContext(ctx context.Context, question string) string {
	if s.searcher == nil {
		return ""
	}

	results, err := s.searcher.Search(ctx, "NYSC Nigeria "+question, searchDepthBasic, searchMaxResults)
	if err != nil {
		if !errors.Is(err, domain.ErrSearchDisabled) {
			logging.L().Warnw("web search failed, continuing without it", "error", err)
		}
		return ""
	}

	contents := make([]string, 0, len(results))
	for _, r := range results {
		contents = append(contents, r.Content)
	}
	return strings.Join(contents, "\n")
}

// buildInstructionBlock assembles the single system message: current date
// for grounding, the priority rule, answer style, and both context blocks
// under distinct tags.
func buildInstructionBlock(now time.Time, kbContext, webContext string) string {
	return fmt.Sprintf(`You are a smart NYSC Assistant. Today's date is %s.
You have access to the NYSC Bye-Laws and the latest news from the web.

Your goal is to answer the user's question accurately.
- For questions about rules, penalties or conduct, prioritize the <bye_laws> section.
- For questions about dates, lists or current events, use the <web_search> section.
- When both sections address the question, <bye_laws> outranks <web_search>.
- Answer directly. Do not comment on where the information came from.

<bye_laws>
%s
</bye_laws>

<web_search>
%s
</web_search>`, now.Format("Monday, 02 January 2006"), kbContext, webContext)
}
