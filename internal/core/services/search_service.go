package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/CryptoLab-service/nysc-smart-bot/internal/core/domain"
)

const tavilySearchURL = "https://api.tavily.com/search"

// Trusted domains for NYSC-related searches. Fixed allow-list: the
// searcher never returns snippets from arbitrary sites.
var trustedDomains = []string{
	"nysc.gov.ng",
	"punchng.com",
	"vanguardngr.com",
	"dailypost.ng",
	"thecable.ng",
}

// SearchService is a thin client for the Tavily web-search API.
// Without an API key it is disabled and every call returns
// domain.ErrSearchDisabled.
type SearchService struct {
	apiKey string
	client *http.Client
}

// NewSearchService creates a new search service
func NewSearchService(apiKey string) *SearchService {
	return &SearchService{
		apiKey: apiKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether an API key is configured
func (s *SearchService) Enabled() bool {
	return s.apiKey != ""
}

// SearchResult represents a single web search hit
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

type tavilyRequest struct {
	APIKey         string   `json:"api_key"`
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth"`
	MaxResults     int      `json:"max_results"`
	IncludeDomains []string `json:"include_domains,omitempty"`
}

type tavilyResponse struct {
	Results []SearchResult `json:"results"`
}

// Search runs a query restricted to the trusted domain allow-list
func (s *SearchService) Search(ctx context.Context, query, depth string, maxResults int) ([]SearchResult, error) {
	if !s.Enabled() {
		return nil, domain.ErrSearchDisabled
	}

	payload := tavilyRequest{
		APIKey:         s.apiKey,
		Query:          query,
		SearchDepth:    depth,
		MaxResults:     maxResults,
		IncludeDomains: trustedDomains,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tavilySearchURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily error: %s", string(body))
	}

	var searchResp tavilyResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, err
	}

	return searchResp.Results, nil
}
