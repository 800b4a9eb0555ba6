package services

import (
	"context"
	"strings"
	"time"

	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/persistence/models"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/persistence/repositories"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/core/domain"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/pkg/logging"

	gocache "github.com/patrickmn/go-cache"
)

const (
	newsQuery        = "NYSC Nigeria latest official news updates"
	newsMaxResults   = 5
	newsSummaryLimit = 200

	newsCacheKey = "news:list"
	newsCacheTTL = time.Minute
)

// NewsService handles the news feed and the ingestion job
type NewsService struct {
	newsRepo repositories.NewsRepository
	searcher Searcher
	cache    *gocache.Cache
}

// NewNewsService creates a new news service
func NewNewsService(newsRepo repositories.NewsRepository, searcher Searcher) *NewsService {
	return &NewsService{
		newsRepo: newsRepo,
		searcher: searcher,
		cache:    gocache.New(newsCacheTTL, 5*time.Minute),
	}
}

// CanFetch reports whether the ingestion job has a web searcher to pull from
func (s *NewsService) CanFetch() bool {
	return s.searcher != nil
}

// List returns the news feed, newest first, cached briefly since the feed
// only changes when the ingestion job or an admin writes.
func (s *NewsService) List(ctx context.Context) ([]*models.News, error) {
	if cached, found := s.cache.Get(newsCacheKey); found {
		return cached.([]*models.News), nil
	}

	items, err := s.newsRepo.List(ctx, 0)
	if err != nil {
		return nil, err
	}

	s.cache.Set(newsCacheKey, items, newsCacheTTL)
	return items, nil
}

// Publish stores an admin-authored news item
func (s *NewsService) Publish(ctx context.Context, item *models.News) error {
	if item.Type == "" {
		item.Type = models.NewsGeneral
	}
	if item.Date == "" {
		item.Date = time.Now().Format("2006-01-02")
	}

	if err := s.newsRepo.Create(ctx, item); err != nil {
		return err
	}

	s.cache.Delete(newsCacheKey)
	return nil
}

// FetchAndStore pulls the latest NYSC headlines from the web searcher,
// classifies each one and inserts the titles not already on file. The
// whole batch shares one pass; duplicates are skipped silently.
func (s *NewsService) FetchAndStore(ctx context.Context) (int, error) {
	if s.searcher == nil {
		return 0, domain.ErrSearchDisabled
	}

	results, err := s.searcher.Search(ctx, newsQuery, "advanced", newsMaxResults)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, result := range results {
		if result.Title == "" {
			continue
		}

		item := &models.News{
			Title:   result.Title,
			Content: summarize(result.Content),
			Date:    time.Now().Format("2006-01-02"),
			Type:    ClassifyNewsTitle(result.Title),
			URL:     result.URL,
		}

		inserted, err := s.newsRepo.CreateIgnoreDuplicate(ctx, item)
		if err != nil {
			return added, err
		}
		if inserted {
			added++
		}
	}

	if added > 0 {
		s.cache.Delete(newsCacheKey)
	}

	logging.L().Infow("news fetch complete", "added", added, "fetched", len(results))
	return added, nil
}

// ClassifyNewsTitle assigns one of the four fixed categories by
// case-insensitive substring match. First matching rule wins.
func ClassifyNewsTitle(title string) string {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "mobilization") || strings.Contains(lower, "timetable"):
		return models.NewsMobilization
	case strings.Contains(lower, "camp") || strings.Contains(lower, "orientation"):
		return models.NewsGuide
	case strings.Contains(lower, "official") || strings.Contains(lower, "director"):
		return models.NewsOfficial
	default:
		return models.NewsGeneral
	}
}

// summarize truncates a result body to the fixed character limit.
// Counted in runes, not bytes: news bodies carry ₦ signs and curly
// quotes, and a byte cut would split them.
func summarize(content string) string {
	runes := []rune(content)
	if len(runes) <= newsSummaryLimit {
		return content
	}
	return string(runes[:newsSummaryLimit]) + "..."
}
