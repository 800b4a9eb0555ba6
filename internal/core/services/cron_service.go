package services

import (
	"context"
	"time"

	"github.com/CryptoLab-service/nysc-smart-bot/internal/pkg/logging"

	"github.com/robfig/cron/v3"
)

// CronService schedules the news ingestion job. The job is also
// triggerable manually through the admin API; this just keeps the feed
// fresh without anyone pressing the button.
type CronService struct {
	cron *cron.Cron
	news *NewsService
	spec string
}

// NewCronService creates a new cron service
func NewCronService(news *NewsService, spec string) *CronService {
	return &CronService{
		cron: cron.New(),
		news: news,
		spec: spec,
	}
}

// Start registers and launches the scheduled jobs. Without a configured
// web searcher there is nothing to fetch, so no job is scheduled.
func (s *CronService) Start() error {
	if !s.news.CanFetch() {
		logging.L().Info("news fetch schedule off, web search not configured")
		return nil
	}

	_, err := s.cron.AddFunc(s.spec, s.runNewsFetch)
	if err != nil {
		return err
	}

	s.cron.Start()
	logging.L().Infow("cron started", "news_schedule", s.spec)
	return nil
}

// Stop stops the scheduler, waiting for a running job to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logging.L().Info("cron stopped")
}

func (s *CronService) runNewsFetch() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := s.news.FetchAndStore(ctx); err != nil {
		logging.L().Warnw("scheduled news fetch failed", "error", err)
	}
}
