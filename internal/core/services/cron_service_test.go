package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronSkipsJobWithoutSearcher(t *testing.T) {
	news := NewNewsService(nil, nil)
	svc := NewCronService(news, "@every 6h")

	require.NoError(t, svc.Start())
	assert.Empty(t, svc.cron.Entries(), "no job should be scheduled without a searcher")
	svc.Stop()
}

func TestCronSchedulesFetchJob(t *testing.T) {
	news := NewNewsService(nil, &fakeSearcher{})
	svc := NewCronService(news, "@every 6h")

	require.NoError(t, svc.Start())
	assert.Len(t, svc.cron.Entries(), 1)
	svc.Stop()
}
