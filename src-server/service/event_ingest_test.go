package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"neneka/src-server/model"
	"neneka/src-server/scraper"
	"neneka/src-server/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddEventsDeduplicates(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	c := newClock()
	lifecycle := service.NewEventLifecycleService(store, c)
	ingest := service.NewEventIngestService(store, lifecycle, staticScraper{}, c)

	drafts := []model.EventDraft{
		{Name: "Summer Fest", StartDate: july5.Add(-time.Hour), EndDate: ptr(july5.Add(72 * time.Hour))},
		{Name: "Summer Fest", StartDate: july5.Add(-time.Hour), EndDate: ptr(july5.Add(72 * time.Hour))},
		{Name: "Maintenance", StartDate: july5.Add(24 * time.Hour)},
	}

	added, err := ingest.AddEvents(ctx, drafts)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = ingest.AddEvents(ctx, drafts)
	require.NoError(t, err)
	assert.False(t, added)

	current, err := lifecycle.GetCurrentEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, current, 1)
	upcoming, err := lifecycle.GetEventsUpcoming(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, upcoming, 1)
}

func TestAddEventsSkipsExpiredDrafts(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	c := newClock()
	ingest := service.NewEventIngestService(store, service.NewEventLifecycleService(store, c), staticScraper{}, c)

	added, err := ingest.AddEvents(ctx, []model.EventDraft{
		{Name: "Ended", StartDate: july5.AddDate(0, 0, -3), EndDate: ptr(july5)},
		{Name: "Stale", StartDate: july5.AddDate(0, 0, -8)},
	})
	require.NoError(t, err)
	assert.False(t, added)

	added, err = ingest.AddEvents(ctx, nil)
	require.NoError(t, err)
	assert.False(t, added)
}

func TestAddEventsAbortsOnLookupFailure(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{Storage: newTestStorage(t), failAfter: 1}
	c := newClock()
	ingest := service.NewEventIngestService(store, service.NewEventLifecycleService(store, c), staticScraper{}, c)

	added, err := ingest.AddEvents(ctx, []model.EventDraft{
		{Name: "First", StartDate: july5.Add(time.Hour)},
		{Name: "Second", StartDate: july5.Add(2 * time.Hour)},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrStorage)
	assert.ErrorIs(t, err, errFlaky)
	assert.False(t, added)
	assert.Zero(t, store.saves)
}

func TestIngestEndToEnd(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	c := newClock()
	lifecycle := service.NewEventLifecycleService(store, c)
	ingest := service.NewEventIngestService(store, lifecycle, staticScraper{lines: []string{
		"Summer Fest (7/1 10:00 - 7/10 23:59 UTC)",
		"Brand new character!",
	}}, c)

	report, err := ingest.Ingest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Lines)
	assert.Equal(t, 1, report.Rejected)
	assert.Equal(t, 1, report.Inserted)

	found, err := store.FindEventsByExactMatch(ctx, "Summer Fest",
		time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC),
		ptr(time.Date(2024, 7, 10, 23, 59, 0, 0, time.UTC)))
	require.NoError(t, err)
	require.Len(t, found, 1)

	current, err := lifecycle.GetCurrentEvents(ctx)
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, "Summer Fest", current[0].Name)

	c.Set(time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC))
	current, err = lifecycle.GetCurrentEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, current)

	cleaned, err := lifecycle.CleanExpiredEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cleaned)
	found, err = store.FindEventsByExactMatch(ctx, "Summer Fest",
		time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC),
		ptr(time.Date(2024, 7, 10, 23, 59, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestIngestFetchFailure(t *testing.T) {
	store := newTestStorage(t)
	c := newClock()
	ingest := service.NewEventIngestService(store, service.NewEventLifecycleService(store, c),
		staticScraper{err: scraper.ErrFetch}, c)

	_, err := ingest.Ingest(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, scraper.ErrFetch))
}
