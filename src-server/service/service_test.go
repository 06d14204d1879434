package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"neneka/src-server/clock"
	"neneka/src-server/model"
	"neneka/src-server/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *storage.Storage {
	t.Helper()
	db, err := storage.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, model.CreateSchema(context.Background(), db))
	return storage.New(db)
}

var july5 = time.Date(2024, 7, 5, 12, 0, 0, 0, time.UTC)

func newClock() *clock.Manual {
	return clock.NewManual(july5)
}

func ptr(t time.Time) *time.Time {
	return &t
}

type staticScraper struct {
	lines []string
	err   error
}

func (s staticScraper) FetchAnnouncementLines(context.Context) ([]string, error) {
	return s.lines, s.err
}

// flakyStore fails the exact-match lookup after failAfter successful calls.
type flakyStore struct {
	*storage.Storage
	failAfter int
	calls     int
	saves     int
}

var errFlaky = errors.New("connection reset")

func (s *flakyStore) FindEventsByExactMatch(ctx context.Context, name string, start time.Time, end *time.Time) ([]model.Event, error) {
	s.calls++
	if s.calls > s.failAfter {
		return nil, errFlaky
	}
	return s.Storage.FindEventsByExactMatch(ctx, name, start, end)
}

func (s *flakyStore) SaveEvents(ctx context.Context, events []model.Event) error {
	s.saves++
	return s.Storage.SaveEvents(ctx, events)
}
