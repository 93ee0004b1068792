package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dabstractor/midnightexpress/internal/scheduling/errors"
	"github.com/dabstractor/midnightexpress/internal/scheduling/store"
	"github.com/dabstractor/midnightexpress/pkg/logger"
	"github.com/dabstractor/midnightexpress/pkg/model"
)

type fakeStore struct {
	reservations []model.Reservation
	err          error
	listCalls    int
}

func (f *fakeStore) List(ctx context.Context) ([]model.Reservation, error) {
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.reservations, nil
}

func (f *fakeStore) Append(ctx context.Context, rec store.Record) error { return nil }

func (f *fakeStore) Ping(ctx context.Context) error { return nil }

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time { return c.current }

func (c *fakeClock) advance(d time.Duration) { c.current = c.current.Add(d) }

func newTestCache(s store.ReservationStore, clock *fakeClock) *ReservationCache {
	log := logger.New(logger.Config{Level: logger.ERROR, Service: "cache-test"})
	return New(s, 60*time.Second, clock.now, log)
}

func TestFreshCacheAvoidsRefetch(t *testing.T) {
	fs := &fakeStore{reservations: []model.Reservation{{Date: "2026-09-10", PickupMin: 900}}}
	clock := &fakeClock{current: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	c := newTestCache(fs, clock)

	first, err := c.GetReservationsForDate(context.Background(), "2026-09-10")
	require.NoError(t, err)
	require.Len(t, first, 1)

	clock.advance(30 * time.Second)
	second, err := c.GetReservationsForDate(context.Background(), "2026-09-10")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, fs.listCalls, "second read within freshness window must not refetch")
}

func TestStaleCacheRefetches(t *testing.T) {
	fs := &fakeStore{reservations: []model.Reservation{{Date: "2026-09-10", PickupMin: 900}}}
	clock := &fakeClock{current: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	c := newTestCache(fs, clock)

	_, err := c.GetReservationsForDate(context.Background(), "2026-09-10")
	require.NoError(t, err)

	clock.advance(61 * time.Second)
	fs.reservations = append(fs.reservations, model.Reservation{Date: "2026-09-10", PickupMin: 600})

	got, err := c.GetReservationsForDate(context.Background(), "2026-09-10")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 2, fs.listCalls)
}

func TestFetchFailureServesStaleData(t *testing.T) {
	fs := &fakeStore{reservations: []model.Reservation{{Date: "2026-09-10", PickupMin: 900}}}
	clock := &fakeClock{current: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	c := newTestCache(fs, clock)

	_, err := c.GetReservationsForDate(context.Background(), "2026-09-10")
	require.NoError(t, err)

	clock.advance(2 * time.Minute)
	fs.err = errors.ErrStoreUnavailable

	got, err := c.GetReservationsForDate(context.Background(), "2026-09-10")
	require.NoError(t, err, "fetch failure with prior data must not fail the caller")
	assert.Len(t, got, 1, "stale set served on failure")
}

func TestFirstFailureFallsBackToEmptySet(t *testing.T) {
	// Deliberate tradeoff: when the store is unreachable and nothing was
	// ever fetched, availability checking proceeds with no known
	// conflicts so the booking flow stays usable.
	fs := &fakeStore{err: errors.ErrStoreUnavailable}
	clock := &fakeClock{current: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	c := newTestCache(fs, clock)

	got, err := c.GetReservationsForDate(context.Background(), "2026-09-10")
	require.NoError(t, err, "first-ever failure must not fail the caller")
	assert.Empty(t, got, "empty conflict set on first failure")
}

func TestGetReservationsFiltersByDate(t *testing.T) {
	fs := &fakeStore{reservations: []model.Reservation{
		{Date: "2026-09-10", PickupMin: 900},
		{Date: "2026-09-11", PickupMin: 600},
		{Date: "2026-09-10", PickupMin: 420},
	}}
	clock := &fakeClock{current: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	c := newTestCache(fs, clock)

	got, err := c.GetReservationsForDate(context.Background(), "2026-09-10")
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, "2026-09-10", r.Date)
	}
}

// racingStore blocks its first List call until released, so a second,
// faster request can fetch and apply its response in between.
type racingStore struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
	release chan struct{}
	slowSet []model.Reservation
	fastSet []model.Reservation
}

func (s *racingStore) List(ctx context.Context) ([]model.Reservation, error) {
	s.mu.Lock()
	s.calls++
	call := s.calls
	s.mu.Unlock()

	if call == 1 {
		close(s.started)
		<-s.release
		return s.slowSet, nil
	}
	return s.fastSet, nil
}

func (s *racingStore) Append(ctx context.Context, rec store.Record) error { return nil }

func (s *racingStore) Ping(ctx context.Context) error { return nil }

func TestLateResponseDoesNotOverwriteNewerData(t *testing.T) {
	rs := &racingStore{
		started: make(chan struct{}),
		release: make(chan struct{}),
		slowSet: []model.Reservation{{Date: "2026-09-10", PickupMin: 300}},
		fastSet: []model.Reservation{{Date: "2026-09-10", PickupMin: 900}},
	}
	clock := &fakeClock{current: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	c := newTestCache(rs, clock)

	slowDone := make(chan []model.Reservation, 1)
	go func() {
		got, _ := c.GetReservationsForDate(context.Background(), "2026-09-10")
		slowDone <- got
	}()

	<-rs.started
	fast, err := c.GetReservationsForDate(context.Background(), "2026-09-10")
	require.NoError(t, err)
	require.Len(t, fast, 1)
	assert.Equal(t, 900, fast[0].PickupMin)

	close(rs.release)
	slow := <-slowDone
	require.Len(t, slow, 1)
	assert.Equal(t, 300, slow[0].PickupMin, "the superseded caller still gets its own response")

	// The cache must keep the newer request's data: the next read within
	// the freshness window serves it without another fetch.
	cached, err := c.GetReservationsForDate(context.Background(), "2026-09-10")
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, 900, cached[0].PickupMin, "late response must not overwrite newer data")
	assert.Equal(t, 2, rs.calls, "third read must be a cache hit")
}

func TestInvalidateForcesRefetch(t *testing.T) {
	fs := &fakeStore{reservations: []model.Reservation{{Date: "2026-09-10", PickupMin: 900}}}
	clock := &fakeClock{current: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	c := newTestCache(fs, clock)

	_, err := c.GetReservationsForDate(context.Background(), "2026-09-10")
	require.NoError(t, err)

	c.Invalidate()

	_, err = c.GetReservationsForDate(context.Background(), "2026-09-10")
	require.NoError(t, err)
	assert.Equal(t, 2, fs.listCalls, "invalidated cache must refetch even within the freshness window")
}
