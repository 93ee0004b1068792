package cache

import (
	"context"
	"sync"
	"time"

	"github.com/dabstractor/midnightexpress/internal/scheduling/metrics"
	"github.com/dabstractor/midnightexpress/internal/scheduling/store"
	"github.com/dabstractor/midnightexpress/pkg/logger"
	"github.com/dabstractor/midnightexpress/pkg/model"
)

// ReservationCache holds the most recent reservation set read from the
// store so that repeated availability checks within the freshness window
// reuse it instead of refetching.
//
// On fetch failure the last successful set is served stale; on a
// first-ever failure with no prior data an empty set is returned, which
// optimistically lets the booking flow continue with no known conflicts.
// A double-booking is then possible and is resolved by phone downstream.
type ReservationCache struct {
	store     store.ReservationStore
	freshness time.Duration
	now       func() time.Time
	log       *logger.Logger

	mu           sync.Mutex
	reservations []model.Reservation
	fetchedAt    time.Time
	hasData      bool
	requestSeq   uint64
	appliedSeq   uint64
}

func New(s store.ReservationStore, freshness time.Duration, now func() time.Time, log *logger.Logger) *ReservationCache {
	if now == nil {
		now = time.Now
	}
	return &ReservationCache{
		store:     s,
		freshness: freshness,
		now:       now,
		log:       log,
	}
}

// GetReservationsForDate returns the reservations on the given calendar
// date, fetching from the store when the cached set is stale. The returned
// slice is a copy; callers may not observe later refreshes through it.
func (c *ReservationCache) GetReservationsForDate(ctx context.Context, date string) ([]model.Reservation, error) {
	all, err := c.getAll(ctx)
	if err != nil {
		return nil, err
	}

	var forDate []model.Reservation
	for _, r := range all {
		if r.Date == date {
			forDate = append(forDate, r)
		}
	}
	return forDate, nil
}

func (c *ReservationCache) getAll(ctx context.Context) ([]model.Reservation, error) {
	c.mu.Lock()
	if c.hasData && c.now().Sub(c.fetchedAt) < c.freshness {
		snapshot := c.snapshotLocked()
		c.mu.Unlock()
		metrics.CacheHits.Inc()
		return snapshot, nil
	}
	c.requestSeq++
	seq := c.requestSeq
	c.mu.Unlock()

	metrics.CacheMisses.Inc()

	fetched, err := c.store.List(ctx)
	if err != nil {
		return c.fallback(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// A newer request may have applied its response while this fetch was
	// in flight; keep the newer data and serve this response only to the
	// caller who asked for it.
	if seq > c.appliedSeq {
		c.appliedSeq = seq
		c.reservations = fetched
		c.fetchedAt = c.now()
		c.hasData = true
	}

	out := make([]model.Reservation, len(fetched))
	copy(out, fetched)
	return out, nil
}

// fallback serves the last known set on fetch failure, or an empty set if
// nothing was ever fetched. The degradation is invisible to the caller but
// logged and counted for operators.
func (c *ReservationCache) fallback(fetchErr error) ([]model.Reservation, error) {
	metrics.StoreFetchFailures.Inc()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hasData {
		c.log.Warn("reservation fetch failed, serving stale data",
			"error", fetchErr,
			"stale_age", c.now().Sub(c.fetchedAt).String(),
		)
		return c.snapshotLocked(), nil
	}

	metrics.EmptyFallbacks.Inc()
	c.log.Error("reservation fetch failed with no cached data, proceeding with empty conflict set",
		"error", fetchErr,
	)
	return []model.Reservation{}, nil
}

// Invalidate marks the cached set stale so the next read refetches.
// Called after a successful booking write so the new row is visible
// immediately.
func (c *ReservationCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchedAt = time.Time{}
}

func (c *ReservationCache) snapshotLocked() []model.Reservation {
	out := make([]model.Reservation, len(c.reservations))
	copy(out, c.reservations)
	return out
}
