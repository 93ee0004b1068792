package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_reservation_cache_hits_total",
		Help: "Reservation lookups served from the fresh cache.",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_reservation_cache_misses_total",
		Help: "Reservation lookups that required a store fetch.",
	})

	StoreFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_store_fetch_failures_total",
		Help: "Failed reservation store reads, including those served from stale data.",
	})

	EmptyFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_empty_conflict_fallbacks_total",
		Help: "Store fetch failures with no prior data, where validation proceeded against an empty conflict set.",
	})

	StoreWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_store_writes_total",
		Help: "Reservation store append attempts by outcome.",
	}, []string{"outcome"})

	Verdicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_booking_verdicts_total",
		Help: "Booking evaluations by verdict.",
	}, []string{"verdict"})
)
