package config

import "time"

const (
	DefaultStoreBaseURL = "http://localhost:8090"
	DefaultStoreTimeout = 10 * time.Second

	DefaultCacheFreshness = 60 * time.Second

	DefaultMinAdvance        = 3 * time.Hour
	DefaultMaxAdvanceHorizon = 90 * 24 * time.Hour

	DefaultBusinessPhone = "(704) 555-0199"

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultKafkaEnabled      = false
	DefaultBookingEventTopic = "bookings.accepted"
)
