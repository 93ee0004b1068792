package config

const (
	EnvStoreBaseURL = "RESERVATION_STORE_URL"
	EnvStoreTimeout = "RESERVATION_STORE_TIMEOUT"

	EnvCacheFreshness = "RESERVATION_CACHE_FRESHNESS"

	EnvMinAdvance        = "BOOKING_MIN_ADVANCE"
	EnvMaxAdvanceHorizon = "BOOKING_MAX_ADVANCE_HORIZON"

	EnvBusinessPhone = "BUSINESS_PHONE"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvKafkaEnabled      = "KAFKA_ENABLED"
	EnvBookingEventTopic = "BOOKING_EVENT_TOPIC"
)
