package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/dabstractor/midnightexpress/pkg/logger"
)

type Config struct {
	StoreBaseURL string
	StoreTimeout time.Duration

	CacheFreshness time.Duration

	MinAdvance        time.Duration
	MaxAdvanceHorizon time.Duration

	BusinessPhone string

	Port string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	KafkaEnabled      bool
	BookingEventTopic string

	Log *logger.Logger
}

func Load(serviceName string) *Config {
	cfg := &Config{
		StoreBaseURL: getEnvStr(EnvStoreBaseURL, DefaultStoreBaseURL),
		StoreTimeout: getEnvDuration(EnvStoreTimeout, DefaultStoreTimeout),

		CacheFreshness: getEnvDuration(EnvCacheFreshness, DefaultCacheFreshness),

		MinAdvance:        getEnvDuration(EnvMinAdvance, DefaultMinAdvance),
		MaxAdvanceHorizon: getEnvDuration(EnvMaxAdvanceHorizon, DefaultMaxAdvanceHorizon),

		BusinessPhone: getEnvStr(EnvBusinessPhone, DefaultBusinessPhone),

		Port: getEnvStr(EnvPort, DefaultPort),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		KafkaEnabled:      getEnvBool(EnvKafkaEnabled, DefaultKafkaEnabled),
		BookingEventTopic: getEnvStr(EnvBookingEventTopic, DefaultBookingEventTopic),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.StoreBaseURL == "" {
		errors = append(errors, "StoreBaseURL cannot be empty")
	} else if !regexp.MustCompile(`^https?://`).MatchString(cfg.StoreBaseURL) {
		errors = append(errors, fmt.Sprintf("StoreBaseURL must start with 'http://' or 'https://', got: %s", cfg.StoreBaseURL))
	}

	if cfg.StoreTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("StoreTimeout must be positive, got: %s", cfg.StoreTimeout))
	}
	if cfg.CacheFreshness <= 0 {
		errors = append(errors, fmt.Sprintf("CacheFreshness must be positive, got: %s", cfg.CacheFreshness))
	}

	if cfg.MinAdvance <= 0 {
		errors = append(errors, fmt.Sprintf("MinAdvance must be positive, got: %s", cfg.MinAdvance))
	}
	if cfg.MaxAdvanceHorizon <= cfg.MinAdvance {
		errors = append(errors, fmt.Sprintf("MaxAdvanceHorizon (%s) must be greater than MinAdvance (%s)", cfg.MaxAdvanceHorizon, cfg.MinAdvance))
	}

	if cfg.BusinessPhone == "" {
		errors = append(errors, "BusinessPhone cannot be empty")
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.KafkaEnabled && cfg.BookingEventTopic == "" {
		errors = append(errors, "BookingEventTopic cannot be empty when Kafka is enabled")
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"store_base_url", cfg.StoreBaseURL,
		"store_timeout", cfg.StoreTimeout,
		"cache_freshness", cfg.CacheFreshness,
		"min_advance", cfg.MinAdvance,
		"max_advance_horizon", cfg.MaxAdvanceHorizon,
		"port", cfg.Port,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"kafka_enabled", cfg.KafkaEnabled,
		"booking_event_topic", cfg.BookingEventTopic,
	)
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
