package main

import (
	"time"

	"github.com/joho/godotenv"

	"github.com/dabstractor/midnightexpress/internal/scheduling/cache"
	"github.com/dabstractor/midnightexpress/internal/scheduling/events"
	"github.com/dabstractor/midnightexpress/internal/scheduling/handler"
	"github.com/dabstractor/midnightexpress/internal/scheduling/service"
	"github.com/dabstractor/midnightexpress/internal/scheduling/store"
	"github.com/dabstractor/midnightexpress/internal/scheduling/validator"
	"github.com/dabstractor/midnightexpress/pkg/app"
	"github.com/dabstractor/midnightexpress/pkg/config"
	"github.com/dabstractor/midnightexpress/pkg/kafka"
	kafkaconfig "github.com/dabstractor/midnightexpress/pkg/kafka/config"
)

const (
	ServiceName = "scheduler"
	Version     = "1.2.0"
)

func main() {
	// Missing .env is fine; the environment or defaults cover it.
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting scheduler service", "version", Version)

	reservationStore := store.NewHTTPStore(cfg.StoreBaseURL, cfg.StoreTimeout, cfg.Log)
	schedulingService := initServices(cfg, reservationStore)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewSchedulingHandler(schedulingService, cfg.BusinessPhone, cfg.Log),
		handler.NewOpsHandler(reservationStore, Version, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, reservationStore store.ReservationStore) service.SchedulingService {
	reservationCache := cache.New(reservationStore, cfg.CacheFreshness, time.Now, cfg.Log)
	bookingValidator := validator.New(time.Local, cfg.MinAdvance, cfg.MaxAdvanceHorizon, cfg.BusinessPhone, cfg.Log)
	publisher := initPublisher(cfg)

	schedulingService := service.NewSchedulingService(
		reservationCache,
		reservationStore,
		bookingValidator,
		publisher,
		cfg,
		time.Now,
	)

	cfg.Log.Info("Scheduling service initialized", "store", cfg.StoreBaseURL)
	return schedulingService
}

func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, booking events will not be published")
		return events.NoopPublisher{}
	}

	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventTopic, cfg.BookingEventTopic+".dlq")
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cfg.Log.Info("Kafka producer initialized", "topic", cfg.BookingEventTopic)
	return events.NewKafkaPublisher(producer, cfg.Log)
}
