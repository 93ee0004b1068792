package events

import (
	"context"
	"time"

	"github.com/dabstractor/midnightexpress/pkg/kafka"
	"github.com/dabstractor/midnightexpress/pkg/logger"
	"github.com/dabstractor/midnightexpress/pkg/model"
)

const (
	EventBookingAccepted = "booking.accepted"

	schemaVersion = "1"
	sourceService = "scheduler"
)

// BookingAccepted is the event payload emitted after a booking is written
// to the reservation store. Downstream consumers send confirmations and
// dispatch notifications from it.
type BookingAccepted struct {
	BookingID     string    `json:"booking_id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	PickupAddress string    `json:"pickup_address"`
	Destination   string    `json:"destination"`
	PickupDate    string    `json:"pickup_date"`
	PickupTime    string    `json:"pickup_time"`
	Passengers    int       `json:"passengers"`
	RoundTrip     bool      `json:"round_trip"`
	ReturnDate    string    `json:"return_date,omitempty"`
	ReturnTime    string    `json:"return_time,omitempty"`
	QuotedAmount  int       `json:"quoted_amount,omitempty"`
	QuoteKnown    bool      `json:"quote_known"`
	AcceptedAt    time.Time `json:"accepted_at"`
}

// Publisher emits booking events. A nil *KafkaPublisher is a valid no-op,
// so callers need no branching when eventing is disabled.
type Publisher interface {
	BookingAccepted(ctx context.Context, evt BookingAccepted)
}

type KafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, log: log}
}

// BookingAccepted publishes the event keyed by pickup date so one day's
// bookings stay ordered on a single partition. Publish failures are logged
// and dropped; the booking already exists in the store and the rider has
// been told it succeeded.
func (p *KafkaPublisher) BookingAccepted(ctx context.Context, evt BookingAccepted) {
	if p == nil || p.producer == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(evt.PickupDate).
		WithValue(evt).
		WithEventType(EventBookingAccepted).
		WithSource(sourceService).
		WithHeader(kafka.HeaderSchemaVersion, schemaVersion).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("failed to publish booking accepted event",
			"pickup_date", evt.PickupDate,
			"error", err,
		)
	}
}

// NoopPublisher drops all events; used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) BookingAccepted(ctx context.Context, evt BookingAccepted) {}

// FromBooking assembles the event payload for an accepted candidate.
func FromBooking(c *model.BookingCandidate, bookingID string, quote model.Quote, acceptedAt time.Time) BookingAccepted {
	return BookingAccepted{
		BookingID:     bookingID,
		Name:          c.Name,
		Phone:         c.Phone,
		PickupAddress: c.PickupAddress,
		Destination:   c.Destination,
		PickupDate:    c.PickupDate,
		PickupTime:    c.PickupTime,
		Passengers:    c.Passengers,
		RoundTrip:     c.RoundTrip,
		ReturnDate:    c.ReturnDate,
		ReturnTime:    c.ReturnTime,
		QuotedAmount:  quote.Amount,
		QuoteKnown:    quote.Known,
		AcceptedAt:    acceptedAt,
	}
}
