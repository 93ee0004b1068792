package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dabstractor/midnightexpress/internal/scheduling/cache"
	scherrors "github.com/dabstractor/midnightexpress/internal/scheduling/errors"
	"github.com/dabstractor/midnightexpress/internal/scheduling/events"
	"github.com/dabstractor/midnightexpress/internal/scheduling/metrics"
	"github.com/dabstractor/midnightexpress/internal/scheduling/pricing"
	"github.com/dabstractor/midnightexpress/internal/scheduling/store"
	"github.com/dabstractor/midnightexpress/internal/scheduling/timeline"
	"github.com/dabstractor/midnightexpress/internal/scheduling/validator"
	"github.com/dabstractor/midnightexpress/internal/scheduling/window"
	"github.com/dabstractor/midnightexpress/pkg/config"
	"github.com/dabstractor/midnightexpress/pkg/model"
	"github.com/dabstractor/midnightexpress/pkg/sanitizer"
)

// AvailabilityView is one day's blocked time, both structured and as a
// rendered fragment for the booking page.
type AvailabilityView struct {
	Date           string             `json:"date"`
	FullyAvailable bool               `json:"fully_available"`
	Windows        []model.TimeWindow `json:"windows"`
	HTML           string             `json:"html"`
}

// SubmitResult reports a submission outcome. Accepted is true only when
// every ride leg was written to the store; BookingID is the reference
// stamped on each written leg.
type SubmitResult struct {
	Accepted  bool          `json:"accepted"`
	BookingID string        `json:"booking_id,omitempty"`
	Verdict   model.Verdict `json:"verdict"`
	Quote     model.Quote   `json:"quote"`
}

type SchedulingService interface {
	Availability(ctx context.Context, date string) (*AvailabilityView, error)
	Evaluate(ctx context.Context, candidate *model.BookingCandidate) (model.Verdict, error)
	Submit(ctx context.Context, candidate *model.BookingCandidate) (*SubmitResult, error)
	Quote(destination string, passengers int) model.Quote
}

type schedulingService struct {
	reservations *cache.ReservationCache
	store        store.ReservationStore
	validator    *validator.BookingValidator
	publisher    events.Publisher
	cfg          *config.Config
	now          func() time.Time
}

func NewSchedulingService(
	reservations *cache.ReservationCache,
	st store.ReservationStore,
	bv *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
	now func() time.Time,
) SchedulingService {
	if now == nil {
		now = time.Now
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &schedulingService{
		reservations: reservations,
		store:        st,
		validator:    bv,
		publisher:    publisher,
		cfg:          cfg,
		now:          now,
	}
}

// Availability returns the blocked windows for a date, merged for display.
func (s *schedulingService) Availability(ctx context.Context, date string) (*AvailabilityView, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	dayReservations, err := s.reservations.GetReservationsForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	merged := window.BlockedWindows(dayReservations)
	html, err := timeline.RenderHTML(date, merged)
	if err != nil {
		return nil, err
	}

	return &AvailabilityView{
		Date:           date,
		FullyAvailable: len(merged) == 0,
		Windows:        merged,
		HTML:           html,
	}, nil
}

// Evaluate validates a candidate against current data without writing
// anything. The fetch degrades to cached or empty data on store failure,
// so an error here means bad input, not store trouble.
func (s *schedulingService) Evaluate(ctx context.Context, candidate *model.BookingCandidate) (model.Verdict, error) {
	s.sanitize(candidate)

	dayReservations, err := s.reservations.GetReservationsForDate(ctx, candidate.PickupDate)
	if err != nil {
		return model.Verdict{}, err
	}

	verdict := s.validator.Evaluate(candidate, dayReservations, s.now())
	s.countVerdict(verdict)
	return verdict, nil
}

// Submit re-validates against freshly fetched data, then writes one store
// record per ride leg. This is best-effort freshness, not a transaction:
// two concurrent submissions can both pass and both be written, and the
// resulting double-booking is resolved by phone.
func (s *schedulingService) Submit(ctx context.Context, candidate *model.BookingCandidate) (*SubmitResult, error) {
	s.sanitize(candidate)

	dayReservations, err := s.reservations.GetReservationsForDate(ctx, candidate.PickupDate)
	if err != nil {
		return nil, err
	}

	verdict := s.validator.Evaluate(candidate, dayReservations, s.now())
	s.countVerdict(verdict)
	if !verdict.Valid {
		return &SubmitResult{Verdict: verdict}, nil
	}

	quote := pricing.QuoteFor(candidate.Destination, candidate.Passengers)
	bookingID := uuid.New().String()

	if err := s.store.Append(ctx, outboundRecord(candidate, bookingID)); err != nil {
		metrics.StoreWrites.WithLabelValues("failure").Inc()
		s.cfg.Log.Error("outbound leg write failed",
			"booking_id", bookingID,
			"pickup_date", candidate.PickupDate,
			"error", err,
		)
		return nil, err
	}
	metrics.StoreWrites.WithLabelValues("success").Inc()

	if candidate.RoundTrip {
		if err := s.store.Append(ctx, returnRecord(candidate, bookingID)); err != nil {
			metrics.StoreWrites.WithLabelValues("failure").Inc()
			// The outbound leg is already persisted and the store has no
			// delete; dispatch has to reconcile by hand.
			s.cfg.Log.Error("return leg write failed after outbound leg was written",
				"booking_id", bookingID,
				"pickup_date", candidate.PickupDate,
				"return_date", candidate.ReturnDate,
				"error", err,
			)
			return nil, fmt.Errorf("%w: %v", scherrors.ErrPartialWrite, err)
		}
		metrics.StoreWrites.WithLabelValues("success").Inc()
	}

	s.reservations.Invalidate()
	s.publisher.BookingAccepted(ctx, events.FromBooking(candidate, bookingID, quote, s.now()))

	s.cfg.Log.Info("booking accepted",
		"booking_id", bookingID,
		"pickup_date", candidate.PickupDate,
		"pickup_time", candidate.PickupTime,
		"destination", candidate.Destination,
		"round_trip", candidate.RoundTrip,
	)

	return &SubmitResult{
		Accepted:  true,
		BookingID: bookingID,
		Verdict:   verdict,
		Quote:     quote,
	}, nil
}

// Quote is advisory only and never gates acceptance.
func (s *schedulingService) Quote(destination string, passengers int) model.Quote {
	return pricing.QuoteFor(destination, passengers)
}

func (s *schedulingService) sanitize(c *model.BookingCandidate) {
	c.Name = sanitizer.NormalizeName(c.Name)
	c.Phone = sanitizer.TrimAndNormalize(c.Phone)
	c.Email = sanitizer.TrimAndNormalize(c.Email)
	c.PickupAddress = sanitizer.NormalizeAddress(c.PickupAddress)
	c.Destination = sanitizer.TrimAndNormalize(c.Destination)
	c.FlightNumber = sanitizer.NormalizeFlightNumber(c.FlightNumber)
	c.Requirements.Other = sanitizer.TrimAndNormalize(c.Requirements.Other)

	if !pricing.InServiceArea(c.PickupAddress) && c.PickupAddress != "" {
		s.cfg.Log.Info("pickup address outside known service areas, dispatcher follow-up likely",
			"pickup_address", c.PickupAddress,
		)
	}
}

func (s *schedulingService) countVerdict(v model.Verdict) {
	if v.Valid {
		metrics.Verdicts.WithLabelValues("accepted").Inc()
	} else {
		metrics.Verdicts.WithLabelValues("rejected").Inc()
	}
}

func outboundRecord(c *model.BookingCandidate, bookingID string) store.Record {
	return store.Record{
		BookingID:     bookingID,
		Name:          c.Name,
		Phone:         sanitizer.NormalizePhone(c.Phone),
		Email:         c.Email,
		PickupAddress: c.PickupAddress,
		Destination:   c.Destination,
		PickupDate:    c.PickupDate,
		PickupTime:    c.PickupTime,
		Passengers:    c.Passengers,
		Wheelchair:    c.Requirements.Wheelchair,
		CarSeat:       c.Requirements.CarSeat,
		CheckedBags:   c.Requirements.CheckedBags,
		OtherNotes:    c.Requirements.Other,
		FlightNumber:  c.FlightNumber,
		RoundTrip:     c.RoundTrip,
	}
}

// returnRecord is the second leg of a round trip: pickup and destination
// swapped, the return timestamp used as its pickup time.
func returnRecord(c *model.BookingCandidate, bookingID string) store.Record {
	rec := outboundRecord(c, bookingID)
	rec.PickupAddress = c.Destination
	rec.Destination = c.PickupAddress
	rec.PickupDate = c.ReturnDate
	rec.PickupTime = c.ReturnTime
	return rec
}
