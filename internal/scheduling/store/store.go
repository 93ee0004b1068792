package store

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/dabstractor/midnightexpress/internal/scheduling/errors"
	"github.com/dabstractor/midnightexpress/pkg/client"
	"github.com/dabstractor/midnightexpress/pkg/logger"
	"github.com/dabstractor/midnightexpress/pkg/model"
)

// ReservationStore is the remote collaborator holding all bookings. It
// offers no transactions, no record IDs, and no filtering; reads return
// the full sheet and writes append one row per ride leg.
type ReservationStore interface {
	List(ctx context.Context) ([]model.Reservation, error)
	Append(ctx context.Context, rec Record) error
	Ping(ctx context.Context) error
}

// Record is one ride leg written to the store, field for field as the
// sheet expects them. BookingID ties the legs of a round trip together;
// the store itself never returns it on reads.
type Record struct {
	BookingID     string
	Name          string
	Phone         string
	Email         string
	PickupAddress string
	Destination   string
	PickupDate    string // YYYY-MM-DD
	PickupTime    string // HH:MM, 24-hour
	Passengers    int
	Wheelchair    bool
	CarSeat       bool
	CheckedBags   bool
	OtherNotes    string
	FlightNumber  string
	RoundTrip     bool
}

// wireReservation mirrors one row of the sheet's read response. Time is a
// full timestamp whose date portion is a fixed epoch placeholder; only the
// hour and minute are meaningful.
type wireReservation struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// timeLayouts are tried in order when decoding the sheet's time column.
// The sheet emits full timestamps on a placeholder date, but older rows
// carry a bare clock string.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"15:04:05",
	"15:04",
}

// HTTPStore talks to the reservation sheet over its HTTP facade.
type HTTPStore struct {
	client *client.HttpClient
	log    *logger.Logger
}

func NewHTTPStore(baseURL string, timeout time.Duration, log *logger.Logger) *HTTPStore {
	return &HTTPStore{
		client: client.NewHttpClient(baseURL, timeout),
		log:    log,
	}
}

// List fetches every reservation row. Rows with an unparseable time column
// are skipped with a warning rather than failing the whole read; a single
// bad row must not take availability checking down.
func (s *HTTPStore) List(ctx context.Context) ([]model.Reservation, error) {
	resp, err := s.client.GET(ctx, "/reservations")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("%w: status %d", errors.ErrStoreUnavailable, resp.StatusCode)
	}

	var rows []wireReservation
	if err := resp.DecodeJSON(&rows); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}

	reservations := make([]model.Reservation, 0, len(rows))
	for i, row := range rows {
		minutes, err := decodeClock(row.Time)
		if err != nil {
			s.log.Warn("skipping reservation row with bad time column",
				"row", i,
				"time", row.Time,
				"error", err,
			)
			continue
		}
		reservations = append(reservations, model.Reservation{
			Date:      row.Date,
			PickupMin: minutes,
		})
	}

	return reservations, nil
}

// Append writes one ride leg as a form submission. The sheet facade
// answers 200 or 201 on success and anything else on failure; there is no
// dedup, so retries can create duplicate rows.
func (s *HTTPStore) Append(ctx context.Context, rec Record) error {
	form := url.Values{}
	form.Set("booking_id", rec.BookingID)
	form.Set("name", rec.Name)
	form.Set("phone", rec.Phone)
	form.Set("email", rec.Email)
	form.Set("pickup_address", rec.PickupAddress)
	form.Set("destination", rec.Destination)
	form.Set("pickup_date", rec.PickupDate)
	form.Set("pickup_time", rec.PickupTime)
	form.Set("passengers", strconv.Itoa(rec.Passengers))
	form.Set("wheelchair", strconv.FormatBool(rec.Wheelchair))
	form.Set("car_seat", strconv.FormatBool(rec.CarSeat))
	form.Set("checked_bags", strconv.FormatBool(rec.CheckedBags))
	form.Set("other_notes", rec.OtherNotes)
	form.Set("flight_number", rec.FlightNumber)
	form.Set("round_trip", strconv.FormatBool(rec.RoundTrip))

	resp, err := s.client.POSTForm(ctx, "/reservations", form)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrStoreWriteFailed, err)
	}
	if resp.StatusCode != 200 && resp.StatusCode != 201 {
		return fmt.Errorf("%w: status %d", errors.ErrStoreWriteFailed, resp.StatusCode)
	}
	return nil
}

// Ping checks store reachability for readiness probes.
func (s *HTTPStore) Ping(ctx context.Context) error {
	resp, err := s.client.GET(ctx, "/reservations")
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: status %d", errors.ErrStoreUnavailable, resp.StatusCode)
	}
	return nil
}

// decodeClock extracts minutes-since-midnight from the sheet's time
// column, discarding the placeholder date portion.
func decodeClock(raw string) (int, error) {
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("unrecognized time value %q", raw)
}
