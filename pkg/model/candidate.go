package model

import (
	"fmt"
	"time"
)

// SpecialRequirements are the seat/cargo extras a rider can request.
type SpecialRequirements struct {
	Wheelchair  bool   `json:"wheelchair"`
	CarSeat     bool   `json:"car_seat"`
	CheckedBags bool   `json:"checked_bags"`
	Other       string `json:"other,omitempty" validate:"omitempty,max=500"`
}

// BookingCandidate is an in-progress booking request as assembled by the
// presentation layer. It lives only for the duration of one evaluation or
// submission; accepted bookings are persisted solely by the reservation
// store.
type BookingCandidate struct {
	Name          string              `json:"name" validate:"required,min=2,max=100"`
	Phone         string              `json:"phone" validate:"required,contact_phone"`
	Email         string              `json:"email,omitempty" validate:"omitempty,email"`
	PickupAddress string              `json:"pickup_address" validate:"required,min=5,max=200"`
	Destination   string              `json:"destination" validate:"required,min=2,max=100"`
	PickupDate    string              `json:"pickup_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PickupTime    string              `json:"pickup_time,omitempty" validate:"omitempty,datetime=15:04"`
	Passengers    int                 `json:"passengers" validate:"required,min=1"`
	Requirements  SpecialRequirements `json:"requirements"`
	AirportTrip   bool                `json:"airport_trip"`
	FlightNumber  string              `json:"flight_number,omitempty"`
	RoundTrip     bool                `json:"round_trip"`
	ReturnDate    string              `json:"return_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ReturnTime    string              `json:"return_time,omitempty" validate:"omitempty,datetime=15:04"`
}

// PickupInstant combines the pickup date and time into a wall-clock instant
// in the given location.
func (c *BookingCandidate) PickupInstant(loc *time.Location) (time.Time, error) {
	return combineInstant(c.PickupDate, c.PickupTime, loc)
}

// ReturnInstant combines the return date and time into a wall-clock instant
// in the given location.
func (c *BookingCandidate) ReturnInstant(loc *time.Location) (time.Time, error) {
	return combineInstant(c.ReturnDate, c.ReturnTime, loc)
}

// PickupMinutes returns the pickup time as minutes since midnight.
func (c *BookingCandidate) PickupMinutes() (int, error) {
	return MinutesOfDay(c.PickupTime)
}

func combineInstant(date, clock string, loc *time.Location) (time.Time, error) {
	if date == "" || clock == "" {
		return time.Time{}, fmt.Errorf("date and time are both required")
	}
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
}

// Verdict is the outcome of validating a candidate. Reasons are ordered by
// check and phrased for direct display to the rider.
type Verdict struct {
	Valid   bool     `json:"valid"`
	Reasons []string `json:"reasons,omitempty"`
}

// Quote is an advisory fare estimate. Amount is meaningless when Known is
// false; the caller must direct the rider to confirm by phone instead.
type Quote struct {
	Destination string `json:"destination"`
	Passengers  int    `json:"passengers"`
	Amount      int    `json:"amount"`
	Known       bool   `json:"known"`
}
