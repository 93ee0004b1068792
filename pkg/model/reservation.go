package model

import (
	"fmt"
	"time"
)

// Reservation is a single existing booking read from the reservation store.
// Identity is positional; the store exposes no record IDs.
type Reservation struct {
	Date      string `json:"date"`       // calendar date, YYYY-MM-DD
	PickupMin int    `json:"pickup_min"` // pickup time, minutes since midnight
}

// TimeWindow is the exclusive-use period a reservation blocks on its day.
// Start may be negative and End may exceed 1440 before clamping; conflict
// checks use the raw values, rendering clamps to [0, 1440].
type TimeWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// MinutesOfDay converts an HH:MM clock string to minutes since midnight.
func MinutesOfDay(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ClockOfDay formats minutes since midnight in 12-hour clock form,
// e.g. 780 -> "1:00 PM". Input outside [0, 1440) wraps into the day.
func ClockOfDay(minutes int) string {
	minutes = ((minutes % 1440) + 1440) % 1440
	h, m := minutes/60, minutes%60

	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h = h % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, m, suffix)
}
