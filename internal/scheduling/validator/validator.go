package validator

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dabstractor/midnightexpress/internal/scheduling/pricing"
	"github.com/dabstractor/midnightexpress/internal/scheduling/window"
	"github.com/dabstractor/midnightexpress/pkg/logger"
	"github.com/dabstractor/midnightexpress/pkg/model"
	"github.com/dabstractor/midnightexpress/pkg/sanitizer"
)

// Airline code plus flight number, loosely: "AA 1234", "DL-89", "UA482B".
var flightNumberRegex = regexp.MustCompile(`^[A-Za-z0-9]{2,3}[ -]?\d{1,4}[A-Za-z]?$`)

// BookingValidator evaluates a candidate against booking policy and the
// day's existing reservations. Evaluate never returns an error; every
// outcome is a verdict with display-ready reasons.
type BookingValidator struct {
	validate      *validator.Validate
	loc           *time.Location
	minAdvance    time.Duration
	maxHorizon    time.Duration
	businessPhone string
	logger        *logger.Logger
}

func New(loc *time.Location, minAdvance, maxHorizon time.Duration, businessPhone string, log *logger.Logger) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("contact_phone", validateContactPhone); err != nil {
		log.Fatal("Failed to register 'contact_phone' validator",
			"error", err,
		)
	}

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate:      v,
		loc:           loc,
		minAdvance:    minAdvance,
		maxHorizon:    maxHorizon,
		businessPhone: businessPhone,
		logger:        log,
	}
}

func validateContactPhone(fl validator.FieldLevel) bool {
	return sanitizer.NormalizePhone(fl.Field().String()) != ""
}

// Evaluate runs every applicable check and collects all failing reasons.
// Only the checks that need a parseable pickup instant are skipped when
// the date or time is missing; capacity and flight-number checks still
// run, since they depend on neither.
func (v *BookingValidator) Evaluate(c *model.BookingCandidate, reservations []model.Reservation, now time.Time) model.Verdict {
	var reasons []string

	reasons = append(reasons, v.fieldReasons(c)...)
	reasons = append(reasons, v.instantReasons(c, reservations, now)...)

	if capacity := pricing.Capacity(c.Requirements); c.Passengers > capacity {
		reasons = append(reasons, fmt.Sprintf(
			"With the selected requirements the shuttle seats %d passengers; you requested %d. For larger groups, call us at %s.",
			capacity, c.Passengers, v.businessPhone,
		))
	}

	if c.AirportTrip && c.FlightNumber != "" && !flightNumberRegex.MatchString(c.FlightNumber) {
		reasons = append(reasons, "Flight number doesn't look right. Use the airline code and number, like AA 1234.")
	}

	return verdict(reasons)
}

// instantReasons covers the checks that are meaningless without a pickup
// instant: past, advance notice, horizon, conflict, and return ordering.
func (v *BookingValidator) instantReasons(c *model.BookingCandidate, reservations []model.Reservation, now time.Time) []string {
	if c.PickupDate == "" || c.PickupTime == "" {
		return []string{"Pickup date and time are both required."}
	}

	pickup, err := c.PickupInstant(v.loc)
	if err != nil {
		return []string{"Pickup date or time is not in a recognized format."}
	}

	var reasons []string

	if pickup.Before(now) {
		reasons = append(reasons, "Pickup time is in the past.")
	}

	if pickup.Sub(now) < v.minAdvance {
		reasons = append(reasons, fmt.Sprintf(
			"Pickups must be booked at least %d hours in advance. For urgent rides, call us at %s.",
			int(v.minAdvance.Hours()), v.businessPhone,
		))
	}

	if pickup.Sub(now) > v.maxHorizon {
		reasons = append(reasons, fmt.Sprintf(
			"Pickups can be booked at most %d days in advance.",
			int(v.maxHorizon.Hours()/24),
		))
	}

	if minutes, err := c.PickupMinutes(); err == nil {
		if blocked, ok := window.FirstConflict(minutes, reservations); ok {
			reasons = append(reasons, fmt.Sprintf(
				"That time is unavailable: the shuttle is committed from %s to %s. Pick another time or call us at %s.",
				model.ClockOfDay(blocked.Start), model.ClockOfDay(blocked.End), v.businessPhone,
			))
		}
	}

	if c.RoundTrip {
		reasons = append(reasons, v.roundTripReasons(c, pickup)...)
	}

	return reasons
}

func (v *BookingValidator) roundTripReasons(c *model.BookingCandidate, pickup time.Time) []string {
	if c.ReturnDate == "" || c.ReturnTime == "" {
		return []string{"Round trips need a return date and time."}
	}

	ret, err := c.ReturnInstant(v.loc)
	if err != nil {
		return []string{"Return date or time is not in a recognized format."}
	}

	if !ret.After(pickup) {
		return []string{"Return pickup must be after the outbound pickup."}
	}
	return nil
}

// fieldReasons translates struct-tag failures into display-ready strings.
func (v *BookingValidator) fieldReasons(c *model.BookingCandidate) []string {
	err := v.validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		v.logger.Error("candidate struct validation failed unexpectedly", "error", err)
		return []string{"Booking details could not be read. Please check the form and try again."}
	}

	var reasons []string
	for _, fe := range validationErrs {
		switch fe.Field() {
		case "Name":
			reasons = append(reasons, "Please enter the rider's name.")
		case "Phone":
			reasons = append(reasons, "Please enter a valid 10-digit US phone number.")
		case "Email":
			reasons = append(reasons, "Email address doesn't look right.")
		case "PickupAddress":
			reasons = append(reasons, "Please enter a pickup address.")
		case "Destination":
			reasons = append(reasons, "Please choose a destination.")
		case "PickupDate":
			reasons = append(reasons, "Pickup date must be in YYYY-MM-DD form.")
		case "PickupTime":
			reasons = append(reasons, "Pickup time must be in HH:MM form.")
		case "ReturnDate":
			reasons = append(reasons, "Return date must be in YYYY-MM-DD form.")
		case "ReturnTime":
			reasons = append(reasons, "Return time must be in HH:MM form.")
		case "Passengers":
			reasons = append(reasons, "Passenger count must be at least 1.")
		default:
			reasons = append(reasons, fmt.Sprintf("%s is invalid.", fe.Field()))
		}
	}
	return reasons
}

func verdict(reasons []string) model.Verdict {
	return model.Verdict{
		Valid:   len(reasons) == 0,
		Reasons: reasons,
	}
}
