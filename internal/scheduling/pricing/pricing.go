package pricing

import (
	"strings"

	"github.com/dabstractor/midnightexpress/pkg/model"
)

// Flat rates by destination, in whole dollars. Rates cover up to two
// passengers; each additional passenger adds the surcharge.
const (
	RateCLT     = 85
	RateConcord = 65
	RatePrivate = 75

	IncludedPassengers = 2
	ExtraPassengerFee  = 10
)

// Vehicle capacity. Wheelchair or car seat takes one seat; checked bags
// take another. The floor keeps at least one rider seat available.
const (
	BaseCapacity = 6
	MinCapacity  = 1
)

// destinationRates maps recognized destination labels to their flat rate.
// Matching is case-insensitive; anything else yields an unknown quote.
// "usa" is the Concord-Padgett Regional airport code.
var destinationRates = map[string]int{
	"clt":     RateCLT,
	"concord": RateConcord,
	"usa":     RateConcord,
	"private": RatePrivate,
}

// serviceAreas are the pickup neighborhoods the shuttle covers. Matching is
// a case-insensitive substring check against the pickup address, so
// "123 Main St, Harrisburg, NC" matches "harrisburg".
var serviceAreas = []string{
	"charlotte",
	"concord",
	"kannapolis",
	"harrisburg",
	"huntersville",
	"davidson",
	"cornelius",
	"mint hill",
	"matthews",
	"pineville",
}

// QuoteFor computes the advisory fare for a destination and passenger
// count. Unrecognized destinations return Known=false with a zero amount;
// the rider is told to confirm pricing by phone. The quote never gates
// booking acceptance.
func QuoteFor(destination string, passengers int) model.Quote {
	q := model.Quote{
		Destination: destination,
		Passengers:  passengers,
	}

	rate, ok := destinationRates[strings.ToLower(strings.TrimSpace(destination))]
	if !ok {
		return q
	}

	q.Known = true
	q.Amount = rate
	if passengers > IncludedPassengers {
		q.Amount += (passengers - IncludedPassengers) * ExtraPassengerFee
	}
	return q
}

// Capacity returns the passenger seats left after special requirements
// claim their space. Wheelchair and car seat together still cost one seat.
func Capacity(req model.SpecialRequirements) int {
	capacity := BaseCapacity
	if req.Wheelchair || req.CarSeat {
		capacity--
	}
	if req.CheckedBags {
		capacity--
	}
	if capacity < MinCapacity {
		return MinCapacity
	}
	return capacity
}

// InServiceArea reports whether a pickup address falls inside a covered
// neighborhood. Out-of-area pickups are not rejected; the dispatcher
// follows up by phone.
func InServiceArea(address string) bool {
	addr := strings.ToLower(address)
	for _, area := range serviceAreas {
		if strings.Contains(addr, area) {
			return true
		}
	}
	return false
}
