package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Pickups are all domestic, so numbers parse against the US region only.
const phoneRegion = "US"

// NormalizePhone returns the E.164 form of a US phone number, or an empty
// string when the input cannot be parsed as one.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	parsedNumber, err := phonenumbers.Parse(phone, phoneRegion)
	if err != nil || !phonenumbers.IsValidNumberForRegion(parsedNumber, phoneRegion) {
		return ""
	}
	return phonenumbers.Format(parsedNumber, phonenumbers.E164)
}
