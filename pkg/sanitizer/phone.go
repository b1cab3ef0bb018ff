package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var supportedRegions = []string{
	"IN",
	"US",
}

// NormalizePhone converts a phone number to E.164. Numbers without a
// country prefix are tried against the supported regions in order.
// Returns "" when the number cannot be parsed.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	for _, region := range supportedRegions {
		parsedNumber, err := phonenumbers.Parse(phone, region)
		if err == nil && phonenumbers.IsValidNumber(parsedNumber) {
			return phonenumbers.Format(parsedNumber, phonenumbers.E164)
		}
	}
	return ""
}
