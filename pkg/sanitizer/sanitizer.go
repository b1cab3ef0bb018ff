// Package sanitizer provides input normalization for booking data.
//
// All functions are idempotent and handle invalid input by returning empty
// strings rather than errors. Normalization runs before validation, so the
// validators only ever see canonical values.
package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims the string and collapses internal whitespace runs
// into single spaces.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeCity(city string) string {
	return TrimAndNormalize(city)
}

// NormalizeEmail lowercases the address; emails are the user key so casing
// must never split one user into two.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePromoCode uppercases the code; promo matching is case-insensitive.
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
