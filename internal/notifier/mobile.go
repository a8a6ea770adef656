package notifier

import (
	"errors"
	"strings"
)

// ErrInvalidMobile is returned when a number cannot be normalized.
var ErrInvalidMobile = errors.New("notifier: invalid mobile number")

var separatorReplacer = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// NormalizeMobile canonicalizes a stored mobile number for the WhatsApp
// gateway: separators are stripped, a leading + is dropped, and a bare
// 10-digit local number gets the configured country code. Anything
// non-numeric or shorter than 10 digits is rejected.
func NormalizeMobile(raw, countryCode string) (string, error) {
	mobile := separatorReplacer.Replace(strings.TrimSpace(raw))
	mobile = strings.TrimPrefix(mobile, "+")

	if !isDigits(mobile) || len(mobile) < 10 {
		return "", ErrInvalidMobile
	}
	if len(mobile) == 10 {
		mobile = countryCode + mobile
	}
	return mobile, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
