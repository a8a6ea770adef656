// Package dateutil owns every date convention the ledger relies on: the
// academy timezone, the YYYY-MM-DD storage format, and the single parser
// for operator-supplied dates. Display formatting (DD-MM-YYYY) is only
// ever applied at the notification boundary.
package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// AcademyTZ is the academy timezone (IST, UTC+5:30, no DST).
var AcademyTZ = time.FixedZone("Asia/Kolkata", 5*3600+1800)

// ISODate is the storage and wire format for all ledger dates.
const ISODate = "2006-01-02"

// DisplayDate is the human-facing format used in WhatsApp/email templates.
const DisplayDate = "02-01-2006"

// acceptedFormats is the ordered list of input formats the parser tries.
// Earlier entries win; the ISO storage format is always preferred.
var acceptedFormats = []string{
	ISODate,
	"2006-01-02 15:04:05",
	DisplayDate,
	"02/01/2006",
}

// Now returns the current time in the academy timezone.
func Now() time.Time {
	return time.Now().In(AcademyTZ)
}

// Today returns the current date at midnight in the academy timezone.
func Today() time.Time {
	return StartOfDay(Now())
}

// MidnightDate builds a midnight date in the academy timezone.
func MidnightDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, AcademyTZ)
}

// StartOfDay truncates a time to midnight in the academy timezone.
func StartOfDay(t time.Time) time.Time {
	local := t.In(AcademyTZ)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, AcademyTZ)
}

// AddDays returns the date shifted by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// Format renders a date in storage format.
func Format(t time.Time) string {
	return t.In(AcademyTZ).Format(ISODate)
}

// FormatDisplay renders a date in DD-MM-YYYY for outbound messages.
func FormatDisplay(t time.Time) string {
	return t.In(AcademyTZ).Format(DisplayDate)
}

// Parse reads a date in any accepted format. Unparsable input is an error:
// the caller must reject the value rather than fall back to today.
func Parse(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range acceptedFormats {
		if t, err := time.ParseInLocation(layout, trimmed, AcademyTZ); err == nil {
			return StartOfDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// DaysBetween returns the whole calendar days from a to b (negative if b
// precedes a). Both are truncated to academy-timezone midnight first.
func DaysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)) / (24 * time.Hour))
}
