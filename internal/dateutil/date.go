package dateutil

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date in the academy timezone. It marshals to and from
// YYYY-MM-DD JSON strings and scans PostgreSQL DATE columns. The zero value
// represents an absent date and serializes as JSON null / SQL NULL.
type Date struct {
	time.Time
}

// NewDate truncates a time to an academy-timezone calendar date.
func NewDate(t time.Time) Date {
	return Date{StartOfDay(t)}
}

// ParseDate reads a Date using the shared accepted-format list.
func ParseDate(s string) (Date, error) {
	t, err := Parse(s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.In(AcademyTZ).Format(ISODate) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	t, err := Parse(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Scan implements sql.Scanner for DATE columns.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		d.Time = StartOfDay(v)
		return nil
	case string:
		t, err := Parse(v)
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

// Value implements driver.Valuer so a Date can be used as a query argument.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}
