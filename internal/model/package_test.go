package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chords-academy/chords-crm-backend/internal/dateutil"
)

func TestExpiryFrom(t *testing.T) {
	p := &Package{Name: "1 Month - 8", TotalClasses: 8, DurationDays: 30}
	start := dateutil.NewDate(dateutil.MidnightDate(2025, 1, 1))

	assert.Equal(t, "2025-01-31", dateutil.Format(p.ExpiryFrom(start).Time))
}

func TestExpiryFromCrossesMonths(t *testing.T) {
	p := &Package{Name: "3 Month - 24", TotalClasses: 24, DurationDays: 90}
	start := dateutil.NewDate(dateutil.MidnightDate(2025, 1, 15))

	assert.Equal(t, "2025-04-15", dateutil.Format(p.ExpiryFrom(start).Time))
}

func TestExpiryFromSentinel(t *testing.T) {
	p := &Package{Name: NoPackageName}
	start := dateutil.NewDate(dateutil.MidnightDate(2025, 1, 1))

	assert.True(t, p.IsNoPackage())
	assert.True(t, start.Equal(p.ExpiryFrom(start).Time))
}
