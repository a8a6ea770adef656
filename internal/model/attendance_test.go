package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chords-academy/chords-crm-backend/internal/dateutil"
)

func TestClassifyAttendanceRegular(t *testing.T) {
	s := testStudent()
	d := ClassifyAttendance(s, dateutil.MidnightDate(2025, 1, 15))

	assert.Equal(t, KindRegular, d.Kind)
	assert.Equal(t, MsgRegularMarked, d.Message)
	assert.True(t, d.FirstClass)
}

func TestClassifyAttendanceNotFirstClass(t *testing.T) {
	s := testStudent()
	s.FirstClassDate = dateutil.NewDate(dateutil.MidnightDate(2025, 1, 3))
	d := ClassifyAttendance(s, dateutil.MidnightDate(2025, 1, 15))

	assert.Equal(t, KindRegular, d.Kind)
	assert.False(t, d.FirstClass)
}

func TestClassifyAttendanceCompleted(t *testing.T) {
	s := testStudent()
	s.ClassesCompleted = 8
	d := ClassifyAttendance(s, dateutil.MidnightDate(2025, 1, 20))

	assert.Equal(t, KindExtra, d.Kind)
	assert.Equal(t, MsgExtraCompleted, d.Message)
}

func TestClassifyAttendanceExpired(t *testing.T) {
	s := testStudent()
	d := ClassifyAttendance(s, dateutil.MidnightDate(2025, 2, 1))

	assert.Equal(t, KindExtra, d.Kind)
	assert.Equal(t, MsgExtraExpired, d.Message)
}

func TestClassifyAttendanceExpiryBeatsCompletion(t *testing.T) {
	// Capacity left AND expired: the expired message must win so the
	// operator knows renewal, not capacity, is the problem.
	s := testStudent()
	s.ClassesCompleted = 8
	d := ClassifyAttendance(s, dateutil.MidnightDate(2025, 2, 10))

	assert.Equal(t, KindExtra, d.Kind)
	assert.Equal(t, MsgExtraExpired, d.Message)
}

func TestClassifyAttendanceOnExpiryDay(t *testing.T) {
	// The expiry day itself still counts as a regular class.
	s := testStudent()
	d := ClassifyAttendance(s, dateutil.MidnightDate(2025, 1, 31))

	assert.Equal(t, KindRegular, d.Kind)
}
