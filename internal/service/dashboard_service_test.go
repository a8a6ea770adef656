package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chords-academy/chords-crm-backend/internal/dateutil"
	"github.com/chords-academy/chords-crm-backend/internal/model"
)

func dueStudent(id string, expiry [3]int) model.Student {
	return model.Student{
		StudentID:  id,
		ClassPlan:  "1 Month - 8",
		ExpiryDate: dateutil.NewDate(dateutil.MidnightDate(expiry[0], expiry[1], expiry[2])),
	}
}

func TestPartitionDue(t *testing.T) {
	today := dateutil.MidnightDate(2025, 1, 15)
	students := []model.Student{
		dueStudent("CHORDS001", [3]int{2025, 1, 10}), // already past
		dueStudent("CHORDS002", [3]int{2025, 1, 14}), // yesterday
		dueStudent("CHORDS003", [3]int{2025, 1, 15}), // expires today
		dueStudent("CHORDS004", [3]int{2025, 1, 17}), // inside window
	}

	alerts := PartitionDue(students, today, 3)

	assert.Equal(t, 3, alerts.WindowDays)
	if assert.Len(t, alerts.Overdue, 2) {
		assert.Equal(t, "CHORDS001", alerts.Overdue[0].StudentID)
		assert.Equal(t, "CHORDS002", alerts.Overdue[1].StudentID)
	}
	// Expiring today is due-soon, not overdue.
	if assert.Len(t, alerts.DueSoon, 2) {
		assert.Equal(t, "CHORDS003", alerts.DueSoon[0].StudentID)
		assert.Equal(t, "CHORDS004", alerts.DueSoon[1].StudentID)
	}
}

func TestPartitionDueEmpty(t *testing.T) {
	alerts := PartitionDue(nil, dateutil.MidnightDate(2025, 1, 15), 3)

	// Empty slices, not nil, so the JSON renders [] instead of null.
	assert.NotNil(t, alerts.Overdue)
	assert.NotNil(t, alerts.DueSoon)
	assert.Empty(t, alerts.Overdue)
	assert.Empty(t, alerts.DueSoon)
}
