package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chords-academy/chords-crm-backend/internal/dateutil"
)

func testStudent() *Student {
	return &Student{
		StudentID:        "CHORDS001",
		FullName:         "Ananya Iyer",
		ClassPlan:        "1 Month - 8",
		TotalClasses:     8,
		StartDate:        dateutil.NewDate(dateutil.MidnightDate(2025, 1, 1)),
		ExpiryDate:       dateutil.NewDate(dateutil.MidnightDate(2025, 1, 31)),
		ClassesCompleted: 3,
	}
}

func TestStudentStatus(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Student)
		today  [3]int
		want   StudentStatus
	}{
		{"active mid-package", func(s *Student) {}, [3]int{2025, 1, 15}, StatusActive},
		{"active on expiry day", func(s *Student) {}, [3]int{2025, 1, 31}, StatusActive},
		{"expired day after", func(s *Student) {}, [3]int{2025, 2, 1}, StatusExpired},
		{"completed within validity", func(s *Student) { s.ClassesCompleted = 8 }, [3]int{2025, 1, 20}, StatusCompleted},
		// Expiry wins over completion.
		{"expired and completed", func(s *Student) { s.ClassesCompleted = 8 }, [3]int{2025, 2, 5}, StatusExpired},
		{"no package", func(s *Student) { s.ClassPlan = NoPackageName }, [3]int{2025, 1, 15}, StatusNoPackage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := testStudent()
			tc.mutate(s)
			today := dateutil.MidnightDate(tc.today[0], tc.today[1], tc.today[2])
			assert.Equal(t, tc.want, s.Status(today))
		})
	}
}

func TestRemainingClasses(t *testing.T) {
	s := testStudent()
	assert.Equal(t, 5, s.RemainingClasses())

	s.ClassesCompleted = 8
	assert.Equal(t, 0, s.RemainingClasses())

	// Extra marks can never push remaining negative.
	s.ClassesCompleted = 11
	assert.Equal(t, 0, s.RemainingClasses())
}

func TestDueIn(t *testing.T) {
	s := testStudent()
	assert.Equal(t, 16, s.DueIn(dateutil.MidnightDate(2025, 1, 15)))
	assert.Equal(t, 0, s.DueIn(dateutil.MidnightDate(2025, 1, 31)))
	assert.Equal(t, -5, s.DueIn(dateutil.MidnightDate(2025, 2, 5)))
}

func TestNextStudentNumber(t *testing.T) {
	// Sequence continues from the highest issued ID, not the row count,
	// so numbers are never reused after a delete.
	assert.Equal(t, 8, NextStudentNumber("CHORDS007", "CHORDS", 3))
	assert.Equal(t, 1, NextStudentNumber("", "CHORDS", 0))
	// Unparsable suffix falls back to the row count.
	assert.Equal(t, 4, NextStudentNumber("LEGACY-X", "CHORDS", 3))
}

func TestNextReceiptNumber(t *testing.T) {
	// Same rule as student IDs: the sequence continues from the highest
	// issued receipt, so a cascade delete that shrinks the payments table
	// never causes a receipt number to be re-issued.
	assert.Equal(t, 8, NextReceiptNumber("CMA00007", "CMA", 3))
	assert.Equal(t, 1, NextReceiptNumber("", "CMA", 0))
	// Unparsable receipt falls back to the row count.
	assert.Equal(t, 4, NextReceiptNumber("LEGACY-R", "CMA", 3))
}

func TestFormatIdentifiers(t *testing.T) {
	assert.Equal(t, "CHORDS001", FormatStudentID("CHORDS", 1))
	assert.Equal(t, "CHORDS120", FormatStudentID("CHORDS", 120))
	assert.Equal(t, "CMA00001", FormatReceiptNumber("CMA", 1))
	assert.Equal(t, "CMA00042", FormatReceiptNumber("CMA", 42))
}
