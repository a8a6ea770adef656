package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chords-academy/chords-crm-backend/internal/dateutil"
)

// StudentStatus is derived on read, never stored. See Student.Status.
type StudentStatus string

const (
	StatusActive    StudentStatus = "Active"
	StatusExpired   StudentStatus = "Expired"
	StatusCompleted StudentStatus = "Completed"
	StatusNoPackage StudentStatus = "No Package"
)

// Student is the aggregate root of the ledger. Attendance and payment rows
// belong to exactly one student and are removed with it.
type Student struct {
	ID               int           `json:"id"`
	StudentID        string        `json:"student_id"`
	FullName         string        `json:"full_name"`
	Age              int           `json:"age"`
	Mobile           string        `json:"mobile"`
	Email            string        `json:"email"`
	DateOfBirth      dateutil.Date `json:"date_of_birth"`
	Sex              string        `json:"sex"`
	Instrument       string        `json:"instrument"`
	ClassPlan        string        `json:"class_plan"`
	TotalClasses     int           `json:"total_classes"`
	StartDate        dateutil.Date `json:"start_date"`
	ExpiryDate       dateutil.Date `json:"expiry_date"`
	ClassesCompleted int           `json:"classes_completed"`
	ExtraClasses     int           `json:"extra_classes"`
	FirstClassDate   dateutil.Date `json:"first_class_date"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// Status derives the billing status for a given day. It is a pure function
// of the plan, expiry date and counters; the precedence is fixed:
// No Package, then Expired, then Completed, then Active.
func (s *Student) Status(today time.Time) StudentStatus {
	switch {
	case s.ClassPlan == NoPackageName:
		return StatusNoPackage
	case dateutil.StartOfDay(today).After(s.ExpiryDate.Time):
		return StatusExpired
	case s.ClassesCompleted >= s.TotalClasses:
		return StatusCompleted
	default:
		return StatusActive
	}
}

// RemainingClasses reports unused package capacity.
func (s *Student) RemainingClasses() int {
	if remaining := s.TotalClasses - s.ClassesCompleted; remaining > 0 {
		return remaining
	}
	return 0
}

// DueIn returns the number of days until expiry (negative when overdue).
func (s *Student) DueIn(today time.Time) int {
	return dateutil.DaysBetween(today, s.ExpiryDate.Time)
}

// ─── Identifier sequencing ──────────────────────────────────────────────────

// NextStudentNumber derives the next sequential student number from the
// highest existing ID. IDs are never reused after deletes, so the sequence
// comes from the last issued ID, not the row count; the count is only a
// fallback when the stored ID does not parse.
func NextStudentNumber(lastID, prefix string, rowCount int) int {
	if lastID == "" {
		return rowCount + 1
	}
	suffix := strings.TrimPrefix(lastID, prefix)
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 0 {
		return rowCount + 1
	}
	return n + 1
}

// FormatStudentID renders a student number as e.g. CHORDS001.
func FormatStudentID(prefix string, n int) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}

// FormatReceiptNumber renders a receipt sequence as e.g. CMA00001.
func FormatReceiptNumber(prefix string, n int) string {
	return fmt.Sprintf("%s%05d", prefix, n)
}

// ─── Request payloads ───────────────────────────────────────────────────────

// RegisterStudentRequest is the payload for registering a student.
// Dates arrive as strings and go through the shared parser; unparsable
// dates reject the request instead of defaulting.
type RegisterStudentRequest struct {
	FullName    string `json:"full_name" binding:"required,min=2,max=100"`
	Age         int    `json:"age" binding:"required,min=1,max=100"`
	Mobile      string `json:"mobile" binding:"required,min=10,max=15"`
	Email       string `json:"email" binding:"required,email"`
	DateOfBirth string `json:"date_of_birth" binding:"required"`
	Sex         string `json:"sex" binding:"required,oneof=Male Female Other"`
	Instrument  string `json:"instrument" binding:"required,min=2,max=50"`
	ClassPlan   string `json:"class_plan" binding:"required,min=2,max=50"`
	StartDate   string `json:"start_date" binding:"required"`
}

// UpdateStudentRequest is the payload for editing descriptive attributes.
// Counters and identifiers are only ever mutated by ledger operations.
type UpdateStudentRequest struct {
	FullName    string `json:"full_name" binding:"required,min=2,max=100"`
	Age         int    `json:"age" binding:"required,min=1,max=100"`
	Mobile      string `json:"mobile" binding:"required,min=10,max=15"`
	Email       string `json:"email" binding:"required,email"`
	DateOfBirth string `json:"date_of_birth" binding:"required"`
	Sex         string `json:"sex" binding:"required,oneof=Male Female Other"`
	Instrument  string `json:"instrument" binding:"required,min=2,max=50"`
}
