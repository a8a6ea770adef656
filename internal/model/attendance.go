package model

import (
	"time"

	"github.com/chords-academy/chords-crm-backend/internal/dateutil"
)

// AttendanceKind classifies a mark: Regular consumes package capacity,
// Extra is a makeup mark outside capacity (post-expiry or post-completion).
type AttendanceKind string

const (
	KindRegular AttendanceKind = "Regular"
	KindExtra   AttendanceKind = "Extra"
)

// Attendance is an append-only mark. Rows are never edited or removed
// except through the student cascade delete.
type Attendance struct {
	ID        int64          `json:"id"`
	StudentID string         `json:"student_id"`
	MarkedOn  dateutil.Date  `json:"marked_on"`
	MarkedAt  string         `json:"marked_at"`
	Kind      AttendanceKind `json:"kind"`
	Notes     string         `json:"notes"`
	CreatedAt time.Time      `json:"created_at"`
}

// Mark messages surfaced to the operator.
const (
	MsgRegularMarked  = "Attendance marked successfully"
	MsgExtraExpired   = "Extra class marked (expired package)"
	MsgExtraCompleted = "Extra class marked (package completed)"
)

// AttendanceDecision is the outcome of classifying a mark.
type AttendanceDecision struct {
	Kind    AttendanceKind
	Message string
	// FirstClass is set when this Regular mark is the student's first,
	// which pins first_class_date.
	FirstClass bool
}

// ClassifyAttendance decides how a mark counts for the given student today.
// The order is load-bearing for billing: an expired package marks Extra even
// when capacity remains, so the expiry check must run before the completion
// check.
func ClassifyAttendance(s *Student, today time.Time) AttendanceDecision {
	day := dateutil.StartOfDay(today)
	switch {
	case day.After(s.ExpiryDate.Time):
		return AttendanceDecision{Kind: KindExtra, Message: MsgExtraExpired}
	case s.ClassesCompleted >= s.TotalClasses:
		return AttendanceDecision{Kind: KindExtra, Message: MsgExtraCompleted}
	default:
		return AttendanceDecision{
			Kind:       KindRegular,
			Message:    MsgRegularMarked,
			FirstClass: s.FirstClassDate.IsZero(),
		}
	}
}

// MarkAttendanceRequest is the payload for a manual mark.
type MarkAttendanceRequest struct {
	StudentID string `json:"student_id" binding:"required,min=4,max=20"`
	Notes     string `json:"notes" binding:"max=200"`
}

// AttendanceEvent is published on the Redis attendance channel after every
// committed mark, feeding the live admin console stream.
type AttendanceEvent struct {
	StudentID string         `json:"student_id"`
	FullName  string         `json:"full_name"`
	Kind      AttendanceKind `json:"kind"`
	MarkedOn  string         `json:"marked_on"`
	MarkedAt  string         `json:"marked_at"`
}
