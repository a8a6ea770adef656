package model

import "time"

// BiometricEnrollment records that a student's fingerprint template lives on
// the scanner. The template itself stays on the device; the ledger only
// keeps the bookkeeping row.
type BiometricEnrollment struct {
	ID           int       `json:"id"`
	StudentID    string    `json:"student_id"`
	TemplateID   string    `json:"template_id"`
	DeviceSerial string    `json:"device_serial"`
	EnrolledAt   time.Time `json:"enrolled_at"`
}

// EnrollFingerprintRequest is the payload for enrolling a student.
type EnrollFingerprintRequest struct {
	StudentID string `json:"student_id" binding:"required,min=4,max=20"`
}
