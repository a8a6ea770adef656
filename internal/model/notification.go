package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationChannel identifies the delivery medium.
type NotificationChannel string

const (
	ChannelWhatsApp NotificationChannel = "whatsapp"
	ChannelEmail    NotificationChannel = "email"
)

// NotificationKind names what was sent.
type NotificationKind string

const (
	NotifyFeeReminder    NotificationKind = "fee_reminder"
	NotifyPaymentReceipt NotificationKind = "payment_receipt"
)

// NotificationStatus records the gateway outcome.
type NotificationStatus string

const (
	NotificationSent   NotificationStatus = "sent"
	NotificationFailed NotificationStatus = "failed"
)

// NotificationLog is the bookkeeping row for one outbound attempt. Logs are
// written by a background worker off a Redis queue so a slow insert never
// sits inside a request; they carry no ledger state.
type NotificationLog struct {
	ID          uuid.UUID           `json:"id"`
	StudentID   string              `json:"student_id"`
	Channel     NotificationChannel `json:"channel"`
	Kind        NotificationKind    `json:"kind"`
	Destination string              `json:"destination"`
	TemplateID  string              `json:"template_id"`
	Status      NotificationStatus  `json:"status"`
	Detail      string              `json:"detail"`
	SentAt      time.Time           `json:"sent_at"`
}

// NotificationResult is what the caller sees: success flag plus a
// human-readable message for the console. A failed result never rolls back
// the ledger mutation that preceded it.
type NotificationResult struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}
