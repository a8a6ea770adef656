// Package notifier contains the outbound-message adapters. The ledger
// never depends on a delivery succeeding: adapters report an outcome and
// callers log it, a failed send is display-only.
package notifier

import (
	"context"

	"github.com/chords-academy/chords-crm-backend/internal/dateutil"
	"github.com/chords-academy/chords-crm-backend/internal/model"
)

// FeeReminder is the payload for an expiry reminder.
type FeeReminder struct {
	Mobile      string
	Email       string
	StudentName string
	Plan        string
	ExpiryDate  dateutil.Date
	IncludeQR   bool
}

// PaymentReceipt is the payload for a fee receipt.
type PaymentReceipt struct {
	Mobile        string
	Email         string
	StudentID     string
	StudentName   string
	Instrument    string
	Amount        float64
	ReceiptNumber string
	Plan          string
	PaymentDate   dateutil.Date
	PaymentMethod string
	StartDate     dateutil.Date
	ExpiryDate    dateutil.Date
	NextDueDate   dateutil.Date
}

// Result describes one delivery attempt, successful or not. It carries
// everything the audit log needs.
type Result struct {
	Channel     model.NotificationChannel
	Destination string
	TemplateID  string
	Message     string
}

// Notifier is one delivery channel. A non-nil error means the message did
// not go out; the Result is still populated so the attempt can be logged.
type Notifier interface {
	SendFeeReminder(ctx context.Context, r FeeReminder) (Result, error)
	SendPaymentReceipt(ctx context.Context, r PaymentReceipt) (Result, error)
}
