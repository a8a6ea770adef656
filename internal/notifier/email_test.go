package notifier

import (
	"context"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chords-academy/chords-crm-backend/internal/dateutil"
)

type capturedMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func captureNotifier() (*EmailNotifier, *capturedMail) {
	n := NewEmailNotifier("smtp.example.com", "587", "academy@example.com", "secret")
	captured := &capturedMail{}
	n.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		captured.addr = addr
		captured.from = from
		captured.to = to
		captured.msg = string(msg)
		return nil
	}
	return n, captured
}

func TestEmailReceipt(t *testing.T) {
	n, captured := captureNotifier()

	result, err := n.SendPaymentReceipt(context.Background(), PaymentReceipt{
		Email:         "student@example.com",
		StudentID:     "CHORDS001",
		StudentName:   "Ananya Iyer",
		Instrument:    "Keyboard",
		Amount:        4000,
		ReceiptNumber: "CMA00007",
		Plan:          "1 Month - 8",
		PaymentDate:   dateutil.NewDate(dateutil.MidnightDate(2025, 1, 1)),
		PaymentMethod: "UPI Payment",
		StartDate:     dateutil.NewDate(dateutil.MidnightDate(2025, 1, 1)),
		ExpiryDate:    dateutil.NewDate(dateutil.MidnightDate(2025, 1, 31)),
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", captured.addr)
	assert.Equal(t, []string{"student@example.com"}, captured.to)
	assert.Contains(t, captured.msg, "Subject: Chords Music Academy - Payment Receipt")
	assert.Contains(t, captured.msg, "CMA00007")
	assert.Contains(t, captured.msg, "Rs. 4000.00")
	assert.Contains(t, captured.msg, "NO DUES - FULLY PAID")
	assert.Equal(t, "student@example.com", result.Destination)
}

func TestEmailReminder(t *testing.T) {
	n, captured := captureNotifier()

	_, err := n.SendFeeReminder(context.Background(), FeeReminder{
		Email:       "student@example.com",
		StudentName: "Rohan Deshmukh",
		Plan:        "3 Month - 24",
		ExpiryDate:  dateutil.NewDate(dateutil.MidnightDate(2025, 4, 15)),
	})
	require.NoError(t, err)

	assert.Contains(t, captured.msg, "expires on 15-04-2025")
}

func TestEmailEmptyRecipient(t *testing.T) {
	n, captured := captureNotifier()

	result, err := n.SendFeeReminder(context.Background(), FeeReminder{
		StudentName: "No Mail",
		Plan:        "1 Month - 8",
		ExpiryDate:  dateutil.NewDate(dateutil.MidnightDate(2025, 1, 31)),
	})
	require.Error(t, err)
	assert.Empty(t, captured.msg, "nothing should be sent")
	assert.Contains(t, result.Message, "no email address")
}
