package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/chords-academy/chords-crm-backend/internal/dateutil"
)

// PaymentMethod is the fixed set of accepted payment channels.
type PaymentMethod string

const (
	MethodCash PaymentMethod = "Cash Payment"
	MethodUPI  PaymentMethod = "UPI Payment"
	MethodCard PaymentMethod = "Card Payment"
)

// Payment is immutable once recorded. There is no void or edit operation;
// corrections are a product decision that has not been made.
type Payment struct {
	ID            int64         `json:"id"`
	StudentID     string        `json:"student_id"`
	Amount        float64       `json:"amount"`
	PaymentDate   dateutil.Date `json:"payment_date"`
	ReceiptNumber string        `json:"receipt_number"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Notes         string        `json:"notes"`
	NextDueDate   dateutil.Date `json:"next_due_date"`
	CreatedAt     time.Time     `json:"created_at"`
}

// NextReceiptNumber derives the next receipt sequence from the highest
// issued receipt. Like student IDs, receipts are never reused after a
// cascade delete shrinks the table, so the sequence comes from the last
// issued number; the row count is only a fallback when the stored receipt
// does not parse.
func NextReceiptNumber(lastReceipt, prefix string, rowCount int) int {
	if lastReceipt == "" {
		return rowCount + 1
	}
	suffix := strings.TrimPrefix(lastReceipt, prefix)
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 0 {
		return rowCount + 1
	}
	return n + 1
}

// PlanRenewal carries the explicit student mutations a payment may apply.
// The ledger never infers a renewal from the amount; the operator decides
// and passes the new plan and dates verbatim.
type PlanRenewal struct {
	ClassPlan    string
	TotalClasses int
	StartDate    dateutil.Date
	ExpiryDate   dateutil.Date
}

// ProcessPaymentRequest is the payload for recording a fee payment.
// RenewPlan, when set, names the package the payment purchases; the student
// row is updated in the same transaction as the payment insert.
type ProcessPaymentRequest struct {
	StudentID     string  `json:"student_id" binding:"required,min=4,max=20"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" binding:"required,oneof='Cash Payment' 'UPI Payment' 'Card Payment'"`
	Notes         string  `json:"notes" binding:"max=200"`
	NextDueDate   string  `json:"next_due_date" binding:"omitempty"`
	RenewPlan     string  `json:"renew_plan" binding:"omitempty,min=2,max=50"`
	RenewStart    string  `json:"renew_start" binding:"omitempty"`
	SendReceipt   bool    `json:"send_receipt"`
}
