package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/chords-academy/chords-crm-backend/internal/dateutil"
	"github.com/chords-academy/chords-crm-backend/internal/model"
)

// EmailNotifier sends plain-text mail over authenticated SMTP with
// STARTTLS, the way the academy's Gmail account expects.
type EmailNotifier struct {
	host     string
	port     string
	sender   string
	password string
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailNotifier creates an SMTP-backed notifier.
func NewEmailNotifier(host, port, sender, password string) *EmailNotifier {
	return &EmailNotifier{
		host:     host,
		port:     port,
		sender:   sender,
		password: password,
		sendMail: smtp.SendMail,
	}
}

// SendFeeReminder delivers the expiry reminder by mail.
func (n *EmailNotifier) SendFeeReminder(ctx context.Context, r FeeReminder) (Result, error) {
	subject := "Chords Music Academy - Fee Reminder"
	body := fmt.Sprintf(`Dear %s,

This is a friendly reminder that your %s plan expires on %s.

Please renew at the academy front desk to keep your classes uninterrupted.

Warm regards,
Chords Music Academy`,
		r.StudentName, r.Plan, dateutil.FormatDisplay(r.ExpiryDate.Time))
	return n.send(r.Email, subject, body, "Reminder sent to email")
}

// SendPaymentReceipt delivers the receipt by mail.
func (n *EmailNotifier) SendPaymentReceipt(ctx context.Context, r PaymentReceipt) (Result, error) {
	subject := "Chords Music Academy - Payment Receipt & Next Due Date"
	nextDue := "NO DUES - FULLY PAID"
	if !r.NextDueDate.IsZero() {
		nextDue = dateutil.FormatDisplay(r.NextDueDate.Time)
	}
	body := fmt.Sprintf(`Dear %s,

Thank you for your payment to Chords Music Academy. We have successfully received your fee. Please find your receipt details below:

Receipt Details
- Receipt Number: %s
- Student Name: %s
- Student ID: %s
- Course/Instrument: %s
- Plan: %s
- Start Date: %s
- End Date: %s
- Next Due Date: %s

Payment Summary
- Total Fees Paid: Rs. %.2f
- Payment Date: %s
- Payment Method: %s

If you have any questions or need to reschedule your classes, please contact us.

Thank you for choosing Chords Music Academy.

Warm regards,
Chords Music Academy`,
		r.StudentName, r.ReceiptNumber, r.StudentName, r.StudentID, r.Instrument, r.Plan,
		dateutil.FormatDisplay(r.StartDate.Time), dateutil.FormatDisplay(r.ExpiryDate.Time), nextDue,
		r.Amount, dateutil.FormatDisplay(r.PaymentDate.Time), r.PaymentMethod)
	return n.send(r.Email, subject, body, "Receipt sent to email")
}

func (n *EmailNotifier) send(to, subject, body, okMessage string) (Result, error) {
	result := Result{
		Channel:     model.ChannelEmail,
		Destination: to,
	}
	if to == "" {
		result.Message = "no email address on file"
		return result, fmt.Errorf("email: empty recipient")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.sender)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", n.sender, n.password, n.host)
	if err := n.sendMail(n.host+":"+n.port, auth, n.sender, []string{to}, []byte(msg.String())); err != nil {
		result.Message = "email error: " + err.Error()
		return result, fmt.Errorf("smtp send: %w", err)
	}
	result.Message = okMessage
	return result, nil
}
