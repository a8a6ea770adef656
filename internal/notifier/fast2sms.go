package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/chords-academy/chords-crm-backend/internal/dateutil"
	"github.com/chords-academy/chords-crm-backend/internal/model"
)

// Fast2SMS WhatsApp template IDs, registered with the gateway.
const (
	templateFeeReminder   = "3004"
	templateFeeReminderQR = "4899"
	templateReceipt       = "4587"
)

const defaultFast2SMSURL = "https://www.fast2sms.com/dev/whatsapp"

// WhatsAppNotifier sends templated WhatsApp messages through the Fast2SMS
// gateway. One GET per message, single attempt, 10 second timeout; the
// API key travels in the authorization header, never in the query string.
type WhatsAppNotifier struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewWhatsAppNotifier creates a gateway client with the production URL.
func NewWhatsAppNotifier(apiKey string) *WhatsAppNotifier {
	return &WhatsAppNotifier{
		apiKey:  apiKey,
		baseURL: defaultFast2SMSURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWhatsAppNotifierWithURL creates a client against a custom endpoint.
// Used by tests to point at a stub server.
func NewWhatsAppNotifierWithURL(apiKey, baseURL string) *WhatsAppNotifier {
	n := NewWhatsAppNotifier(apiKey)
	n.baseURL = baseURL
	return n
}

// SendFeeReminder delivers the expiry reminder template. Variables are
// name|plan|expiry with the date in DD-MM-YYYY display form.
func (n *WhatsAppNotifier) SendFeeReminder(ctx context.Context, r FeeReminder) (Result, error) {
	templateID := templateFeeReminder
	if r.IncludeQR {
		templateID = templateFeeReminderQR
	}
	variables := fmt.Sprintf("%s|%s|%s", r.StudentName, r.Plan, dateutil.FormatDisplay(r.ExpiryDate.Time))
	return n.send(ctx, templateID, r.Mobile, variables, "WhatsApp reminder sent")
}

// SendPaymentReceipt delivers the receipt template. Variables are
// name|amount|receipt|plan|date|next-due.
func (n *WhatsAppNotifier) SendPaymentReceipt(ctx context.Context, r PaymentReceipt) (Result, error) {
	variables := fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		r.StudentName,
		strconv.FormatFloat(r.Amount, 'f', -1, 64),
		r.ReceiptNumber,
		r.Plan,
		dateutil.FormatDisplay(r.PaymentDate.Time),
		nextDueInfo(r.NextDueDate))
	return n.send(ctx, templateReceipt, r.Mobile, variables, "WhatsApp receipt sent")
}

// nextDueInfo renders the final receipt variable; a zero date means the
// plan is fully paid.
func nextDueInfo(d dateutil.Date) string {
	if d.IsZero() {
		return "NO DUES - FULLY PAID"
	}
	return "Next Due: " + dateutil.FormatDisplay(d.Time)
}

type fast2smsResponse struct {
	Return  bool            `json:"return"`
	Message json.RawMessage `json:"message"`
}

func (n *WhatsAppNotifier) send(ctx context.Context, templateID, mobile, variables, okMessage string) (Result, error) {
	result := Result{
		Channel:     model.ChannelWhatsApp,
		Destination: mobile,
		TemplateID:  templateID,
	}

	query := url.Values{}
	query.Set("message_id", templateID)
	query.Set("numbers", mobile)
	query.Set("variables_values", variables)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		result.Message = err.Error()
		return result, err
	}
	req.Header.Set("authorization", n.apiKey)

	resp, err := n.client.Do(req)
	if err != nil {
		result.Message = "network error: " + err.Error()
		return result, fmt.Errorf("fast2sms request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		result.Message = "read response: " + err.Error()
		return result, fmt.Errorf("fast2sms response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		result.Message = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, body)
		return result, fmt.Errorf("fast2sms: HTTP %d", resp.StatusCode)
	}

	var parsed fast2smsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		result.Message = "invalid JSON response: " + string(body)
		return result, fmt.Errorf("fast2sms decode: %w", err)
	}
	if !parsed.Return {
		result.Message = "API error: " + string(parsed.Message)
		return result, fmt.Errorf("fast2sms: gateway rejected message")
	}

	result.Message = okMessage
	return result, nil
}
