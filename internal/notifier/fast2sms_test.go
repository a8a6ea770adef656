package notifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chords-academy/chords-crm-backend/internal/dateutil"
)

// stubGateway records the last request and answers with the given body.
func stubGateway(t *testing.T, status int, body string) (*httptest.Server, *http.Request, *url.Values) {
	t.Helper()
	var lastReq http.Request
	var lastQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastReq = *r
		lastQuery = r.URL.Query()
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &lastReq, &lastQuery
}

func TestSendFeeReminder(t *testing.T) {
	srv, req, query := stubGateway(t, http.StatusOK, `{"return":true,"message":["ok"]}`)
	n := NewWhatsAppNotifierWithURL("test-api-key", srv.URL)

	result, err := n.SendFeeReminder(context.Background(), FeeReminder{
		Mobile:      "919876543210",
		StudentName: "Ananya Iyer",
		Plan:        "1 Month - 8",
		ExpiryDate:  dateutil.NewDate(dateutil.MidnightDate(2025, 1, 31)),
	})
	require.NoError(t, err)

	assert.Equal(t, "test-api-key", req.Header.Get("authorization"))
	assert.Equal(t, "3004", query.Get("message_id"))
	assert.Equal(t, "919876543210", query.Get("numbers"))
	assert.Equal(t, "Ananya Iyer|1 Month - 8|31-01-2025", query.Get("variables_values"))
	// The key must never leak into the query string.
	assert.Empty(t, query.Get("authorization"))

	assert.Equal(t, "3004", result.TemplateID)
	assert.Equal(t, "919876543210", result.Destination)
}

func TestSendFeeReminderWithQR(t *testing.T) {
	srv, _, query := stubGateway(t, http.StatusOK, `{"return":true}`)
	n := NewWhatsAppNotifierWithURL("key", srv.URL)

	result, err := n.SendFeeReminder(context.Background(), FeeReminder{
		Mobile:      "919876543210",
		StudentName: "Rohan",
		Plan:        "3 Month - 24",
		ExpiryDate:  dateutil.NewDate(dateutil.MidnightDate(2025, 4, 15)),
		IncludeQR:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "4899", query.Get("message_id"))
	assert.Equal(t, "4899", result.TemplateID)
}

func TestSendPaymentReceipt(t *testing.T) {
	srv, _, query := stubGateway(t, http.StatusOK, `{"return":true}`)
	n := NewWhatsAppNotifierWithURL("key", srv.URL)

	_, err := n.SendPaymentReceipt(context.Background(), PaymentReceipt{
		Mobile:        "919876543210",
		StudentName:   "Ananya Iyer",
		Amount:        4000,
		ReceiptNumber: "CMA00007",
		Plan:          "1 Month - 8",
		PaymentDate:   dateutil.NewDate(dateutil.MidnightDate(2025, 1, 1)),
		NextDueDate:   dateutil.NewDate(dateutil.MidnightDate(2025, 1, 31)),
	})
	require.NoError(t, err)

	assert.Equal(t, "4587", query.Get("message_id"))
	assert.Equal(t, "Ananya Iyer|4000|CMA00007|1 Month - 8|01-01-2025|Next Due: 31-01-2025",
		query.Get("variables_values"))
}

func TestSendPaymentReceiptFullyPaid(t *testing.T) {
	srv, _, query := stubGateway(t, http.StatusOK, `{"return":true}`)
	n := NewWhatsAppNotifierWithURL("key", srv.URL)

	_, err := n.SendPaymentReceipt(context.Background(), PaymentReceipt{
		Mobile:        "919876543210",
		StudentName:   "Meera",
		Amount:        20400,
		ReceiptNumber: "CMA00008",
		Plan:          "6 Month - 48",
		PaymentDate:   dateutil.NewDate(dateutil.MidnightDate(2025, 2, 1)),
	})
	require.NoError(t, err)

	assert.Contains(t, query.Get("variables_values"), "NO DUES - FULLY PAID")
}

func TestSendGatewayRejection(t *testing.T) {
	srv, _, _ := stubGateway(t, http.StatusOK, `{"return":false,"message":"invalid template"}`)
	n := NewWhatsAppNotifierWithURL("key", srv.URL)

	result, err := n.SendFeeReminder(context.Background(), FeeReminder{
		Mobile:      "919876543210",
		StudentName: "X Y",
		Plan:        "1 Month - 8",
		ExpiryDate:  dateutil.NewDate(dateutil.MidnightDate(2025, 1, 31)),
	})
	require.Error(t, err)
	// The result stays populated so the failed attempt can be logged.
	assert.Equal(t, "919876543210", result.Destination)
	assert.Contains(t, result.Message, "API error")
}

func TestSendHTTPFailure(t *testing.T) {
	srv, _, _ := stubGateway(t, http.StatusInternalServerError, "boom")
	n := NewWhatsAppNotifierWithURL("key", srv.URL)

	result, err := n.SendFeeReminder(context.Background(), FeeReminder{
		Mobile:      "919876543210",
		StudentName: "X Y",
		Plan:        "1 Month - 8",
		ExpiryDate:  dateutil.NewDate(dateutil.MidnightDate(2025, 1, 31)),
	})
	require.Error(t, err)
	assert.Contains(t, result.Message, "HTTP 500")
}
