package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/chords-academy/chords-crm-backend/internal/repository"
	"github.com/chords-academy/chords-crm-backend/internal/response"
	"github.com/chords-academy/chords-crm-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// NotificationHandler handles manual sends and the audit log view.
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// SendFeeReminder godoc
// POST /api/v1/admin/notifications/fee-reminder/:student_id?qr=true
// The ledger is untouched either way; a failed send is display-only.
func (h *NotificationHandler) SendFeeReminder(c *gin.Context) {
	includeQR := c.Query("qr") == "true"

	result, err := h.notificationService.SendFeeReminder(c.Request.Context(), c.Param("student_id"), includeQR)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrStudentNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if !result.Sent {
		// 200 with the failure detail: the operator decides what to do next.
		response.Success(c, http.StatusOK, gin.H{"notification": result, "code": response.ErrNotificationFailed})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"notification": result})
}

// ResendPaymentReceipt godoc
// POST /api/v1/admin/notifications/payment-receipt/:payment_id
func (h *NotificationHandler) ResendPaymentReceipt(c *gin.Context) {
	paymentID, err := strconv.ParseInt(c.Param("payment_id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	result, err := h.notificationService.ResendPaymentReceipt(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"notification": result})
}

// History godoc
// GET /api/v1/admin/students/:student_id/notifications?limit=
func (h *NotificationHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.notificationService.History(c.Request.Context(), c.Param("student_id"), limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"notifications": logs})
}
