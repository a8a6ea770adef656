package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/chords-academy/chords-crm-backend/internal/model"
	"github.com/chords-academy/chords-crm-backend/internal/repository"
	"github.com/chords-academy/chords-crm-backend/internal/response"
	"github.com/chords-academy/chords-crm-backend/internal/service"
	"github.com/chords-academy/chords-crm-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles fee payments.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Process godoc
// POST /api/v1/admin/payments
// Records a payment, applies an explicit renewal, optionally sends the
// receipt. A failed receipt send is reported, never rolled back.
func (h *PaymentHandler) Process(c *gin.Context) {
	var req model.ProcessPaymentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.paymentService.ProcessPayment(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDate):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidDate)
		case errors.Is(err, service.ErrUnknownPackage):
			response.Fail(c, http.StatusBadRequest, response.ErrUnknownPackage)
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrStudentNotFound)
		case errors.Is(err, repository.ErrDuplicate):
			response.Fail(c, http.StatusConflict, response.ErrConflict)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Get godoc
// GET /api/v1/admin/payments/:payment_id
func (h *PaymentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("payment_id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	payment, err := h.paymentService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment": payment})
}

// ListByStudent godoc
// GET /api/v1/admin/students/:student_id/payments
func (h *PaymentHandler) ListByStudent(c *gin.Context) {
	payments, err := h.paymentService.ListByStudent(c.Request.Context(), c.Param("student_id"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payments": payments})
}
