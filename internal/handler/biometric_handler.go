package handler

import (
	"errors"
	"net/http"

	"github.com/chords-academy/chords-crm-backend/internal/biometric"
	"github.com/chords-academy/chords-crm-backend/internal/model"
	"github.com/chords-academy/chords-crm-backend/internal/repository"
	"github.com/chords-academy/chords-crm-backend/internal/response"
	"github.com/chords-academy/chords-crm-backend/internal/service"
	"github.com/chords-academy/chords-crm-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// BiometricHandler handles the desk scanner endpoints.
type BiometricHandler struct {
	biometricService *service.BiometricService
}

// NewBiometricHandler creates a new BiometricHandler.
func NewBiometricHandler(biometricService *service.BiometricService) *BiometricHandler {
	return &BiometricHandler{biometricService: biometricService}
}

// Status godoc
// GET /api/v1/admin/biometric/status
func (h *BiometricHandler) Status(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"device": h.biometricService.DeviceInfo()})
}

// Connect godoc
// POST /api/v1/admin/biometric/connect
func (h *BiometricHandler) Connect(c *gin.Context) {
	if err := h.biometricService.Connect(c.Request.Context()); err != nil {
		response.Fail(c, http.StatusServiceUnavailable, response.ErrScannerOffline)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"device": h.biometricService.DeviceInfo()})
}

// Disconnect godoc
// POST /api/v1/admin/biometric/disconnect
func (h *BiometricHandler) Disconnect(c *gin.Context) {
	if err := h.biometricService.Disconnect(c.Request.Context()); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"device": h.biometricService.DeviceInfo()})
}

// Enroll godoc
// POST /api/v1/admin/biometric/enroll
func (h *BiometricHandler) Enroll(c *gin.Context) {
	var req model.EnrollFingerprintRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	enrollment, err := h.biometricService.Enroll(c.Request.Context(), req.StudentID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrStudentNotFound)
		case errors.Is(err, service.ErrAlreadyEnrolled):
			response.Fail(c, http.StatusConflict, response.ErrAlreadyEnrolled)
		case errors.Is(err, biometric.ErrNotConnected):
			response.Fail(c, http.StatusServiceUnavailable, response.ErrScannerOffline)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"enrollment": enrollment})
}

// IdentifyAndMark godoc
// POST /api/v1/admin/biometric/identify
// One desk scan cycle: capture, match, mark through the normal path.
func (h *BiometricHandler) IdentifyAndMark(c *gin.Context) {
	result, err := h.biometricService.IdentifyAndMark(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, biometric.ErrNotConnected):
			response.Fail(c, http.StatusServiceUnavailable, response.ErrScannerOffline)
		case errors.Is(err, biometric.ErrNoMatch):
			response.Fail(c, http.StatusNotFound, response.ErrFingerprintNoHit)
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrStudentNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// RemoveEnrollment godoc
// DELETE /api/v1/admin/biometric/enrollments/:student_id
func (h *BiometricHandler) RemoveEnrollment(c *gin.Context) {
	if err := h.biometricService.RemoveEnrollment(c.Request.Context(), c.Param("student_id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "enrollment removed"})
}

// ListNotEnrolled godoc
// GET /api/v1/admin/biometric/not-enrolled
func (h *BiometricHandler) ListNotEnrolled(c *gin.Context) {
	students, err := h.biometricService.ListNotEnrolled(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"students": students})
}
