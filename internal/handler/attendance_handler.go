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

// AttendanceHandler handles attendance marking and listings.
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// Mark godoc
// POST /api/v1/admin/attendance
// Records one class for today. Not idempotent: marking twice records two.
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req model.MarkAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.attendanceService.Mark(c.Request.Context(), req.StudentID, req.Notes)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrStudentNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// ListByStudent godoc
// GET /api/v1/admin/students/:student_id/attendance?limit=
func (h *AttendanceHandler) ListByStudent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	marks, err := h.attendanceService.ListByStudent(c.Request.Context(), c.Param("student_id"), limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": marks})
}

// ListToday godoc
// GET /api/v1/admin/attendance/today
func (h *AttendanceHandler) ListToday(c *gin.Context) {
	marks, err := h.attendanceService.ListToday(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": marks})
}
