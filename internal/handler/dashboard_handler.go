package handler

import (
	"net/http"
	"strconv"

	"github.com/chords-academy/chords-crm-backend/internal/response"
	"github.com/chords-academy/chords-crm-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the console home screen.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats godoc
// GET /api/v1/admin/dashboard
// Live counts; nothing here is cached.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// DueAlerts godoc
// GET /api/v1/admin/students/due?window_days=N
// Students past expiry or inside the renewal window.
func (h *DashboardHandler) DueAlerts(c *gin.Context) {
	windowDays, _ := strconv.Atoi(c.Query("window_days"))

	alerts, err := h.dashboardService.GetDueAlerts(c.Request.Context(), windowDays)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, alerts)
}
