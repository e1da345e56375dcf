package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fieldtrack/internal/services"
)

// ReportHandler handles dashboards and planning reports.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// PhaseDashboard handles the phase distribution dashboard
// @Summary     Phase dashboard
// @Description Group the brand's employees by their current onboarding phase
// @Tags        reports
// @Produce     json
// @Param       operation_ready query string false "Readiness filter: sim or nao"
// @Param       operation_month query string false "Field-operation month (YYYY-MM)"
// @Success     200 {object} services.PhaseDashboard "Dashboard"
// @Router      /reports/dashboard [get]
// @Security    BearerAuth
func (h *ReportHandler) PhaseDashboard(c *gin.Context) {
	brand, err := getBrand(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ready := strings.ToLower(strings.TrimSpace(c.Query("operation_ready")))
	month := strings.TrimSpace(c.Query("operation_month"))

	dashboard, err := h.reportService.PhaseDashboard(brand, ready, month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// ManagerReport handles the corporate-manager planning grid
// @Summary     Manager report
// @Description Readiness counts per corporate manager, field-operation date, and employee type
// @Tags        reports
// @Produce     json
// @Success     200 {object} services.ManagerReport "Report"
// @Router      /reports/managers [get]
// @Security    BearerAuth
func (h *ReportHandler) ManagerReport(c *gin.Context) {
	brand, err := getBrand(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.ManagerReport(brand)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// LoadingSchedule handles the loading calendar listing
// @Summary     Loading schedule
// @Description Employees with a loading date, soonest first
// @Tags        reports
// @Produce     json
// @Success     200 {array} models.Employee "Scheduled employees"
// @Router      /reports/loading [get]
// @Security    BearerAuth
func (h *ReportHandler) LoadingSchedule(c *gin.Context) {
	brand, err := getBrand(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	schedule, err := h.reportService.LoadingSchedule(brand)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": schedule})
}
