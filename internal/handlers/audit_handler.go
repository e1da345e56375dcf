package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fieldtrack/internal/dateutil"
	apperrors "fieldtrack/internal/errors"
	"fieldtrack/internal/services"
)

// AuditHandler handles audit log queries and the administrative purge.
type AuditHandler struct {
	auditService services.AuditServicer
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditService services.AuditServicer) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// PurgeRequest represents the audit purge payload.
type PurgeRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// Query handles the filtered audit listing
// @Summary     Query the audit log
// @Description List audit entries for the brand, newest first
// @Tags        audit
// @Produce     json
// @Param       registration query string false "Exact registration"
// @Param       field query string false "Field name"
// @Param       source query string false "Change source (system or upload)"
// @Param       start_date query string false "Inclusive start (YYYY-MM-DD)"
// @Param       end_date query string false "Inclusive end (YYYY-MM-DD)"
// @Success     200 {array} models.AuditLog "Audit entries"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Router      /audit [get]
// @Security    BearerAuth
func (h *AuditHandler) Query(c *gin.Context) {
	brand, err := getBrand(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter := services.AuditFilter{
		Registration: strings.TrimSpace(c.Query("registration")),
		Field:        strings.TrimSpace(c.Query("field")),
		Source:       strings.TrimSpace(c.Query("source")),
	}
	if raw := c.Query("start_date"); raw != "" {
		parsed, err := dateutil.ParseISO(raw)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidDate, "Invalid start_date"))
			return
		}
		filter.StartDate = parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := dateutil.ParseISO(raw)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidDate, "Invalid end_date"))
			return
		}
		filter.EndDate = parsed
	}

	entries, err := h.auditService.Query(brand, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// ChangedFields handles the filter-dropdown listing
// @Summary     List audited field names
// @Description Distinct field names present in the brand's audit log
// @Tags        audit
// @Produce     json
// @Success     200 {array} string "Field names"
// @Router      /audit/fields [get]
// @Security    BearerAuth
func (h *AuditHandler) ChangedFields(c *gin.Context) {
	brand, err := getBrand(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fields, err := h.auditService.ChangedFields(brand)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": fields})
}

// Purge handles the bulk audit deletion
// @Summary     Purge audit entries
// @Description Hard-delete audit entries by ID; the only mutation the log allows
// @Tags        audit
// @Accept      json
// @Produce     json
// @Param       request body PurgeRequest true "Entry IDs"
// @Success     200 {object} map[string]int64 "Purge count"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Admin only"
// @Router      /audit/purge [post]
// @Security    BearerAuth
func (h *AuditHandler) Purge(c *gin.Context) {
	var req PurgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	purged, err := h.auditService.Purge(req.IDs)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purged": purged})
}
