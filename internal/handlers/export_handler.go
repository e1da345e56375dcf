package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldtrack/internal/dateutil"
	apperrors "fieldtrack/internal/errors"
	"fieldtrack/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler handles spreadsheet downloads.
type ExportHandler struct {
	exportService services.ExportServicer
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService services.ExportServicer) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportEmployees handles the filtered employee export
// @Summary     Export employees
// @Description Download the brand's employees as a spreadsheet, honoring the same filters as the listing
// @Tags        export
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success     200 {file} file "Spreadsheet"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Router      /export [get]
// @Security    BearerAuth
func (h *ExportHandler) ExportEmployees(c *gin.Context) {
	brand, err := getBrand(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	filter, err := parseEmployeeFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	f, err := h.exportService.EmployeesWorkbook(brand, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("colaboradores_%s.xlsx", dateutil.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
	}
}

// DownloadTemplate handles the import template download
// @Summary     Download the import template
// @Description Download the spreadsheet model used by the import, with instructions and an example row
// @Tags        export
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success     200 {file} file "Template"
// @Router      /export/template [get]
// @Security    BearerAuth
func (h *ExportHandler) DownloadTemplate(c *gin.Context) {
	f, err := h.exportService.TemplateWorkbook()
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", `attachment; filename="modelo_importacao.xlsx"`)
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
	}
}
