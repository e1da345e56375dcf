package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fieldtrack/internal/errors"
	"fieldtrack/internal/services"
)

// UploadHandler handles the spreadsheet import.
type UploadHandler struct {
	importService services.ImportServicer
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(importService services.ImportServicer) *UploadHandler {
	return &UploadHandler{importService: importService}
}

// Upload handles the spreadsheet upload and reconciliation
// @Summary     Import employees from a spreadsheet
// @Description Upsert employees from an .xlsx upload; each changed field is audited
// @Tags        import
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "Spreadsheet in the import template layout"
// @Success     200 {object} services.ImportResult "Import summary"
// @Failure     400 {object} ErrorResponse "No file or unsupported format"
// @Failure     500 {object} ErrorResponse "Import failed"
// @Router      /upload [post]
// @Security    BearerAuth
func (h *UploadHandler) Upload(c *gin.Context) {
	brand, err := getBrand(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.ErrNoFile)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrImportFailed, err))
		return
	}
	defer file.Close()

	rows, err := h.importService.ParseUpload(fileHeader.Filename, file)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.importService.Reconcile(rows, brand, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Importação concluída com sucesso! %d registros criados, %d registros atualizados.",
			result.Created, result.Updated),
		"created": result.Created,
		"updated": result.Updated,
		"skipped": result.Skipped,
	})
}
