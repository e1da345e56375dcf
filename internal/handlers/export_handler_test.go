package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"fieldtrack/internal/models"
	"fieldtrack/internal/services"
)

// --- mock export service ---

type mockExportService struct {
	employeesWorkbookFn func(brand string, filter services.EmployeeFilter) (*excelize.File, error)
	templateWorkbookFn  func() (*excelize.File, error)
}

func (m *mockExportService) EmployeesWorkbook(brand string, filter services.EmployeeFilter) (*excelize.File, error) {
	if m.employeesWorkbookFn != nil {
		return m.employeesWorkbookFn(brand, filter)
	}
	return excelize.NewFile(), nil
}

func (m *mockExportService) TemplateWorkbook() (*excelize.File, error) {
	if m.templateWorkbookFn != nil {
		return m.templateWorkbookFn()
	}
	return excelize.NewFile(), nil
}

// verify interface compliance
var _ services.ExportServicer = (*mockExportService)(nil)

func setupExportRouter(handler *ExportHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectIdentity(1, "ana", models.BrandVivo, models.AccessTypeUser))
	auth.GET("/export", handler.ExportEmployees)
	auth.GET("/export/template", handler.DownloadTemplate)
	return r
}

func TestExportHandler_ExportEmployees(t *testing.T) {
	var gotBrand string
	exportSvc := &mockExportService{
		employeesWorkbookFn: func(brand string, filter services.EmployeeFilter) (*excelize.File, error) {
			gotBrand = brand
			return excelize.NewFile(), nil
		},
	}
	r := setupExportRouter(NewExportHandler(exportSvc))

	rec := doRequest(r, "GET", "/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotBrand != models.BrandVivo {
		t.Errorf("expected Vivo scope, got %q", gotBrand)
	}
	if ct := rec.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected content type: %s", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "colaboradores_") {
		t.Errorf("unexpected disposition: %s", cd)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected workbook bytes in response")
	}
}

func TestExportHandler_DownloadTemplate(t *testing.T) {
	r := setupExportRouter(NewExportHandler(&mockExportService{}))

	rec := doRequest(r, "GET", "/export/template", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "modelo_importacao.xlsx") {
		t.Errorf("unexpected disposition: %s", cd)
	}
}
