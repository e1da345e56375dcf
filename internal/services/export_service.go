package services

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"fieldtrack/internal/dateutil"
	apperrors "fieldtrack/internal/errors"
	"fieldtrack/internal/models"
	"fieldtrack/internal/status"
)

// exportHeaders is the column order of the employee export, matching the
// import layout plus the two derived trailing columns.
var exportHeaders = []string{
	"Matrícula", "Nome Completo", "Cargo", "Tipo de Colaborador", "Data de Admissão",
	"CEP", "Status", "Status do Curso", "Time", "Local do Curso",
	"Gestor", "Gestor Corporativo", "Instrutor", "Contato", "Pronto para Operação",
	"Início Integração", "Fim Integração",
	"Início Normativo", "Fim Normativo",
	"Início Curso Técnico", "Fim Curso Técnico",
	"Início Duplado", "Fim Duplado",
	"Data de Carregamento", "Data de Operação no Campo",
	"Fase Atual", "Última Atualização",
}

// templateHeaders is the import model header row: unaccented, lowercase, one
// per positional column.
var templateHeaders = []string{
	"matricula", "nome completo", "funcao", "tipo", "data admissao",
	"cep", "situacao", "status curso", "turma", "local curso",
	"gerente", "gerente corporativo", "instrutor", "contato", "apto operacao",
	"inicio integracao", "termino integracao",
	"inicio normativo", "termino normativo",
	"inicio curso tecnico", "termino curso tecnico",
	"inicio duplado", "termino duplado",
	"data carregamento", "data operacao campo",
}

// templateExample is the sample data row shipped with the import template.
var templateExample = []string{
	"12345", "Fulano de Tal", "Operador", "CLT", "01/01/2023",
	"12345-678", "Ativo", "Concluído", "Turma A", "São Paulo",
	"João Silva", "Maria Oliveira", "Carlos Santos", "(11) 98765-4321", "Sim",
	"01/02/2023", "28/02/2023", "01/03/2023", "31/03/2023",
	"01/04/2023", "30/04/2023", "01/05/2023", "31/05/2023",
	"01/06/2023", "15/06/2023",
}

// templateInstructions fills the first sheet of the import template.
var templateInstructions = [][2]string{
	{"1.", "Este é o modelo para importação de colaboradores."},
	{"2.", "A planilha \"Modelo de Importação\" contém as colunas necessárias."},
	{"3.", "Formato de datas: DD/MM/AAAA"},
	{"4.", "Os cabeçalhos devem estar sem acentos e em minúsculas."},
	{"5.", "A ordem das colunas é fixa e deve ser mantida."},
	{"6.", "Datas em branco são ignoradas e não apagam valores existentes."},
}

// ExportService implements ExportServicer backed by GORM and excelize.
type ExportService struct {
	db *gorm.DB
}

// NewExportService creates a new export service.
func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db}
}

// headerStyle creates the bold, filled header style used on every generated
// sheet.
func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D7E4BC"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
}

// EmployeesWorkbook builds the filtered employee export, one row per
// employee, with the derived current phase and last-updated stamp appended.
func (s *ExportService) EmployeesWorkbook(brand string, filter EmployeeFilter) (*excelize.File, error) {
	query := s.db.Model(&models.Employee{}).Where("brand = ?", brand)
	query, err := applyFilter(query, filter)
	if err != nil {
		return nil, err
	}

	var employees []models.Employee
	if err := query.Order("full_name").Find(&employees).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	f := excelize.NewFile()
	const sheet = "Colaboradores"
	f.SetSheetName(f.GetSheetName(0), sheet)

	header := make([]any, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if style, err := headerStyle(f); err == nil {
		lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
		f.SetCellStyle(sheet, "A1", lastCol+"1", style)
	}

	today := dateutil.DateOnly(dateutil.Now())
	for i, e := range employees {
		// Free-text status fields go out in their canonical Portuguese form.
		row := []any{
			e.Registration, e.FullName, e.Role,
			status.Translate(status.FieldEmployeeType, e.EmployeeType),
			dateutil.FormatBR(e.AdmissionDate),
			e.CEP,
			status.Translate(status.FieldStatus, e.Status),
			status.Translate(status.FieldCourseStatus, e.CourseStatus),
			e.Team, e.CourseLocation,
			e.Manager, e.CorporateManager, e.Instructor, e.Contact,
			status.Translate(status.FieldOperationReady, e.OperationReady),
			dateutil.FormatBR(e.IntegrationStart), dateutil.FormatBR(e.IntegrationEnd),
			dateutil.FormatBR(e.NormativeStart), dateutil.FormatBR(e.NormativeEnd),
			dateutil.FormatBR(e.TechnicalCourseStart), dateutil.FormatBR(e.TechnicalCourseEnd),
			dateutil.FormatBR(e.DoubleStart), dateutil.FormatBR(e.DoubleEnd),
			dateutil.FormatBR(e.LoadingDate), dateutil.FormatBR(e.FieldOperationDate),
			string(e.CurrentPhase(today)),
			e.LastUpdated.Format("02/01/2006 15:04:05"),
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	f.SetColWidth(sheet, "A", "AA", 20)
	return f, nil
}

// TemplateWorkbook builds the downloadable import template: an instruction
// sheet followed by the model sheet with headers and one example row.
func (s *ExportService) TemplateWorkbook() (*excelize.File, error) {
	f := excelize.NewFile()

	const instructions = "Instruções"
	f.SetSheetName(f.GetSheetName(0), instructions)
	f.SetCellValue(instructions, "A1", "INSTRUÇÕES DE USO:")
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err == nil {
		f.SetCellStyle(instructions, "A1", "A1", style)
	}
	for i, line := range templateInstructions {
		f.SetCellValue(instructions, fmt.Sprintf("A%d", i+2), line[0])
		f.SetCellValue(instructions, fmt.Sprintf("B%d", i+2), line[1])
	}
	f.SetColWidth(instructions, "A", "A", 5)
	f.SetColWidth(instructions, "B", "B", 60)

	const model = "Modelo de Importação"
	if _, err := f.NewSheet(model); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	header := make([]any, len(templateHeaders))
	for i, h := range templateHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(model, "A1", &header); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if style, err := headerStyle(f); err == nil {
		lastCol, _ := excelize.ColumnNumberToName(len(templateHeaders))
		f.SetCellStyle(model, "A1", lastCol+"1", style)
	}

	example := make([]any, len(templateExample))
	for i, v := range templateExample {
		example[i] = v
	}
	if err := f.SetSheetRow(model, "A2", &example); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	f.SetColWidth(model, "A", "Y", 22)
	return f, nil
}
