package services

import (
	"testing"
	"time"

	"fieldtrack/internal/models"
	"fieldtrack/internal/phase"
	"fieldtrack/internal/testutil"
)

func TestEmployeesWorkbook(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewExportService(db)

	testutil.CreateTestEmployee(t, db, models.BrandVivo, func(e *models.Employee) {
		e.Registration = "80001"
		e.FullName = "Ana Lima"
		e.CourseStatus = "Concluído"
		e.OperationReady = "yes"
		e.FieldOperationDate = testutil.Date(2020, time.January, 10)
	})
	testutil.CreateTestEmployee(t, db, models.BrandClaro, func(e *models.Employee) {
		e.FullName = "Não Exportado"
	})

	f, err := svc.EmployeesWorkbook(models.BrandVivo, EmployeeFilter{})
	testutil.AssertNoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Colaboradores")
	testutil.AssertNoError(t, err)
	if len(rows) != 2 {
		t.Fatalf("expected header plus one employee, got %d rows", len(rows))
	}
	if rows[0][0] != "Matrícula" || rows[0][len(exportHeaders)-1] != "Última Atualização" {
		t.Errorf("unexpected header row: %v", rows[0])
	}
	if rows[1][0] != "80001" || rows[1][1] != "Ana Lima" {
		t.Errorf("unexpected data row: %v", rows[1])
	}
	// Field operation reached, course concluded, no loading date: Operação.
	if got := rows[1][25]; got != string(phase.PhaseOperation) {
		t.Errorf("expected derived phase %q, got %q", phase.PhaseOperation, got)
	}
	if rows[1][4] != "" {
		t.Errorf("expected blank admission date, got %q", rows[1][4])
	}
	if rows[1][14] != "Sim" {
		t.Errorf("expected translated readiness flag, got %q", rows[1][14])
	}
}

func TestEmployeesWorkbookHonorsFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewExportService(db)

	testutil.CreateTestEmployee(t, db, models.BrandVivo, func(e *models.Employee) { e.Team = "Turma A" })
	testutil.CreateTestEmployee(t, db, models.BrandVivo, func(e *models.Employee) { e.Team = "Turma B" })

	f, err := svc.EmployeesWorkbook(models.BrandVivo, EmployeeFilter{
		Text: map[string]string{"team": "turma a"},
	})
	testutil.AssertNoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Colaboradores")
	testutil.AssertNoError(t, err)
	if len(rows) != 2 {
		t.Errorf("expected 1 filtered employee, got %d data rows", len(rows)-1)
	}
}

func TestTemplateWorkbook(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewExportService(db)

	f, err := svc.TemplateWorkbook()
	testutil.AssertNoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Instruções" || sheets[1] != "Modelo de Importação" {
		t.Fatalf("unexpected sheets: %v", sheets)
	}

	rows, err := f.GetRows("Modelo de Importação")
	testutil.AssertNoError(t, err)
	if len(rows) < 2 {
		t.Fatalf("expected header and example row, got %d rows", len(rows))
	}
	if len(rows[0]) != importColumnCount {
		t.Errorf("expected %d header columns, got %d", importColumnCount, len(rows[0]))
	}
	if rows[0][0] != "matricula" || rows[0][importColumnCount-1] != "data operacao campo" {
		t.Errorf("unexpected template header: %v", rows[0])
	}
	if rows[1][0] != "12345" {
		t.Errorf("unexpected example row: %v", rows[1])
	}
}
