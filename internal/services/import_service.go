package services

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"fieldtrack/internal/dateutil"
	apperrors "fieldtrack/internal/errors"
	"fieldtrack/internal/logger"
	"fieldtrack/internal/models"
)

// Positional column layout of the import spreadsheet. The first row is a
// header and is skipped; data starts at row 2.
const (
	colRegistration = iota
	colFullName
	colRole
	colEmployeeType
	colAdmissionDate
	colCEP
	colStatus
	colCourseStatus
	colTeam
	colCourseLocation
	colManager
	colCorporateManager
	colInstructor
	colContact
	colOperationReady
	colIntegrationStart
	colIntegrationEnd
	colNormativeStart
	colNormativeEnd
	colTechnicalCourseStart
	colTechnicalCourseEnd
	colDoubleStart
	colDoubleEnd
	colLoadingDate
	colFieldOperationDate

	importColumnCount
)

// ImportService implements ImportServicer backed by GORM and excelize.
type ImportService struct {
	db    *gorm.DB
	audit AuditServicer
}

// NewImportService creates a new import service.
func NewImportService(db *gorm.DB, audit AuditServicer) *ImportService {
	return &ImportService{db: db, audit: audit}
}

// ParseUpload validates the file extension, opens the workbook, and returns
// the raw rows of its first sheet, header included.
func (s *ImportService) ParseUpload(filename string, r io.Reader) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".xlsx" && ext != ".xls" {
		return nil, apperrors.ErrUnsupportedFile
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrImportFailed, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrImportFailed, "Workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrImportFailed, err)
	}
	return rows, nil
}

// cell returns the trimmed value of one column, tolerating short rows.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseDateCell parses one date cell. Besides the accepted text formats it
// handles Excel serial numbers, which GetRows yields for date cells without
// an explicit format. Blank cells yield (nil, true).
func parseDateCell(raw string) (*time.Time, bool) {
	if parsed, ok := dateutil.ParseLenient(raw); ok {
		return parsed, true
	}
	if serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			d := dateutil.DateOnly(t)
			return &d, true
		}
	}
	return nil, false
}

// rowDates holds the parsed milestone dates of one row, keyed by column name.
type rowDates map[string]*time.Time

// parseRowDates parses every date column of a row. An unparseable non-blank
// cell fails the whole row.
func parseRowDates(row []string) (rowDates, error) {
	indexes := map[string]int{
		"admission_date":         colAdmissionDate,
		"integration_start":      colIntegrationStart,
		"integration_end":        colIntegrationEnd,
		"normative_start":        colNormativeStart,
		"normative_end":          colNormativeEnd,
		"technical_course_start": colTechnicalCourseStart,
		"technical_course_end":   colTechnicalCourseEnd,
		"double_start":           colDoubleStart,
		"double_end":             colDoubleEnd,
		"loading_date":           colLoadingDate,
		"field_operation_date":   colFieldOperationDate,
	}
	dates := make(rowDates, len(indexes))
	for column, idx := range indexes {
		parsed, ok := parseDateCell(cell(row, idx))
		if !ok {
			return nil, fmt.Errorf("unparseable date in column %s: %q", column, cell(row, idx))
		}
		dates[column] = parsed
	}
	return dates, nil
}

// rowTexts extracts the text columns of one row, keyed by column name.
func rowTexts(row []string) map[string]string {
	return map[string]string{
		"full_name":         cell(row, colFullName),
		"role":              cell(row, colRole),
		"employee_type":     cell(row, colEmployeeType),
		"cep":               cell(row, colCEP),
		"status":            cell(row, colStatus),
		"course_status":     cell(row, colCourseStatus),
		"team":              cell(row, colTeam),
		"course_location":   cell(row, colCourseLocation),
		"manager":           cell(row, colManager),
		"corporate_manager": cell(row, colCorporateManager),
		"instructor":        cell(row, colInstructor),
		"contact":           cell(row, colContact),
		"operation_ready":   cell(row, colOperationReady),
	}
}

// Reconcile upserts every data row into the brand's employee table, writing
// one audit entry per field that actually changed. The whole batch commits or
// rolls back as one transaction; individual bad rows are skipped, not fatal.
func (s *ImportService) Reconcile(rows [][]string, brand, actor string) (*ImportResult, error) {
	result := &ImportResult{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i, row := range rows {
			if i == 0 {
				continue
			}
			if err := s.reconcileRow(tx, row, brand, actor, result); err != nil {
				result.Skipped++
				logger.Get().Warnw("import row skipped",
					"row", i+1,
					"error", err.Error(),
				)
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrImportFailed, err)
	}
	return result, nil
}

// reconcileRow processes one data row. A panic from a malformed row is
// converted into an error so the batch can continue.
func (s *ImportService) reconcileRow(tx *gorm.DB, row []string, brand, actor string, result *ImportResult) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("row panic: %v", r)
		}
	}()

	registration := cell(row, colRegistration)
	if registration == "" {
		// Trailing formatting rows come through as blank registrations.
		result.Skipped++
		return nil
	}

	dates, err := parseRowDates(row)
	if err != nil {
		return err
	}
	texts := rowTexts(row)

	var employee models.Employee
	findErr := tx.Where("registration = ? AND brand = ?", registration, brand).First(&employee).Error
	switch {
	case findErr == nil:
		if err := s.updateExisting(tx, &employee, texts, dates, actor); err != nil {
			return err
		}
		result.Updated++
	case errors.Is(findErr, gorm.ErrRecordNotFound):
		if err := s.createNew(tx, registration, brand, texts, dates, actor); err != nil {
			return err
		}
		result.Created++
	default:
		return findErr
	}
	return nil
}

// updateExisting applies the field-by-field diff to an employee already on
// file. Blank cells never overwrite existing values; last_updated is stamped
// even when nothing changed.
func (s *ImportService) updateExisting(tx *gorm.DB, employee *models.Employee, texts map[string]string, dates rowDates, actor string) error {
	for column, value := range texts {
		if value == "" {
			continue
		}
		acc := textFieldAccessors[column]
		changed, err := s.audit.Record(tx, employee.Registration, column, acc.get(employee), value, actor, models.ChangeSourceUpload)
		if err != nil {
			return err
		}
		if changed {
			acc.set(employee, value)
		}
	}
	for column, value := range dates {
		if value == nil {
			continue
		}
		acc := dateFieldAccessors[column]
		changed, err := s.audit.Record(tx, employee.Registration, column, acc.get(employee), value, actor, models.ChangeSourceUpload)
		if err != nil {
			return err
		}
		if changed {
			acc.set(employee, value)
		}
	}
	employee.LastUpdated = dateutil.Now()
	return tx.Save(employee).Error
}

// createNew inserts a first-seen registration and records the creation marker
// in the audit log.
func (s *ImportService) createNew(tx *gorm.DB, registration, brand string, texts map[string]string, dates rowDates, actor string) error {
	employee := models.Employee{
		Registration: registration,
		Brand:        brand,
		LastUpdated:  dateutil.Now(),
	}
	for column, value := range texts {
		textFieldAccessors[column].set(&employee, value)
	}
	for column, value := range dates {
		dateFieldAccessors[column].set(&employee, value)
	}
	if err := tx.Create(&employee).Error; err != nil {
		return err
	}
	_, err := s.audit.Record(tx, registration, models.NewEmployeeField, "", models.NewEmployeeMarker, actor, models.ChangeSourceUpload)
	return err
}
