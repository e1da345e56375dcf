package services

import (
	"fmt"
	"time"

	"fieldtrack/internal/dateutil"
	"fieldtrack/internal/models"
)

// normalizeValue renders any field value in its canonical comparison form.
// Dates become YYYY-MM-DD, nil becomes the empty string, so a nil date and an
// empty text value compare equal to their stored counterparts and never
// produce spurious audit entries.
func normalizeValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case *time.Time:
		return dateutil.FormatISO(val)
	case time.Time:
		return dateutil.FormatISO(&val)
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

// displayValue renders a field value for audit entries and API responses.
// Dates use the DD/MM/YYYY display form; everything else matches the
// canonical form.
func displayValue(v any) string {
	switch val := v.(type) {
	case *time.Time:
		return dateutil.FormatBR(val)
	case time.Time:
		return dateutil.FormatBR(&val)
	default:
		return normalizeValue(v)
	}
}

// textFieldAccessors maps every editable text column to its getter and
// setter. Registration and brand are identity columns and deliberately
// absent; they are set at creation and never edited.
var textFieldAccessors = map[string]struct {
	get func(*models.Employee) string
	set func(*models.Employee, string)
}{
	"full_name": {
		get: func(e *models.Employee) string { return e.FullName },
		set: func(e *models.Employee, v string) { e.FullName = v },
	},
	"role": {
		get: func(e *models.Employee) string { return e.Role },
		set: func(e *models.Employee, v string) { e.Role = v },
	},
	"employee_type": {
		get: func(e *models.Employee) string { return e.EmployeeType },
		set: func(e *models.Employee, v string) { e.EmployeeType = v },
	},
	"cep": {
		get: func(e *models.Employee) string { return e.CEP },
		set: func(e *models.Employee, v string) { e.CEP = v },
	},
	"status": {
		get: func(e *models.Employee) string { return e.Status },
		set: func(e *models.Employee, v string) { e.Status = v },
	},
	"course_status": {
		get: func(e *models.Employee) string { return e.CourseStatus },
		set: func(e *models.Employee, v string) { e.CourseStatus = v },
	},
	"team": {
		get: func(e *models.Employee) string { return e.Team },
		set: func(e *models.Employee, v string) { e.Team = v },
	},
	"course_location": {
		get: func(e *models.Employee) string { return e.CourseLocation },
		set: func(e *models.Employee, v string) { e.CourseLocation = v },
	},
	"manager": {
		get: func(e *models.Employee) string { return e.Manager },
		set: func(e *models.Employee, v string) { e.Manager = v },
	},
	"corporate_manager": {
		get: func(e *models.Employee) string { return e.CorporateManager },
		set: func(e *models.Employee, v string) { e.CorporateManager = v },
	},
	"instructor": {
		get: func(e *models.Employee) string { return e.Instructor },
		set: func(e *models.Employee, v string) { e.Instructor = v },
	},
	"contact": {
		get: func(e *models.Employee) string { return e.Contact },
		set: func(e *models.Employee, v string) { e.Contact = v },
	},
	"operation_ready": {
		get: func(e *models.Employee) string { return e.OperationReady },
		set: func(e *models.Employee, v string) { e.OperationReady = v },
	},
}

// dateFieldAccessors maps every milestone date column to its getter and
// setter.
var dateFieldAccessors = map[string]struct {
	get func(*models.Employee) *time.Time
	set func(*models.Employee, *time.Time)
}{
	"admission_date": {
		get: func(e *models.Employee) *time.Time { return e.AdmissionDate },
		set: func(e *models.Employee, v *time.Time) { e.AdmissionDate = v },
	},
	"integration_start": {
		get: func(e *models.Employee) *time.Time { return e.IntegrationStart },
		set: func(e *models.Employee, v *time.Time) { e.IntegrationStart = v },
	},
	"integration_end": {
		get: func(e *models.Employee) *time.Time { return e.IntegrationEnd },
		set: func(e *models.Employee, v *time.Time) { e.IntegrationEnd = v },
	},
	"normative_start": {
		get: func(e *models.Employee) *time.Time { return e.NormativeStart },
		set: func(e *models.Employee, v *time.Time) { e.NormativeStart = v },
	},
	"normative_end": {
		get: func(e *models.Employee) *time.Time { return e.NormativeEnd },
		set: func(e *models.Employee, v *time.Time) { e.NormativeEnd = v },
	},
	"technical_course_start": {
		get: func(e *models.Employee) *time.Time { return e.TechnicalCourseStart },
		set: func(e *models.Employee, v *time.Time) { e.TechnicalCourseStart = v },
	},
	"technical_course_end": {
		get: func(e *models.Employee) *time.Time { return e.TechnicalCourseEnd },
		set: func(e *models.Employee, v *time.Time) { e.TechnicalCourseEnd = v },
	},
	"double_start": {
		get: func(e *models.Employee) *time.Time { return e.DoubleStart },
		set: func(e *models.Employee, v *time.Time) { e.DoubleStart = v },
	},
	"double_end": {
		get: func(e *models.Employee) *time.Time { return e.DoubleEnd },
		set: func(e *models.Employee, v *time.Time) { e.DoubleEnd = v },
	},
	"loading_date": {
		get: func(e *models.Employee) *time.Time { return e.LoadingDate },
		set: func(e *models.Employee, v *time.Time) { e.LoadingDate = v },
	},
	"field_operation_date": {
		get: func(e *models.Employee) *time.Time { return e.FieldOperationDate },
		set: func(e *models.Employee, v *time.Time) { e.FieldOperationDate = v },
	},
}
