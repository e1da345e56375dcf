package models

import (
	"time"

	"fieldtrack/internal/phase"
)

// Brand identifies which corporate operation an employee or user belongs to.
// Every read and write in this domain is scoped by brand.
type Brand = string

const (
	BrandVivo  Brand = "Vivo"
	BrandClaro Brand = "Claro"
)

// Employee is one field-operations employee in the onboarding pipeline.
// The natural key is (registration, brand); the same registration may exist
// once per brand.
type Employee struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Registration string `gorm:"size:50;not null;uniqueIndex:uq_registration_brand" json:"registration"`
	Brand        Brand  `gorm:"size:20;not null;default:'Vivo';uniqueIndex:uq_registration_brand" json:"brand"`

	FullName         string `gorm:"size:200;not null" json:"full_name"`
	Role             string `gorm:"size:100" json:"role"`
	EmployeeType     string `gorm:"size:50" json:"employee_type"`
	CEP              string `gorm:"size:20" json:"cep"`
	Status           string `gorm:"size:50" json:"status"`
	CourseStatus     string `gorm:"size:50" json:"course_status"`
	Team             string `gorm:"size:100" json:"team"`
	CourseLocation   string `gorm:"size:200" json:"course_location"`
	Manager          string `gorm:"size:100" json:"manager"`
	CorporateManager string `gorm:"size:100" json:"corporate_manager"`
	Instructor       string `gorm:"size:100" json:"instructor"`
	Contact          string `gorm:"size:20" json:"contact"`
	OperationReady   string `gorm:"size:10" json:"operation_ready"`

	// Milestone dates. All nullable; no start<=end ordering is enforced at
	// write time, the phase engine tolerates inverted or partial ranges.
	AdmissionDate        *time.Time `gorm:"type:date" json:"admission_date"`
	IntegrationStart     *time.Time `gorm:"type:date" json:"integration_start"`
	IntegrationEnd       *time.Time `gorm:"type:date" json:"integration_end"`
	NormativeStart       *time.Time `gorm:"type:date" json:"normative_start"`
	NormativeEnd         *time.Time `gorm:"type:date" json:"normative_end"`
	TechnicalCourseStart *time.Time `gorm:"type:date" json:"technical_course_start"`
	TechnicalCourseEnd   *time.Time `gorm:"type:date" json:"technical_course_end"`
	DoubleStart          *time.Time `gorm:"type:date" json:"double_start"`
	DoubleEnd            *time.Time `gorm:"type:date" json:"double_end"`
	LoadingDate          *time.Time `gorm:"type:date" json:"loading_date"`
	FieldOperationDate   *time.Time `gorm:"type:date" json:"field_operation_date"`

	// LastUpdated is stamped on every successful write, including no-op
	// uploads, and feeds the "most recent update" reports.
	LastUpdated time.Time `gorm:"not null" json:"last_updated"`
}

// Snapshot returns the read-only milestone view consumed by the phase engine.
func (e *Employee) Snapshot() phase.Snapshot {
	return phase.Snapshot{
		IntegrationStart:     e.IntegrationStart,
		IntegrationEnd:       e.IntegrationEnd,
		NormativeStart:       e.NormativeStart,
		NormativeEnd:         e.NormativeEnd,
		TechnicalCourseStart: e.TechnicalCourseStart,
		TechnicalCourseEnd:   e.TechnicalCourseEnd,
		DoubleStart:          e.DoubleStart,
		DoubleEnd:            e.DoubleEnd,
		LoadingDate:          e.LoadingDate,
		FieldOperationDate:   e.FieldOperationDate,
		CourseStatus:         e.CourseStatus,
	}
}

// CurrentPhase derives the employee's phase label for the given day.
func (e *Employee) CurrentPhase(today time.Time) phase.Phase {
	return phase.Current(e.Snapshot(), today)
}
