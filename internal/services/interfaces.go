package services

import (
	"io"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"fieldtrack/internal/models"
	"fieldtrack/internal/pagination"
	"fieldtrack/internal/phase"
)

// UserServicer defines the contract for user management and authentication.
type UserServicer interface {
	Authenticate(username, brand, password string) (*models.User, error)
	CreateUser(username, brand, password, name, accessType string) (*models.User, error)
	GetUserByID(id uint, brand string) (*models.User, error)
	ListUsers(brand string) ([]models.User, error)
	UpdateUser(id uint, brand, name, password, accessType string) (*models.User, error)
	DeleteUser(id uint, brand string) error
}

// EmployeeFilter holds optional filter parameters for listing and exporting
// employees. Text filters match case-insensitively as substrings; a
// comma-separated value becomes an exact IN list. Date filters bound the
// named column inclusively.
type EmployeeFilter struct {
	Text     map[string]string
	DateFrom map[string]time.Time
	DateTo   map[string]time.Time
}

// UpdateEmployeeInput is the partial field map accepted by the direct-edit
// API. Keys are column names; date values must be strict YYYY-MM-DD.
type UpdateEmployeeInput map[string]string

// EmployeeServicer defines the contract for employee CRUD and direct edits.
type EmployeeServicer interface {
	ListEmployees(brand string, filter EmployeeFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Employee], error)
	GetEmployeeByID(brand string, id uint) (*models.Employee, error)
	UpdateEmployee(brand string, id uint, input UpdateEmployeeInput, actor string) (*models.Employee, error)
	DeleteEmployee(brand string, id uint) error
	DeleteEmployees(brand string, ids []uint) (int, error)
}

// ImportResult summarizes one reconciled upload batch.
type ImportResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// ImportServicer defines the contract for the spreadsheet import reconciler.
type ImportServicer interface {
	ParseUpload(filename string, r io.Reader) ([][]string, error)
	Reconcile(rows [][]string, brand, actor string) (*ImportResult, error)
}

// ExportServicer defines the contract for spreadsheet generation.
type ExportServicer interface {
	EmployeesWorkbook(brand string, filter EmployeeFilter) (*excelize.File, error)
	TemplateWorkbook() (*excelize.File, error)
}

// AuditFilter holds optional filter parameters for querying the audit log.
type AuditFilter struct {
	Registration string
	Field        string
	Source       string
	StartDate    *time.Time
	EndDate      *time.Time
}

// AuditServicer defines the contract for audit logging. Record is the single
// gatekeeper of the no-op rule: equal old/new values (after normalization)
// produce no entry, whichever entry point is writing.
type AuditServicer interface {
	Record(tx *gorm.DB, registration, field string, oldValue, newValue any, actor string, source models.ChangeSource) (bool, error)
	Query(brand string, filter AuditFilter) ([]models.AuditLog, error)
	ChangedFields(brand string) ([]string, error)
	Purge(ids []uint) (int64, error)
}

// PhaseGroup is one dashboard slice: every employee currently in a phase.
type PhaseGroup struct {
	Phase     phase.Phase       `json:"phase"`
	Count     int               `json:"count"`
	Employees []models.Employee `json:"employees"`
}

// PhaseDashboard aggregates the phase distribution for one brand.
type PhaseDashboard struct {
	Groups          []PhaseGroup `json:"groups"`
	AvailableMonths []string     `json:"available_months"`
}

// ManagerReportCell is one (manager, field-operation date, employee type)
// bucket of the manager report.
type ManagerReportCell struct {
	CorporateManager string   `json:"corporate_manager"`
	OperationDate    string   `json:"operation_date"`
	EmployeeType     string   `json:"employee_type"`
	ReadyCount       int      `json:"ready_count"`
	TotalCount       int      `json:"total_count"`
	AdmissionDates   []string `json:"admission_dates"`
}

// ManagerReport is the corporate-manager planning grid.
type ManagerReport struct {
	Managers     []string                 `json:"managers"`
	Cells        []ManagerReportCell      `json:"cells"`
	PhasesByDate map[string][]phase.Phase `json:"phases_by_date"`
}

// ReportServicer defines the contract for dashboards and manager reports.
type ReportServicer interface {
	PhaseDashboard(brand, operationReady, operationMonth string) (*PhaseDashboard, error)
	ManagerReport(brand string) (*ManagerReport, error)
	LoadingSchedule(brand string) ([]models.Employee, error)
}
