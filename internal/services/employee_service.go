package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"fieldtrack/internal/dateutil"
	apperrors "fieldtrack/internal/errors"
	"fieldtrack/internal/models"
	"fieldtrack/internal/pagination"
)

// deleteBatchSize bounds each DELETE ... IN clause so very large selections
// do not exceed parameter limits.
const deleteBatchSize = 100

// EmployeeService implements EmployeeServicer backed by GORM.
type EmployeeService struct {
	db    *gorm.DB
	audit AuditServicer
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(db *gorm.DB, audit AuditServicer) *EmployeeService {
	return &EmployeeService{db: db, audit: audit}
}

// applyFilter narrows an employee query by the validated filter parameters.
// Unknown column names are rejected before any SQL is built.
func applyFilter(query *gorm.DB, filter EmployeeFilter) (*gorm.DB, error) {
	for column, value := range filter.Text {
		if !isFilterableTextColumn(column) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("Unknown filter column: %s", column))
		}
		if strings.Contains(value, ",") {
			parts := strings.Split(value, ",")
			values := make([]string, 0, len(parts))
			for _, p := range parts {
				if trimmed := strings.TrimSpace(p); trimmed != "" {
					values = append(values, trimmed)
				}
			}
			query = query.Where(fmt.Sprintf("%s IN ?", column), values)
		} else {
			query = query.Where(fmt.Sprintf("LOWER(%s) LIKE ?", column), "%"+strings.ToLower(value)+"%")
		}
	}
	for column, from := range filter.DateFrom {
		if _, ok := dateFieldAccessors[column]; !ok {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("Unknown date column: %s", column))
		}
		query = query.Where(fmt.Sprintf("%s >= ?", column), dateutil.DateOnly(from))
	}
	for column, to := range filter.DateTo {
		if _, ok := dateFieldAccessors[column]; !ok {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("Unknown date column: %s", column))
		}
		query = query.Where(fmt.Sprintf("%s <= ?", column), dateutil.DateOnly(to))
	}
	return query, nil
}

func isFilterableTextColumn(column string) bool {
	if column == "registration" {
		return true
	}
	_, ok := textFieldAccessors[column]
	return ok
}

// ListEmployees returns one page of the brand's employees, filtered and
// ordered by name.
func (s *EmployeeService) ListEmployees(brand string, filter EmployeeFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Employee], error) {
	page.Defaults()

	query := s.db.Model(&models.Employee{}).Where("brand = ?", brand)
	query, err := applyFilter(query, filter)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var employees []models.Employee
	if err := query.Scopes(pagination.Paginate(page)).Order("full_name").Find(&employees).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(employees, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetEmployeeByID fetches one employee, scoped to the caller's brand.
func (s *EmployeeService) GetEmployeeByID(brand string, id uint) (*models.Employee, error) {
	var employee models.Employee
	err := s.db.Where("id = ? AND brand = ?", id, brand).First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &employee, nil
}

// pendingTextChange and pendingDateChange carry validated direct-edit
// assignments so the whole request can be applied atomically.
type pendingTextChange struct {
	column string
	value  string
}

type pendingDateChange struct {
	column string
	value  *time.Time
}

// UpdateEmployee applies a partial field map to one employee. Every value is
// validated before any is applied; a single bad date rejects the whole
// request. Each field that actually changes produces one audit entry with
// source "system".
func (s *EmployeeService) UpdateEmployee(brand string, id uint, input UpdateEmployeeInput, actor string) (*models.Employee, error) {
	employee, err := s.GetEmployeeByID(brand, id)
	if err != nil {
		return nil, err
	}

	var textChanges []pendingTextChange
	var dateChanges []pendingDateChange
	for column, raw := range input {
		if _, ok := textFieldAccessors[column]; ok {
			textChanges = append(textChanges, pendingTextChange{column: column, value: strings.TrimSpace(raw)})
			continue
		}
		if _, ok := dateFieldAccessors[column]; ok {
			parsed, err := dateutil.ParseISO(strings.TrimSpace(raw))
			if err != nil {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidDate, fmt.Sprintf("Invalid date for %s, expected YYYY-MM-DD", column))
			}
			dateChanges = append(dateChanges, pendingDateChange{column: column, value: parsed})
			continue
		}
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("Unknown field: %s", column))
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, change := range textChanges {
			acc := textFieldAccessors[change.column]
			changed, err := s.audit.Record(tx, employee.Registration, change.column, acc.get(employee), change.value, actor, models.ChangeSourceSystem)
			if err != nil {
				return err
			}
			if changed {
				acc.set(employee, change.value)
			}
		}
		for _, change := range dateChanges {
			acc := dateFieldAccessors[change.column]
			changed, err := s.audit.Record(tx, employee.Registration, change.column, acc.get(employee), change.value, actor, models.ChangeSourceSystem)
			if err != nil {
				return err
			}
			if changed {
				acc.set(employee, change.value)
			}
		}
		employee.LastUpdated = dateutil.Now()
		return tx.Save(employee).Error
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return employee, nil
}

// DeleteEmployee hard-deletes one employee. Audit entries keyed by the
// registration are kept as history.
func (s *EmployeeService) DeleteEmployee(brand string, id uint) error {
	result := s.db.Where("id = ? AND brand = ?", id, brand).Delete(&models.Employee{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrEmployeeNotFound
	}
	return nil
}

// DeleteEmployees hard-deletes a batch of employees in chunks, committing
// each chunk separately so one oversized request cannot hold a long
// transaction. Returns the total number deleted.
func (s *EmployeeService) DeleteEmployees(brand string, ids []uint) (int, error) {
	if len(ids) == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "No employee IDs provided")
	}

	deleted := 0
	for start := 0; start < len(ids); start += deleteBatchSize {
		end := start + deleteBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		result := s.db.Where("brand = ? AND id IN ?", brand, ids[start:end]).Delete(&models.Employee{})
		if result.Error != nil {
			return deleted, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		deleted += int(result.RowsAffected)
	}
	return deleted, nil
}
