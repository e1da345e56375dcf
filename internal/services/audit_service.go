package services

import (
	"time"

	"gorm.io/gorm"

	"fieldtrack/internal/dateutil"
	apperrors "fieldtrack/internal/errors"
	"fieldtrack/internal/models"
)

// AuditService implements AuditServicer backed by GORM.
type AuditService struct {
	db *gorm.DB
}

// NewAuditService creates a new audit service.
func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Record writes one audit entry if the old and new values actually differ in
// canonical form. It reports whether an entry was written, so callers can
// skip the corresponding field assignment on a no-op. When tx is non-nil the
// entry joins the caller's transaction.
func (s *AuditService) Record(tx *gorm.DB, registration, field string, oldValue, newValue any, actor string, source models.ChangeSource) (bool, error) {
	if normalizeValue(oldValue) == normalizeValue(newValue) {
		return false, nil
	}

	db := s.db
	if tx != nil {
		db = tx
	}

	entry := models.AuditLog{
		Registration: registration,
		FieldChanged: field,
		OldValue:     displayValue(oldValue),
		NewValue:     displayValue(newValue),
		ChangedAt:    dateutil.Now(),
		ChangedBy:    actor,
		ChangeSource: source,
	}
	if err := db.Create(&entry).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return true, nil
}

// Query returns audit entries for the given brand, newest first. Entries are
// brand-scoped through the employee table since the log itself stores only
// registrations.
func (s *AuditService) Query(brand string, filter AuditFilter) ([]models.AuditLog, error) {
	query := s.db.Model(&models.AuditLog{}).
		Where("registration IN (?)",
			s.db.Model(&models.Employee{}).Select("registration").Where("brand = ?", brand),
		)

	if filter.Registration != "" {
		query = query.Where("registration = ?", filter.Registration)
	}
	if filter.Field != "" {
		query = query.Where("field_changed = ?", filter.Field)
	}
	if filter.Source != "" {
		query = query.Where("change_source = ?", filter.Source)
	}
	if filter.StartDate != nil {
		query = query.Where("changed_at >= ?", dateutil.DateOnly(*filter.StartDate))
	}
	if filter.EndDate != nil {
		// Inclusive end date: everything before the following midnight.
		query = query.Where("changed_at < ?", dateutil.DateOnly(*filter.EndDate).Add(24*time.Hour))
	}

	var entries []models.AuditLog
	if err := query.Order("changed_at DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

// ChangedFields returns the distinct field names present in the brand's audit
// log, for populating filter dropdowns.
func (s *AuditService) ChangedFields(brand string) ([]string, error) {
	var fields []string
	err := s.db.Model(&models.AuditLog{}).
		Where("registration IN (?)",
			s.db.Model(&models.Employee{}).Select("registration").Where("brand = ?", brand),
		).
		Distinct("field_changed").
		Order("field_changed").
		Pluck("field_changed", &fields).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return fields, nil
}

// Purge hard-deletes audit entries by ID and returns the number removed.
func (s *AuditService) Purge(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "No audit entry IDs provided")
	}
	result := s.db.Where("id IN ?", ids).Delete(&models.AuditLog{})
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected, nil
}
