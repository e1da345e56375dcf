package models

import "time"

// ChangeSource identifies which entry point produced an audit entry.
type ChangeSource = string

const (
	ChangeSourceSystem ChangeSource = "system"
	ChangeSourceUpload ChangeSource = "upload"
)

// NewEmployeeField is the synthetic field name recorded when an upload row
// creates an employee, and NewEmployeeMarker its fixed new-value string.
const (
	NewEmployeeField  = "new_employee"
	NewEmployeeMarker = "Novo colaborador criado"
)

// AuditLog is an immutable record of one actual field change. Entries are
// only ever appended; the single mutation allowed is the explicit bulk
// administrative purge by id list.
type AuditLog struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Registration string       `gorm:"size:50;not null;index" json:"registration"`
	FieldChanged string       `gorm:"size:50;not null" json:"field_changed"`
	OldValue     string       `gorm:"size:500" json:"old_value"`
	NewValue     string       `gorm:"size:500" json:"new_value"`
	ChangedAt    time.Time    `gorm:"not null" json:"changed_at"`
	ChangedBy    string       `gorm:"size:80;not null" json:"changed_by"`
	ChangeSource ChangeSource `gorm:"size:20;not null" json:"change_source"`
}
