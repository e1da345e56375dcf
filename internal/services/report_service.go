package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"fieldtrack/internal/dateutil"
	apperrors "fieldtrack/internal/errors"
	"fieldtrack/internal/models"
	"fieldtrack/internal/phase"
	"fieldtrack/internal/status"
)

// ReportService implements ReportServicer. Phase labels are derived in
// memory, so all aggregation happens after the brand-scoped fetch.
type ReportService struct {
	db *gorm.DB
}

// NewReportService creates a new report service.
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

func (s *ReportService) brandEmployees(brand string) ([]models.Employee, error) {
	var employees []models.Employee
	if err := s.db.Where("brand = ?", brand).Order("full_name").Find(&employees).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return employees, nil
}

// PhaseDashboard groups the brand's employees by their current phase.
// operationReady filters on readiness ("sim", "nao", or empty for all);
// operationMonth filters on the field-operation month ("YYYY-MM", or empty).
func (s *ReportService) PhaseDashboard(brand, operationReady, operationMonth string) (*PhaseDashboard, error) {
	employees, err := s.brandEmployees(brand)
	if err != nil {
		return nil, err
	}

	monthSet := make(map[string]struct{})
	for _, e := range employees {
		if e.FieldOperationDate != nil {
			monthSet[e.FieldOperationDate.Format("2006-01")] = struct{}{}
		}
	}
	months := make([]string, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Strings(months)

	filtered := employees[:0:0]
	for _, e := range employees {
		if operationReady == "sim" && !status.IsReady(e.OperationReady) {
			continue
		}
		if operationReady == "nao" && status.IsReady(e.OperationReady) {
			continue
		}
		if operationMonth != "" {
			if e.FieldOperationDate == nil || e.FieldOperationDate.Format("2006-01") != operationMonth {
				continue
			}
		}
		filtered = append(filtered, e)
	}

	today := dateutil.DateOnly(dateutil.Now())
	byPhase := make(map[phase.Phase][]models.Employee)
	for _, e := range filtered {
		p := e.CurrentPhase(today)
		byPhase[p] = append(byPhase[p], e)
	}

	groups := make([]PhaseGroup, 0, len(phase.All))
	for _, p := range phase.All {
		members := byPhase[p]
		// Soonest field-operation date first; employees without one last.
		sort.SliceStable(members, func(i, j int) bool {
			a, b := members[i].FieldOperationDate, members[j].FieldOperationDate
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.Before(*b)
		})
		groups = append(groups, PhaseGroup{Phase: p, Count: len(members), Employees: members})
	}

	return &PhaseDashboard{Groups: groups, AvailableMonths: months}, nil
}

// ManagerReport builds the corporate-manager planning grid: for every
// (manager, field-operation date, employee type) bucket, how many employees
// are ready for operation, out of how many, and their admission dates.
func (s *ReportService) ManagerReport(brand string) (*ManagerReport, error) {
	employees, err := s.brandEmployees(brand)
	if err != nil {
		return nil, err
	}

	// Buckets key on the ISO form of the date so ordering below is
	// chronological; the BR form only appears in the emitted cells.
	type bucketKey struct {
		manager string
		date    string
		empType string
	}
	type bucket struct {
		ready      int
		total      int
		admissions []time.Time
	}

	today := dateutil.DateOnly(dateutil.Now())
	buckets := make(map[bucketKey]*bucket)
	managerSet := make(map[string]struct{})
	phasesByDate := make(map[string]map[phase.Phase]struct{})

	for _, e := range employees {
		if e.FieldOperationDate == nil {
			continue
		}
		displayDate := dateutil.FormatBR(e.FieldOperationDate)
		manager := e.CorporateManager
		if manager == "" {
			manager = "Sem Gestor"
		}
		managerSet[manager] = struct{}{}

		key := bucketKey{manager: manager, date: dateutil.FormatISO(e.FieldOperationDate), empType: e.EmployeeType}
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		b.total++
		if status.IsReady(e.OperationReady) {
			b.ready++
			if e.AdmissionDate != nil {
				b.admissions = append(b.admissions, *e.AdmissionDate)
			}
		}

		if phasesByDate[displayDate] == nil {
			phasesByDate[displayDate] = make(map[phase.Phase]struct{})
		}
		phasesByDate[displayDate][e.CurrentPhase(today)] = struct{}{}
	}

	managers := make([]string, 0, len(managerSet))
	for m := range managerSet {
		managers = append(managers, m)
	}
	sort.Strings(managers)

	keys := make([]bucketKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].manager != keys[j].manager {
			return keys[i].manager < keys[j].manager
		}
		if keys[i].date != keys[j].date {
			return keys[i].date < keys[j].date
		}
		return keys[i].empType < keys[j].empType
	})

	cells := make([]ManagerReportCell, 0, len(buckets))
	for _, key := range keys {
		b := buckets[key]
		sort.Slice(b.admissions, func(i, j int) bool { return b.admissions[i].Before(b.admissions[j]) })
		admissions := make([]string, len(b.admissions))
		for i := range b.admissions {
			admissions[i] = dateutil.FormatBR(&b.admissions[i])
		}
		operationDate, _ := dateutil.ParseISO(key.date)
		cells = append(cells, ManagerReportCell{
			CorporateManager: key.manager,
			OperationDate:    dateutil.FormatBR(operationDate),
			EmployeeType:     key.empType,
			ReadyCount:       b.ready,
			TotalCount:       b.total,
			AdmissionDates:   admissions,
		})
	}

	phases := make(map[string][]phase.Phase, len(phasesByDate))
	for date, set := range phasesByDate {
		for _, p := range phase.All {
			if _, ok := set[p]; ok {
				phases[date] = append(phases[date], p)
			}
		}
	}

	return &ManagerReport{Managers: managers, Cells: cells, PhasesByDate: phases}, nil
}

// LoadingSchedule lists every employee with a loading date, soonest first.
func (s *ReportService) LoadingSchedule(brand string) ([]models.Employee, error) {
	var employees []models.Employee
	err := s.db.Where("brand = ? AND loading_date IS NOT NULL", brand).
		Order("loading_date, full_name").
		Find(&employees).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return employees, nil
}
