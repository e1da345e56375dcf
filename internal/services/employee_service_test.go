package services

import (
	"fmt"
	"testing"
	"time"

	apperrors "fieldtrack/internal/errors"
	"fieldtrack/internal/models"
	"fieldtrack/internal/pagination"
	"fieldtrack/internal/testutil"
)

func TestListEmployees(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewEmployeeService(db, NewAuditService(db))

	testutil.CreateTestEmployee(t, db, models.BrandVivo, func(e *models.Employee) {
		e.FullName = "Maria Souza"
		e.Team = "Turma A"
	})
	testutil.CreateTestEmployee(t, db, models.BrandVivo, func(e *models.Employee) {
		e.FullName = "João Pereira"
		e.Team = "Turma B"
	})
	testutil.CreateTestEmployee(t, db, models.BrandClaro, func(e *models.Employee) {
		e.FullName = "Maria Claro"
	})

	t.Run("scoped_to_brand_and_ordered", func(t *testing.T) {
		page, err := svc.ListEmployees(models.BrandVivo, EmployeeFilter{}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 2 {
			t.Fatalf("expected 2 employees, got %d", page.TotalItems)
		}
		if page.Data[0].FullName != "João Pereira" {
			t.Errorf("expected name ordering, got %s first", page.Data[0].FullName)
		}
	})

	t.Run("substring_filter_case_insensitive", func(t *testing.T) {
		page, err := svc.ListEmployees(models.BrandVivo, EmployeeFilter{
			Text: map[string]string{"full_name": "maria"},
		}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 || page.Data[0].FullName != "Maria Souza" {
			t.Errorf("substring filter failed: %+v", page.Data)
		}
	})

	t.Run("comma_list_is_exact_in", func(t *testing.T) {
		page, err := svc.ListEmployees(models.BrandVivo, EmployeeFilter{
			Text: map[string]string{"team": "Turma A, Turma B"},
		}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 2 {
			t.Errorf("expected both teams matched, got %d", page.TotalItems)
		}
	})

	t.Run("unknown_column_rejected", func(t *testing.T) {
		_, err := svc.ListEmployees(models.BrandVivo, EmployeeFilter{
			Text: map[string]string{"password": "x"},
		}, pagination.PageRequest{})
		testutil.AssertAppError(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("pagination", func(t *testing.T) {
		page, err := svc.ListEmployees(models.BrandVivo, EmployeeFilter{}, pagination.PageRequest{Page: 2, PageSize: 1})
		testutil.AssertNoError(t, err)
		if len(page.Data) != 1 || page.TotalPages != 2 {
			t.Errorf("expected page 2 of 2 with 1 item, got %d items, %d pages", len(page.Data), page.TotalPages)
		}
	})
}

func TestGetEmployeeByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewEmployeeService(db, NewAuditService(db))

	emp := testutil.CreateTestEmployee(t, db, models.BrandVivo)

	got, err := svc.GetEmployeeByID(models.BrandVivo, emp.ID)
	testutil.AssertNoError(t, err)
	if got.Registration != emp.Registration {
		t.Errorf("expected %s, got %s", emp.Registration, got.Registration)
	}

	// The other brand must not see it.
	_, err = svc.GetEmployeeByID(models.BrandClaro, emp.ID)
	testutil.AssertAppError(t, err, apperrors.ErrEmployeeNotFound)
}

func TestUpdateEmployee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewEmployeeService(db, NewAuditService(db))

	t.Run("changes_applied_and_audited", func(t *testing.T) {
		emp := testutil.CreateTestEmployee(t, db, models.BrandVivo, func(e *models.Employee) {
			e.Status = "Ativo"
		})

		updated, err := svc.UpdateEmployee(models.BrandVivo, emp.ID, UpdateEmployeeInput{
			"status":       "Desligado",
			"loading_date": "2024-05-10",
		}, "ana")
		testutil.AssertNoError(t, err)
		if updated.Status != "Desligado" {
			t.Errorf("status not applied: %s", updated.Status)
		}
		if updated.LoadingDate == nil || updated.LoadingDate.Format("2006-01-02") != "2024-05-10" {
			t.Errorf("loading date not applied: %v", updated.LoadingDate)
		}

		var entries []models.AuditLog
		testutil.AssertNoError(t, db.Where("registration = ?", emp.Registration).Find(&entries).Error)
		if len(entries) != 2 {
			t.Fatalf("expected 2 audit entries, got %d", len(entries))
		}
		for _, e := range entries {
			if e.ChangeSource != models.ChangeSourceSystem || e.ChangedBy != "ana" {
				t.Errorf("unexpected source/actor: %q %q", e.ChangeSource, e.ChangedBy)
			}
		}
	})

	t.Run("noop_produces_no_audit_entry", func(t *testing.T) {
		emp := testutil.CreateTestEmployee(t, db, models.BrandVivo, func(e *models.Employee) {
			e.Status = "Ativo"
		})

		_, err := svc.UpdateEmployee(models.BrandVivo, emp.ID, UpdateEmployeeInput{"status": "Ativo"}, "ana")
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.AuditLog{}).Where("registration = ?", emp.Registration).Count(&count)
		if count != 0 {
			t.Errorf("expected 0 audit entries for a no-op edit, got %d", count)
		}
	})

	t.Run("clearing_a_date", func(t *testing.T) {
		emp := testutil.CreateTestEmployee(t, db, models.BrandVivo, func(e *models.Employee) {
			e.LoadingDate = testutil.Date(2024, time.May, 10)
		})

		updated, err := svc.UpdateEmployee(models.BrandVivo, emp.ID, UpdateEmployeeInput{"loading_date": ""}, "ana")
		testutil.AssertNoError(t, err)
		if updated.LoadingDate != nil {
			t.Errorf("expected date cleared, got %v", updated.LoadingDate)
		}

		var entry models.AuditLog
		testutil.AssertNoError(t, db.Where("registration = ?", emp.Registration).First(&entry).Error)
		if entry.OldValue != "10/05/2024" || entry.NewValue != "" {
			t.Errorf("unexpected audit values: %q -> %q", entry.OldValue, entry.NewValue)
		}
	})

	t.Run("bad_date_rejects_whole_request", func(t *testing.T) {
		emp := testutil.CreateTestEmployee(t, db, models.BrandVivo, func(e *models.Employee) {
			e.Status = "Ativo"
		})

		_, err := svc.UpdateEmployee(models.BrandVivo, emp.ID, UpdateEmployeeInput{
			"status":       "Desligado",
			"loading_date": "10/05/2024", // not ISO
		}, "ana")
		testutil.AssertAppError(t, err, apperrors.ErrInvalidDate)

		// Nothing was applied and nothing was audited.
		reloaded, err := svc.GetEmployeeByID(models.BrandVivo, emp.ID)
		testutil.AssertNoError(t, err)
		if reloaded.Status != "Ativo" {
			t.Errorf("partial application detected: status = %s", reloaded.Status)
		}
		var count int64
		db.Model(&models.AuditLog{}).Where("registration = ?", emp.Registration).Count(&count)
		if count != 0 {
			t.Errorf("expected 0 audit entries after rejection, got %d", count)
		}
	})

	t.Run("unknown_field_rejected", func(t *testing.T) {
		emp := testutil.CreateTestEmployee(t, db, models.BrandVivo)
		_, err := svc.UpdateEmployee(models.BrandVivo, emp.ID, UpdateEmployeeInput{"registration": "99999"}, "ana")
		testutil.AssertAppError(t, err, apperrors.ErrInvalidInput)
	})
}

func TestDeleteEmployees(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewEmployeeService(db, NewAuditService(db))

	t.Run("single", func(t *testing.T) {
		emp := testutil.CreateTestEmployee(t, db, models.BrandVivo)
		testutil.AssertNoError(t, svc.DeleteEmployee(models.BrandVivo, emp.ID))
		testutil.AssertAppError(t, svc.DeleteEmployee(models.BrandVivo, emp.ID), apperrors.ErrEmployeeNotFound)
	})

	t.Run("batch_spanning_chunks", func(t *testing.T) {
		ids := make([]uint, 0, deleteBatchSize+5)
		for i := 0; i < deleteBatchSize+5; i++ {
			emp := testutil.CreateTestEmployee(t, db, models.BrandVivo, func(e *models.Employee) {
				e.Registration = fmt.Sprintf("batch-%d", i)
			})
			ids = append(ids, emp.ID)
		}
		// IDs from the wrong brand or unknown are silently ignored.
		other := testutil.CreateTestEmployee(t, db, models.BrandClaro)
		ids = append(ids, other.ID, 999999)

		deleted, err := svc.DeleteEmployees(models.BrandVivo, ids)
		testutil.AssertNoError(t, err)
		if deleted != deleteBatchSize+5 {
			t.Errorf("expected %d deleted, got %d", deleteBatchSize+5, deleted)
		}

		var count int64
		db.Model(&models.Employee{}).Where("brand = ?", models.BrandClaro).Count(&count)
		if count != 1 {
			t.Errorf("other brand's employee must survive, count = %d", count)
		}
	})

	t.Run("empty_list_rejected", func(t *testing.T) {
		_, err := svc.DeleteEmployees(models.BrandVivo, nil)
		testutil.AssertAppError(t, err, apperrors.ErrInvalidInput)
	})
}
