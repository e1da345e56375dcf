package services

import (
	"testing"
	"time"

	apperrors "fieldtrack/internal/errors"
	"fieldtrack/internal/models"
	"fieldtrack/internal/testutil"
)

func TestAuditRecordNoOpRule(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)

	t.Run("equal_strings_write_nothing", func(t *testing.T) {
		changed, err := svc.Record(nil, "10001", "status", "Ativo", "Ativo", "ana", models.ChangeSourceSystem)
		testutil.AssertNoError(t, err)
		if changed {
			t.Error("expected no change for equal values")
		}
		var count int64
		db.Model(&models.AuditLog{}).Where("registration = ?", "10001").Count(&count)
		if count != 0 {
			t.Errorf("expected 0 entries, got %d", count)
		}
	})

	t.Run("equal_dates_write_nothing", func(t *testing.T) {
		old := testutil.Date(2024, time.March, 15)
		// Same calendar date carrying a time-of-day component.
		withTime := time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)
		changed, err := svc.Record(nil, "10002", "loading_date", old, &withTime, "ana", models.ChangeSourceUpload)
		testutil.AssertNoError(t, err)
		if changed {
			t.Error("expected no change for the same calendar date")
		}
	})

	t.Run("nil_date_equals_empty", func(t *testing.T) {
		var noDate *time.Time
		changed, err := svc.Record(nil, "10003", "double_end", noDate, "", "ana", models.ChangeSourceSystem)
		testutil.AssertNoError(t, err)
		if changed {
			t.Error("expected nil date and empty string to compare equal")
		}
	})

	t.Run("real_change_written_with_display_values", func(t *testing.T) {
		old := testutil.Date(2024, time.March, 15)
		next := testutil.Date(2024, time.April, 1)
		changed, err := svc.Record(nil, "10004", "loading_date", old, next, "bia", models.ChangeSourceUpload)
		testutil.AssertNoError(t, err)
		if !changed {
			t.Fatal("expected change to be recorded")
		}

		var entry models.AuditLog
		testutil.AssertNoError(t, db.Where("registration = ?", "10004").First(&entry).Error)
		if entry.OldValue != "15/03/2024" || entry.NewValue != "01/04/2024" {
			t.Errorf("expected DD/MM/YYYY display values, got %q -> %q", entry.OldValue, entry.NewValue)
		}
		if entry.ChangedBy != "bia" || entry.ChangeSource != models.ChangeSourceUpload {
			t.Errorf("unexpected actor/source: %q %q", entry.ChangedBy, entry.ChangeSource)
		}
	})
}

func TestAuditQuery(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)

	vivo := testutil.CreateTestEmployee(t, db, models.BrandVivo)
	claro := testutil.CreateTestEmployee(t, db, models.BrandClaro)

	mustRecord := func(registration, field, old, new string, source models.ChangeSource) {
		t.Helper()
		changed, err := svc.Record(nil, registration, field, old, new, "ana", source)
		testutil.AssertNoError(t, err)
		if !changed {
			t.Fatalf("fixture entry for %s/%s was not recorded", registration, field)
		}
	}

	mustRecord(vivo.Registration, "status", "Ativo", "Desligado", models.ChangeSourceSystem)
	mustRecord(vivo.Registration, "team", "Turma A", "Turma B", models.ChangeSourceUpload)
	mustRecord(claro.Registration, "status", "Ativo", "Férias", models.ChangeSourceSystem)

	t.Run("scoped_to_brand", func(t *testing.T) {
		entries, err := svc.Query(models.BrandVivo, AuditFilter{})
		testutil.AssertNoError(t, err)
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries for Vivo, got %d", len(entries))
		}
		for _, e := range entries {
			if e.Registration != vivo.Registration {
				t.Errorf("entry leaked from another brand: %s", e.Registration)
			}
		}
	})

	t.Run("newest_first", func(t *testing.T) {
		entries, err := svc.Query(models.BrandVivo, AuditFilter{})
		testutil.AssertNoError(t, err)
		if entries[0].FieldChanged != "team" {
			t.Errorf("expected most recent entry first, got %s", entries[0].FieldChanged)
		}
	})

	t.Run("field_and_source_filters", func(t *testing.T) {
		entries, err := svc.Query(models.BrandVivo, AuditFilter{Field: "status"})
		testutil.AssertNoError(t, err)
		if len(entries) != 1 || entries[0].FieldChanged != "status" {
			t.Errorf("field filter failed: %+v", entries)
		}

		entries, err = svc.Query(models.BrandVivo, AuditFilter{Source: models.ChangeSourceUpload})
		testutil.AssertNoError(t, err)
		if len(entries) != 1 || entries[0].ChangeSource != models.ChangeSourceUpload {
			t.Errorf("source filter failed: %+v", entries)
		}
	})

	t.Run("inclusive_end_date", func(t *testing.T) {
		today := time.Now()
		entries, err := svc.Query(models.BrandVivo, AuditFilter{StartDate: &today, EndDate: &today})
		testutil.AssertNoError(t, err)
		if len(entries) != 2 {
			t.Errorf("expected entries written today to fall inside [today, today], got %d", len(entries))
		}
	})

	t.Run("changed_fields", func(t *testing.T) {
		fields, err := svc.ChangedFields(models.BrandVivo)
		testutil.AssertNoError(t, err)
		if len(fields) != 2 || fields[0] != "status" || fields[1] != "team" {
			t.Errorf("expected [status team], got %v", fields)
		}
	})
}

func TestAuditPurge(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)

	emp := testutil.CreateTestEmployee(t, db, models.BrandVivo)
	if _, err := svc.Record(nil, emp.Registration, "status", "Ativo", "Desligado", "ana", models.ChangeSourceSystem); err != nil {
		t.Fatal(err)
	}

	var entry models.AuditLog
	testutil.AssertNoError(t, db.First(&entry).Error)

	n, err := svc.Purge([]uint{entry.ID, 9999})
	testutil.AssertNoError(t, err)
	if n != 1 {
		t.Errorf("expected 1 purged entry, got %d", n)
	}

	_, err = svc.Purge(nil)
	testutil.AssertAppError(t, err, apperrors.ErrInvalidInput)
}
