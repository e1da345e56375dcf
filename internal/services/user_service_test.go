package services

import (
	"testing"

	apperrors "fieldtrack/internal/errors"
	"fieldtrack/internal/models"
	"fieldtrack/internal/testutil"
)

func TestAuthenticate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	user := testutil.CreateTestUser(t, db, models.BrandVivo, models.AccessTypeUser)

	t.Run("valid_credentials", func(t *testing.T) {
		got, err := svc.Authenticate(user.Username, models.BrandVivo, testutil.TestPassword)
		testutil.AssertNoError(t, err)
		if got.ID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, got.ID)
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := svc.Authenticate(user.Username, models.BrandVivo, "errada")
		testutil.AssertAppError(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("wrong_brand", func(t *testing.T) {
		_, err := svc.Authenticate(user.Username, models.BrandClaro, testutil.TestPassword)
		testutil.AssertAppError(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown_user", func(t *testing.T) {
		_, err := svc.Authenticate("ninguem", models.BrandVivo, testutil.TestPassword)
		testutil.AssertAppError(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestCreateUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	t.Run("password_is_hashed", func(t *testing.T) {
		user, err := svc.CreateUser("carla", models.BrandVivo, "segredo", "Carla", models.AccessTypeAdmin)
		testutil.AssertNoError(t, err)
		if user.Password == "segredo" {
			t.Error("password stored in plaintext")
		}
		_, err = svc.Authenticate("carla", models.BrandVivo, "segredo")
		testutil.AssertNoError(t, err)
	})

	t.Run("duplicate_within_brand", func(t *testing.T) {
		_, err := svc.CreateUser("carla", models.BrandVivo, "outra", "Carla 2", models.AccessTypeUser)
		testutil.AssertAppError(t, err, apperrors.ErrDuplicateUsername)
	})

	t.Run("same_username_other_brand", func(t *testing.T) {
		_, err := svc.CreateUser("carla", models.BrandClaro, "outra", "Carla Claro", models.AccessTypeUser)
		testutil.AssertNoError(t, err)
	})

	t.Run("missing_fields", func(t *testing.T) {
		_, err := svc.CreateUser("", models.BrandVivo, "x", "", models.AccessTypeUser)
		testutil.AssertAppError(t, err, apperrors.ErrInvalidInput)
	})
}

func TestUpdateUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	user := testutil.CreateTestUser(t, db, models.BrandVivo, models.AccessTypeUser)

	t.Run("promote_and_rename", func(t *testing.T) {
		updated, err := svc.UpdateUser(user.ID, models.BrandVivo, "Novo Nome", "", models.AccessTypeAdmin)
		testutil.AssertNoError(t, err)
		if updated.Name != "Novo Nome" || !updated.IsAdmin() {
			t.Errorf("update not applied: %+v", updated)
		}
	})

	t.Run("password_change", func(t *testing.T) {
		_, err := svc.UpdateUser(user.ID, models.BrandVivo, "", "nova-senha", "")
		testutil.AssertNoError(t, err)
		_, err = svc.Authenticate(user.Username, models.BrandVivo, "nova-senha")
		testutil.AssertNoError(t, err)
	})

	t.Run("invalid_access_type", func(t *testing.T) {
		_, err := svc.UpdateUser(user.ID, models.BrandVivo, "", "", "root")
		testutil.AssertAppError(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("wrong_brand", func(t *testing.T) {
		_, err := svc.UpdateUser(user.ID, models.BrandClaro, "X", "", "")
		testutil.AssertAppError(t, err, apperrors.ErrUserNotFound)
	})
}

func TestListAndDeleteUsers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	a := testutil.CreateTestUser(t, db, models.BrandVivo, models.AccessTypeUser)
	testutil.CreateTestUser(t, db, models.BrandVivo, models.AccessTypeAdmin)
	testutil.CreateTestUser(t, db, models.BrandClaro, models.AccessTypeUser)

	users, err := svc.ListUsers(models.BrandVivo)
	testutil.AssertNoError(t, err)
	if len(users) != 2 {
		t.Fatalf("expected 2 Vivo users, got %d", len(users))
	}

	testutil.AssertNoError(t, svc.DeleteUser(a.ID, models.BrandVivo))
	testutil.AssertAppError(t, svc.DeleteUser(a.ID, models.BrandVivo), apperrors.ErrUserNotFound)

	users, err = svc.ListUsers(models.BrandVivo)
	testutil.AssertNoError(t, err)
	if len(users) != 1 {
		t.Errorf("expected 1 user after delete, got %d", len(users))
	}
}
