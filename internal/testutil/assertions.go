package testutil

import (
	"errors"
	"testing"

	apperrors "fieldtrack/internal/errors"
)

// AssertNoError fails the test immediately if err is non-nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertAppError fails the test unless err is an AppError carrying the
// sentinel's code.
func AssertAppError(t *testing.T, err error, sentinel *apperrors.AppError) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", sentinel.Code)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != sentinel.Code {
		t.Fatalf("expected error code %s, got %s (%s)", sentinel.Code, appErr.Code, appErr.Message)
	}
}
