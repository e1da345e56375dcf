package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fieldtrack/internal/dateutil"
	"fieldtrack/internal/models"
)

var fixtureCounter int64

func nextID() int64 {
	return atomic.AddInt64(&fixtureCounter, 1)
}

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "senha-secreta-123"

// CreateTestUser inserts a user with a unique username. Mutators run before
// the insert so tests can override any field.
func CreateTestUser(t *testing.T, db *gorm.DB, brand, accessType string, mutators ...func(*models.User)) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}

	n := nextID()
	user := &models.User{
		Username:   fmt.Sprintf("user%d", n),
		Brand:      brand,
		Password:   string(hash),
		Name:       fmt.Sprintf("Usuário %d", n),
		AccessType: accessType,
	}
	for _, m := range mutators {
		m(user)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create fixture user: %v", err)
	}
	return user
}

// CreateTestEmployee inserts an employee with a unique registration. Mutators
// run before the insert so tests can set milestone dates and statuses.
func CreateTestEmployee(t *testing.T, db *gorm.DB, brand string, mutators ...func(*models.Employee)) *models.Employee {
	t.Helper()

	n := nextID()
	employee := &models.Employee{
		Registration: fmt.Sprintf("%05d", n),
		Brand:        brand,
		FullName:     fmt.Sprintf("Colaborador %d", n),
		Role:         "Operador",
		EmployeeType: "CLT",
		Status:       "Ativo",
		LastUpdated:  dateutil.Now(),
	}
	for _, m := range mutators {
		m(employee)
	}
	if err := db.Create(employee).Error; err != nil {
		t.Fatalf("failed to create fixture employee: %v", err)
	}
	return employee
}

// Date builds a *time.Time at UTC midnight for fixture milestone fields.
func Date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}
