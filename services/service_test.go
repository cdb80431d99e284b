package services

import (
	"fmt"
	"testing"
	"time"

	"fieldops-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.CustomerContact{},
		&models.Plan{},
		&models.PlanTask{},
		&models.PlanSubscription{},
		&models.Visit{},
		&models.Assessment{},
		&models.Evidence{},
		&models.TaskCompleted{},
		&models.MaterialUsed{},
		&models.NotificationLog{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		Email:    fmt.Sprintf("tech-%s@example.com", uuid.NewString()[:8]),
		Password: "secret-pass-123",
		Name:     "Test Technician",
		Phone:    "+15550001111",
		Role:     models.RoleTechnician,
	}
	user.Active = true
	require.NoError(t, db.Create(user).Error)
	return user
}

func createCustomer(t *testing.T, db *gorm.DB) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		Name:           "Acme Facilities",
		Identification: fmt.Sprintf("ID-%s", uuid.NewString()[:8]),
		Email:          "facilities@acme.example",
		Phone:          "+15550002222",
		Address:        "100 Industrial Way",
	}
	customer.Active = true
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func createContact(t *testing.T, db *gorm.DB, customer *models.Customer, primary bool) *models.CustomerContact {
	t.Helper()
	contact := &models.CustomerContact{
		CustomerID: customer.ID,
		Name:       "Site Manager",
		Phone:      "+15550003333",
		IsPrimary:  primary,
	}
	contact.Active = true
	require.NoError(t, db.Create(contact).Error)
	return contact
}

func createPlan(t *testing.T, db *gorm.DB) *models.Plan {
	t.Helper()
	plan := &models.Plan{
		Name:        fmt.Sprintf("Plan %s", uuid.NewString()[:8]),
		Price:       120.00,
		Periodicity: models.PeriodicityMonthly,
	}
	plan.Active = true
	require.NoError(t, db.Create(plan).Error)
	return plan
}

func createSubscription(t *testing.T, db *gorm.DB, customer *models.Customer, plan *models.Plan, status string) *models.PlanSubscription {
	t.Helper()
	sub := &models.PlanSubscription{
		CustomerID: customer.ID,
		PlanID:     plan.ID,
		StartDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:     status,
	}
	sub.Active = true
	require.NoError(t, db.Create(sub).Error)
	return sub
}

func createVisit(t *testing.T, db *gorm.DB, sub *models.PlanSubscription, user *models.User, status string) *models.Visit {
	t.Helper()
	visit := &models.Visit{
		SubscriptionID: sub.ID,
		UserID:         user.ID,
		Start:          time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC),
		Status:         status,
	}
	visit.Active = true
	require.NoError(t, db.Create(visit).Error)
	return visit
}

// fakeNotifier records which visits were reported completed.
type fakeNotifier struct {
	completed []uuid.UUID
}

func (f *fakeNotifier) VisitCompleted(visit *models.Visit) {
	f.completed = append(f.completed, visit.ID)
}

func requireServiceCode(t *testing.T, err error, code string) *ServiceError {
	t.Helper()
	require.Error(t, err)
	se, ok := AsServiceError(err)
	require.True(t, ok, "expected ServiceError, got %T: %v", err, err)
	require.Equal(t, code, se.Code)
	return se
}
