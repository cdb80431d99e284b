package services

import (
	"testing"
	"time"

	"fieldops-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateActiveSubscriptionDemotesSiblings(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db)

	customer := createCustomer(t, db)
	planA := createPlan(t, db)
	planB := createPlan(t, db)

	existing := createSubscription(t, db, customer, planA, models.SubscriptionActive)

	sub := &models.PlanSubscription{
		CustomerID: customer.ID,
		PlanID:     planB.ID,
		StartDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:     models.SubscriptionActive,
	}
	require.NoError(t, svc.Create(sub, nil))

	var gotExisting models.PlanSubscription
	require.NoError(t, db.First(&gotExisting, "id = ?", existing.ID).Error)
	assert.Equal(t, models.SubscriptionSuspended, gotExisting.Status)

	var gotNew models.PlanSubscription
	require.NoError(t, db.First(&gotNew, "id = ?", sub.ID).Error)
	assert.Equal(t, models.SubscriptionActive, gotNew.Status)
}

func TestCreateSuspendedSubscriptionLeavesSiblings(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db)

	customer := createCustomer(t, db)
	existing := createSubscription(t, db, customer, createPlan(t, db), models.SubscriptionActive)

	sub := &models.PlanSubscription{
		CustomerID: customer.ID,
		PlanID:     createPlan(t, db).ID,
		StartDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:     models.SubscriptionSuspended,
	}
	require.NoError(t, svc.Create(sub, nil))

	var got models.PlanSubscription
	require.NoError(t, db.First(&got, "id = ?", existing.ID).Error)
	assert.Equal(t, models.SubscriptionActive, got.Status)
}

func TestSubscriptionEndBeforeStartRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db)

	customer := createCustomer(t, db)
	plan := createPlan(t, db)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, -1, 0)
	sub := &models.PlanSubscription{
		CustomerID: customer.ID,
		PlanID:     plan.ID,
		StartDate:  start,
		EndDate:    &end,
		Status:     models.SubscriptionActive,
	}
	se := requireServiceCode(t, svc.Create(sub, nil), CodeInvalidRange)
	assert.Equal(t, "endDate", se.Field)

	var count int64
	db.Model(&models.PlanSubscription{}).Count(&count)
	assert.Zero(t, count, "rejected subscription must not be persisted")
}

func TestSubscriptionUnknownStatusRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db)

	sub := &models.PlanSubscription{
		CustomerID: createCustomer(t, db).ID,
		PlanID:     createPlan(t, db).ID,
		StartDate:  time.Now(),
		Status:     "paused",
	}
	requireServiceCode(t, svc.Create(sub, nil), CodeInvalidState)
}

func TestSubscriptionForInactiveCustomerRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db)

	customer := createCustomer(t, db)
	require.NoError(t, Deactivate(db, &models.Customer{}, "customer", customer.ID, nil))

	sub := &models.PlanSubscription{
		CustomerID: customer.ID,
		PlanID:     createPlan(t, db).ID,
		StartDate:  time.Now(),
		Status:     models.SubscriptionActive,
	}
	requireServiceCode(t, svc.Create(sub, nil), CodeInvalidReference)
}

func TestSubscriptionForMissingPlanRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db)

	sub := &models.PlanSubscription{
		CustomerID: createCustomer(t, db).ID,
		PlanID:     uuid.New(),
		StartDate:  time.Now(),
		Status:     models.SubscriptionActive,
	}
	requireServiceCode(t, svc.Create(sub, nil), CodeNotFound)
}

func TestSubscriptionForInactivePlanRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db)

	plan := createPlan(t, db)
	require.NoError(t, Deactivate(db, &models.Plan{}, "plan", plan.ID, nil))

	sub := &models.PlanSubscription{
		CustomerID: createCustomer(t, db).ID,
		PlanID:     plan.ID,
		StartDate:  time.Now(),
		Status:     models.SubscriptionActive,
	}
	requireServiceCode(t, svc.Create(sub, nil), CodeInvalidState)
}

func TestSubscriptionForPlanWithInactiveTaskRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db)

	plan := createPlan(t, db)
	task := &models.PlanTask{PlanID: plan.ID, Name: "Inspection"}
	task.Active = true
	require.NoError(t, db.Create(task).Error)
	require.NoError(t, Deactivate(db, &models.PlanTask{}, "plan task", task.ID, nil))

	sub := &models.PlanSubscription{
		CustomerID: createCustomer(t, db).ID,
		PlanID:     plan.ID,
		StartDate:  time.Now(),
		Status:     models.SubscriptionActive,
	}
	requireServiceCode(t, svc.Create(sub, nil), CodeInvalidState)
}

func TestSaveReactivatedSubscriptionDemotes(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db)

	customer := createCustomer(t, db)
	suspended := createSubscription(t, db, customer, createPlan(t, db), models.SubscriptionSuspended)
	active := createSubscription(t, db, customer, createPlan(t, db), models.SubscriptionActive)

	suspended.Status = models.SubscriptionActive
	require.NoError(t, svc.Save(suspended, nil))

	var gotOld models.PlanSubscription
	require.NoError(t, db.First(&gotOld, "id = ?", active.ID).Error)
	assert.Equal(t, models.SubscriptionSuspended, gotOld.Status)
}
