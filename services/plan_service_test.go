package services

import (
	"testing"

	"fieldops-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTaskOnInactivePlan(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)

	plan := createPlan(t, db)
	require.NoError(t, Deactivate(db, &models.Plan{}, "plan", plan.ID, nil))

	task := &models.PlanTask{PlanID: plan.ID, Name: "Coil cleaning"}
	requireServiceCode(t, svc.CreateTask(task, nil), CodeInvalidState)
}

func TestDuplicateTaskNameRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)

	plan := createPlan(t, db)
	first := &models.PlanTask{PlanID: plan.ID, Name: "Coil cleaning"}
	require.NoError(t, svc.CreateTask(first, nil))

	dup := &models.PlanTask{PlanID: plan.ID, Name: "Coil cleaning"}
	se := requireServiceCode(t, svc.CreateTask(dup, nil), CodeConflict)
	assert.Equal(t, "name", se.Field)
}

func TestSameTaskNameAllowedAcrossPlans(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)

	planA := createPlan(t, db)
	planB := createPlan(t, db)

	require.NoError(t, svc.CreateTask(&models.PlanTask{PlanID: planA.ID, Name: "Coil cleaning"}, nil))
	require.NoError(t, svc.CreateTask(&models.PlanTask{PlanID: planB.ID, Name: "Coil cleaning"}, nil))
}

func TestRenameTaskToItselfAllowed(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)

	plan := createPlan(t, db)
	task := &models.PlanTask{PlanID: plan.ID, Name: "Coil cleaning"}
	require.NoError(t, svc.CreateTask(task, nil))

	task.Description = "Quarterly deep clean"
	require.NoError(t, svc.SaveTask(task, nil))
}

func TestDeletePlanReferencedBySubscription(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)

	plan := createPlan(t, db)
	createSubscription(t, db, createCustomer(t, db), plan, models.SubscriptionActive)

	requireServiceCode(t, svc.DeletePlan(plan.ID, nil), CodeConflict)

	var got models.Plan
	require.NoError(t, db.First(&got, "id = ?", plan.ID).Error)
	assert.True(t, got.Active)
}

func TestDeletePlanBlockedEvenByInactiveSubscription(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)

	plan := createPlan(t, db)
	sub := createSubscription(t, db, createCustomer(t, db), plan, models.SubscriptionCanceled)
	require.NoError(t, Deactivate(db, &models.PlanSubscription{}, "subscription", sub.ID, nil))

	requireServiceCode(t, svc.DeletePlan(plan.ID, nil), CodeConflict)
}

func TestDeleteUnreferencedPlan(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)

	plan := createPlan(t, db)
	require.NoError(t, svc.DeletePlan(plan.ID, nil))

	var got models.Plan
	require.NoError(t, db.First(&got, "id = ?", plan.ID).Error)
	assert.False(t, got.Active)
}
