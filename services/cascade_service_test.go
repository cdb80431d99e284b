package services

import (
	"testing"
	"time"

	"fieldops-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeactivateCustomerCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewCascadeService(db)

	tech := createUser(t, db)
	customer := createCustomer(t, db)
	contact := createContact(t, db, customer, true)
	plan := createPlan(t, db)
	sub := createSubscription(t, db, customer, plan, models.SubscriptionActive)
	visit := createVisit(t, db, sub, tech, models.VisitInProgress)

	assessment := &models.Assessment{VisitID: visit.ID, Rating: 5}
	assessment.Active = true
	require.NoError(t, db.Create(assessment).Error)

	evidence := &models.Evidence{VisitID: visit.ID, FileURL: "https://files.example/1.jpg", UploadedAt: time.Now()}
	evidence.Active = true
	require.NoError(t, db.Create(evidence).Error)

	planTask := &models.PlanTask{PlanID: plan.ID, Name: "Filter swap"}
	planTask.Active = true
	require.NoError(t, db.Create(planTask).Error)

	done := &models.TaskCompleted{VisitID: visit.ID, PlanTaskID: planTask.ID, Name: "Filter swap", Completed: true}
	done.Active = true
	require.NoError(t, db.Create(done).Error)

	material := &models.MaterialUsed{VisitID: visit.ID, Description: "HVAC filter", Unit: "pc", UnitCost: 18.5}
	material.Active = true
	require.NoError(t, db.Create(material).Error)

	require.NoError(t, svc.DeactivateCustomer(customer.ID, nil))

	var got models.Customer
	require.NoError(t, db.First(&got, "id = ?", customer.ID).Error)
	assert.False(t, got.Active)

	var gotContact models.CustomerContact
	require.NoError(t, db.First(&gotContact, "id = ?", contact.ID).Error)
	assert.False(t, gotContact.Active)

	var gotSub models.PlanSubscription
	require.NoError(t, db.First(&gotSub, "id = ?", sub.ID).Error)
	assert.False(t, gotSub.Active)

	var gotVisit models.Visit
	require.NoError(t, db.First(&gotVisit, "id = ?", visit.ID).Error)
	assert.False(t, gotVisit.Active)
	assert.Equal(t, models.VisitInProgress, gotVisit.Status, "cascade flips flags, never visit status")

	var gotAssessment models.Assessment
	require.NoError(t, db.First(&gotAssessment, "id = ?", assessment.ID).Error)
	assert.False(t, gotAssessment.Active)

	var gotEvidence models.Evidence
	require.NoError(t, db.First(&gotEvidence, "id = ?", evidence.ID).Error)
	assert.False(t, gotEvidence.Active)

	var gotDone models.TaskCompleted
	require.NoError(t, db.First(&gotDone, "id = ?", done.ID).Error)
	assert.False(t, gotDone.Active)

	var gotMaterial models.MaterialUsed
	require.NoError(t, db.First(&gotMaterial, "id = ?", material.ID).Error)
	assert.False(t, gotMaterial.Active)

	// The plan belongs to no single customer and stays active.
	var gotPlan models.Plan
	require.NoError(t, db.First(&gotPlan, "id = ?", plan.ID).Error)
	assert.True(t, gotPlan.Active)
}

func TestDeactivateCustomerLeavesOtherCustomersAlone(t *testing.T) {
	db := newTestDB(t)
	svc := NewCascadeService(db)

	tech := createUser(t, db)
	plan := createPlan(t, db)

	target := createCustomer(t, db)
	bystander := createCustomer(t, db)

	targetSub := createSubscription(t, db, target, plan, models.SubscriptionActive)
	bystanderSub := createSubscription(t, db, bystander, plan, models.SubscriptionActive)
	bystanderVisit := createVisit(t, db, bystanderSub, tech, models.VisitScheduled)

	require.NoError(t, svc.DeactivateCustomer(target.ID, nil))

	var gotTarget models.PlanSubscription
	require.NoError(t, db.First(&gotTarget, "id = ?", targetSub.ID).Error)
	assert.False(t, gotTarget.Active)

	var gotBystander models.PlanSubscription
	require.NoError(t, db.First(&gotBystander, "id = ?", bystanderSub.ID).Error)
	assert.True(t, gotBystander.Active)

	var gotVisit models.Visit
	require.NoError(t, db.First(&gotVisit, "id = ?", bystanderVisit.ID).Error)
	assert.True(t, gotVisit.Active)
}

func TestDeactivateCustomerIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewCascadeService(db)

	customer := createCustomer(t, db)
	require.NoError(t, svc.DeactivateCustomer(customer.ID, nil))
	require.NoError(t, svc.DeactivateCustomer(customer.ID, nil))
}

func TestDeactivateCustomerNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewCascadeService(db)

	err := svc.DeactivateCustomer(uuid.New(), nil)
	requireServiceCode(t, err, CodeNotFound)
}

func TestRestoreCustomerDoesNotReviveDescendants(t *testing.T) {
	db := newTestDB(t)
	svc := NewCascadeService(db)

	customer := createCustomer(t, db)
	contact := createContact(t, db, customer, false)

	require.NoError(t, svc.DeactivateCustomer(customer.ID, nil))
	require.NoError(t, svc.RestoreCustomer(customer.ID, nil))

	var gotCustomer models.Customer
	require.NoError(t, db.First(&gotCustomer, "id = ?", customer.ID).Error)
	assert.True(t, gotCustomer.Active)

	var gotContact models.CustomerContact
	require.NoError(t, db.First(&gotContact, "id = ?", contact.ID).Error)
	assert.False(t, gotContact.Active, "restore is not a reverse cascade")
}

func TestDeactivateStampsActor(t *testing.T) {
	db := newTestDB(t)
	svc := NewCascadeService(db)

	actor := createUser(t, db)
	customer := createCustomer(t, db)
	sub := createSubscription(t, db, customer, createPlan(t, db), models.SubscriptionActive)

	require.NoError(t, svc.DeactivateCustomer(customer.ID, actor))

	var gotSub models.PlanSubscription
	require.NoError(t, db.First(&gotSub, "id = ?", sub.ID).Error)
	require.NotNil(t, gotSub.UpdatedByID)
	assert.Equal(t, actor.ID, *gotSub.UpdatedByID)
}
