package services

import (
	"testing"
	"time"

	"fieldops-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVisitDefaultsToScheduled(t *testing.T) {
	db := newTestDB(t)
	notifier := &fakeNotifier{}
	svc := NewVisitService(db, notifier)

	tech := createUser(t, db)
	sub := createSubscription(t, db, createCustomer(t, db), createPlan(t, db), models.SubscriptionActive)

	visit := &models.Visit{
		SubscriptionID: sub.ID,
		UserID:         tech.ID,
		Start:          time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, svc.Create(visit, nil))
	assert.Equal(t, models.VisitScheduled, visit.Status)
	assert.Empty(t, notifier.completed)
}

func TestCreateVisitEndBeforeStartRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewVisitService(db, &fakeNotifier{})

	tech := createUser(t, db)
	sub := createSubscription(t, db, createCustomer(t, db), createPlan(t, db), models.SubscriptionActive)

	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	visit := &models.Visit{
		SubscriptionID: sub.ID,
		UserID:         tech.ID,
		Start:          start,
		End:            &end,
	}
	se := requireServiceCode(t, svc.Create(visit, nil), CodeInvalidRange)
	assert.Equal(t, "end", se.Field)

	var count int64
	db.Model(&models.Visit{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateVisitInactiveTechnicianRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewVisitService(db, &fakeNotifier{})

	tech := createUser(t, db)
	require.NoError(t, Deactivate(db, &models.User{}, "user", tech.ID, nil))
	sub := createSubscription(t, db, createCustomer(t, db), createPlan(t, db), models.SubscriptionActive)

	visit := &models.Visit{SubscriptionID: sub.ID, UserID: tech.ID, Start: time.Now()}
	requireServiceCode(t, svc.Create(visit, nil), CodeInvalidReference)
}

func TestCreateVisitInactiveSubscriptionRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewVisitService(db, &fakeNotifier{})

	tech := createUser(t, db)
	sub := createSubscription(t, db, createCustomer(t, db), createPlan(t, db), models.SubscriptionActive)
	require.NoError(t, Deactivate(db, &models.PlanSubscription{}, "subscription", sub.ID, nil))

	visit := &models.Visit{SubscriptionID: sub.ID, UserID: tech.ID, Start: time.Now()}
	requireServiceCode(t, svc.Create(visit, nil), CodeInvalidReference)
}

func TestCreateVisitMissingSubscriptionRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewVisitService(db, &fakeNotifier{})

	tech := createUser(t, db)
	visit := &models.Visit{SubscriptionID: uuid.New(), UserID: tech.ID, Start: time.Now()}
	requireServiceCode(t, svc.Create(visit, nil), CodeNotFound)
}

func TestStartVisitSetsInProgress(t *testing.T) {
	db := newTestDB(t)
	svc := NewVisitService(db, &fakeNotifier{})

	tech := createUser(t, db)
	sub := createSubscription(t, db, createCustomer(t, db), createPlan(t, db), models.SubscriptionActive)
	visit := createVisit(t, db, sub, tech, models.VisitScheduled)

	got, err := svc.Start(visit.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.VisitInProgress, got.Status)
	assert.False(t, got.Start.IsZero())
}

func TestStartCanceledVisitRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewVisitService(db, &fakeNotifier{})

	tech := createUser(t, db)
	sub := createSubscription(t, db, createCustomer(t, db), createPlan(t, db), models.SubscriptionActive)
	visit := createVisit(t, db, sub, tech, models.VisitCanceled)

	_, err := svc.Start(visit.ID, nil)
	requireServiceCode(t, err, CodeInvalidTransition)

	var got models.Visit
	require.NoError(t, db.First(&got, "id = ?", visit.ID).Error)
	assert.Equal(t, models.VisitCanceled, got.Status)
}

func TestCompleteVisitNotifiesOnce(t *testing.T) {
	db := newTestDB(t)
	notifier := &fakeNotifier{}
	svc := NewVisitService(db, notifier)

	tech := createUser(t, db)
	sub := createSubscription(t, db, createCustomer(t, db), createPlan(t, db), models.SubscriptionActive)
	visit := createVisit(t, db, sub, tech, models.VisitInProgress)

	got, err := svc.Complete(visit.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.VisitCompleted, got.Status)
	require.NotNil(t, got.End)
	require.Len(t, notifier.completed, 1)

	// Completing again is accepted but must not re-notify.
	_, err = svc.Complete(visit.ID, nil)
	require.NoError(t, err)
	assert.Len(t, notifier.completed, 1)
}

func TestCreateVisitDirectlyCompletedNotifies(t *testing.T) {
	db := newTestDB(t)
	notifier := &fakeNotifier{}
	svc := NewVisitService(db, notifier)

	tech := createUser(t, db)
	sub := createSubscription(t, db, createCustomer(t, db), createPlan(t, db), models.SubscriptionActive)

	visit := &models.Visit{
		SubscriptionID: sub.ID,
		UserID:         tech.ID,
		Start:          time.Now(),
		Status:         models.VisitCompleted,
	}
	require.NoError(t, svc.Create(visit, nil))
	assert.Len(t, notifier.completed, 1)
}

func TestSaveTransitionIntoCompletedNotifies(t *testing.T) {
	db := newTestDB(t)
	notifier := &fakeNotifier{}
	svc := NewVisitService(db, notifier)

	tech := createUser(t, db)
	sub := createSubscription(t, db, createCustomer(t, db), createPlan(t, db), models.SubscriptionActive)
	visit := createVisit(t, db, sub, tech, models.VisitInProgress)

	prev := visit.Status
	visit.Status = models.VisitCompleted
	require.NoError(t, svc.Save(visit, prev, nil))
	require.Len(t, notifier.completed, 1)

	// A later edit of an already-completed visit stays silent.
	visit.Notes = "left gate unlocked"
	require.NoError(t, svc.Save(visit, models.VisitCompleted, nil))
	assert.Len(t, notifier.completed, 1)
}

func TestCancelVisitStoresReasonAndEnd(t *testing.T) {
	db := newTestDB(t)
	svc := NewVisitService(db, &fakeNotifier{})

	tech := createUser(t, db)
	sub := createSubscription(t, db, createCustomer(t, db), createPlan(t, db), models.SubscriptionActive)
	visit := createVisit(t, db, sub, tech, models.VisitScheduled)

	got, err := svc.Cancel(visit.ID, "customer unavailable", nil)
	require.NoError(t, err)
	assert.Equal(t, models.VisitCanceled, got.Status)
	assert.Equal(t, "customer unavailable", got.CancelReason)
	assert.NotNil(t, got.End)
}

func TestReopenClearsCancelReason(t *testing.T) {
	db := newTestDB(t)
	svc := NewVisitService(db, &fakeNotifier{})

	tech := createUser(t, db)
	sub := createSubscription(t, db, createCustomer(t, db), createPlan(t, db), models.SubscriptionActive)
	visit := createVisit(t, db, sub, tech, models.VisitScheduled)

	_, err := svc.Cancel(visit.ID, "rain", nil)
	require.NoError(t, err)

	got, err := svc.Reopen(visit.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.VisitScheduled, got.Status)
	assert.Empty(t, got.CancelReason)
}

func TestVisitActionOnDeletedVisit(t *testing.T) {
	db := newTestDB(t)
	svc := NewVisitService(db, &fakeNotifier{})

	tech := createUser(t, db)
	sub := createSubscription(t, db, createCustomer(t, db), createPlan(t, db), models.SubscriptionActive)
	visit := createVisit(t, db, sub, tech, models.VisitScheduled)
	require.NoError(t, Deactivate(db, &models.Visit{}, "visit", visit.ID, nil))

	_, err := svc.Start(visit.ID, nil)
	requireServiceCode(t, err, CodeNotFound)

	// Reopen ignores the soft-delete flag so canceled work under a restored
	// customer can be rescheduled without a separate restore call.
	_, err = svc.Reopen(visit.ID, nil)
	require.NoError(t, err)
}
