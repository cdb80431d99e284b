package services

import (
	"testing"

	"fieldops-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePrimaryContactDemotesSiblings(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(db)

	customer := createCustomer(t, db)
	first := createContact(t, db, customer, true)

	second := &models.CustomerContact{
		CustomerID: customer.ID,
		Name:       "Night Supervisor",
		IsPrimary:  true,
	}
	require.NoError(t, svc.Create(second, nil))

	var gotFirst models.CustomerContact
	require.NoError(t, db.First(&gotFirst, "id = ?", first.ID).Error)
	assert.False(t, gotFirst.IsPrimary, "last writer wins")

	var gotSecond models.CustomerContact
	require.NoError(t, db.First(&gotSecond, "id = ?", second.ID).Error)
	assert.True(t, gotSecond.IsPrimary)
}

func TestCreateNonPrimaryContactKeepsExistingPrimary(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(db)

	customer := createCustomer(t, db)
	primary := createContact(t, db, customer, true)

	extra := &models.CustomerContact{CustomerID: customer.ID, Name: "Accounting"}
	require.NoError(t, svc.Create(extra, nil))

	var got models.CustomerContact
	require.NoError(t, db.First(&got, "id = ?", primary.ID).Error)
	assert.True(t, got.IsPrimary)
}

func TestSetPrimaryDemotesAcrossCustomer(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(db)

	customer := createCustomer(t, db)
	oldPrimary := createContact(t, db, customer, true)
	candidate := createContact(t, db, customer, false)

	// A different customer's primary must stay untouched.
	other := createCustomer(t, db)
	otherPrimary := createContact(t, db, other, true)

	promoted, err := svc.SetPrimary(candidate.ID, nil)
	require.NoError(t, err)
	assert.True(t, promoted.IsPrimary)

	var gotOld models.CustomerContact
	require.NoError(t, db.First(&gotOld, "id = ?", oldPrimary.ID).Error)
	assert.False(t, gotOld.IsPrimary)

	var gotOther models.CustomerContact
	require.NoError(t, db.First(&gotOther, "id = ?", otherPrimary.ID).Error)
	assert.True(t, gotOther.IsPrimary)
}

func TestSetPrimaryOnDeletedContact(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(db)

	customer := createCustomer(t, db)
	contact := createContact(t, db, customer, false)
	require.NoError(t, Deactivate(db, &models.CustomerContact{}, "contact", contact.ID, nil))

	_, err := svc.SetPrimary(contact.ID, nil)
	requireServiceCode(t, err, CodeNotFound)
}

func TestCreateContactForInactiveCustomer(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(db)

	customer := createCustomer(t, db)
	require.NoError(t, Deactivate(db, &models.Customer{}, "customer", customer.ID, nil))

	contact := &models.CustomerContact{CustomerID: customer.ID, Name: "Ghost"}
	err := svc.Create(contact, nil)
	requireServiceCode(t, err, CodeInvalidReference)
}

func TestCreateContactForMissingCustomer(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(db)

	contact := &models.CustomerContact{CustomerID: uuid.New(), Name: "Orphan"}
	err := svc.Create(contact, nil)
	requireServiceCode(t, err, CodeNotFound)
}
