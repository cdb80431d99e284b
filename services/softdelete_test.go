package services

import (
	"testing"

	"fieldops-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeactivateThenActivateRoundTrip(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, db)

	require.NoError(t, Deactivate(db, &models.Customer{}, "customer", customer.ID, nil))

	var got models.Customer
	require.NoError(t, db.First(&got, "id = ?", customer.ID).Error)
	assert.False(t, got.Active)

	require.NoError(t, Activate(db, &models.Customer{}, "customer", customer.ID, nil))
	require.NoError(t, db.First(&got, "id = ?", customer.ID).Error)
	assert.True(t, got.Active)
}

func TestDeactivateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, db)

	require.NoError(t, Deactivate(db, &models.Customer{}, "customer", customer.ID, nil))
	require.NoError(t, Deactivate(db, &models.Customer{}, "customer", customer.ID, nil))
}

func TestDeactivateMissingRow(t *testing.T) {
	db := newTestDB(t)
	err := Deactivate(db, &models.Customer{}, "customer", uuid.New(), nil)
	se := requireServiceCode(t, err, CodeNotFound)
	assert.Equal(t, "customer", se.Field)
}

func TestActiveOnlyScopeFiltersDeleted(t *testing.T) {
	db := newTestDB(t)
	kept := createCustomer(t, db)
	gone := createCustomer(t, db)
	require.NoError(t, Deactivate(db, &models.Customer{}, "customer", gone.ID, nil))

	var visible []models.Customer
	require.NoError(t, db.Scopes(models.ActiveOnly).Find(&visible).Error)
	require.Len(t, visible, 1)
	assert.Equal(t, kept.ID, visible[0].ID)
}
