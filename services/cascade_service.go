package services

import (
	"errors"

	"fieldops-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CascadeService propagates a customer deactivation to everything hanging off
// it: subscriptions, their visits, the visits' assessments/evidence/tasks/
// materials, and the customer's contacts. The whole cascade runs in one
// transaction so concurrent readers see either the pre-state or the fully
// deactivated tree, never an interleaving.
type CascadeService struct {
	db *gorm.DB
}

func NewCascadeService(db *gorm.DB) *CascadeService {
	return &CascadeService{db: db}
}

// DeactivateCustomer soft-deletes the customer and all of its active
// descendants. Calling it on an already-inactive customer is a no-op success.
// Only the active flags change; a visit keeps its own status untouched.
func (s *CascadeService) DeactivateCustomer(customerID uuid.UUID, actor *models.User) error {
	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("customer")
		}
		return err
	}
	if !customer.Active {
		return nil
	}

	updates := map[string]interface{}{"active": false}
	if actor != nil {
		updates["updated_by_id"] = actor.ID
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Customer{}).
			Where("id = ?", customerID).
			Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.PlanSubscription{}).
			Where("customer_id = ? AND active = ?", customerID, true).
			Updates(updates).Error; err != nil {
			return err
		}

		// Visits of any subscription belonging to this customer, including
		// subscriptions that were already inactive before the cascade.
		subIDs := tx.Model(&models.PlanSubscription{}).
			Select("id").
			Where("customer_id = ?", customerID)

		if err := tx.Model(&models.Visit{}).
			Where("subscription_id IN (?) AND active = ?", subIDs, true).
			Updates(updates).Error; err != nil {
			return err
		}

		visitIDs := tx.Model(&models.Visit{}).
			Select("id").
			Where("subscription_id IN (?)", subIDs)

		for _, child := range []interface{}{
			&models.Assessment{},
			&models.Evidence{},
			&models.TaskCompleted{},
			&models.MaterialUsed{},
		} {
			if err := tx.Model(child).
				Where("visit_id IN (?) AND active = ?", visitIDs, true).
				Updates(updates).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.CustomerContact{}).
			Where("customer_id = ? AND active = ?", customerID, true).
			Updates(updates).Error
	})
}

// RestoreCustomer flips the customer itself back to active. Descendants stay
// inactive; the cascade never runs in reverse.
func (s *CascadeService) RestoreCustomer(customerID uuid.UUID, actor *models.User) error {
	return Activate(s.db, &models.Customer{}, "customer", customerID, actor)
}
