package services

import (
	"errors"

	"fieldops-backend/models"

	"gorm.io/gorm"
)

// SubscriptionService validates subscriptions against their customer and
// plan, and keeps the "at most one active subscription per customer"
// invariant. Enforced on write, not as a database constraint.
type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

func (s *SubscriptionService) validate(sub *models.PlanSubscription) error {
	if !models.ValidSubscriptionStatus(sub.Status) {
		return InvalidState("status", "unknown subscription status")
	}
	if sub.EndDate != nil && sub.EndDate.Before(sub.StartDate) {
		return InvalidRange("endDate", "endDate cannot be before startDate")
	}

	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", sub.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("customer")
		}
		return err
	}
	if !customer.Active {
		return InvalidReference("customer", "customer is inactive")
	}

	return ensurePlanUsable(s.db, sub.PlanID)
}

func (s *SubscriptionService) Create(sub *models.PlanSubscription, actor *models.User) error {
	if err := s.validate(sub); err != nil {
		return err
	}

	sub.Active = true
	stampCreate(sub, actor)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		if sub.Status == models.SubscriptionActive {
			return s.demoteSiblings(tx, sub)
		}
		return nil
	})
}

func (s *SubscriptionService) Save(sub *models.PlanSubscription, actor *models.User) error {
	if err := s.validate(sub); err != nil {
		return err
	}

	stampUpdate(sub, actor)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(sub).Error; err != nil {
			return err
		}
		if sub.Status == models.SubscriptionActive {
			return s.demoteSiblings(tx, sub)
		}
		return nil
	})
}

// demoteSiblings suspends every other active subscription of the customer.
// The row being written is authoritative: last writer wins.
func (s *SubscriptionService) demoteSiblings(tx *gorm.DB, sub *models.PlanSubscription) error {
	return tx.Model(&models.PlanSubscription{}).
		Where("customer_id = ? AND id <> ? AND status = ?", sub.CustomerID, sub.ID, models.SubscriptionActive).
		Update("status", models.SubscriptionSuspended).Error
}
