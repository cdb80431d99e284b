package services

import (
	"errors"

	"fieldops-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactService owns the "one primary contact per customer" invariant.
// Whenever a contact is written with IsPrimary set, all of its siblings are
// demoted in the same transaction: last writer wins.
type ContactService struct {
	db *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

func (s *ContactService) Create(contact *models.CustomerContact, actor *models.User) error {
	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", contact.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("customer")
		}
		return err
	}
	if !customer.Active {
		return InvalidReference("customer", "customer is inactive")
	}

	contact.Active = true
	stampCreate(contact, actor)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(contact).Error; err != nil {
			return err
		}
		if contact.IsPrimary {
			return s.demoteSiblings(tx, contact)
		}
		return nil
	})
}

// Save persists an already-mutated contact, re-enforcing the primary
// invariant when the flag is set.
func (s *ContactService) Save(contact *models.CustomerContact, actor *models.User) error {
	stampUpdate(contact, actor)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(contact).Error; err != nil {
			return err
		}
		if contact.IsPrimary {
			return s.demoteSiblings(tx, contact)
		}
		return nil
	})
}

// SetPrimary marks the contact primary and demotes every other contact of the
// same customer atomically.
func (s *ContactService) SetPrimary(contactID uuid.UUID, actor *models.User) (*models.CustomerContact, error) {
	var contact models.CustomerContact
	if err := s.db.Scopes(models.ActiveOnly).First(&contact, "id = ?", contactID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("contact")
		}
		return nil, err
	}

	contact.IsPrimary = true
	stampUpdate(&contact, actor)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&contact).
			Select("is_primary", "updated_by_id").
			Updates(map[string]interface{}{
				"is_primary":    true,
				"updated_by_id": contact.UpdatedByID,
			}).Error; err != nil {
			return err
		}
		return s.demoteSiblings(tx, &contact)
	})
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *ContactService) demoteSiblings(tx *gorm.DB, contact *models.CustomerContact) error {
	return tx.Model(&models.CustomerContact{}).
		Where("customer_id = ? AND id <> ? AND is_primary = ?", contact.CustomerID, contact.ID, true).
		Update("is_primary", false).Error
}
