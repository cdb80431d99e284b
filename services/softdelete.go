package services

import (
	"fieldops-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Soft-delete primitives shared by every entity. Deletion is an update,
// never a physical remove, and deactivating an already-inactive row is an
// idempotent success.

func setActive(db *gorm.DB, model interface{}, entity string, id uuid.UUID, active bool, actor *models.User) error {
	updates := map[string]interface{}{"active": active}
	if actor != nil {
		updates["updated_by_id"] = actor.ID
	}

	res := db.Model(model).Where("id = ? AND active = ?", id, !active).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// Nothing flipped: either the row is already in the requested state
	// (no-op success) or it does not exist at all.
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return NotFound(entity)
	}
	return nil
}

// Deactivate soft-deletes a single row without touching its descendants.
func Deactivate(db *gorm.DB, model interface{}, entity string, id uuid.UUID, actor *models.User) error {
	return setActive(db, model, entity, id, false, actor)
}

// Activate restores a soft-deleted row. Descendants deactivated by a cascade
// are not revived; each must be restored explicitly.
func Activate(db *gorm.DB, model interface{}, entity string, id uuid.UUID, actor *models.User) error {
	return setActive(db, model, entity, id, true, actor)
}
