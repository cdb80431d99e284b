package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base holds the fields shared by every persisted entity: UUID primary key,
// the soft-delete flag, timestamps and audit references.
type Base struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Active bool      `gorm:"default:true;index" json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"createdById"`
	UpdatedByID *uuid.UUID `gorm:"type:uuid" json:"updatedById"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// Auditable is implemented by anything embedding Base. Services stamp the
// acting user through this interface instead of poking at struct fields.
type Auditable interface {
	SetCreatedBy(id uuid.UUID)
	SetUpdatedBy(id uuid.UUID)
}

func (b *Base) SetCreatedBy(id uuid.UUID) {
	b.CreatedByID = &id
}

func (b *Base) SetUpdatedBy(id uuid.UUID) {
	b.UpdatedByID = &id
}

// ActiveOnly is the default read view: soft-deleted rows are filtered out
// unless the caller explicitly asks for them.
func ActiveOnly(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}
