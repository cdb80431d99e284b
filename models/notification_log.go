package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationLog records every outbound message attempt (visit completions,
// daily schedule reminders). Best-effort delivery: a failed row is kept for
// inspection, never retried.
type NotificationLog struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	VisitID uuid.UUID `gorm:"type:uuid;index;not null" json:"visitId"`

	Type         string `gorm:"type:varchar(20)" json:"type"` // visit_completed, visit_reminder
	Recipient    string `json:"recipient"`
	Message      string `gorm:"type:text" json:"message"`
	Status       string `gorm:"type:varchar(20)" json:"status"` // sent, failed, skipped
	ErrorMessage string `gorm:"type:text" json:"errorMessage"`
	Channel      string `gorm:"type:varchar(20)" json:"channel"` // whatsapp, sms

	SentAt    time.Time `json:"sentAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	n.ID = uuid.New()
	return
}
