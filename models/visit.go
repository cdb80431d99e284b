package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	VisitScheduled  = "scheduled"
	VisitInProgress = "in_progress"
	VisitCompleted  = "completed"
	VisitCanceled   = "canceled"
)

func ValidVisitStatus(s string) bool {
	switch s {
	case VisitScheduled, VisitInProgress, VisitCompleted, VisitCanceled:
		return true
	}
	return false
}

type Visit struct {
	Base
	SubscriptionID uuid.UUID `gorm:"type:uuid;index;not null" json:"subscriptionId"`
	UserID         uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`

	Start time.Time  `gorm:"not null" json:"start"`
	End   *time.Time `json:"end"`

	Status       string `gorm:"type:varchar(12);index;not null;default:'scheduled'" json:"status"`
	SiteAddress  string `json:"siteAddress"`
	Notes        string `json:"notes"`
	CancelReason string `json:"cancelReason"`

	Subscription *PlanSubscription `gorm:"foreignKey:SubscriptionID" json:"subscription,omitempty"`
	User         *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Assessment     *Assessment     `gorm:"foreignKey:VisitID" json:"assessment,omitempty"`
	Evidences      []Evidence      `gorm:"foreignKey:VisitID" json:"evidences,omitempty"`
	TasksCompleted []TaskCompleted `gorm:"foreignKey:VisitID" json:"tasksCompleted,omitempty"`
	MaterialsUsed  []MaterialUsed  `gorm:"foreignKey:VisitID" json:"materialsUsed,omitempty"`
}

// Assessment is the single customer rating attached to a visit.
type Assessment struct {
	Base
	VisitID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"visitId"`

	Rating  int    `gorm:"default:0" json:"rating"`
	Comment string `json:"comment"`
}

type Evidence struct {
	Base
	VisitID uuid.UUID `gorm:"type:uuid;index;not null" json:"visitId"`

	FileURL     string    `json:"fileUrl"`
	Description string    `json:"description"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

type TaskCompleted struct {
	Base
	VisitID    uuid.UUID `gorm:"type:uuid;index;not null" json:"visitId"`
	PlanTaskID uuid.UUID `gorm:"type:uuid;index;not null" json:"planTaskId"`

	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Hours       int    `gorm:"default:0" json:"hours"`
	Completed   bool   `gorm:"default:false" json:"completed"`

	PlanTask *PlanTask `gorm:"foreignKey:PlanTaskID" json:"planTask,omitempty"`
}

type MaterialUsed struct {
	Base
	VisitID uuid.UUID `gorm:"type:uuid;index;not null" json:"visitId"`

	Description string  `gorm:"not null" json:"description"`
	Unit        string  `json:"unit"`
	UnitCost    float64 `gorm:"type:decimal(12,2);default:0" json:"unitCost"`
}
