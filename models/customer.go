package models

import (
	"github.com/google/uuid"
)

type Customer struct {
	Base
	Name           string `gorm:"not null" json:"name"`
	Identification string `gorm:"uniqueIndex;not null" json:"identification"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Location       string `json:"location"`

	Contacts      []CustomerContact  `gorm:"foreignKey:CustomerID" json:"contacts,omitempty"`
	Subscriptions []PlanSubscription `gorm:"foreignKey:CustomerID" json:"subscriptions,omitempty"`
}

type CustomerContact struct {
	Base
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`

	Name      string `gorm:"not null" json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IsPrimary bool   `gorm:"default:false" json:"isPrimary"`
}
