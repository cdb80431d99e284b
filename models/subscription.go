package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubscriptionActive    = "active"
	SubscriptionSuspended = "suspended"
	SubscriptionCanceled  = "canceled"
)

func ValidSubscriptionStatus(s string) bool {
	switch s {
	case SubscriptionActive, SubscriptionSuspended, SubscriptionCanceled:
		return true
	}
	return false
}

type PlanSubscription struct {
	Base
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:uniq_customer_plan_start,priority:1" json:"customerId"`
	PlanID     uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:uniq_customer_plan_start,priority:2" json:"planId"`

	StartDate time.Time  `gorm:"type:date;not null;uniqueIndex:uniq_customer_plan_start,priority:3" json:"startDate"`
	EndDate   *time.Time `gorm:"type:date" json:"endDate"`
	Status    string     `gorm:"type:varchar(10);index;not null" json:"status"`
	Notes     string     `json:"notes"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Plan     *Plan     `gorm:"foreignKey:PlanID" json:"plan,omitempty"`

	Visits []Visit `gorm:"foreignKey:SubscriptionID" json:"visits,omitempty"`
}
