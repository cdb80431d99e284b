package models

import (
	"github.com/google/uuid"
)

const (
	PeriodicityMonthly    = "monthly"
	PeriodicityBimonthly  = "bimonthly"
	PeriodicityQuarterly  = "quarterly"
	PeriodicitySemiannual = "semiannual"
	PeriodicityAnnual     = "annual"
)

func ValidPeriodicity(p string) bool {
	switch p {
	case PeriodicityMonthly, PeriodicityBimonthly, PeriodicityQuarterly,
		PeriodicitySemiannual, PeriodicityAnnual:
		return true
	}
	return false
}

type Plan struct {
	Base
	Name        string  `gorm:"index;not null" json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"type:decimal(12,2);not null" json:"price"`
	Periodicity string  `gorm:"type:varchar(12);index;not null" json:"periodicity"`

	Tasks []PlanTask `gorm:"foreignKey:PlanID" json:"tasks,omitempty"`
}

type PlanTask struct {
	Base
	PlanID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:uniq_plan_task_name,priority:1" json:"planId"`

	Name        string `gorm:"not null;uniqueIndex:uniq_plan_task_name,priority:2" json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}
