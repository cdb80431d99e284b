package models

import (
	"time"

	"fieldops-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
)

type User struct {
	Base
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Name     string `gorm:"not null" json:"name"`
	Phone    string `json:"phone"`

	Role string `gorm:"type:varchar(20);not null;default:'technician'" json:"role"`

	LastLogin *time.Time `json:"lastLogin"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Initialize UUID and hash password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
