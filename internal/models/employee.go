package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	RegisterID string `gorm:"type:uuid;not null;index" json:"register_id"`
	Name       string `gorm:"not null" json:"name"`

	// Schedule, admin-mutable. StartTime/EndTime are time-of-day strings
	// in 15:04 format; DurationAllowed is the permitted daily minutes.
	StartTime       string `gorm:"type:varchar(5);not null;default:'09:00'" json:"start_time"`
	EndTime         string `gorm:"type:varchar(5);not null;default:'17:00'" json:"end_time"`
	DurationAllowed int    `gorm:"not null;default:480" json:"duration_allowed"`

	// Optional supervisor passcode, empty when unsupervised.
	Passcode string `gorm:"type:varchar(32)" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Register Register `gorm:"foreignKey:RegisterID" json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// IsValid checks the schedule fields.
func (e *Employee) IsValid() bool {
	if e.RegisterID == "" || e.Name == "" {
		return false
	}
	if e.DurationAllowed <= 0 || e.DurationAllowed > 1440 {
		return false
	}
	if _, err := time.Parse("15:04", e.StartTime); err != nil {
		return false
	}
	if _, err := time.Parse("15:04", e.EndTime); err != nil {
		return false
	}
	return true
}
