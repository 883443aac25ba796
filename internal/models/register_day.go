package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegisterDay records the start time of a register's working day. No
// attendance action is valid for a register/date until this row exists.
type RegisterDay struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	RegisterID string    `gorm:"type:uuid;not null;uniqueIndex:idx_register_days_register_date" json:"register_id"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:idx_register_days_register_date" json:"date"`
	StartTime  time.Time `gorm:"not null" json:"start_time"`
	Status     string    `gorm:"type:varchar(10);not null;default:'active'" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (RegisterDay) TableName() string {
	return "register_days"
}

const RegisterDayStatusActive = "active"

func (d *RegisterDay) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
