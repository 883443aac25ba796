package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Register is an administrative grouping of employees sharing one attendance
// clock/day, e.g. a department or a store.
type Register struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Employees []Employee `gorm:"foreignKey:RegisterID;constraint:OnDelete:CASCADE" json:"employees,omitempty"`
}

func (Register) TableName() string {
	return "registers"
}

func (r *Register) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
