package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PresenceRecord is the per-employee, per-date presence state. Exactly one
// row may exist per (employee, date); it is created by mark-present and
// oscillates between present and absent for the rest of the day.
type PresenceRecord struct {
	ID              string     `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID      string     `gorm:"type:uuid;not null;uniqueIndex:idx_presence_records_employee_date" json:"employee_id"`
	Date            time.Time  `gorm:"type:date;not null;uniqueIndex:idx_presence_records_employee_date" json:"date"`
	Status          string     `gorm:"type:varchar(10);not null;default:'present'" json:"status"`
	AbsentTimestamp *time.Time `json:"absent_timestamp,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Employee Employee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PresenceRecord) TableName() string {
	return "presence_records"
}

const (
	PresenceStatusPresent = "present"
	PresenceStatusAbsent  = "absent"
)

func (p *PresenceRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *PresenceRecord) IsPresent() bool {
	return p.Status == PresenceStatusPresent
}
