package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Advance is a salary-advance request raised by an employee and decided by
// an admin.
type Advance struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID  string     `gorm:"type:uuid;not null;index" json:"employee_id"`
	AmountCents int64      `gorm:"not null" json:"amount_cents"`
	Status      string     `gorm:"type:varchar(10);not null;default:'pending'" json:"status"`
	Notes       string     `json:"notes,omitempty"`
	RequestedAt time.Time  `gorm:"not null" json:"requested_at"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Employee Employee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Advance) TableName() string {
	return "advances"
}

const (
	AdvanceStatusPending  = "pending"
	AdvanceStatusApproved = "approved"
	AdvanceStatusDenied   = "denied"
)

func (a *Advance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (a *Advance) IsPending() bool {
	return a.Status == AdvanceStatusPending
}
