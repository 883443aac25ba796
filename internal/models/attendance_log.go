package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"attendance-tracker/pkg/duration"
)

// AttendanceLog is one clock-out/clock-in pair. The row is created when the
// employee clocks out (ClockOut set, ClockIn null, status clock-out) and is
// completed in place when they clock back in (ClockIn set, status clock-in).
// It is never two independent events.
type AttendanceLog struct {
	ID               string     `gorm:"type:uuid;primaryKey" json:"id"`
	PresenceRecordID string     `gorm:"type:uuid;not null;index" json:"presence_record_id"`
	EmployeeID       string     `gorm:"type:uuid;not null;index" json:"employee_id"`
	ClockIn          *time.Time `json:"clock_in,omitempty"`
	ClockOut         time.Time  `gorm:"not null" json:"clock_out"`
	Status           string     `gorm:"type:varchar(10);not null" json:"status"`
	Notes            string     `json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	PresenceRecord PresenceRecord `gorm:"foreignKey:PresenceRecordID;constraint:OnDelete:CASCADE" json:"-"`
}

func (AttendanceLog) TableName() string {
	return "attendance_logs"
}

const (
	LogStatusClockIn  = "clock-in"
	LogStatusClockOut = "clock-out"
)

func (l *AttendanceLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// IsOpen reports whether the pair is still waiting for its clock-in.
func (l *AttendanceLog) IsOpen() bool {
	return l.Status == LogStatusClockOut && l.ClockIn == nil
}

// Interval maps the log onto the duration calculator's input shape.
func (l *AttendanceLog) Interval() duration.Interval {
	return duration.Interval{Start: l.ClockOut, End: l.ClockIn}
}
