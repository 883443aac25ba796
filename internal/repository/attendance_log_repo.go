package repository

import (
	"errors"
	"time"

	"attendance-tracker/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AttendanceLogRepository interface {
	Create(log *models.AttendanceLog) error
	Update(log *models.AttendanceLog) error
	GetByID(id string) (*models.AttendanceLog, error)
	GetLatestByPresenceRecord(presenceRecordID string) (*models.AttendanceLog, error)
	GetLatestOpenClockOut(employeeID, presenceRecordID string) (*models.AttendanceLog, error)
	ListByPresenceRecord(presenceRecordID string) ([]models.AttendanceLog, error)
	GetByPresenceRecordIDs(presenceRecordIDs []string) ([]models.AttendanceLog, error)
	ForceCloseDanglingBefore(cutoff, closeAt time.Time) (int64, error)
	DeleteByID(id string) error
}

type GormAttendanceLogRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormAttendanceLogRepository(db *gorm.DB) (*GormAttendanceLogRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.AttendanceLog{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate attendance_logs table")
		return nil, err
	}

	// At most one open clock-out per presence record. AutoMigrate cannot
	// express a partial index, so it is created directly; both SQLite and
	// Postgres accept this form.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_attendance_logs_open ` +
			`ON attendance_logs (presence_record_id) WHERE clock_in IS NULL`,
	).Error; err != nil {
		logger.WithError(err).Error("Failed to create open clock-out index")
		return nil, err
	}

	logger.Info("Attendance log repository initialized")

	return &GormAttendanceLogRepository{db: db, logger: logger}, nil
}

func (r *GormAttendanceLogRepository) Create(log *models.AttendanceLog) error {
	err := r.db.Create(log).Error
	if err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"employee_id":        log.EmployeeID,
			"presence_record_id": log.PresenceRecordID,
		}).Warn("Failed to create attendance log")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"id":                 log.ID,
		"presence_record_id": log.PresenceRecordID,
		"status":             log.Status,
	}).Info("Attendance log created")
	return nil
}

func (r *GormAttendanceLogRepository) Update(log *models.AttendanceLog) error {
	return r.db.Save(log).Error
}

func (r *GormAttendanceLogRepository) GetByID(id string) (*models.AttendanceLog, error) {
	var log models.AttendanceLog
	err := r.db.First(&log, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *GormAttendanceLogRepository) GetLatestByPresenceRecord(presenceRecordID string) (*models.AttendanceLog, error) {
	var log models.AttendanceLog
	err := r.db.Where("presence_record_id = ?", presenceRecordID).
		Order("created_at DESC").
		First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// GetLatestOpenClockOut finds the row a clock-in completes: the most recent
// clock-out-status log for the pair, ordered by clock_out descending.
func (r *GormAttendanceLogRepository) GetLatestOpenClockOut(employeeID, presenceRecordID string) (*models.AttendanceLog, error) {
	var log models.AttendanceLog
	err := r.db.Where("employee_id = ? AND presence_record_id = ? AND status = ?",
		employeeID, presenceRecordID, models.LogStatusClockOut).
		Order("clock_out DESC").
		First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// ListByPresenceRecord returns logs most recent first, the display order.
func (r *GormAttendanceLogRepository) ListByPresenceRecord(presenceRecordID string) ([]models.AttendanceLog, error) {
	var logs []models.AttendanceLog
	err := r.db.Where("presence_record_id = ?", presenceRecordID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

// GetByPresenceRecordIDs is the aggregator's bulk query: one IN over the
// whole roster's presence records.
func (r *GormAttendanceLogRepository) GetByPresenceRecordIDs(presenceRecordIDs []string) ([]models.AttendanceLog, error) {
	if len(presenceRecordIDs) == 0 {
		return nil, nil
	}
	var logs []models.AttendanceLog
	err := r.db.Where("presence_record_id IN ?", presenceRecordIDs).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

// ForceCloseDanglingBefore closes every open clock-out older than cutoff by
// backfilling clock_in with closeAt. Runs system-wide, is idempotent, and is
// safe to rerun: a second pass matches no rows.
func (r *GormAttendanceLogRepository) ForceCloseDanglingBefore(cutoff, closeAt time.Time) (int64, error) {
	result := r.db.Model(&models.AttendanceLog{}).
		Where("status = ? AND clock_in IS NULL AND clock_out < ?", models.LogStatusClockOut, cutoff).
		Updates(map[string]interface{}{
			"clock_in": closeAt,
			"status":   models.LogStatusClockIn,
		})
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to force-close dangling clock-outs")
		return 0, result.Error
	}

	if result.RowsAffected > 0 {
		r.logger.WithFields(logrus.Fields{
			"count":    result.RowsAffected,
			"close_at": closeAt.Format(time.RFC3339),
		}).Info("Force-closed dangling clock-outs")
	}
	return result.RowsAffected, nil
}

func (r *GormAttendanceLogRepository) DeleteByID(id string) error {
	result := r.db.Delete(&models.AttendanceLog{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.logger.WithField("id", id).Info("Attendance log deleted")
	return nil
}
