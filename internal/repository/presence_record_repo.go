package repository

import (
	"errors"
	"time"

	"attendance-tracker/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PresenceRecordRepository interface {
	CreateIfAbsent(record *models.PresenceRecord) (*models.PresenceRecord, bool, error)
	GetByID(id string) (*models.PresenceRecord, error)
	GetByEmployeeAndDate(employeeID string, date time.Time) (*models.PresenceRecord, error)
	GetByEmployeeIDsAndDate(employeeIDs []string, date time.Time) ([]models.PresenceRecord, error)
	Update(record *models.PresenceRecord) error
}

type GormPresenceRecordRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormPresenceRecordRepository(db *gorm.DB) (PresenceRecordRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.PresenceRecord{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate presence_records table")
		return nil, err
	}

	return &GormPresenceRecordRepository{db: db, logger: logger}, nil
}

// CreateIfAbsent inserts the record unless one already exists for the same
// (employee, date); the existing row wins and is returned unchanged. The
// boolean reports whether an insert happened.
func (r *GormPresenceRecordRepository) CreateIfAbsent(record *models.PresenceRecord) (*models.PresenceRecord, bool, error) {
	record.Date = models.DateOnly(record.Date)

	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
		DoNothing: true,
	}).Create(record)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create presence record")
		return nil, false, result.Error
	}

	if result.RowsAffected > 0 {
		r.logger.WithFields(logrus.Fields{
			"id":          record.ID,
			"employee_id": record.EmployeeID,
			"date":        record.Date.Format(models.DateLayout),
		}).Info("Presence record created")
		return record, true, nil
	}

	existing, err := r.GetByEmployeeAndDate(record.EmployeeID, record.Date)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, errors.New("presence record vanished after conflicting insert")
	}
	return existing, false, nil
}

func (r *GormPresenceRecordRepository) GetByID(id string) (*models.PresenceRecord, error) {
	var record models.PresenceRecord
	err := r.db.First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *GormPresenceRecordRepository) GetByEmployeeAndDate(employeeID string, date time.Time) (*models.PresenceRecord, error) {
	var record models.PresenceRecord
	err := r.db.Where("employee_id = ? AND date = ?", employeeID, models.DateOnly(date)).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetByEmployeeIDsAndDate is the bulk lookup behind the roster aggregator:
// one IN query for the whole roster, never one query per employee.
func (r *GormPresenceRecordRepository) GetByEmployeeIDsAndDate(employeeIDs []string, date time.Time) ([]models.PresenceRecord, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	var records []models.PresenceRecord
	err := r.db.Where("employee_id IN ? AND date = ?", employeeIDs, models.DateOnly(date)).
		Find(&records).Error
	return records, err
}

func (r *GormPresenceRecordRepository) Update(record *models.PresenceRecord) error {
	return r.db.Save(record).Error
}
