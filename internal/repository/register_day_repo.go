package repository

import (
	"errors"
	"time"

	"attendance-tracker/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RegisterDayRepository interface {
	Upsert(day *models.RegisterDay) error
	GetByRegisterAndDate(registerID string, date time.Time) (*models.RegisterDay, error)
}

type GormRegisterDayRepository struct {
	db *gorm.DB
}

func NewGormRegisterDayRepository(db *gorm.DB) (RegisterDayRepository, error) {
	if err := db.AutoMigrate(&models.RegisterDay{}); err != nil {
		return nil, err
	}
	return &GormRegisterDayRepository{db: db}, nil
}

// Upsert inserts the day or, when a row already exists for the same
// (register, date), updates its start time. One atomic conditional write,
// no lookup-then-branch race.
func (r *GormRegisterDayRepository) Upsert(day *models.RegisterDay) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "register_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"start_time", "status", "updated_at"}),
	}).Create(day).Error
}

func (r *GormRegisterDayRepository) GetByRegisterAndDate(registerID string, date time.Time) (*models.RegisterDay, error) {
	var day models.RegisterDay
	err := r.db.Where("register_id = ? AND date = ?", registerID, models.DateOnly(date)).
		First(&day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &day, nil
}
