package repository

import (
	"errors"

	"attendance-tracker/internal/models"

	"gorm.io/gorm"
)

type AdvanceRepository interface {
	Create(advance *models.Advance) error
	GetByID(id string) (*models.Advance, error)
	GetByEmployeeID(employeeID string) ([]models.Advance, error)
	Update(advance *models.Advance) error
}

type GormAdvanceRepository struct {
	db *gorm.DB
}

func NewGormAdvanceRepository(db *gorm.DB) (AdvanceRepository, error) {
	if err := db.AutoMigrate(&models.Advance{}); err != nil {
		return nil, err
	}
	return &GormAdvanceRepository{db: db}, nil
}

func (r *GormAdvanceRepository) Create(advance *models.Advance) error {
	return r.db.Create(advance).Error
}

func (r *GormAdvanceRepository) GetByID(id string) (*models.Advance, error) {
	var advance models.Advance
	err := r.db.First(&advance, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &advance, nil
}

func (r *GormAdvanceRepository) GetByEmployeeID(employeeID string) ([]models.Advance, error) {
	var advances []models.Advance
	err := r.db.Where("employee_id = ?", employeeID).
		Order("requested_at DESC").
		Find(&advances).Error
	return advances, err
}

func (r *GormAdvanceRepository) Update(advance *models.Advance) error {
	return r.db.Save(advance).Error
}
