package repository

import (
	"errors"

	"attendance-tracker/internal/models"

	"gorm.io/gorm"
)

type RegisterRepository interface {
	Create(register *models.Register) error
	GetByID(id string) (*models.Register, error)
	List() ([]models.Register, error)
	Delete(id string) error
}

type GormRegisterRepository struct {
	db *gorm.DB
}

func NewGormRegisterRepository(db *gorm.DB) (RegisterRepository, error) {
	if err := db.AutoMigrate(&models.Register{}); err != nil {
		return nil, err
	}
	return &GormRegisterRepository{db: db}, nil
}

func (r *GormRegisterRepository) Create(register *models.Register) error {
	return r.db.Create(register).Error
}

func (r *GormRegisterRepository) GetByID(id string) (*models.Register, error) {
	var register models.Register
	err := r.db.First(&register, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &register, nil
}

func (r *GormRegisterRepository) List() ([]models.Register, error) {
	var registers []models.Register
	err := r.db.Order("created_at ASC").Find(&registers).Error
	return registers, err
}

// Delete removes a register. Employees, presence records and logs hang off
// it via ON DELETE CASCADE constraints.
func (r *GormRegisterRepository) Delete(id string) error {
	result := r.db.Delete(&models.Register{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
