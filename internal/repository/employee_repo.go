package repository

import (
	"errors"

	"attendance-tracker/internal/models"

	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(employee *models.Employee) error
	GetByID(id string) (*models.Employee, error)
	GetByRegisterID(registerID string) ([]models.Employee, error)
	UpdateSchedule(id, startTime, endTime string, durationAllowed int) error
	Delete(id string) error
}

type GormEmployeeRepository struct {
	db *gorm.DB
}

func NewGormEmployeeRepository(db *gorm.DB) (EmployeeRepository, error) {
	if err := db.AutoMigrate(&models.Employee{}); err != nil {
		return nil, err
	}
	return &GormEmployeeRepository{db: db}, nil
}

func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	if !employee.IsValid() {
		return errors.New("invalid employee data")
	}
	return r.db.Create(employee).Error
}

func (r *GormEmployeeRepository) GetByID(id string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.First(&employee, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *GormEmployeeRepository) GetByRegisterID(registerID string) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.Where("register_id = ?", registerID).
		Order("name ASC").
		Find(&employees).Error
	return employees, err
}

// UpdateSchedule touches only the admin-mutable schedule fields; identity
// columns stay untouched.
func (r *GormEmployeeRepository) UpdateSchedule(id, startTime, endTime string, durationAllowed int) error {
	result := r.db.Model(&models.Employee{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"start_time":       startTime,
			"end_time":         endTime,
			"duration_allowed": durationAllowed,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormEmployeeRepository) Delete(id string) error {
	result := r.db.Delete(&models.Employee{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
