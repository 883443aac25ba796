package service

import (
	"errors"
	"time"

	"attendance-tracker/internal/apperrors"
	"attendance-tracker/internal/models"
	"attendance-tracker/internal/repository"

	"gorm.io/gorm"
)

// EmployeeService is the thin admin surface over registers and employees.
// Identity is immutable after creation; only schedule fields may change.
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
	registerRepo repository.RegisterRepository
}

func NewEmployeeService(
	employeeRepo repository.EmployeeRepository,
	registerRepo repository.RegisterRepository,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		registerRepo: registerRepo,
	}
}

func (s *EmployeeService) CreateRegister(name string) (*models.Register, error) {
	if name == "" {
		return nil, apperrors.Validation("register name is required")
	}
	register := &models.Register{Name: name}
	if err := s.registerRepo.Create(register); err != nil {
		return nil, err
	}
	return register, nil
}

func (s *EmployeeService) ListRegisters() ([]models.Register, error) {
	return s.registerRepo.List()
}

// DeleteRegister cascades: employees, presence records, logs and advances
// under it go with it.
func (s *EmployeeService) DeleteRegister(id string) error {
	if err := checkID("register id", id); err != nil {
		return err
	}
	err := s.registerRepo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("register not found")
	}
	return err
}

func (s *EmployeeService) CreateEmployee(registerID, name, startTime, endTime string, durationAllowed int, passcode string) (*models.Employee, error) {
	if err := checkID("register id", registerID); err != nil {
		return nil, err
	}

	register, err := s.registerRepo.GetByID(registerID)
	if err != nil {
		return nil, err
	}
	if register == nil {
		return nil, apperrors.NotFound("register not found")
	}

	employee := &models.Employee{
		RegisterID:      registerID,
		Name:            name,
		StartTime:       startTime,
		EndTime:         endTime,
		DurationAllowed: durationAllowed,
		Passcode:        passcode,
	}
	if !employee.IsValid() {
		return nil, apperrors.Validation("invalid employee schedule")
	}
	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *EmployeeService) GetEmployee(id string) (*models.Employee, error) {
	if err := checkID("employee id", id); err != nil {
		return nil, err
	}
	employee, err := s.employeeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperrors.NotFound("employee not found")
	}
	return employee, nil
}

func (s *EmployeeService) ListEmployees(registerID string) ([]models.Employee, error) {
	if err := checkID("register id", registerID); err != nil {
		return nil, err
	}
	return s.employeeRepo.GetByRegisterID(registerID)
}

func (s *EmployeeService) UpdateSchedule(id, startTime, endTime string, durationAllowed int) (*models.Employee, error) {
	if err := checkID("employee id", id); err != nil {
		return nil, err
	}

	if _, err := time.Parse("15:04", startTime); err != nil {
		return nil, apperrors.Validation("invalid start time, expected HH:MM")
	}
	if _, err := time.Parse("15:04", endTime); err != nil {
		return nil, apperrors.Validation("invalid end time, expected HH:MM")
	}
	if durationAllowed <= 0 || durationAllowed > 1440 {
		return nil, apperrors.Validation("duration allowed must be between 1 and 1440 minutes")
	}

	err := s.employeeRepo.UpdateSchedule(id, startTime, endTime, durationAllowed)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("employee not found")
	}
	if err != nil {
		return nil, err
	}
	return s.employeeRepo.GetByID(id)
}
