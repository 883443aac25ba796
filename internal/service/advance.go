package service

import (
	"attendance-tracker/internal/apperrors"
	"attendance-tracker/internal/models"
	"attendance-tracker/internal/repository"
	"attendance-tracker/pkg/clock"

	"github.com/sirupsen/logrus"
)

// AdvanceService handles salary-advance requests and their admin decisions.
type AdvanceService struct {
	advanceRepo  repository.AdvanceRepository
	employeeRepo repository.EmployeeRepository
	clk          clock.Clock
	logger       *logrus.Logger
}

func NewAdvanceService(
	advanceRepo repository.AdvanceRepository,
	employeeRepo repository.EmployeeRepository,
	clk clock.Clock,
) *AdvanceService {
	return &AdvanceService{
		advanceRepo:  advanceRepo,
		employeeRepo: employeeRepo,
		clk:          clk,
		logger:       logrus.New(),
	}
}

func (s *AdvanceService) Request(employeeID string, amountCents int64, notes string) (*models.Advance, error) {
	if err := checkID("employee id", employeeID); err != nil {
		return nil, err
	}
	if amountCents <= 0 {
		return nil, apperrors.Validation("advance amount must be positive")
	}

	employee, err := s.employeeRepo.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperrors.NotFound("employee not found")
	}

	advance := &models.Advance{
		EmployeeID:  employeeID,
		AmountCents: amountCents,
		Status:      models.AdvanceStatusPending,
		Notes:       notes,
		RequestedAt: s.clk.Now(),
	}
	if err := s.advanceRepo.Create(advance); err != nil {
		return nil, err
	}

	s.logger.Infof("Advance %s requested by employee %s for %d cents", advance.ID, employeeID, amountCents)
	return advance, nil
}

// Decide approves or denies a pending advance. Decided advances are final.
func (s *AdvanceService) Decide(advanceID string, approve bool) (*models.Advance, error) {
	if err := checkID("advance id", advanceID); err != nil {
		return nil, err
	}

	advance, err := s.advanceRepo.GetByID(advanceID)
	if err != nil {
		return nil, err
	}
	if advance == nil {
		return nil, apperrors.NotFound("advance not found")
	}
	if !advance.IsPending() {
		return nil, apperrors.Precondition("advance has already been decided")
	}

	now := s.clk.Now()
	if approve {
		advance.Status = models.AdvanceStatusApproved
	} else {
		advance.Status = models.AdvanceStatusDenied
	}
	advance.DecidedAt = &now

	if err := s.advanceRepo.Update(advance); err != nil {
		return nil, err
	}

	s.logger.Infof("Advance %s %s", advance.ID, advance.Status)
	return advance, nil
}

func (s *AdvanceService) ListByEmployee(employeeID string) ([]models.Advance, error) {
	if err := checkID("employee id", employeeID); err != nil {
		return nil, err
	}
	return s.advanceRepo.GetByEmployeeID(employeeID)
}
