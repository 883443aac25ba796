package service

import (
	"time"

	"attendance-tracker/internal/apperrors"
	"attendance-tracker/internal/models"
	"attendance-tracker/internal/repository"
	"attendance-tracker/pkg/clock"

	"github.com/sirupsen/logrus"
)

// PresenceService owns the per-employee, per-day present/absent state.
type PresenceService struct {
	presenceRepo repository.PresenceRecordRepository
	employeeRepo repository.EmployeeRepository
	logRepo      repository.AttendanceLogRepository
	dayService   *RegisterDayService
	logService   *AttendanceLogService
	clk          clock.Clock
	logger       *logrus.Logger

	// When set, mark-absent is rejected while the employee's last log is an
	// open clock-out. The source system only hid the button client-side, so
	// this stays a config switch rather than a hard rule.
	blockAbsentWhileClockedOut bool
}

func NewPresenceService(
	presenceRepo repository.PresenceRecordRepository,
	employeeRepo repository.EmployeeRepository,
	logRepo repository.AttendanceLogRepository,
	dayService *RegisterDayService,
	logService *AttendanceLogService,
	clk clock.Clock,
	blockAbsentWhileClockedOut bool,
) *PresenceService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &PresenceService{
		presenceRepo:               presenceRepo,
		employeeRepo:               employeeRepo,
		logRepo:                    logRepo,
		dayService:                 dayService,
		logService:                 logService,
		clk:                        clk,
		logger:                     logger,
		blockAbsentWhileClockedOut: blockAbsentWhileClockedOut,
	}
}

// MarkPresent creates the day's presence record, or returns the existing one
// unchanged. Calling it twice is deliberately a soft no-op: same id, same
// creation timestamp.
func (s *PresenceService) MarkPresent(employeeID string, date time.Time) (*models.PresenceRecord, error) {
	if err := checkID("employee id", employeeID); err != nil {
		return nil, err
	}

	employee, err := s.employeeRepo.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperrors.NotFound("employee not found")
	}

	if err := s.dayService.EnsureOpen(employee.RegisterID, date); err != nil {
		return nil, err
	}

	now := s.clk.Now()
	record := &models.PresenceRecord{
		EmployeeID: employeeID,
		Date:       models.DateOnly(date),
		Status:     models.PresenceStatusPresent,
		CreatedAt:  now,
	}
	record, created, err := s.presenceRepo.CreateIfAbsent(record)
	if err != nil {
		return nil, err
	}

	if created {
		s.logger.WithFields(logrus.Fields{
			"employee_id": employeeID,
			"date":        record.Date.Format(models.DateLayout),
		}).Info("Employee marked present")
	}
	return record, nil
}

// MarkAbsent flips an existing presence record to absent and captures the
// absence timestamp. No attendance log is written.
func (s *PresenceService) MarkAbsent(employeeID, presenceRecordID string, absentAt time.Time) (*models.PresenceRecord, error) {
	record, err := s.requireRecord(employeeID, presenceRecordID)
	if err != nil {
		return nil, err
	}
	if absentAt.IsZero() {
		absentAt = s.clk.Now()
	}

	if s.blockAbsentWhileClockedOut {
		latest, err := s.logRepo.GetLatestByPresenceRecord(record.ID)
		if err != nil {
			return nil, err
		}
		if latest != nil && latest.IsOpen() {
			return nil, apperrors.Precondition("employee is clocked out; clock in before marking absent")
		}
	}

	record.Status = models.PresenceStatusAbsent
	record.AbsentTimestamp = &absentAt
	if err := s.presenceRepo.Update(record); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"employee_id":        employeeID,
		"presence_record_id": record.ID,
		"absent_at":          absentAt.Format(time.RFC3339),
	}).Info("Employee marked absent")

	return record, nil
}

// MarkReturnFromAbsent flips the record back to present and emits one
// completed attendance log whose clock_out is backfilled with the absence
// timestamp. Requires an absence to have been recorded first.
func (s *PresenceService) MarkReturnFromAbsent(employeeID, presenceRecordID string) (*models.PresenceRecord, error) {
	if err := checkID("employee id", employeeID); err != nil {
		return nil, err
	}
	if err := checkID("presence record id", presenceRecordID); err != nil {
		return nil, err
	}

	record, err := s.presenceRepo.GetByID(presenceRecordID)
	if err != nil {
		return nil, err
	}
	if record == nil || record.EmployeeID != employeeID || record.AbsentTimestamp == nil {
		return nil, apperrors.NotFound("no absent record found")
	}

	employee, err := s.employeeRepo.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperrors.NotFound("employee not found")
	}
	if err := s.dayService.EnsureOpen(employee.RegisterID, record.Date); err != nil {
		return nil, err
	}

	absentAt := *record.AbsentTimestamp
	record.Status = models.PresenceStatusPresent
	if err := s.presenceRepo.Update(record); err != nil {
		return nil, err
	}

	if _, err := s.logService.RecordReturn(record, absentAt); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"employee_id":        employeeID,
		"presence_record_id": record.ID,
	}).Info("Employee returned from absence")

	return record, nil
}

// GetRecord fetches a presence record by employee and date.
func (s *PresenceService) GetRecord(employeeID string, date time.Time) (*models.PresenceRecord, error) {
	if err := checkID("employee id", employeeID); err != nil {
		return nil, err
	}
	record, err := s.presenceRepo.GetByEmployeeAndDate(employeeID, date)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperrors.NotFound("no presence record for date")
	}
	return record, nil
}

func (s *PresenceService) requireRecord(employeeID, presenceRecordID string) (*models.PresenceRecord, error) {
	if err := checkID("employee id", employeeID); err != nil {
		return nil, err
	}
	if err := checkID("presence record id", presenceRecordID); err != nil {
		return nil, err
	}

	record, err := s.presenceRepo.GetByID(presenceRecordID)
	if err != nil {
		return nil, err
	}
	if record == nil || record.EmployeeID != employeeID {
		return nil, apperrors.Precondition("no presence record for employee")
	}

	employee, err := s.employeeRepo.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperrors.NotFound("employee not found")
	}
	if err := s.dayService.EnsureOpen(employee.RegisterID, record.Date); err != nil {
		return nil, err
	}
	return record, nil
}
