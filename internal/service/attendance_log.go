package service

import (
	"errors"
	"time"

	"attendance-tracker/internal/apperrors"
	"attendance-tracker/internal/models"
	"attendance-tracker/internal/repository"
	"attendance-tracker/pkg/clock"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const returnedFromAbsenceNote = "Returned from absence"

// AttendanceLogService sequences the clock-out/clock-in pairs of a presence
// record. Legal transitions cycle NONE -> CLOCKED_IN <-> CLOCKED_OUT; the
// preconditions are enforced here, not left to the client's buttons.
type AttendanceLogService struct {
	logRepo      repository.AttendanceLogRepository
	presenceRepo repository.PresenceRecordRepository
	employeeRepo repository.EmployeeRepository
	dayService   *RegisterDayService
	clk          clock.Clock
	logger       *logrus.Logger
}

func NewAttendanceLogService(
	logRepo repository.AttendanceLogRepository,
	presenceRepo repository.PresenceRecordRepository,
	employeeRepo repository.EmployeeRepository,
	dayService *RegisterDayService,
	clk clock.Clock,
) *AttendanceLogService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &AttendanceLogService{
		logRepo:      logRepo,
		presenceRepo: presenceRepo,
		employeeRepo: employeeRepo,
		dayService:   dayService,
		clk:          clk,
		logger:       logger,
	}
}

// ClockOut starts a new pair: a fresh row with clock_out set and clock_in
// null. Only legal while the employee is present and not already out.
func (s *AttendanceLogService) ClockOut(employeeID, presenceRecordID string) (*models.AttendanceLog, error) {
	record, err := s.requirePresence(employeeID, presenceRecordID)
	if err != nil {
		return nil, err
	}
	if !record.IsPresent() {
		return nil, apperrors.Precondition("employee is marked absent")
	}

	latest, err := s.logRepo.GetLatestByPresenceRecord(record.ID)
	if err != nil {
		return nil, err
	}
	if latest != nil && latest.IsOpen() {
		return nil, apperrors.Precondition("employee is already clocked out")
	}

	now := s.clk.Now()
	log := &models.AttendanceLog{
		PresenceRecordID: record.ID,
		EmployeeID:       employeeID,
		ClockOut:         now,
		Status:           models.LogStatusClockOut,
		CreatedAt:        now,
	}
	if err := s.logRepo.Create(log); err != nil {
		// The partial unique index closes the race two concurrent
		// clock-outs would otherwise win together.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("an open clock-out already exists for this presence record")
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"employee_id":        employeeID,
		"presence_record_id": record.ID,
		"clock_out":          now.Format(time.RFC3339),
	}).Info("Employee clocked out")

	return log, nil
}

// ClockIn completes the most recent open pair in place. It never creates a
// row: the clock-out row it finds gets its clock_in backfilled and flips to
// clock-in status.
func (s *AttendanceLogService) ClockIn(employeeID, presenceRecordID string) (*models.AttendanceLog, error) {
	record, err := s.requirePresence(employeeID, presenceRecordID)
	if err != nil {
		return nil, err
	}

	open, err := s.logRepo.GetLatestOpenClockOut(employeeID, record.ID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, apperrors.NotFound("no clock-out record found to update")
	}

	now := s.clk.Now()
	open.ClockIn = &now
	open.Status = models.LogStatusClockIn
	if err := s.logRepo.Update(open); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"employee_id":        employeeID,
		"presence_record_id": record.ID,
		"log_id":             open.ID,
	}).Info("Employee clocked in")

	return open, nil
}

// RecordReturn writes the single log row a return-from-absence emits: a
// completed pair whose clock_out is the absence timestamp. Marks the
// employee done for the day.
func (s *AttendanceLogService) RecordReturn(record *models.PresenceRecord, absentAt time.Time) (*models.AttendanceLog, error) {
	now := s.clk.Now()
	log := &models.AttendanceLog{
		PresenceRecordID: record.ID,
		EmployeeID:       record.EmployeeID,
		ClockIn:          &now,
		ClockOut:         absentAt,
		Status:           models.LogStatusClockIn,
		Notes:            returnedFromAbsenceNote,
		CreatedAt:        now,
	}
	if err := s.logRepo.Create(log); err != nil {
		return nil, err
	}
	return log, nil
}

// ListLogs returns a presence record's logs most recent first.
func (s *AttendanceLogService) ListLogs(presenceRecordID string) ([]models.AttendanceLog, error) {
	if err := checkID("presence record id", presenceRecordID); err != nil {
		return nil, err
	}
	return s.logRepo.ListByPresenceRecord(presenceRecordID)
}

// DeleteLog is the administrative escape hatch; it sits outside the state
// machine and performs no transition checks.
func (s *AttendanceLogService) DeleteLog(id string) error {
	if err := checkID("log id", id); err != nil {
		return err
	}
	err := s.logRepo.DeleteByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("attendance log not found")
	}
	return err
}

// requirePresence resolves and gates a (employee, presence record) pair:
// both must exist, belong together, and the register's day must be open.
func (s *AttendanceLogService) requirePresence(employeeID, presenceRecordID string) (*models.PresenceRecord, error) {
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
