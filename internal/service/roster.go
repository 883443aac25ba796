package service

import (
	"time"

	"attendance-tracker/internal/apperrors"
	"attendance-tracker/internal/models"
	"attendance-tracker/internal/repository"
	"attendance-tracker/pkg/clock"
	"attendance-tracker/pkg/duration"

	"github.com/sirupsen/logrus"
)

// EmployeeStatus is one roster row: the derived state of a single employee
// for the requested date. Everything here is recomputed from the stored rows
// on every read; nothing is cached.
type EmployeeStatus struct {
	Employee       models.Employee        `json:"employee"`
	Presence       *models.PresenceRecord `json:"presence,omitempty"`
	LastLog        *models.AttendanceLog  `json:"last_log,omitempty"`
	TotalMinutes   int                    `json:"total_minutes"`
	Overtime       bool                   `json:"overtime"`
	ClockedOutSecs int64                  `json:"clocked_out_secs"`

	CanMarkPresent bool `json:"can_mark_present"`
	CanMarkAbsent  bool `json:"can_mark_absent"`
	CanClockOut    bool `json:"can_clock_out"`
	CanClockIn     bool `json:"can_clock_in"`
}

type RosterStatus struct {
	Date       string           `json:"date"`
	Present    int              `json:"present"`
	Absent     int              `json:"absent"`
	ClockedOut int              `json:"clocked_out"`
	Employees  []EmployeeStatus `json:"employees"`
}

// RosterService aggregates per-day status for a whole register. It loads the
// roster in two bulk IN queries, one per table; per-employee queries would
// turn the roster screen into an N+1 storm.
type RosterService struct {
	employeeRepo repository.EmployeeRepository
	presenceRepo repository.PresenceRecordRepository
	logRepo      repository.AttendanceLogRepository
	registerRepo repository.RegisterRepository
	clk          clock.Clock
	logger       *logrus.Logger
}

func NewRosterService(
	employeeRepo repository.EmployeeRepository,
	presenceRepo repository.PresenceRecordRepository,
	logRepo repository.AttendanceLogRepository,
	registerRepo repository.RegisterRepository,
	clk clock.Clock,
) *RosterService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &RosterService{
		employeeRepo: employeeRepo,
		presenceRepo: presenceRepo,
		logRepo:      logRepo,
		registerRepo: registerRepo,
		clk:          clk,
		logger:       logger,
	}
}

// Status computes the register's roster for a date.
func (s *RosterService) Status(registerID string, date time.Time) (*RosterStatus, error) {
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

	employees, err := s.employeeRepo.GetByRegisterID(registerID)
	if err != nil {
		return nil, err
	}

	employeeIDs := make([]string, 0, len(employees))
	for _, e := range employees {
		employeeIDs = append(employeeIDs, e.ID)
	}

	records, err := s.presenceRepo.GetByEmployeeIDsAndDate(employeeIDs, date)
	if err != nil {
		return nil, err
	}
	recordByEmployee := make(map[string]*models.PresenceRecord, len(records))
	recordIDs := make([]string, 0, len(records))
	for i := range records {
		recordByEmployee[records[i].EmployeeID] = &records[i]
		recordIDs = append(recordIDs, records[i].ID)
	}

	logs, err := s.logRepo.GetByPresenceRecordIDs(recordIDs)
	if err != nil {
		return nil, err
	}
	// Logs arrive most recent first, so the first seen per record is its
	// latest.
	logsByRecord := make(map[string][]models.AttendanceLog, len(recordIDs))
	for _, l := range logs {
		logsByRecord[l.PresenceRecordID] = append(logsByRecord[l.PresenceRecordID], l)
	}

	now := s.clk.Now()
	status := &RosterStatus{
		Date:      models.DateOnly(date).Format(models.DateLayout),
		Employees: make([]EmployeeStatus, 0, len(employees)),
	}

	for _, employee := range employees {
		row := s.employeeStatus(employee, recordByEmployee[employee.ID], logsByRecord, now)
		if row.Presence != nil && row.Presence.IsPresent() {
			status.Present++
		} else {
			status.Absent++
		}
		if row.LastLog != nil && row.LastLog.IsOpen() {
			status.ClockedOut++
		}
		status.Employees = append(status.Employees, row)
	}

	return status, nil
}

func (s *RosterService) employeeStatus(
	employee models.Employee,
	record *models.PresenceRecord,
	logsByRecord map[string][]models.AttendanceLog,
	now time.Time,
) EmployeeStatus {
	row := EmployeeStatus{Employee: employee, Presence: record}

	if record == nil {
		row.CanMarkPresent = true
		return row
	}

	recordLogs := logsByRecord[record.ID]
	intervals := make([]duration.Interval, 0, len(recordLogs))
	for i := range recordLogs {
		intervals = append(intervals, recordLogs[i].Interval())
	}
	row.TotalMinutes = duration.Total(intervals)
	row.Overtime = duration.Overtime(row.TotalMinutes, employee.DurationAllowed)

	if len(recordLogs) > 0 {
		row.LastLog = &recordLogs[0]
		if row.LastLog.IsOpen() {
			row.ClockedOutSecs = int64(duration.OpenFor(now, row.LastLog.Interval()).Seconds())
		}
	}

	present := record.IsPresent()
	lastIsOpenOut := row.LastLog != nil && row.LastLog.IsOpen()
	row.CanMarkAbsent = present && !lastIsOpenOut
	row.CanClockOut = present && !lastIsOpenOut
	row.CanClockIn = present && lastIsOpenOut
	return row
}
