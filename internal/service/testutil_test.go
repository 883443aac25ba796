package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"attendance-tracker/internal/models"
	"attendance-tracker/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) Set(t time.Time) {
	f.now = t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

type fixture struct {
	db  *gorm.DB
	clk *fakeClock

	registerRepo repository.RegisterRepository
	employeeRepo repository.EmployeeRepository
	dayRepo      repository.RegisterDayRepository
	presenceRepo repository.PresenceRecordRepository
	logRepo      repository.AttendanceLogRepository

	dayService      *RegisterDayService
	logService      *AttendanceLogService
	presenceService *PresenceService
	rosterService   *RosterService

	register *models.Register
	employee *models.Employee
}

// newFixture spins up an isolated in-memory database with one register and
// one employee, and wires the full service stack on a fake clock starting at
// 2024-01-10 08:00 UTC.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	registerRepo, err := repository.NewGormRegisterRepository(db)
	require.NoError(t, err)
	employeeRepo, err := repository.NewGormEmployeeRepository(db)
	require.NoError(t, err)
	dayRepo, err := repository.NewGormRegisterDayRepository(db)
	require.NoError(t, err)
	presenceRepo, err := repository.NewGormPresenceRecordRepository(db)
	require.NoError(t, err)
	logRepo, err := repository.NewGormAttendanceLogRepository(db)
	require.NoError(t, err)

	clk := &fakeClock{now: time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)}

	dayService := NewRegisterDayService(dayRepo, logRepo, clk)
	logService := NewAttendanceLogService(logRepo, presenceRepo, employeeRepo, dayService, clk)
	presenceService := NewPresenceService(
		presenceRepo, employeeRepo, logRepo, dayService, logService, clk, false)
	rosterService := NewRosterService(employeeRepo, presenceRepo, logRepo, registerRepo, clk)

	register := &models.Register{Name: "Main Store"}
	require.NoError(t, registerRepo.Create(register))

	employee := &models.Employee{
		RegisterID:      register.ID,
		Name:            "Ada",
		StartTime:       "09:00",
		EndTime:         "17:00",
		DurationAllowed: 480,
	}
	require.NoError(t, employeeRepo.Create(employee))

	return &fixture{
		db:              db,
		clk:             clk,
		registerRepo:    registerRepo,
		employeeRepo:    employeeRepo,
		dayRepo:         dayRepo,
		presenceRepo:    presenceRepo,
		logRepo:         logRepo,
		dayService:      dayService,
		logService:      logService,
		presenceService: presenceService,
		rosterService:   rosterService,
		register:        register,
		employee:        employee,
	}
}

// openDay sets the register's start time for the given date.
func (f *fixture) openDay(t *testing.T, date time.Time, startHour int) {
	t.Helper()
	start := time.Date(date.Year(), date.Month(), date.Day(), startHour, 0, 0, 0, time.UTC)
	_, err := f.dayService.SetStartTime(f.register.ID, date, start)
	require.NoError(t, err)
}

var testDate = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
