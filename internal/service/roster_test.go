package service

import (
	"testing"
	"time"

	"attendance-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Full walkthrough: open the day, mark present, clock out at 13:00, clock in
// at 13:30 -- the roster reports one present employee, nobody out, 30 minutes
// on the day.
func TestRosterEndToEnd(t *testing.T) {
	f := newFixture(t)
	f.openDay(t, testDate, 9)

	record, err := f.presenceService.MarkPresent(f.employee.ID, testDate)
	require.NoError(t, err)

	f.clk.Set(time.Date(2024, 1, 10, 13, 0, 0, 0, time.UTC))
	_, err = f.logService.ClockOut(f.employee.ID, record.ID)
	require.NoError(t, err)

	f.clk.Set(time.Date(2024, 1, 10, 13, 30, 0, 0, time.UTC))
	_, err = f.logService.ClockIn(f.employee.ID, record.ID)
	require.NoError(t, err)

	status, err := f.rosterService.Status(f.register.ID, testDate)
	require.NoError(t, err)

	assert.Equal(t, 1, status.Present)
	assert.Equal(t, 0, status.Absent)
	assert.Equal(t, 0, status.ClockedOut)

	require.Len(t, status.Employees, 1)
	row := status.Employees[0]
	assert.Equal(t, 30, row.TotalMinutes)
	assert.False(t, row.Overtime)
	assert.True(t, row.CanMarkAbsent)
	assert.True(t, row.CanClockOut)
	assert.False(t, row.CanClockIn)
	assert.False(t, row.CanMarkPresent)
}

func TestRosterBeforeAnyAction(t *testing.T) {
	f := newFixture(t)

	status, err := f.rosterService.Status(f.register.ID, testDate)
	require.NoError(t, err)

	assert.Equal(t, 0, status.Present)
	assert.Equal(t, 1, status.Absent)
	require.Len(t, status.Employees, 1)
	assert.True(t, status.Employees[0].CanMarkPresent)
	assert.False(t, status.Employees[0].CanClockOut)
}

func TestRosterCountsClockedOut(t *testing.T) {
	f := newFixture(t)
	f.openDay(t, testDate, 9)

	record, err := f.presenceService.MarkPresent(f.employee.ID, testDate)
	require.NoError(t, err)

	f.clk.Set(time.Date(2024, 1, 10, 13, 0, 0, 0, time.UTC))
	_, err = f.logService.ClockOut(f.employee.ID, record.ID)
	require.NoError(t, err)

	f.clk.Set(time.Date(2024, 1, 10, 13, 10, 0, 0, time.UTC))
	status, err := f.rosterService.Status(f.register.ID, testDate)
	require.NoError(t, err)

	assert.Equal(t, 1, status.Present)
	assert.Equal(t, 1, status.ClockedOut)

	row := status.Employees[0]
	// Live counter: ten minutes out so far, none of it in the total.
	assert.Equal(t, int64(600), row.ClockedOutSecs)
	assert.Equal(t, 0, row.TotalMinutes)
	assert.True(t, row.CanClockIn)
	assert.False(t, row.CanClockOut)
	assert.False(t, row.CanMarkAbsent)
}

func TestRosterOvertimeFlag(t *testing.T) {
	f := newFixture(t)
	f.openDay(t, testDate, 9)

	short := &models.Employee{
		RegisterID:      f.register.ID,
		Name:            "Brief",
		StartTime:       "09:00",
		EndTime:         "10:00",
		DurationAllowed: 20,
	}
	require.NoError(t, f.employeeRepo.Create(short))

	record, err := f.presenceService.MarkPresent(short.ID, testDate)
	require.NoError(t, err)

	f.clk.Set(time.Date(2024, 1, 10, 13, 0, 0, 0, time.UTC))
	_, err = f.logService.ClockOut(short.ID, record.ID)
	require.NoError(t, err)
	f.clk.Set(time.Date(2024, 1, 10, 13, 30, 0, 0, time.UTC))
	_, err = f.logService.ClockIn(short.ID, record.ID)
	require.NoError(t, err)

	status, err := f.rosterService.Status(f.register.ID, testDate)
	require.NoError(t, err)

	for _, row := range status.Employees {
		if row.Employee.ID == short.ID {
			assert.Equal(t, 30, row.TotalMinutes)
			assert.True(t, row.Overtime)
		}
	}
}

func TestRosterAbsentEmployee(t *testing.T) {
	f := newFixture(t)
	f.openDay(t, testDate, 9)

	record, err := f.presenceService.MarkPresent(f.employee.ID, testDate)
	require.NoError(t, err)
	_, err = f.presenceService.MarkAbsent(f.employee.ID, record.ID, f.clk.Now())
	require.NoError(t, err)

	status, err := f.rosterService.Status(f.register.ID, testDate)
	require.NoError(t, err)

	assert.Equal(t, 0, status.Present)
	assert.Equal(t, 1, status.Absent)

	row := status.Employees[0]
	assert.False(t, row.CanMarkPresent)
	assert.False(t, row.CanMarkAbsent)
	assert.False(t, row.CanClockOut)
	assert.False(t, row.CanClockIn)
}
