package service

import (
	"testing"
	"time"

	"attendance-tracker/internal/apperrors"
	"attendance-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStartTimeBeforeDayStarted(t *testing.T) {
	f := newFixture(t)

	_, err := f.dayService.GetStartTime(f.register.ID, testDate)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSetStartTimeUpsertsByRegisterAndDate(t *testing.T) {
	f := newFixture(t)

	first := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	_, err := f.dayService.SetStartTime(f.register.ID, testDate, first)
	require.NoError(t, err)

	day, err := f.dayService.GetStartTime(f.register.ID, testDate)
	require.NoError(t, err)
	assert.True(t, day.StartTime.Equal(first))
	assert.Equal(t, models.RegisterDayStatusActive, day.Status)

	// Second call for the same date updates in place, no second row.
	later := time.Date(2024, 1, 10, 10, 30, 0, 0, time.UTC)
	_, err = f.dayService.SetStartTime(f.register.ID, testDate, later)
	require.NoError(t, err)

	day, err = f.dayService.GetStartTime(f.register.ID, testDate)
	require.NoError(t, err)
	assert.True(t, day.StartTime.Equal(later))

	var count int64
	require.NoError(t, f.db.Model(&models.RegisterDay{}).
		Where("register_id = ?", f.register.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSetStartTimeReconcilesDanglingClockOuts(t *testing.T) {
	f := newFixture(t)
	f.openDay(t, testDate, 9)

	record, err := f.presenceService.MarkPresent(f.employee.ID, testDate)
	require.NoError(t, err)

	// Employee clocks out at 18:00 and forgets to clock back in.
	f.clk.Set(time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC))
	out, err := f.logService.ClockOut(f.employee.ID, record.ID)
	require.NoError(t, err)

	// The next morning an admin starts the new day.
	nextDate := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	f.clk.Set(time.Date(2024, 1, 11, 8, 30, 0, 0, time.UTC))
	_, err = f.dayService.SetStartTime(f.register.ID, nextDate,
		time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	reloaded, err := f.logRepo.GetByID(out.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Equal(t, models.LogStatusClockIn, reloaded.Status)
	require.NotNil(t, reloaded.ClockIn)
	assert.True(t, reloaded.ClockIn.Equal(time.Date(2024, 1, 10, 22, 0, 0, 0, time.UTC)))
}

func TestReconciliationIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.openDay(t, testDate, 9)

	record, err := f.presenceService.MarkPresent(f.employee.ID, testDate)
	require.NoError(t, err)
	f.clk.Set(time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC))
	_, err = f.logService.ClockOut(f.employee.ID, record.ID)
	require.NoError(t, err)

	nextDate := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	start := time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC)
	_, err = f.dayService.SetStartTime(f.register.ID, nextDate, start)
	require.NoError(t, err)

	// The rerun matches nothing; closed logs stay exactly as they are.
	closed, err := f.logRepo.ForceCloseDanglingBefore(
		models.DateOnly(nextDate), time.Date(2024, 1, 10, 22, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(0), closed)
}

func TestReconciliationLeavesSameDayClockOutsOpen(t *testing.T) {
	f := newFixture(t)
	f.openDay(t, testDate, 9)

	record, err := f.presenceService.MarkPresent(f.employee.ID, testDate)
	require.NoError(t, err)
	f.clk.Set(time.Date(2024, 1, 10, 13, 0, 0, 0, time.UTC))
	out, err := f.logService.ClockOut(f.employee.ID, record.ID)
	require.NoError(t, err)

	// Re-timing the same day must not close an in-progress clock-out.
	_, err = f.dayService.SetStartTime(f.register.ID, testDate,
		time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	reloaded, err := f.logRepo.GetByID(out.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsOpen())
}

func TestSetStartTimeRejectsMalformedRegisterID(t *testing.T) {
	f := newFixture(t)

	_, err := f.dayService.SetStartTime("bogus", testDate, f.clk.Now())
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
