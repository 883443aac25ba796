package service

import (
	"testing"
	"time"

	"attendance-tracker/internal/apperrors"
	"attendance-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkPresentRequiresOpenDay(t *testing.T) {
	f := newFixture(t)

	_, err := f.presenceService.MarkPresent(f.employee.ID, testDate)
	require.Error(t, err)
	assert.True(t, apperrors.IsPrecondition(err))
}

func TestMarkPresentIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.openDay(t, testDate, 9)

	first, err := f.presenceService.MarkPresent(f.employee.ID, testDate)
	require.NoError(t, err)
	assert.Equal(t, models.PresenceStatusPresent, first.Status)

	f.clk.Advance(2 * time.Hour)

	second, err := f.presenceService.MarkPresent(f.employee.ID, testDate)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
}

func TestMarkPresentRejectsMalformedID(t *testing.T) {
	f := newFixture(t)

	_, err := f.presenceService.MarkPresent("not-a-uuid", testDate)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestMarkAbsentCapturesTimestamp(t *testing.T) {
	f := newFixture(t)
	f.openDay(t, testDate, 9)

	record, err := f.presenceService.MarkPresent(f.employee.ID, testDate)
	require.NoError(t, err)

	absentAt := time.Date(2024, 1, 10, 11, 0, 0, 0, time.UTC)
	updated, err := f.presenceService.MarkAbsent(f.employee.ID, record.ID, absentAt)
	require.NoError(t, err)
	assert.Equal(t, models.PresenceStatusAbsent, updated.Status)
	require.NotNil(t, updated.AbsentTimestamp)
	assert.True(t, updated.AbsentTimestamp.Equal(absentAt))

	// No attendance log is written by mark-absent.
	logs, err := f.logRepo.ListByPresenceRecord(record.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestMarkAbsentWithoutRecordFails(t *testing.T) {
	f := newFixture(t)
	f.openDay(t, testDate, 9)

	_, err := f.presenceService.MarkAbsent(f.employee.ID, "3e0f0de1-1b5e-44b1-9bad-000000000000", time.Time{})
	require.Error(t, err)
	assert.True(t, apperrors.IsPrecondition(err))
}

func TestReturnFromAbsenceWithoutAbsenceFails(t *testing.T) {
	f := newFixture(t)
	f.openDay(t, testDate, 9)

	record, err := f.presenceService.MarkPresent(f.employee.ID, testDate)
	require.NoError(t, err)

	// Never marked absent: AbsentTimestamp is nil.
	_, err = f.presenceService.MarkReturnFromAbsent(f.employee.ID, record.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "no absent record found")
}

func TestReturnFromAbsenceEmitsCompletedLog(t *testing.T) {
	f := newFixture(t)
	f.openDay(t, testDate, 9)

	record, err := f.presenceService.MarkPresent(f.employee.ID, testDate)
	require.NoError(t, err)

	absentAt := time.Date(2024, 1, 10, 11, 0, 0, 0, time.UTC)
	_, err = f.presenceService.MarkAbsent(f.employee.ID, record.ID, absentAt)
	require.NoError(t, err)

	f.clk.Set(time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC))

	updated, err := f.presenceService.MarkReturnFromAbsent(f.employee.ID, record.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PresenceStatusPresent, updated.Status)

	logs, err := f.logRepo.ListByPresenceRecord(record.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)

	log := logs[0]
	assert.Equal(t, models.LogStatusClockIn, log.Status)
	assert.Equal(t, "Returned from absence", log.Notes)
	assert.True(t, log.ClockOut.Equal(absentAt))
	require.NotNil(t, log.ClockIn)
	assert.True(t, log.ClockIn.Equal(f.clk.Now()))
}

func TestAbsentPresentOscillationIsRepeatable(t *testing.T) {
	f := newFixture(t)
	f.openDay(t, testDate, 9)

	record, err := f.presenceService.MarkPresent(f.employee.ID, testDate)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		f.clk.Advance(30 * time.Minute)
		_, err = f.presenceService.MarkAbsent(f.employee.ID, record.ID, f.clk.Now())
		require.NoError(t, err)

		f.clk.Advance(30 * time.Minute)
		_, err = f.presenceService.MarkReturnFromAbsent(f.employee.ID, record.ID)
		require.NoError(t, err)
	}

	logs, err := f.logRepo.ListByPresenceRecord(record.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}

func TestBlockAbsentWhileClockedOut(t *testing.T) {
	f := newFixture(t)
	f.openDay(t, testDate, 9)

	// Rebuild the presence service with the precondition switched on.
	blocking := NewPresenceService(
		f.presenceRepo, f.employeeRepo, f.logRepo, f.dayService, f.logService, f.clk, true)

	record, err := blocking.MarkPresent(f.employee.ID, testDate)
	require.NoError(t, err)

	_, err = f.logService.ClockOut(f.employee.ID, record.ID)
	require.NoError(t, err)

	_, err = blocking.MarkAbsent(f.employee.ID, record.ID, f.clk.Now())
	require.Error(t, err)
	assert.True(t, apperrors.IsPrecondition(err))
}
