package service

import (
	"testing"
	"time"

	"attendance-tracker/internal/apperrors"
	"attendance-tracker/internal/models"
	"attendance-tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdvanceService(t *testing.T, f *fixture) *AdvanceService {
	t.Helper()
	advanceRepo, err := repository.NewGormAdvanceRepository(f.db)
	require.NoError(t, err)
	return NewAdvanceService(advanceRepo, f.employeeRepo, f.clk)
}

func TestAdvanceRequestAndDecision(t *testing.T) {
	f := newFixture(t)
	svc := newAdvanceService(t, f)

	advance, err := svc.Request(f.employee.ID, 25000, "rent")
	require.NoError(t, err)
	assert.Equal(t, models.AdvanceStatusPending, advance.Status)
	assert.True(t, advance.RequestedAt.Equal(f.clk.Now()))

	decided, err := svc.Decide(advance.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.AdvanceStatusApproved, decided.Status)
	require.NotNil(t, decided.DecidedAt)

	// A decision is final.
	_, err = svc.Decide(advance.ID, false)
	require.Error(t, err)
	assert.True(t, apperrors.IsPrecondition(err))
}

func TestAdvanceRequestValidation(t *testing.T) {
	f := newFixture(t)
	svc := newAdvanceService(t, f)

	_, err := svc.Request(f.employee.ID, 0, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Request("not-a-uuid", 100, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAdvanceListOrder(t *testing.T) {
	f := newFixture(t)
	svc := newAdvanceService(t, f)

	first, err := svc.Request(f.employee.ID, 100, "")
	require.NoError(t, err)
	f.clk.Advance(time.Second)
	second, err := svc.Request(f.employee.ID, 200, "")
	require.NoError(t, err)

	advances, err := svc.ListByEmployee(f.employee.ID)
	require.NoError(t, err)
	require.Len(t, advances, 2)
	assert.Equal(t, second.ID, advances[0].ID)
	assert.Equal(t, first.ID, advances[1].ID)
}
