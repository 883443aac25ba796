package service

import (
	"time"

	"attendance-tracker/internal/apperrors"
	"attendance-tracker/internal/models"
	"attendance-tracker/internal/repository"
	"attendance-tracker/pkg/clock"

	"github.com/sirupsen/logrus"
)

// dangling clock-outs are backfilled to 22:00 UTC of the day before the new
// start date, so a forgotten clock-in never bleeds across day boundaries.
const forceCloseHourUTC = 22

// RegisterDayService owns the register-wide daily start time that gates all
// other attendance operations.
type RegisterDayService struct {
	dayRepo repository.RegisterDayRepository
	logRepo repository.AttendanceLogRepository
	clk     clock.Clock
	logger  *logrus.Logger
}

func NewRegisterDayService(
	dayRepo repository.RegisterDayRepository,
	logRepo repository.AttendanceLogRepository,
	clk clock.Clock,
) *RegisterDayService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &RegisterDayService{
		dayRepo: dayRepo,
		logRepo: logRepo,
		clk:     clk,
		logger:  logger,
	}
}

// SetStartTime opens (or re-times) the register's day. Before the upsert it
// runs the global reconciliation pass: every open clock-out from before the
// new date is force-closed. The two writes are deliberately not wrapped in
// one transaction; a crash between them is resumable on the next call since
// reconciliation matches nothing the second time.
func (s *RegisterDayService) SetStartTime(registerID string, date, startTime time.Time) (*models.RegisterDay, error) {
	if err := checkID("register id", registerID); err != nil {
		return nil, err
	}
	day := models.DateOnly(date)

	closeAt := day.AddDate(0, 0, -1).Add(forceCloseHourUTC * time.Hour)
	closed, err := s.logRepo.ForceCloseDanglingBefore(day, closeAt)
	if err != nil {
		return nil, err
	}
	if closed > 0 {
		s.logger.WithFields(logrus.Fields{
			"register_id": registerID,
			"date":        day.Format(models.DateLayout),
			"closed":      closed,
		}).Info("Reconciled dangling clock-outs before opening day")
	}

	record := &models.RegisterDay{
		RegisterID: registerID,
		Date:       day,
		StartTime:  startTime,
		Status:     models.RegisterDayStatusActive,
	}
	if err := s.dayRepo.Upsert(record); err != nil {
		s.logger.WithError(err).Error("Failed to upsert register day")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"register_id": registerID,
		"date":        day.Format(models.DateLayout),
		"start_time":  startTime.Format(time.RFC3339),
	}).Info("Register day start time set")

	// On the update path the stored row keeps its original id; re-read so
	// callers always see the canonical row.
	return s.dayRepo.GetByRegisterAndDate(registerID, day)
}

// GetStartTime looks up the day record; a missing row means the day has not
// been started.
func (s *RegisterDayService) GetStartTime(registerID string, date time.Time) (*models.RegisterDay, error) {
	if err := checkID("register id", registerID); err != nil {
		return nil, err
	}
	day, err := s.dayRepo.GetByRegisterAndDate(registerID, date)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, apperrors.NotFound("day not started for register")
	}
	return day, nil
}

// EnsureOpen is the gate every attendance action passes through.
func (s *RegisterDayService) EnsureOpen(registerID string, date time.Time) error {
	day, err := s.dayRepo.GetByRegisterAndDate(registerID, date)
	if err != nil {
		return err
	}
	if day == nil {
		return apperrors.Precondition("register day has no start time yet")
	}
	return nil
}
