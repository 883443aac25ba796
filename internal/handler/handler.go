package handler

import (
	"net/http"
	"time"

	"attendance-tracker/internal/apperrors"
	"attendance-tracker/internal/config"
	"attendance-tracker/internal/middleware"
	"attendance-tracker/internal/models"
	"attendance-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	presenceService *service.PresenceService
	logService      *service.AttendanceLogService
	dayService      *service.RegisterDayService
	rosterService   *service.RosterService
	advanceService  *service.AdvanceService
	employeeService *service.EmployeeService
	config          *config.AppConfig
	logger          *logrus.Logger
}

func NewHandler(
	presenceService *service.PresenceService,
	logService *service.AttendanceLogService,
	dayService *service.RegisterDayService,
	rosterService *service.RosterService,
	advanceService *service.AdvanceService,
	employeeService *service.EmployeeService,
	cfg *config.AppConfig,
) *Handler {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	registerValidators()

	return &Handler{
		presenceService: presenceService,
		logService:      logService,
		dayService:      dayService,
		rosterService:   rosterService,
		advanceService:  advanceService,
		employeeService: employeeService,
		config:          cfg,
		logger:          logger,
	}
}

// registerValidators adds the timeofday rule used by employee schedule
// payloads (15:04 strings).
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
			_, err := time.Parse("15:04", fl.Field().String())
			return err == nil
		})
	}
}

func (h *Handler) Routes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api", middleware.Auth(h.config.JWTSecret))

	api.POST("/registers/:registerID/day", middleware.RequireAdmin(), h.SetStartTime)
	api.GET("/registers/:registerID/day", h.GetStartTime)
	api.GET("/registers/:registerID/roster", h.Roster)

	api.GET("/employees/:employeeID/presence", h.GetPresence)
	api.POST("/employees/:employeeID/present", h.MarkPresent)
	api.POST("/employees/:employeeID/absent", h.MarkAbsent)
	api.POST("/employees/:employeeID/return", h.ReturnFromAbsence)
	api.POST("/employees/:employeeID/clock-out", h.ClockOut)
	api.POST("/employees/:employeeID/clock-in", h.ClockIn)
	api.GET("/presence/:presenceID/logs", h.ListLogs)
	api.DELETE("/logs/:logID", middleware.RequireAdmin(), h.DeleteLog)

	api.POST("/employees/:employeeID/advances", h.RequestAdvance)
	api.GET("/employees/:employeeID/advances", h.ListAdvances)
	api.POST("/advances/:advanceID/decision", middleware.RequireAdmin(), h.DecideAdvance)

	admin := api.Group("", middleware.RequireAdmin())
	admin.POST("/registers", h.CreateRegister)
	admin.GET("/registers", h.ListRegisters)
	admin.DELETE("/registers/:registerID", h.DeleteRegister)
	admin.POST("/registers/:registerID/employees", h.CreateEmployee)
	admin.GET("/registers/:registerID/employees", h.ListEmployees)
	admin.PATCH("/employees/:employeeID/schedule", h.UpdateSchedule)
}

// writeError maps the typed error taxonomy onto HTTP statuses. Gate-closed
// preconditions get 412; everything else with a code maps plainly.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperrors.IsPrecondition(err):
		c.JSON(http.StatusPreconditionFailed, gin.H{"error": err.Error()})
	default:
		h.logger.WithError(err).Error("Unhandled internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// actorCanActFor allows admins everywhere and employees only on themselves.
func (h *Handler) actorCanActFor(c *gin.Context, employeeID string) bool {
	role, _ := c.Get(middleware.ContextRole)
	if role == middleware.RoleAdmin {
		return true
	}
	actorID, _ := c.Get(middleware.ContextActorID)
	return actorID == employeeID
}

// dateQuery reads the date query param, defaulting to today (UTC).
func (h *Handler) dateQuery(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return models.DateOnly(time.Now()), true
	}
	date, err := models.ParseDate(raw)
	if err != nil {
		h.writeError(c, apperrors.Validation("malformed date, expected YYYY-MM-DD"))
		return time.Time{}, false
	}
	return date, true
}
