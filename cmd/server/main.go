package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"attendance-tracker/internal/config"
	"attendance-tracker/internal/handler"
	"attendance-tracker/internal/repository"
	"attendance-tracker/internal/service"
	"attendance-tracker/pkg/clock"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.Get()

	db := openDatabase(cfg)

	registerRepo, err := repository.NewGormRegisterRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create register repository")
	}

	employeeRepo, err := repository.NewGormEmployeeRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create employee repository")
	}

	dayRepo, err := repository.NewGormRegisterDayRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create register day repository")
	}

	presenceRepo, err := repository.NewGormPresenceRecordRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create presence record repository")
	}

	logRepo, err := repository.NewGormAttendanceLogRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create attendance log repository")
	}

	advanceRepo, err := repository.NewGormAdvanceRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create advance repository")
	}

	clk := clock.System()

	dayService := service.NewRegisterDayService(dayRepo, logRepo, clk)
	logService := service.NewAttendanceLogService(logRepo, presenceRepo, employeeRepo, dayService, clk)
	presenceService := service.NewPresenceService(
		presenceRepo, employeeRepo, logRepo, dayService, logService, clk,
		cfg.BlockAbsentWhileClockedOut,
	)
	rosterService := service.NewRosterService(employeeRepo, presenceRepo, logRepo, registerRepo, clk)
	advanceService := service.NewAdvanceService(advanceRepo, employeeRepo, clk)
	employeeService := service.NewEmployeeService(employeeRepo, registerRepo)

	h := handler.NewHandler(
		presenceService, logService, dayService, rosterService,
		advanceService, employeeService, cfg,
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	h.Routes(router)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logrus.Infof("Listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Forced shutdown")
	}
	logrus.Info("Server stopped")
}

func openDatabase(cfg *config.AppConfig) *gorm.DB {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseURL)
	default:
		dialector = sqlite.Open(cfg.DatabaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	if cfg.DBDriver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			logrus.Fatal("Failed to get database instance:", err)
		}
		// Required for the cascade constraints to work on SQLite.
		if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
			logrus.Infof("Warning: Failed to enable foreign keys: %v", err)
		}
	}

	return db
}
