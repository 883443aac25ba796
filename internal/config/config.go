package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type AppConfig struct {
	HTTPAddr       string
	DBDriver       string
	DatabaseURL    string
	JWTSecret      string
	AllowedOrigins string

	// BlockAbsentWhileClockedOut rejects mark-absent while the employee's
	// last log is an open clock-out. Off by default to match the behavior
	// admins already rely on.
	BlockAbsentWhileClockedOut bool
}

var instance *AppConfig
var once sync.Once

func Get() *AppConfig {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			logrus.Warnf("no .env file loaded: %s", err.Error())
		}

		instance = &AppConfig{
			HTTPAddr:                   getEnv("HTTP_ADDR", ":8080"),
			DBDriver:                   getEnv("DB_DRIVER", "sqlite"),
			DatabaseURL:                getEnv("DATABASE_URL", "attendance.db"),
			JWTSecret:                  getEnv("JWT_SECRET", ""),
			AllowedOrigins:             getEnv("ALLOWED_ORIGINS", "*"),
			BlockAbsentWhileClockedOut: getEnvAsBool("BLOCK_ABSENT_WHILE_CLOCKED_OUT", false),
		}

		if instance.JWTSecret == "" {
			logrus.Fatal("could not get JWT secret")
		}
		if instance.DBDriver != "sqlite" && instance.DBDriver != "postgres" {
			logrus.Fatalf("unsupported DB_DRIVER: %s", instance.DBDriver)
		}
	})

	return instance
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}
