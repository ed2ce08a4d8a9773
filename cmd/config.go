package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds every setting of the service. LoadConfig fills it from the
// environment.
type Config struct {
	HTTPPort      string
	StorageDriver string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	LockTTL       time.Duration

	RabbitMQURL      string
	RabbitMQExchange string

	AllocationMaxAttempts int
	AutoAllocateSchedule  string
	ExpiryScanSchedule    string
	ExpiryWarningDays     int
	TrackingPrefix        string

	LogLevel string
}

// LoadConfig reads an optional .env file (or the given files) into the
// environment, then builds the config from environment variables on top of
// defaults. Variables already set in the environment win over the file.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := Config{
		HTTPPort:              v.GetString("HTTP_PORT"),
		StorageDriver:         strings.ToLower(v.GetString("STORAGE_DRIVER")),
		DBHost:                v.GetString("DB_HOST"),
		DBPort:                v.GetString("DB_PORT"),
		DBUser:                v.GetString("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBName:                v.GetString("DB_NAME"),
		DBSslMode:             v.GetString("DB_SSLMODE"),
		RedisAddr:             v.GetString("REDIS_ADDR"),
		RedisPassword:         v.GetString("REDIS_PASSWORD"),
		RedisDB:               v.GetInt("REDIS_DB"),
		LockTTL:               v.GetDuration("LOCK_TTL"),
		RabbitMQURL:           v.GetString("RABBITMQ_URL"),
		RabbitMQExchange:      v.GetString("RABBITMQ_EXCHANGE"),
		AllocationMaxAttempts: v.GetInt("ALLOCATION_MAX_ATTEMPTS"),
		AutoAllocateSchedule:  v.GetString("AUTO_ALLOCATE_SCHEDULE"),
		ExpiryScanSchedule:    v.GetString("EXPIRY_SCAN_SCHEDULE"),
		ExpiryWarningDays:     v.GetInt("EXPIRY_WARNING_DAYS"),
		TrackingPrefix:        v.GetString("TRACKING_PREFIX"),
		LogLevel:              v.GetString("LOG_LEVEL"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("STORAGE_DRIVER", StorageMemory)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "fulfillment")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOCK_TTL", 5*time.Second)

	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "fulfillment.events")

	v.SetDefault("ALLOCATION_MAX_ATTEMPTS", 3)
	v.SetDefault("AUTO_ALLOCATE_SCHEDULE", "*/30 * * * * *")
	v.SetDefault("EXPIRY_SCAN_SCHEDULE", "0 0 6 * * *")
	v.SetDefault("EXPIRY_WARNING_DAYS", 3)
	v.SetDefault("TRACKING_PREFIX", "TRK")

	v.SetDefault("LOG_LEVEL", "info")
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []error

	switch c.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if c.DBHost == "" {
			problems = append(problems, errs.NewValueIsRequiredError("DB_HOST"))
		}
		if c.DBName == "" {
			problems = append(problems, errs.NewValueIsRequiredError("DB_NAME"))
		}
	default:
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("STORAGE_DRIVER",
			fmt.Errorf("%q is not %s or %s", c.StorageDriver, StorageMemory, StoragePostgres)))
	}

	if c.HTTPPort == "" {
		problems = append(problems, errs.NewValueIsRequiredError("HTTP_PORT"))
	}
	if c.AllocationMaxAttempts <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError(
			"ALLOCATION_MAX_ATTEMPTS", c.AllocationMaxAttempts, 1, "unbounded"))
	}
	if c.LockTTL <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("LOCK_TTL", c.LockTTL, "1ns", "unbounded"))
	}
	if c.ExpiryWarningDays < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError(
			"EXPIRY_WARNING_DAYS", c.ExpiryWarningDays, 0, "unbounded"))
	}
	if strings.TrimSpace(c.TrackingPrefix) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("TRACKING_PREFIX"))
	}
	if _, err := c.SlogLevel(); err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err))
	}

	return errors.Join(problems...)
}

// DSN is the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// SlogLevel parses LogLevel (debug, info, warn or error).
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.LogLevel))
	return level, err
}

// NewLogger builds the JSON logger every component narrows with
// logger.With("component", ...).
func NewLogger(c Config) *slog.Logger {
	level, err := c.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
