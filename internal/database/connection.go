package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/franciscosanchezn/pizzeria-dao/internal/common"
	"github.com/franciscosanchezn/pizzeria-dao/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var log = common.NewLogger()

// ErrUnsupportedDriver is returned for a driver other than postgres or sqlite
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// retryDelays is the pause after each failed startup attempt, the last value repeats
var retryDelays = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second, 16 * time.Second}

// Open opens a gorm handle for the configured driver without checking connectivity
func Open(cfg DatabaseConfig) (*gorm.DB, error) {
	switch strings.ToLower(cfg.Driver) {
	case "postgres", "postgresql":
		log.WithField("dsn_host", cfg.Host).Debug("Connecting to PostgreSQL")
		return gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	case "sqlite", "":
		log.WithField("db_path", cfg.Path).Debug("Connecting to SQLite")
		return gorm.Open(sqlite.Open(cfg.DSN()), &gorm.Config{})
	default:
		return nil, fmt.Errorf("%w: %s (supported: postgres, sqlite)", ErrUnsupportedDriver, cfg.Driver)
	}
}

// InitDatabase opens the database and pings it, making up to
// cfg.ConnectAttempts attempts so the service can start before its database.
// This only covers startup; store operations are never retried.
func InitDatabase(cfg DatabaseConfig) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	maxAttempts := cfg.ConnectAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	log.WithFields(logrus.Fields{
		"db_driver": strings.ToLower(cfg.Driver),
		"db_host":   cfg.Host,
		"db_name":   cfg.Name,
		"db_path":   cfg.Path,
	}).Info("Initializing database connection")

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		log.WithFields(logrus.Fields{
			"attempt":      attempt,
			"max_attempts": maxAttempts,
		}).Info("Attempting database connection")

		db, err = Open(cfg)
		if errors.Is(err, ErrUnsupportedDriver) {
			return nil, err
		}

		if err == nil {
			err = ping(db)
			if err == nil {
				log.WithFields(logrus.Fields{
					"db_driver": strings.ToLower(cfg.Driver),
					"attempt":   attempt,
				}).Info("Database initialized successfully")
				return db, nil
			}
		}

		log.WithFields(logrus.Fields{
			"attempt": attempt,
			"error":   err.Error(),
		}).Warn("Database connection attempt failed")

		// Don't wait after the last attempt
		if attempt < maxAttempts {
			delay := retryDelays[min(attempt, len(retryDelays))-1]
			log.WithField("delay", delay).Info("Retrying database connection")
			time.Sleep(delay)
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxAttempts, err)
}

func ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		log.WithError(err).Error("Failed to get database instance")
		return err
	}
	if err := sqlDB.Ping(); err != nil {
		log.WithError(err).Error("Failed to ping database")
		return err
	}
	return nil
}

// EnsureSchema creates the PIZZA table and its unique CODE index when missing
func EnsureSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Pizza{}); err != nil {
		return fmt.Errorf("ensure pizza schema: %w", err)
	}
	log.Debug("Pizza schema ready")
	return nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
