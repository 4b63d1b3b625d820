package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/franciscosanchezn/pizzeria-dao/internal/common"
	"github.com/franciscosanchezn/pizzeria-dao/internal/database"
	"github.com/franciscosanchezn/pizzeria-dao/internal/store"
)

// Package logger, JSON formatted, level chosen from APP_ENV and LOG_LEVEL
var log = common.NewLogger()

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Host        string `json:"host"`
	Environment string `json:"environment"`

	// Database configuration
	DBDriver          string `json:"db_driver"`
	DatabaseURL       string `json:"database_url"`
	DBHost            string `json:"db_host"`
	DBPort            string `json:"db_port"`
	DBName            string `json:"db_name"`
	DBUser            string `json:"db_user"`
	DBPassword        string `json:"db_password"`
	DBSSLMode         string `json:"db_sslmode"`
	DBPath            string `json:"db_path"`
	DBConnectAttempts int    `json:"db_connect_attempts"`

	// Bulk import configuration
	BatchSize   int  `json:"batch_size"`
	SeedOnEmpty bool `json:"seed_on_empty"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// Security configuration
	JWTSecret string `json:"jwt_secret"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, Host: %s, Environment: %s, DBDriver: %s, DatabaseURL: %s, DBHost: %s, DBPort: %s, DBName: %s, DBUser: %s, DBPassword: [REDACTED], DBPath: %s, BatchSize: %d, SeedOnEmpty: %t, LogLevel: %s, JWTSecret: [REDACTED]}",
		c.Port, c.Host, c.Environment, c.DBDriver, maskDatabaseURL(c.DatabaseURL), c.DBHost, c.DBPort,
		c.DBName, c.DBUser, c.DBPath, c.BatchSize, c.SeedOnEmpty, c.LogLevel)
}

// DatabaseConfig returns the connection target for the database package
func (c *Config) DatabaseConfig() database.DatabaseConfig {
	return database.DatabaseConfig{
		Driver:          c.DBDriver,
		URL:             c.DatabaseURL,
		Host:            c.DBHost,
		Port:            c.DBPort,
		User:            c.DBUser,
		Password:        c.DBPassword,
		Name:            c.DBName,
		SSLMode:         c.DBSSLMode,
		Path:            c.DBPath,
		ConnectAttempts: c.DBConnectAttempts,
	}
}

// IsDevelopment reports whether development-only routes may be exposed
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// maskDatabaseURL masks password in database URL
func maskDatabaseURL(dbURL string) string {
	if dbURL == "" {
		return ""
	}

	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "[REDACTED_INVALID_URL]"
	}

	if parsed.User != nil {
		parsed.User = url.UserPassword(parsed.User.Username(), "[REDACTED]")
	}

	return parsed.String()
}

// LoadConfig reads the configuration from environment variables and returns a Config struct.
// Malformed numbers and booleans, an unknown driver and a malformed DATABASE_URL are errors.
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := GetEnvAsType("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}
	connectAttempts, err := GetEnvAsType("DB_CONNECT_ATTEMPTS", 5)
	if err != nil {
		return nil, err
	}
	batchSize, err := GetEnvAsType("BULK_BATCH_SIZE", store.DefaultBatchSize)
	if err != nil {
		return nil, err
	}
	seedOnEmpty, err := GetEnvAsType("SEED_ON_EMPTY", true)
	if err != nil {
		return nil, err
	}

	driver := strings.ToLower(GetEnvWithDefault("DB_DRIVER", "sqlite"))
	switch driver {
	case "sqlite", "postgres", "postgresql":
	default:
		return nil, fmt.Errorf("%w: %s", database.ErrUnsupportedDriver, driver)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL != "" {
		if _, err := url.ParseRequestURI(dbURL); err != nil {
			return nil, fmt.Errorf("invalid DATABASE_URL format: %w", err)
		}
	}

	config := &Config{
		Port:              port,
		Host:              GetEnvWithDefault("APP_HOST", "localhost"),
		Environment:       GetEnvWithDefault("APP_ENV", "development"),
		DBDriver:          driver,
		DatabaseURL:       dbURL,
		DBHost:            GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:            GetEnvWithDefault("DB_PORT", "5432"),
		DBName:            GetEnvWithDefault("DB_NAME", "pizzadb"),
		DBUser:            GetEnvWithDefault("DB_USER", "root"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBSSLMode:         GetEnvWithDefault("DB_SSLMODE", "disable"),
		DBPath:            GetEnvWithDefault("DB_PATH", "pizzadb.sqlite"),
		DBConnectAttempts: connectAttempts,
		BatchSize:         batchSize,
		SeedOnEmpty:       seedOnEmpty,
		LogLevel:          GetEnvWithDefault("LOG_LEVEL", "info"),
		JWTSecret:         GetEnvWithDefault("JWT_SECRET", "secret"),
	}

	if config.BatchSize <= 0 {
		return nil, fmt.Errorf("BULK_BATCH_SIZE must be positive, got %d", config.BatchSize)
	}

	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Debugf("Environment variable %s not set, using default value: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling. An unset variable yields defaultValue, a value that
// does not parse as T is an error.
func GetEnvAsType[T any](key string, defaultValue T) (T, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue, fmt.Errorf("invalid %s: %w", key, err)
		}
		return any(intValue).(T), nil
	case string:
		return any(value).(T), nil
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue, fmt.Errorf("invalid %s: %w", key, err)
		}
		return any(boolValue).(T), nil
	default:
		return defaultValue, fmt.Errorf("unsupported type %T for %s", result, key)
	}
}
