package common

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	loggersMu sync.Mutex
	loggers   []*logrus.Logger
)

// LevelFromEnv picks the level from APP_ENV (development → debug,
// production → error, otherwise info). A parseable LOG_LEVEL wins.
func LevelFromEnv() logrus.Level {
	level := logrus.InfoLevel
	switch os.Getenv("APP_ENV") {
	case "", "development":
		level = logrus.DebugLevel
	case "production":
		level = logrus.ErrorLevel
	}

	if parsed, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		level = parsed
	}
	return level
}

// NewLogger returns a JSON logger at LevelFromEnv. The logger is remembered
// so ApplyLogLevel can update it once a .env file has been loaded.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(LevelFromEnv())

	loggersMu.Lock()
	loggers = append(loggers, logger)
	loggersMu.Unlock()
	return logger
}

// ApplyLogLevel re-reads the environment and sets the level of every logger
// created by NewLogger and of the logrus standard logger
func ApplyLogLevel() logrus.Level {
	level := LevelFromEnv()
	logrus.SetLevel(level)

	loggersMu.Lock()
	defer loggersMu.Unlock()
	for _, logger := range loggers {
		logger.SetLevel(level)
	}
	return level
}
