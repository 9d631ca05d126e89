package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Context key for storing logger
type contextKey string

const loggerContextKey contextKey = "synapse-spark-inventory-logger"

// LogLevel represents supported logging levels
type LogLevel string

const (
	// LogLevelDebug enables debug, info, warning, and error messages
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo enables info, warning, and error messages
	LogLevelInfo LogLevel = "info"
	// LogLevelWarning enables warning and error messages
	LogLevelWarning LogLevel = "warning"
	// LogLevelError enables only error messages
	LogLevelError LogLevel = "error"
)

// ValidLogLevels contains all supported log levels
var ValidLogLevels = map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warning": LogLevelWarning,
	"error":   LogLevelError,
}

// ValidateLogLevel validates if the provided log level is supported
func ValidateLogLevel(level string) error {
	normalizedLevel := strings.ToLower(strings.TrimSpace(level))
	if _, valid := ValidLogLevels[normalizedLevel]; !valid {
		return fmt.Errorf("invalid log level '%s'. Valid levels are: debug, info, warning, error", level)
	}
	return nil
}

// ParseLogLevel converts string log level to logrus.Level with validation
func ParseLogLevel(level string) (logrus.Level, error) {
	normalizedLevel := strings.ToLower(strings.TrimSpace(level))

	switch normalizedLevel {
	case "debug":
		return logrus.DebugLevel, nil
	case "info":
		return logrus.InfoLevel, nil
	case "warning":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	default:
		return logrus.InfoLevel, fmt.Errorf("invalid log level '%s'. Valid levels are: debug, info, warning, error", level)
	}
}

// Setup creates a logger with the specified level and optional log directory
// and stores it in the returned context. When a log directory is configured,
// log lines go to both stderr and a file inside it.
func Setup(ctx context.Context, level, logDir string) context.Context {
	logger := logrus.New()

	logLevel, err := ParseLogLevel(level)
	if err != nil {
		// Log the error but continue with default level
		fmt.Printf("Warning: %v. Using 'info' level as default.\n", err)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	logger.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	// The console report goes to stdout; keep log lines on stderr so the two
	// streams can be separated.
	logger.SetOutput(os.Stderr)

	if logDir != "" {
		if fileWriter, err := setupLogFileWriter(logDir); err != nil {
			fmt.Printf("Warning: Failed to setup log file in directory '%s': %v. Logging to console only.\n", logDir, err)
		} else {
			logger.SetOutput(io.MultiWriter(os.Stderr, fileWriter))
		}
	}

	return context.WithValue(ctx, loggerContextKey, logger)
}

// setupLogFileWriter creates a file writer in the specified log directory
func setupLogFileWriter(logDir string) (io.Writer, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory '%s': %w", logDir, err)
	}

	logFilePath := filepath.Join(logDir, "synapse-spark-inventory.log")
	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file '%s': %w", logFilePath, err)
	}

	return file, nil
}

// FromContext retrieves the logger from context
func FromContext(ctx context.Context) *logrus.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*logrus.Logger); ok {
		return logger
	}
	// Fallback to default logger if not found in context
	return logrus.New()
}
