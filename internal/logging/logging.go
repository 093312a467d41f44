package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options configures the global logger.
type Options struct {
	Level   string // zerolog level name; empty means "warn"
	File    string // log file path; empty means the default state-dir file
	Console bool   // also write to stderr (never for the TUI, it owns the terminal)
}

// Setup configures the global logger and returns the log file path in use.
// Failing to open the log file is not fatal: logging continues on the
// console, or is discarded when the console is not enabled.
func Setup(opts Options) string {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	var writers []io.Writer
	if opts.Console {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		})
	}

	logFile := opts.File
	if logFile == "" {
		logFile = DefaultLogFile()
	}
	fileHandle, fileErr := openLogFile(logFile)
	if fileErr == nil {
		writers = append(writers, fileHandle)
	}

	if len(writers) == 0 {
		log.Logger = zerolog.Nop()
		return ""
	}
	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logFile).Msg("Failed to create log file, logging to console only")
		return ""
	}
	log.Debug().Str("level", level.String()).Str("logFile", logFile).Msg("Logger initialized")
	return logFile
}

// GetLogger returns a contextualized logger with the given component name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// DefaultLogFile is the log file under the XDG state directory
// (%LOCALAPPDATA% on Windows).
func DefaultLogFile() string {
	return filepath.Join(xdg.StateHome, "pathedit", "pathedit.log")
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}

func openLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}
