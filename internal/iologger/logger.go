// Package iologger provides slog-based logging initialization and configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/gnlineage/pkg/config"
)

// LogFile is the name of the log file inside the log directory.
const LogFile = "gnlineage.log"

var logFile *os.File

// Init initializes the global slog logger with the given configuration.
// Creates a fresh log file in logDir if destination is "file".
// Calling Init again closes the log file opened by the previous call.
func Init(logDir string, cfg config.LogConfig) error {
	var writer io.Writer

	switch cfg.Destination {
	case "stdout":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	case "file":
		logPath := filepath.Join(logDir, LogFile)
		file, err := os.Create(logPath)
		if err != nil {
			return CreateLogFileError(logPath, err)
		}
		closeLogFile()
		logFile = file
		writer = file
	default:
		writer = os.Stderr
	}

	slog.SetDefault(slog.New(newHandler(writer, cfg)))
	return nil
}

// Close closes the log file, if there is one.
func Close() {
	closeLogFile()
}

func closeLogFile() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func newHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	switch cfg.Format {
	case "text", "tint":
		return slog.NewTextHandler(w, opts)
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

// ParseLevel converts a string log level to slog.Level.
// Invalid levels default to Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
