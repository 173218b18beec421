package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/google/uuid"
)

// Logger is the package-wide logger. It discards everything until
// Initialize enables debug logging.
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

const maxLogFiles = 50

// Initialize sets up the logger. When debug is false and no file is
// given, logs are discarded.
func Initialize(debug bool, debugFile string) error {
	if os.Getenv("MERGEDECK_DEBUG") == "1" {
		debug = true
	}
	if envFile := os.Getenv("MERGEDECK_DEBUG_FILE"); envFile != "" && debugFile == "" {
		debugFile = envFile
	}

	if !debug && debugFile == "" {
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return nil
	}

	logFilePath := debugFile
	if logFilePath == "" {
		dir, err := logDir()
		if err != nil {
			return fmt.Errorf("failed to get log directory: %w", err)
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		if err := rotateLogs(dir, maxLogFiles); err != nil {
			// Rotation failure should not prevent logging
			fmt.Fprintf(os.Stderr, "Warning: log rotation failed: %v\n", err)
		}
		logFilePath = filepath.Join(dir, fmt.Sprintf("%s.log", uuid.New().String()))
	} else if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	Logger = slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))
	Logger.Info("logging initialized", "file", logFilePath)
	return nil
}

func logDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Logs", "mergedeck"), nil
	default:
		if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
			return filepath.Join(xdg, "mergedeck", "logs"), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "state", "mergedeck", "logs"), nil
	}
}

// rotateLogs keeps at most max log files in dir, deleting the oldest.
func rotateLogs(dir string, max int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var logs []os.DirEntry
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".log" {
			logs = append(logs, entry)
		}
	}
	if len(logs) < max {
		return nil
	}

	sort.Slice(logs, func(i, j int) bool {
		infoI, errI := logs[i].Info()
		infoJ, errJ := logs[j].Info()
		if errI != nil || errJ != nil {
			return logs[i].Name() < logs[j].Name()
		}
		return infoI.ModTime().Before(infoJ.ModTime())
	})

	for _, entry := range logs[:len(logs)-max+1] {
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
