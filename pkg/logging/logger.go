// Package logging writes per-session debug logs for coursepilot
// components. Console output stays reserved for run progress; everything
// diagnostic goes to a shared session file under ~/.coursepilot/logs/.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// one session ID per process; every component logger shares it
	sessionID     string
	sessionIDOnce sync.Once

	logDir   string
	initOnce sync.Once
	initErr  error
)

func currentSessionID() string {
	sessionIDOnce.Do(func() {
		sessionID = uuid.New().String()
	})
	return sessionID
}

func initLogDirectory() error {
	initOnce.Do(func() {
		home, err := os.UserHomeDir()
		if err != nil {
			initErr = fmt.Errorf("failed to get home directory: %w", err)
			return
		}
		logDir = filepath.Join(home, ".coursepilot", "logs")
		if err := os.MkdirAll(logDir, 0750); err != nil {
			initErr = fmt.Errorf("failed to create log directory: %w", err)
		}
	})
	return initErr
}

// Logger writes structured entries for one component into the session log
// file. All levels write unconditionally; there is no level filtering.
type Logger struct {
	sessionID string
	component string
	file      *os.File
	out       *log.Logger
	logPath   string
	mu        sync.Mutex
	closeOnce sync.Once
}

// NewLogger creates a logger for a component, appending to the shared
// session file. When the file cannot be opened the returned logger falls
// back to stderr and the error reports why; the logger itself is always
// usable.
func NewLogger(component string) (*Logger, error) {
	if err := initLogDirectory(); err != nil {
		return fallbackLogger(component, err), err
	}

	sessID := currentSessionID()
	logPath := filepath.Join(logDir, fmt.Sprintf("%s-coursepilot.log", sessID))

	// append mode: every component shares the session file
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		err = fmt.Errorf("failed to open log file: %w", err)
		return fallbackLogger(component, err), err
	}

	return &Logger{
		sessionID: sessID,
		component: component,
		file:      file,
		out:       log.New(file, "", 0),
		logPath:   logPath,
	}, nil
}

func fallbackLogger(component string, err error) *Logger {
	out := log.New(os.Stderr, fmt.Sprintf("[%s] ", component), log.LstdFlags)
	out.Printf("WARNING: file logging unavailable, using stderr: %v", err)
	return &Logger{
		sessionID: currentSessionID(),
		component: component,
		out:       out,
	}
}

func (l *Logger) write(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	l.out.Printf("[%s] [%s] [%s] %s", timestamp, l.component, level, fmt.Sprintf(format, v...))
}

// Debugf logs a debug-level message.
func (l *Logger) Debugf(format string, v ...interface{}) { l.write("DEBUG", format, v...) }

// Infof logs an info-level message.
func (l *Logger) Infof(format string, v ...interface{}) { l.write("INFO", format, v...) }

// Warnf logs a warning-level message.
func (l *Logger) Warnf(format string, v ...interface{}) { l.write("WARN", format, v...) }

// Errorf logs an error-level message.
func (l *Logger) Errorf(format string, v ...interface{}) { l.write("ERROR", format, v...) }

// SessionID returns the session ID shared by all loggers in this process.
func (l *Logger) SessionID() string { return l.sessionID }

// LogPath returns the session log file path, or "" in fallback mode.
func (l *Logger) LogPath() string { return l.logPath }

// Close closes the log file. Safe to call multiple times.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.file != nil {
			err = l.file.Close()
		}
	})
	return err
}

// SessionID returns the process-wide session ID without creating a logger.
func SessionID() string { return currentSessionID() }

// LogDirectory returns the directory where session logs are stored.
func LogDirectory() (string, error) {
	if err := initLogDirectory(); err != nil {
		return "", err
	}
	return logDir, nil
}
