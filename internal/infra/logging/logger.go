// Package logging provides logging for ironjira.
// Entries go to an append-only log file in the data directory
// (<data dir>/ironjira.log) and, optionally, to a console writer
// through a tint handler.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"

	"github.com/runoshun/ironjira/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger writes entries to the data directory log file and to the console.
// Fields are ordered to minimize memory padding.
type Logger struct {
	file    *os.File
	console *slog.Logger
	dataDir string
	mu      sync.Mutex
	level   slog.Level
}

// New creates a new Logger.
// If dataDir is empty, file logging is disabled. If console is nil, nothing
// is written to the console.
func New(dataDir string, level slog.Level, console io.Writer) *Logger {
	l := &Logger{
		dataDir: dataDir,
		level:   level,
	}
	if console != nil {
		l.console = slog.New(tint.NewHandler(console, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    !isTerminal(console),
		}))
	}
	return l
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// ensureFile opens or returns the log file.
func (l *Logger) ensureFile() (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file, nil
	}

	if err := os.MkdirAll(l.dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	path := domain.LogPath(l.dataDir)
	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.file = f
	return f, nil
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// formatLog formats a log entry for the log file.
// Format: [2025-12-30 09:32:51] [INFO] [ticket-1] [category] message
func formatLog(t time.Time, level slog.Level, id domain.TicketID, category, msg string) string {
	scope := "global"
	if id > 0 {
		scope = fmt.Sprintf("ticket-%d", id)
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format(time.DateTime),
		levelToString(level),
		scope,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (l *Logger) log(level slog.Level, id domain.TicketID, category, msg string) {
	if level < l.level {
		return
	}

	if l.console != nil {
		attrs := []slog.Attr{slog.String("category", category)}
		if id > 0 {
			attrs = append(attrs, slog.Uint64("ticket", uint64(id)))
		}
		l.console.LogAttrs(context.Background(), level, msg, attrs...)
	}

	if l.dataDir == "" {
		return
	}
	if f, err := l.ensureFile(); err == nil {
		_, _ = io.WriteString(f, formatLog(time.Now(), level, id, category, msg))
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(id domain.TicketID, category, msg string) {
	l.log(slog.LevelDebug, id, category, msg)
}

// Info logs an info message.
func (l *Logger) Info(id domain.TicketID, category, msg string) {
	l.log(slog.LevelInfo, id, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(id domain.TicketID, category, msg string) {
	l.log(slog.LevelWarn, id, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(id domain.TicketID, category, msg string) {
	l.log(slog.LevelError, id, category, msg)
}
