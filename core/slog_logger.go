package core

import (
	"fmt"
	"log/slog"
	"strings"
)

// SlogAdapter wraps a *slog.Logger to satisfy the Logger interface.
// This is the default backend, matching the teacher's ofelia.go
// buildLogger (a slog.TextHandler over os.Stdout with AddSource).
type SlogAdapter struct {
	logger *slog.Logger
}

var _ Logger = (*SlogAdapter)(nil)

func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

func (l *SlogAdapter) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *SlogAdapter) Noticef(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *SlogAdapter) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *SlogAdapter) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

// ParseSlogLevel maps the CLI's legacy logrus-era level names onto
// slog's four levels. Shared by cli.ApplyLogLevel and cmd/bbparallel's
// pre-parse, so the table is defined once alongside the backend it
// configures.
func ParseSlogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "trace", "debug":
		return slog.LevelDebug, nil
	case "", "info", "notice":
		return slog.LevelInfo, nil
	case "warning", "warn":
		return slog.LevelWarn, nil
	case "error", "fatal", "panic", "critical":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q (valid levels are debug, info, warn, error)", ErrInvalidLogLevel, level)
	}
}
