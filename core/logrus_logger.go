package core

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogrusAdapter wraps a logrus.Logger to satisfy the Logger interface.
// Selected with --log-format=logrus for operators who pipe run output
// into logrus-aware log shippers.
type LogrusAdapter struct {
	*logrus.Logger
}

var _ Logger = (*LogrusAdapter)(nil)

func NewLogrusAdapter(level logrus.Level) *LogrusAdapter {
	l := logrus.New()
	l.SetLevel(level)
	return &LogrusAdapter{Logger: l}
}

func (l *LogrusAdapter) Debugf(format string, args ...interface{}) {
	l.Logger.Debugf(format, args...)
}

func (l *LogrusAdapter) Noticef(format string, args ...interface{}) {
	l.Logger.Infof(format, args...)
}

func (l *LogrusAdapter) Warningf(format string, args ...interface{}) {
	l.Logger.Warnf(format, args...)
}

func (l *LogrusAdapter) Errorf(format string, args ...interface{}) {
	l.Logger.Errorf(format, args...)
}

// ParseLogrusLevel maps the same CLI level vocabulary ParseSlogLevel
// accepts onto logrus's levels, so --log-format=logrus honors
// --log-level identically to the slog backend.
func ParseLogrusLevel(level string) (logrus.Level, error) {
	switch strings.ToLower(level) {
	case "trace":
		return logrus.TraceLevel, nil
	case "debug":
		return logrus.DebugLevel, nil
	case "", "info", "notice":
		return logrus.InfoLevel, nil
	case "warning", "warn":
		return logrus.WarnLevel, nil
	case "error", "critical":
		return logrus.ErrorLevel, nil
	case "fatal":
		return logrus.FatalLevel, nil
	case "panic":
		return logrus.PanicLevel, nil
	default:
		return 0, fmt.Errorf("%w: %q (valid levels are trace, debug, info, warn, error, fatal, panic)", ErrInvalidLogLevel, level)
	}
}
