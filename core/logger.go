package core

import "errors"

// ErrInvalidLogLevel indicates an invalid log level string was provided
// to one of the backend-specific level parsers.
var ErrInvalidLogLevel = errors.New("invalid log level")

// Logger is the leveled logging surface every component accepts. It
// mirrors the vocabulary ofelia's job and Docker operations are
// written against (Debugf for traces, Noticef for routine progress,
// Warningf for recoverable problems, Errorf for failures).
type Logger interface {
	Debugf(format string, args ...interface{})
	Noticef(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
