package cli

import (
	"log/slog"

	"github.com/bountybench/bbparallel/core"
)

// ApplyLogLevel sets the logging level if level is valid.
// Returns an error if the level is invalid, with a list of valid options.
// The string->level table itself lives in core.ParseSlogLevel, shared
// with the logrus backend's core.ParseLogrusLevel.
func ApplyLogLevel(level string, lv *slog.LevelVar) error {
	if level == "" {
		return nil
	}

	l, err := core.ParseSlogLevel(level)
	if err != nil {
		return err
	}

	if lv != nil {
		lv.Set(l)
	}
	return nil
}
