package core

import (
	"log/slog"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlogLevel(t *testing.T) {
	t.Parallel()
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug, "trace": slog.LevelDebug,
		"info": slog.LevelInfo, "": slog.LevelInfo, "notice": slog.LevelInfo,
		"warn": slog.LevelWarn, "warning": slog.LevelWarn,
		"error": slog.LevelError, "fatal": slog.LevelError, "panic": slog.LevelError, "critical": slog.LevelError,
	}
	for input, want := range cases {
		l, err := ParseSlogLevel(input)
		require.NoError(t, err)
		assert.Equal(t, want, l)
	}

	_, err := ParseSlogLevel("bogus")
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
}

func TestParseLogrusLevel(t *testing.T) {
	t.Parallel()
	cases := map[string]logrus.Level{
		"trace": logrus.TraceLevel, "debug": logrus.DebugLevel,
		"info": logrus.InfoLevel, "": logrus.InfoLevel, "notice": logrus.InfoLevel,
		"warn": logrus.WarnLevel, "warning": logrus.WarnLevel,
		"error": logrus.ErrorLevel, "critical": logrus.ErrorLevel,
		"fatal": logrus.FatalLevel, "panic": logrus.PanicLevel,
	}
	for input, want := range cases {
		l, err := ParseLogrusLevel(input)
		require.NoError(t, err)
		assert.Equal(t, want, l)
	}

	_, err := ParseLogrusLevel("bogus")
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
}
