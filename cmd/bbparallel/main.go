package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/bountybench/bbparallel/cli"
	"github.com/bountybench/bbparallel/core"
)

func buildLogger(level string) (*slog.Logger, *slog.LevelVar) {
	levelVar := &slog.LevelVar{}
	l, err := core.ParseSlogLevel(level)
	if err != nil {
		l = slog.LevelInfo
	}
	levelVar.Set(l)
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     levelVar,
	})
	return slog.New(handler), levelVar
}

func main() {
	var pre struct {
		LogLevel string `long:"log-level"`
	}
	args := os.Args[1:]
	preParser := flags.NewParser(&pre, flags.IgnoreUnknown)
	_, _ = preParser.ParseArgs(args)

	logger, levelVar := buildLogger(pre.LogLevel)

	parser := flags.NewNamedParser("bbparallel", flags.Default)
	_, _ = parser.AddCommand(
		"run",
		"run a job matrix from a YAML run description",
		"",
		&cli.RunCommand{Logger: logger, LevelVar: levelVar},
	)
	_, _ = parser.AddCommand(
		"init",
		"creates a run description through an interactive wizard",
		"",
		&cli.InitCommand{Logger: core.NewSlogAdapter(logger), LogLevel: pre.LogLevel},
	)

	if _, err := parser.ParseArgs(args); err != nil {
		if flags.WroteHelp(err) {
			return
		}

		var flagErr *flags.Error
		if errors.As(err, &flagErr) {
			parser.WriteHelp(os.Stdout)
		}

		fmt.Fprintf(os.Stderr, "bbparallel: %v\n", err)
		os.Exit(1)
	}
}
