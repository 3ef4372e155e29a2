package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bountybench/bbparallel/config"
	"github.com/bountybench/bbparallel/core"
)

// RunCommand is the default (and only mandatory) subcommand: it loads
// a run description, plans the job matrix, and executes it under a
// bounded concurrency limit (spec.md §6 CLI). Grounded on the
// teacher's DaemonCommand shape (Logger/LevelVar/LogLevel fields, an
// Execute method) with the daemon-specific fields replaced by this
// spec's scheduler knobs.
type RunCommand struct {
	Args struct {
		ConfigFile string `positional-arg-name:"config" description:"path to the YAML run description"`
	} `positional-args:"yes" required:"yes"`

	MaxParallel int    `long:"max-parallel" short:"j" default:"20" description:"bounded concurrency limit"`
	Workdir     string `long:"workdir" short:"w" description:"directory clones are materialized under (default: per-user temp subdirectory)"`
	KeepClones  bool   `long:"keep-clones" description:"retain clone directories after the run"`
	LogFormat   string `long:"log-format" default:"slog" description:"slog or logrus"`
	LogLevel    string `long:"log-level" description:"trace, debug, info, warning, error"`

	Logger   *slog.Logger
	LevelVar *slog.LevelVar
}

// Execute runs the command. Matches the jessevdk/go-flags Commander
// interface the teacher's cli package exposes for every subcommand.
func (c *RunCommand) Execute(args []string) error {
	if err := ApplyLogLevel(c.LogLevel, c.LevelVar); err != nil {
		return err
	}

	if c.Args.ConfigFile == "" {
		return ErrSourceRepoRequired
	}
	if c.MaxParallel <= 0 {
		return ErrMaxParallelInvalid
	}

	cfg, err := config.Load(c.Args.ConfigFile)
	if err != nil {
		return err
	}

	sourceRepo, err := c.sourceRepo()
	if err != nil {
		return err
	}

	workdir := c.Workdir
	if workdir == "" {
		workdir = filepath.Join(os.TempDir(), "bountybench_parallel")
	}
	if err := os.MkdirAll(workdir, 0o755); err != nil {
		return fmt.Errorf("create workdir %q: %w", workdir, err)
	}

	logger := c.buildLogger()

	outputRoot, err := core.PrepareOutputRoot(sourceRepo)
	if err != nil {
		return err
	}

	jobs := core.Plan(cfg)
	if err := core.WriteManifest(outputRoot, c.Args.ConfigFile, cfg, len(jobs)); err != nil {
		return err
	}
	if len(jobs) == 0 {
		logger.Noticef("%v, nothing to do", core.ErrEmptyPlan)
		return nil
	}

	lifecycle, err := core.NewContainerLifecycle(logger)
	if err != nil {
		return fmt.Errorf("connect to container engine: %w", err)
	}

	rt := &core.Runtime{
		Workdir:    workdir,
		SourceRepo: sourceRepo,
		OutputRoot: outputRoot,
		KeepClones: c.KeepClones,
		Lifecycle:  lifecycle,
		Logger:     logger,
	}

	groups := core.Groups(jobs)

	start := time.Now()
	results := core.Schedule(context.Background(), rt, groups, c.MaxParallel)
	exitCode := core.PrintSummary(results, time.Since(start))

	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}

// sourceRepo resolves the source tree Clone Manager copies from: the
// invocation's working directory, matching
// original_source/run_parallel.py's own `Path.cwd().resolve()` — the
// config file may live anywhere (e.g. a configs/ subdirectory) and is
// not itself part of the tree being cloned.
func (c *RunCommand) sourceRepo() (string, error) {
	repo, err := os.Getwd()
	if err != nil {
		return "", err
	}
	repo, err = filepath.Abs(repo)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(repo); err != nil {
		return "", fmt.Errorf("%w: %s", ErrSourceRepoMissing, repo)
	}
	return repo, nil
}

func (c *RunCommand) buildLogger() core.Logger {
	if c.LogFormat == "logrus" {
		level, err := core.ParseLogrusLevel(c.LogLevel)
		if err != nil {
			level = logrus.InfoLevel
		}
		return core.NewLogrusAdapter(level)
	}
	return core.NewSlogAdapter(c.Logger)
}

// DefaultMaxParallel mirrors spec.md §6's "a sensible host-core-derived
// value" note; the CLI flag's own default stays the spec's literal 20,
// but InitCommand offers this as a suggested starting point.
func DefaultMaxParallel() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 20
	}
	return n
}
