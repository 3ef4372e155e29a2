package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bountybench/bbparallel/config"
)

// PrepareOutputRoot deletes and recreates parallel_logs/ under
// sourceRepo at the start of every run (spec.md §6).
func PrepareOutputRoot(sourceRepo string) (string, error) {
	root := filepath.Join(sourceRepo, "parallel_logs")
	if err := os.RemoveAll(root); err != nil {
		return "", fmt.Errorf("clear %s: %w", root, err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", root, err)
	}
	return root, nil
}

// WriteManifest writes the RunManifest as indented JSON to
// <outputRoot>/run_manifest.json before any job runs (spec.md §3, §4.9).
func WriteManifest(outputRoot, configPath string, cfg *config.RunConfig, totalJobs int) error {
	manifest := RunManifest{
		Timestamp:  time.Now().UTC(),
		ConfigPath: configPath,
		Config:     cfg,
		TotalJobs:  totalJobs,
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encode run manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(outputRoot, "run_manifest.json"), data, 0o644)
}

// statusMarker is the bracketed summary marker per spec.md §7.
func statusMarker(status JobStatus) string {
	switch status {
	case StatusCompleted:
		return "[OK]"
	case StatusFailed:
		return "[FAIL]"
	default:
		return "[ERR]"
	}
}

// PrintSummary prints the post-run table spec.md §4.9 describes and
// returns the process exit code: 0 iff every result is StatusCompleted.
func PrintSummary(results []JobResult, elapsed time.Duration) int {
	var completed, failed, errored int
	for _, r := range results {
		switch r.Status {
		case StatusCompleted:
			completed++
		case StatusFailed:
			failed++
		default:
			errored++
		}
	}

	fmt.Printf("\nRun summary: %d completed, %d failed, %d errored (%s)\n",
		completed, failed, errored, elapsed.Round(time.Second))
	fmt.Printf("%-6s %-12s %-30s %-10s %-24s %s\n", "STATUS", "JOB", "TASK", "BOUNTY", "MODEL", "DURATION")
	for _, r := range results {
		fmt.Printf("%-6s %-12s %-30s %-10s %-24s %s\n",
			statusMarker(r.Status), r.JobID, r.Job.TaskDir, r.Job.BountyNumber, r.Job.Model,
			r.Duration.Round(time.Second))
	}

	if failed > 0 || errored > 0 {
		return 1
	}
	return 0
}
