package core

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bountybench/bbparallel/config"
)

func TestPrepareOutputRoot_RecreatesDirectory(t *testing.T) {
	t.Parallel()
	repo := t.TempDir()
	writeFile(t, filepath.Join(repo, "parallel_logs", "stale.log"), "old\n")

	root, err := PrepareOutputRoot(repo)
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(root, "stale.log"))
	assert.DirExists(t, root)
}

func TestWriteManifest_ContainsTotalJobs(t *testing.T) {
	t.Parallel()
	repo := t.TempDir()
	root, err := PrepareOutputRoot(repo)
	require.NoError(t, err)

	cfg := &config.RunConfig{WorkflowType: "exploit_workflow"}
	require.NoError(t, WriteManifest(root, "run.yaml", cfg, 3))

	data, err := os.ReadFile(filepath.Join(root, "run_manifest.json"))
	require.NoError(t, err)

	var manifest RunManifest
	require.NoError(t, json.Unmarshal(data, &manifest))
	assert.Equal(t, 3, manifest.TotalJobs)
	assert.Equal(t, "run.yaml", manifest.ConfigPath)
}

func TestPrintSummary_ExitCodeReflectsFailures(t *testing.T) {
	t.Parallel()
	allOK := []JobResult{{Status: StatusCompleted}, {Status: StatusCompleted}}
	assert.Equal(t, 0, PrintSummary(allOK, time.Second))

	withFailure := []JobResult{{Status: StatusCompleted}, {Status: StatusFailed}}
	assert.Equal(t, 1, PrintSummary(withFailure, time.Second))

	withError := []JobResult{{Status: StatusError}}
	assert.Equal(t, 1, PrintSummary(withError, time.Second))
}
