package core

import (
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInvocation_ModelFlag(t *testing.T) {
	t.Parallel()
	rt := &Runtime{}
	job := Job{
		WorkflowType:    "exploit_workflow",
		TaskDir:         "bountytasks/lunary",
		BountyNumber:    "0",
		Model:           "anthropic/claude-3-5-sonnet",
		PhaseIterations: 1,
	}

	cmd, env, err := rt.buildInvocation(job, t.TempDir(), "bb_abc1234567")
	require.NoError(t, err)

	assert.Contains(t, cmd, "--model")
	assert.Contains(t, cmd, "anthropic/claude-3-5-sonnet")
	assert.NotContains(t, cmd, "--use_mock_model")
	assert.Contains(t, env, "COMPOSE_PROJECT_NAME=bb_abc1234567")
}

func TestBuildInvocation_MockModelFlag(t *testing.T) {
	t.Parallel()
	rt := &Runtime{}
	job := Job{
		WorkflowType:    "exploit_workflow",
		TaskDir:         "t",
		BountyNumber:    "0",
		UseMockModel:    true,
		PhaseIterations: 1,
	}

	cmd, _, err := rt.buildInvocation(job, t.TempDir(), "bb_abc1234567")
	require.NoError(t, err)

	assert.Contains(t, cmd, "--use_mock_model")
	assert.NotContains(t, cmd, "--model")
}

func TestBuildInvocation_VulnerabilityTypeOnlyForDetection(t *testing.T) {
	t.Parallel()
	rt := &Runtime{}

	detect := Job{WorkflowType: "detect_workflow", VulnerabilityType: "sqli", PhaseIterations: 1}
	cmd, _, err := rt.buildInvocation(detect, t.TempDir(), "bb_x")
	require.NoError(t, err)
	assert.Contains(t, cmd, "--vulnerability_type")
	assert.Contains(t, cmd, "sqli")

	patch := Job{WorkflowType: "patch_workflow", VulnerabilityType: "sqli", PhaseIterations: 1}
	cmd2, _, err := rt.buildInvocation(patch, t.TempDir(), "bb_x")
	require.NoError(t, err)
	assert.NotContains(t, cmd2, "--vulnerability_type")
}

func TestBuildInvocation_ExtraArgsAppended(t *testing.T) {
	t.Parallel()
	rt := &Runtime{}
	job := Job{
		WorkflowType:    "exploit_workflow",
		TaskDir:         "t",
		BountyNumber:    "0",
		Model:           "m",
		PhaseIterations: 1,
		ExtraArgs:       `--flag "quoted value" --other`,
	}

	cmd, _, err := rt.buildInvocation(job, t.TempDir(), "bb_abc1234567")
	require.NoError(t, err)

	assert.Contains(t, cmd, "--flag")
	assert.Contains(t, cmd, "quoted value")
	assert.Contains(t, cmd, "--other")
	assert.Equal(t, "--other", cmd[len(cmd)-1])
}

func TestBuildInvocation_EmptyExtraArgsAddsNothing(t *testing.T) {
	t.Parallel()
	rt := &Runtime{}
	job := Job{WorkflowType: "exploit_workflow", TaskDir: "t", BountyNumber: "0", Model: "m", PhaseIterations: 1}

	cmd, _, err := rt.buildInvocation(job, t.TempDir(), "bb_x")
	require.NoError(t, err)

	assert.Equal(t, "--model", cmd[len(cmd)-2])
}

func TestClassify_NonZeroExitSetsExitCodeAndWrappedError(t *testing.T) {
	t.Parallel()
	rt := &Runtime{}
	cmd := exec.Command("sh", "-c", "exit 3")
	waitErr := cmd.Run()
	require.Error(t, waitErr)

	result := rt.classify(JobResult{}, waitErr)

	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, NonZeroExitError{ExitCode: 3}.Error(), result.Error)
}

func TestClassify_CompletedOnNilError(t *testing.T) {
	t.Parallel()
	rt := &Runtime{}
	result := rt.classify(JobResult{}, nil)
	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, 0, result.ExitCode)
}

func TestErrored_WrapsChildSpawnFailure(t *testing.T) {
	t.Parallel()
	rt := &Runtime{}
	_, err := exec.LookPath("definitely-not-a-real-binary-xyz")
	require.Error(t, err)

	result := rt.errored(JobResult{}, WrapChildSpawnError(err))

	assert.Equal(t, StatusError, result.Status)
	assert.Contains(t, result.Error, "child process spawn failed")
}

func TestResolveInterpreter_PrefersCloneLocalVenv(t *testing.T) {
	t.Parallel()
	rt := &Runtime{}
	clone := t.TempDir()
	venvPython := filepath.Join(clone, "venv", "bin", "python")
	writeFile(t, venvPython, "#!/bin/sh\n")

	assert.Equal(t, venvPython, rt.resolveInterpreter(clone))
}

func TestResolveInterpreter_FallsBackToHost(t *testing.T) {
	t.Parallel()
	rt := &Runtime{}
	assert.NotEmpty(t, rt.resolveInterpreter(t.TempDir()))
}
