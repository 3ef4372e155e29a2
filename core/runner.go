package core

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/gobs/args"
)

// Runtime holds the per-run settings and collaborators shared by every
// job: workdir, source tree, output root, clone retention, container
// lifecycle and logger. The child's interpreter is resolved per job
// (resolveInterpreter).
type Runtime struct {
	Workdir    string
	SourceRepo string
	OutputRoot string
	KeepClones bool
	Lifecycle  *ContainerLifecycle
	Logger     Logger
}

// RunJob executes the full per-job pipeline in the fixed order
// spec.md §4.7 lists, with guaranteed cleanup on every exit path. The
// steps run in a straight line; cleanup is registered with a single
// deferred call, so it runs on every return path.
func (rt *Runtime) RunJob(ctx context.Context, job Job) (result JobResult) {
	id := NewJobID()
	result = JobResult{JobID: id, Job: job, Status: StatusPending}

	res := NewJobResources(id, "")
	var cloned bool
	start := time.Now()

	defer func() {
		result.Duration = time.Since(start)
		rt.cleanup(ctx, res, cloned)
	}()

	result.Status = StatusRunning

	clonePath, err := CreateClone(rt.SourceRepo, rt.Workdir, id)
	if err != nil {
		result = rt.errored(result, err)
		return
	}
	cloned = true
	res.ClonePath = clonePath
	result.ClonePath = clonePath

	Rewrite(clonePath, id, rt.Logger)

	if rt.Lifecycle != nil {
		if err := rt.Lifecycle.CreateNetwork(ctx, res.Network); err != nil && rt.Logger != nil {
			rt.Logger.Warningf("%v", WrapNetworkCreateError(res.Network, err))
		}
	}

	cmd, env, err := rt.buildInvocation(job, clonePath, res.ComposePrefix)
	if err != nil {
		result = rt.errored(result, err)
		return
	}
	result.ChildCommand = cmd

	stdout, stderr, err := OpenStreamLogs(rt.OutputRoot, id)
	if err != nil {
		result = rt.errored(result, err)
		return
	}
	defer stdout.Close()
	defer stderr.Close()

	// #nosec G204 -- cmd is assembled from job fields constrained by config.Validate, not raw user shell input
	child := exec.CommandContext(ctx, cmd[0], cmd[1:]...)
	child.Dir = clonePath
	child.Env = env
	child.Stdout = stdout
	child.Stderr = stderr

	if err := child.Start(); err != nil {
		result = rt.errored(result, WrapChildSpawnError(err))
		return
	}

	waitErr := child.Wait()
	result = rt.classify(result, waitErr)
	return
}

// buildInvocation constructs the child command exactly as spec.md §6
// describes, preferring the clone-local interpreter when present
// (original_source/run_parallel.py's build_command).
func (rt *Runtime) buildInvocation(job Job, clonePath, composePrefix string) ([]string, []string, error) {
	python := rt.resolveInterpreter(clonePath)

	cmd := []string{
		python, "-m", "workflows.runner",
		"--workflow-type", job.WorkflowType,
		"--task_dir", job.TaskDir,
		"--bounty_number", job.BountyNumber,
		"--phase_iterations", strconv.Itoa(job.PhaseIterations),
	}
	if job.UseMockModel {
		cmd = append(cmd, "--use_mock_model")
	} else {
		cmd = append(cmd, "--model", job.Model)
	}
	if job.VulnerabilityType != "" && job.IsDetection() {
		cmd = append(cmd, "--vulnerability_type", job.VulnerabilityType)
	}
	if job.ExtraArgs != "" {
		cmd = append(cmd, args.GetArgs(job.ExtraArgs)...)
	}

	env := append([]string{}, os.Environ()...)
	env = append(env, "COMPOSE_PROJECT_NAME="+composePrefix)
	if vars := LoadEnvFile(clonePath); vars != nil {
		env = MergeEnv(env, vars)
	}

	return cmd, env, nil
}

func (rt *Runtime) resolveInterpreter(clonePath string) string {
	rel := filepath.Join("venv", "bin", "python")
	if runtime.GOOS == "windows" {
		rel = filepath.Join("venv", "Scripts", "python.exe")
	}
	candidate := filepath.Join(clonePath, rel)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return hostPython()
}

func hostPython() string {
	if p, err := exec.LookPath("python3"); err == nil {
		return p
	}
	return "python"
}

func (rt *Runtime) classify(result JobResult, waitErr error) JobResult {
	if waitErr == nil {
		result.Status = StatusCompleted
		result.ExitCode = 0
		return result
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		nzErr := NonZeroExitError{ExitCode: exitErr.ExitCode()}
		result.Status = StatusFailed
		result.ExitCode = nzErr.ExitCode
		result.Error = nzErr.Error()
		return result
	}
	result.Status = StatusError
	result.Error = waitErr.Error()
	return result
}

func (rt *Runtime) errored(result JobResult, err error) JobResult {
	result.Status = StatusError
	result.Error = err.Error()
	return result
}

// cleanup runs the unconditional teardown sequence from spec.md §4.7:
// log collection, compose teardown, project/network container
// removal, network destroy, clone removal. Every step is independent
// and failures are logged, never propagated (spec.md §7 CleanupFailed).
// When the clone step failed, cleanup returns without doing anything:
// CreateClone has already removed its partial copy, and no network or
// compose project exists yet.
func (rt *Runtime) cleanup(ctx context.Context, res JobResources, cloned bool) {
	if !cloned {
		return
	}

	CollectLogs(res.ClonePath, rt.OutputRoot, res.ID, rt.Logger)
	TeardownComposeProjects(ctx, res.ClonePath, res.ComposePrefix, rt.Logger)

	if rt.Lifecycle != nil {
		rt.Lifecycle.RemoveProjectContainers(ctx, res.ComposePrefix)
		rt.Lifecycle.RemoveContainersOnNetwork(ctx, res.Network)
		rt.Lifecycle.DestroyNetwork(ctx, res.Network)
	}

	if !rt.KeepClones {
		DestroyClone(res.ClonePath, rt.Logger)
	}
}
