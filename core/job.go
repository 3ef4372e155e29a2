package core

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bountybench/bbparallel/config"
)

// JobStatus is a Job's position in the pending→running→terminal
// state machine (spec.md §4.7).
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusError     JobStatus = "error"
)

// Job is one unit of execution: a fixed parameter tuple for a single
// workflow-binary invocation (spec.md §3). Immutable after planning.
type Job struct {
	WorkflowType      string
	TaskDir           string
	BountyNumber      string
	Model             string
	UseMockModel      bool
	PhaseIterations   int
	VulnerabilityType string // empty means absent from this job
	ExtraArgs         string // shell-word split and appended to the child invocation
}

// IsDetection reports whether this job's workflow kind begins with
// the detection prefix (spec.md §4.2).
func (j Job) IsDetection() bool {
	return strings.HasPrefix(j.WorkflowType, config.DetectionPrefix)
}

// JobID is a short opaque token, unique within a run, used as the
// sole namespace prefix for every job-scoped identifier (spec.md §3).
type JobID string

// NewJobID derives a fresh 10-hex-character token from a random UUID.
func NewJobID() JobID {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return JobID(raw[:10])
}

// Network returns this job's private Docker network name.
func (id JobID) Network() string { return "bb_net_" + string(id) }

// ComposePrefix returns this job's compose-project prefix.
func (id JobID) ComposePrefix() string { return "bb_" + string(id) }

// CloneDirName returns the clone directory's basename under the workdir.
func (id JobID) CloneDirName() string { return "bb_job_" + string(id) }

// JobResources are the runtime handles owned exclusively by one job,
// created at job start and destroyed at job end (spec.md §3).
type JobResources struct {
	ID            JobID
	ClonePath     string
	Network       string
	ComposePrefix string
}

// NewJobResources derives a job's private resource names from its ID.
func NewJobResources(id JobID, clonePath string) JobResources {
	return JobResources{
		ID:            id,
		ClonePath:     clonePath,
		Network:       id.Network(),
		ComposePrefix: id.ComposePrefix(),
	}
}

// JobResult is a job's outcome record (spec.md §3).
type JobResult struct {
	JobID        JobID
	Job          Job
	Status       JobStatus
	ExitCode     int
	Duration     time.Duration
	ClonePath    string
	Error        string
	ChildCommand []string
}

// RunManifest is written once at the start of a run, before any job
// executes (spec.md §3, §4.9).
type RunManifest struct {
	Timestamp  time.Time        `json:"timestamp"`
	ConfigPath string           `json:"config_path"`
	Config     *config.RunConfig `json:"config"`
	TotalJobs  int              `json:"total_jobs"`
}
