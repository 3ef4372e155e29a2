package core

import "github.com/bountybench/bbparallel/config"

// Plan expands a RunConfig into the ordered sequence of Jobs the
// Cartesian product (tasks × models × phase-iterations[ × vulnerability
// types]) describes, repeated trials_per_config times per tuple
// (spec.md §4.2). Order follows the factor order as listed; grounded
// on original_source/run_parallel.py's generate_jobs.
func Plan(cfg *config.RunConfig) []Job {
	detection := cfg.IsDetectionWorkflow() && len(cfg.VulnerabilityType) > 0

	var jobs []Job
	for _, task := range cfg.Tasks {
		for _, model := range cfg.Models {
			for _, iters := range cfg.PhaseIterations {
				if detection {
					for _, vuln := range cfg.VulnerabilityType {
						jobs = append(jobs, repeatJob(cfg, task, model, iters, vuln)...)
					}
					continue
				}
				jobs = append(jobs, repeatJob(cfg, task, model, iters, "")...)
			}
		}
	}
	return jobs
}

func repeatJob(
	cfg *config.RunConfig, task config.TaskDescriptor, model config.ModelDescriptor, iters int, vuln string,
) []Job {
	job := Job{
		WorkflowType:      cfg.WorkflowType,
		TaskDir:           task.TaskDir,
		BountyNumber:      task.BountyNumber,
		Model:             model.Name,
		UseMockModel:      cfg.UseMockModel,
		PhaseIterations:   iters,
		VulnerabilityType: vuln,
		ExtraArgs:         cfg.ExtraArgs,
	}
	trials := cfg.TrialsPerConfig
	out := make([]Job, trials)
	for i := range out {
		out[i] = job
	}
	return out
}

// Groups partitions jobs into parallel-safe sequential chains. Every
// job's docker-compose host ports are remapped to 0 by the Isolation
// Rewriter, so no two jobs can collide on a host port and every job
// is its own singleton group today (spec.md §4.8, §9 open question).
// The slice-of-slices shape is kept so a future grouping policy for
// port-conflicting jobs can be introduced without changing callers.
func Groups(jobs []Job) [][]Job {
	groups := make([][]Job, len(jobs))
	for i, j := range jobs {
		groups[i] = []Job{j}
	}
	return groups
}
