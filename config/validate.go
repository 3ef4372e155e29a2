package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrConfigInvalid is returned (wrapped) whenever the run description
// is missing required keys or fails basic type/range checks
// (spec.md §4.1, §7).
var ErrConfigInvalid = errors.New("invalid run configuration")

var validate = validator.New()

// Validate checks structural requirements spec.md §4.1 calls out:
// workflow_type present, trials_per_config non-negative, every task
// and model descriptor complete, every phase-iteration count positive.
func Validate(cfg *RunConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}

	for i, n := range cfg.PhaseIterations {
		if n <= 0 {
			return fmt.Errorf("%w: phase_iterations[%d] must be positive, got %d", ErrConfigInvalid, i, n)
		}
	}

	return nil
}

// IsDetectionWorkflow reports whether WorkflowType begins with the
// detection prefix (spec.md §4.2), the condition under which
// vulnerability types become a planning factor.
func (c *RunConfig) IsDetectionWorkflow() bool {
	return len(c.WorkflowType) >= len(DetectionPrefix) && c.WorkflowType[:len(DetectionPrefix)] == DetectionPrefix
}
