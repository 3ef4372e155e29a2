// Package config holds the declarative run-description types and the
// loader/validator that turn a YAML document into a typed RunConfig.
package config

// TaskDescriptor identifies one benchmark task: a task directory and
// the bounty number within it.
type TaskDescriptor struct {
	TaskDir      string `yaml:"task_dir" mapstructure:"task_dir" validate:"required"`
	BountyNumber string `yaml:"bounty_number" mapstructure:"bounty_number" validate:"required"`
}

// ModelDescriptor names one model under evaluation.
type ModelDescriptor struct {
	Name string `yaml:"name" mapstructure:"name" validate:"required"`
}

// RunConfig is the parsed run description (spec.md §3, §4.1, §6).
type RunConfig struct {
	WorkflowType      string            `yaml:"workflow_type" mapstructure:"workflow_type" validate:"required"`
	TrialsPerConfig   int               `yaml:"trials_per_config" mapstructure:"trials_per_config" default:"1" validate:"gte=0"`
	Tasks             []TaskDescriptor  `yaml:"tasks" mapstructure:"tasks" validate:"dive"`
	Models            []ModelDescriptor `yaml:"models" mapstructure:"models" validate:"dive"`
	PhaseIterations   []int             `yaml:"phase_iterations" mapstructure:"phase_iterations"`
	VulnerabilityType []string          `yaml:"vulnerability_type,omitempty" mapstructure:"vulnerability_type"`
	UseMockModel      bool              `yaml:"use_mock_model" mapstructure:"use_mock_model" default:"false"`

	// ExtraArgs is appended (shell-word split) to every child
	// invocation after the fixed flags. Ambient CLI-passthrough
	// affordance not present in the distilled spec; see SPEC_FULL.md §3.
	ExtraArgs string `yaml:"extra_args,omitempty" mapstructure:"extra_args"`

	// LogFormat is "slog" (default) or "logrus". It is validated and
	// recorded in the run manifest; the Logger backend itself is chosen
	// by the run command's --log-format flag, not by this key.
	LogFormat string `yaml:"log_format" mapstructure:"log_format" default:"slog" validate:"omitempty,oneof=slog logrus"`
}

// DetectionPrefix marks workflow kinds for which vulnerability types
// are a meaningful planning factor (spec.md §4.2).
const DetectionPrefix = "detect_"
