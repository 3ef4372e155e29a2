package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"gopkg.in/yaml.v3"

	"github.com/bountybench/bbparallel/config"
	"github.com/bountybench/bbparallel/core"
)

// InitCommand is an interactive wizard that scaffolds a YAML run
// description, ambient CLI tooling not named by the distilled spec
// (see SPEC_FULL.md). Adapted from the teacher's promptui-based
// InitCommand: same prompt/confirm/save flow, generating a RunConfig
// document instead of an ofelia.ini one.
type InitCommand struct {
	Output   string `long:"output" short:"o" description:"output file path" default:"./run_config.yaml"`
	LogLevel string `long:"log-level" description:"set log level"`
	Logger   core.Logger
}

func (c *InitCommand) Execute(_ []string) error {
	c.Logger.Noticef("Run configuration wizard")

	if _, err := os.Stat(c.Output); err == nil {
		if !c.confirmOverwrite() {
			c.Logger.Noticef("setup canceled")
			return nil
		}
	}

	cfg, err := c.promptRunConfig()
	if err != nil {
		return fmt.Errorf("gather run configuration: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode run configuration: %w", err)
	}
	if err := os.WriteFile(c.Output, data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", c.Output, err)
	}

	c.Logger.Noticef("configuration saved to: %s", c.Output)
	c.Logger.Noticef("suggested: bbparallel run %s --max-parallel %d", c.Output, DefaultMaxParallel())
	return nil
}

func (c *InitCommand) confirmOverwrite() bool {
	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("%s already exists, overwrite", c.Output),
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}

func (c *InitCommand) promptRunConfig() (*config.RunConfig, error) {
	workflowType, err := (&promptui.Select{
		Label: "Workflow type",
		Items: []string{"exploit_workflow", "patch_workflow", "detect_workflow"},
	}).Run()
	if err != nil {
		return nil, err
	}
	workflowTypeValue := []string{"exploit_workflow", "patch_workflow", "detect_workflow"}[workflowType]

	taskDir, err := (&promptui.Prompt{Label: "Task directory (e.g. bountytasks/lunary)"}).Run()
	if err != nil {
		return nil, err
	}
	bountyNumber, err := (&promptui.Prompt{Label: "Bounty number", Default: "0"}).Run()
	if err != nil {
		return nil, err
	}
	modelName, err := (&promptui.Prompt{Label: "Model name", Default: "anthropic/claude-3-5-sonnet"}).Run()
	if err != nil {
		return nil, err
	}
	trialsStr, err := (&promptui.Prompt{
		Label:    "Trials per config",
		Default:  "1",
		Validate: validatePositiveInt,
	}).Run()
	if err != nil {
		return nil, err
	}
	trials, _ := strconv.Atoi(trialsStr)

	cfg := &config.RunConfig{
		WorkflowType:    workflowTypeValue,
		TrialsPerConfig: trials,
		Tasks:           []config.TaskDescriptor{{TaskDir: taskDir, BountyNumber: bountyNumber}},
		Models:          []config.ModelDescriptor{{Name: modelName}},
		PhaseIterations: []int{1},
		LogFormat:       "slog",
	}

	if strings.HasPrefix(cfg.WorkflowType, config.DetectionPrefix) {
		vulnTypes, err := (&promptui.Prompt{
			Label:   "Vulnerability types (comma-separated, optional)",
			Default: "",
		}).Run()
		if err == nil && vulnTypes != "" {
			for _, v := range strings.Split(vulnTypes, ",") {
				cfg.VulnerabilityType = append(cfg.VulnerabilityType, strings.TrimSpace(v))
			}
		}
	}

	return cfg, nil
}

func validatePositiveInt(input string) error {
	n, err := strconv.Atoi(input)
	if err != nil {
		return fmt.Errorf("must be an integer")
	}
	if n < 0 {
		return fmt.Errorf("must be non-negative")
	}
	return nil
}
