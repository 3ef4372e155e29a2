package config

import (
	"fmt"
	"os"
	"reflect"

	"github.com/creasty/defaults"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML run-description at path, normalizes it, decodes
// it into a RunConfig, applies defaults, and validates it. Returns an
// error wrapping ErrConfigInvalid on any failure (spec.md §4.1).
func Load(path string) (*RunConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %q: %v", ErrConfigInvalid, path, err)
	}

	var loose map[string]interface{}
	if err := yaml.Unmarshal(raw, &loose); err != nil {
		return nil, fmt.Errorf("%w: parse %q: %v", ErrConfigInvalid, path, err)
	}

	normalizePhaseIterations(loose)

	cfg := &RunConfig{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(stringToSliceHook),
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: build decoder: %v", ErrConfigInvalid, err)
	}
	if err := decoder.Decode(loose); err != nil {
		return nil, fmt.Errorf("%w: decode %q: %v", ErrConfigInvalid, path, err)
	}

	// creasty/defaults fills zero-valued fields regardless of whether the
	// key was absent or explicitly set to zero; trials_per_config = 0 is
	// a meaningful value (spec.md §8), so its decoded value is restored
	// after defaulting when the key was present in the document.
	_, trialsExplicit := loose["trials_per_config"]
	explicitTrials := cfg.TrialsPerConfig

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("%w: apply defaults: %v", ErrConfigInvalid, err)
	}
	if trialsExplicit {
		cfg.TrialsPerConfig = explicitTrials
	}
	if len(cfg.PhaseIterations) == 0 {
		cfg.PhaseIterations = []int{1}
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalizePhaseIterations rewrites a scalar phase_iterations value
// into a single-element sequence before decoding, since mapstructure
// cannot express "int or []int" without this pre-pass (spec.md §4.1).
func normalizePhaseIterations(loose map[string]interface{}) {
	v, ok := loose["phase_iterations"]
	if !ok {
		return
	}
	if _, isSlice := v.([]interface{}); isSlice {
		return
	}
	loose["phase_iterations"] = []interface{}{v}
}

// stringToSliceHook wraps a bare scalar into a one-element slice when
// the destination field is a slice, covering vulnerability_type (and
// any other optional sequence key) given as a single scalar in YAML.
func stringToSliceHook(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
	if to == reflect.Slice && from != reflect.Slice && from != reflect.Map {
		return []interface{}{data}, nil
	}
	return data, nil
}
