package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/lorenz/internal/machine"
	"github.com/roach88/lorenz/internal/teleprinter"
)

// Scenario describes a machine run and what it must produce.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Patterns is the wheel setting file. Relative paths are resolved
	// against the scenario's base path when loaded.
	Patterns string `yaml:"patterns"`

	// Setting names the setting inside Patterns. It may be omitted when the
	// file holds a single setting.
	Setting string `yaml:"setting,omitempty"`

	// Positions overrides the setting's start positions group by group.
	Positions *machine.Positions `yaml:"positions,omitempty"`

	// Input is teleprinter text. Symbols gives raw code points instead.
	// At most one may be set.
	Input   string `yaml:"input,omitempty"`
	Symbols []int  `yaml:"symbols,omitempty"`

	// Steps is the program to run. It defaults to a single feed.
	Steps []Step `yaml:"steps,omitempty"`

	// Assertions validate the result.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one operation on the machine.
type Step struct {
	// Op is one of feed, step, backstep or reset.
	Op string `yaml:"op"`

	// Count repeats step and backstep. Zero means once.
	Count int `yaml:"count,omitempty"`
}

// Step operations.
const (
	OpFeed     = "feed"
	OpStep     = "step"
	OpBackstep = "backstep"
	OpReset    = "reset"
)

// Assertion validates the result of a scenario.
type Assertion struct {
	// Type specifies the assertion type:
	// - "output_equals": the concatenated output decodes to Expect
	// - "positions_equal": the final positions match Positions, per group given
	// - "round_trip": rerunning the steps on the output recovers the input
	// - "keystream_prefix": the keystream from the start decodes to Expect
	Type string `yaml:"type"`

	// Expect is teleprinter text (output_equals, keystream_prefix).
	Expect string `yaml:"expect,omitempty"`

	// Positions are the expected final positions (positions_equal).
	Positions *machine.Positions `yaml:"positions,omitempty"`
}

// Assertion type constants.
const (
	AssertOutputEquals    = "output_equals"
	AssertPositionsEqual  = "positions_equal"
	AssertRoundTrip       = "round_trip"
	AssertKeystreamPrefix = "keystream_prefix"
)

// LoadScenario reads and parses a scenario YAML file. A relative patterns
// path is resolved against the scenario file's directory.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving the patterns path relative to basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict fields catch typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Patterns != "" && !filepath.IsAbs(scenario.Patterns) && basePath != "" {
		scenario.Patterns = filepath.Join(basePath, scenario.Patterns)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// Stream returns the scenario's input as code points.
func (s *Scenario) Stream() ([]int, error) {
	if s.Input != "" {
		return teleprinter.Encode(s.Input)
	}
	out := make([]int, len(s.Symbols))
	copy(out, s.Symbols)
	return out, nil
}

// Program returns the steps to run, defaulting to a single feed.
func (s *Scenario) Program() []Step {
	if len(s.Steps) == 0 {
		return []Step{{Op: OpFeed}}
	}
	return s.Steps
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Patterns == "" {
		return fmt.Errorf("patterns is required")
	}
	if _, err := os.Stat(s.Patterns); os.IsNotExist(err) {
		return &PatternsNotFoundError{Scenario: s.Name, Path: s.Patterns}
	}

	if s.Input != "" && len(s.Symbols) > 0 {
		return fmt.Errorf("input and symbols are mutually exclusive")
	}
	if _, err := teleprinter.Encode(s.Input); err != nil {
		return fmt.Errorf("input: %w", err)
	}
	for i, v := range s.Symbols {
		if v < 0 || v >= machine.SymbolLimit {
			return fmt.Errorf("symbols[%d]: %d is outside [0, %d)", i, v, machine.SymbolLimit)
		}
	}

	feeds := 0
	for i, step := range s.Program() {
		switch step.Op {
		case OpFeed, OpReset:
			if step.Count != 0 {
				return fmt.Errorf("steps[%d]: count is not allowed for %s", i, step.Op)
			}
			if step.Op == OpFeed {
				feeds++
			}
		case OpStep, OpBackstep:
			if step.Count < 0 {
				return fmt.Errorf("steps[%d]: count must be non-negative", i)
			}
		case "":
			return fmt.Errorf("steps[%d]: op is required", i)
		default:
			return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}
	}
	if feeds > 0 && s.Input == "" && len(s.Symbols) == 0 {
		return fmt.Errorf("input or symbols is required when steps feed")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertOutputEquals:
		// An empty expect is valid when nothing is fed.
	case AssertKeystreamPrefix:
		if a.Expect == "" {
			return fmt.Errorf("assertions[%d]: expect is required for keystream_prefix", index)
		}
	case AssertPositionsEqual:
		if a.Positions == nil {
			return fmt.Errorf("assertions[%d]: positions is required for positions_equal", index)
		}
	case AssertRoundTrip:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	if _, err := teleprinter.Encode(a.Expect); err != nil {
		return fmt.Errorf("assertions[%d]: expect: %w", index, err)
	}
	return nil
}
