package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/siqr/internal/model"
)

// DefaultSeed is used when a scenario does not set one.
const DefaultSeed uint64 = 1

// Scenario defines one outbreak run and the properties it must satisfy.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Seed fixes the random stream. Zero selects DefaultSeed.
	Seed uint64 `yaml:"seed,omitempty"`

	// Params configures the run. Unset policy fields take their defaults.
	Params model.Parameters `yaml:"params"`

	// Assertions are evaluated in order; every failure is reported.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates a property of the run.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Day is the series index (used by series_at).
	Day *int `yaml:"day,omitempty"`

	// Value is the expected count (used by series_at, max_active, final_count).
	Value *int `yaml:"value,omitempty"`

	// State is the one-letter state name (used by final_count).
	State string `yaml:"state,omitempty"`

	// Code is the expected ConfigError code (used by config_error).
	Code string `yaml:"code,omitempty"`
}

// Assertion type constants.
const (
	AssertSeriesLength       = "series_length"
	AssertSeriesAt           = "series_at"
	AssertMaxActive          = "max_active"
	AssertFinalCount         = "final_count"
	AssertNoExposed          = "no_exposed"
	AssertConservation       = "conservation"
	AssertRecoveredAbsorbing = "recovered_absorbing"
	AssertQuarantineTracking = "quarantine_tracking"
	AssertDeterministic      = "deterministic"
	AssertConfigError        = "config_error"
)

// EffectiveSeed returns the seed the scenario runs with.
func (s *Scenario) EffectiveSeed() uint64 {
	if s.Seed == 0 {
		return DefaultSeed
	}
	return s.Seed
}

// expectsConfigError reports whether the scenario expects the run to abort.
func (s *Scenario) expectsConfigError() bool {
	for _, a := range s.Assertions {
		if a.Type == AssertConfigError {
			return true
		}
	}
	return false
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks required fields and assertion shapes. Parameter
// values are not checked here: invalid parameters are a legitimate
// config_error scenario.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if len(s.Assertions) == 0 {
		return errors.New("at least one assertion is required")
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, a); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertSeriesLength, AssertNoExposed, AssertConservation,
		AssertRecoveredAbsorbing, AssertQuarantineTracking, AssertDeterministic:
	case AssertSeriesAt:
		if a.Day == nil || *a.Day < 0 {
			return fmt.Errorf("assertions[%d]: non-negative day is required for series_at", index)
		}
		if a.Value == nil {
			return fmt.Errorf("assertions[%d]: value is required for series_at", index)
		}
	case AssertMaxActive:
		if a.Value == nil {
			return fmt.Errorf("assertions[%d]: value is required for max_active", index)
		}
	case AssertFinalCount:
		if a.Value == nil {
			return fmt.Errorf("assertions[%d]: value is required for final_count", index)
		}
		if _, err := model.ParseState(a.State); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
	case AssertConfigError:
		if a.Code == "" {
			return fmt.Errorf("assertions[%d]: code is required for config_error", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
