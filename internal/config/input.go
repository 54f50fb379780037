package config

import (
	"fmt"
	"io"
	"os"

	"github.com/rgehrsitz/healthsim/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of plan catalog and scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// LoadFromReader loads configuration from a YAML or JSON stream
func (ip *InputParser) LoadFromReader(r io.Reader) (*domain.Configuration, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a configuration document. JSON is accepted as a YAML subset.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration. A catalog with no
// scenarios is valid; scenarios can be supplied separately.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Plans) == 0 {
		return fmt.Errorf("at least one plan is required")
	}

	seen := make(map[string]bool, len(config.Plans))
	for i := range config.Plans {
		plan := &config.Plans[i]
		if err := plan.Validate(); err != nil {
			return fmt.Errorf("plan %d (%s) validation failed: %w", i, plan.Name, err)
		}
		if seen[plan.Name] {
			return fmt.Errorf("duplicate plan name %q", plan.Name)
		}
		seen[plan.Name] = true
	}

	scenarios := make(map[string]bool, len(config.Scenarios))
	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		if err := scenario.Validate(); err != nil {
			return fmt.Errorf("scenario %d (%s) validation failed: %w", i, scenario.Name, err)
		}
		if scenarios[scenario.Name] {
			return fmt.Errorf("duplicate scenario name %q", scenario.Name)
		}
		scenarios[scenario.Name] = true
	}

	for id, name := range config.ServiceNames {
		if id == "" {
			return fmt.Errorf("service_names: empty identifier for %q", name)
		}
	}

	return nil
}

// LoadScenarios loads a standalone list of scenarios, e.g. for running a new
// set of usage patterns against an existing catalog
func (ip *InputParser) LoadScenarios(filename string) ([]domain.Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var doc struct {
		Scenarios []domain.Scenario `yaml:"scenarios"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(doc.Scenarios) == 0 {
		return nil, fmt.Errorf("%s: no scenarios found", filename)
	}
	for i := range doc.Scenarios {
		if err := doc.Scenarios[i].Validate(); err != nil {
			return nil, fmt.Errorf("scenario %d (%s) validation failed: %w", i, doc.Scenarios[i].Name, err)
		}
	}
	return doc.Scenarios, nil
}
