// Package tuimsg holds the messages scenes emit back to the root model.
package tuimsg

import (
	"github.com/rgehrsitz/healthsim/internal/compare"
	"github.com/rgehrsitz/healthsim/internal/domain"
)

// ScenarioSelectedMsg asks the root model to simulate a scenario under every plan
type ScenarioSelectedMsg struct {
	ScenarioName string
}

// CompareRequestedMsg asks the root model to compare every plan across every scenario
type CompareRequestedMsg struct {
	BasePlanName string
}

// SimulationCompleteMsg carries one scenario's results for every plan
type SimulationCompleteMsg struct {
	ScenarioName string
	Results      []domain.SimulationResult
	Err          error
}

// ComparisonCompleteMsg carries a finished comparison
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}
