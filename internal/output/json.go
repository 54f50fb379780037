package output

import (
	"encoding/json"

	"github.com/rgehrsitz/healthsim/internal/domain"
)

// JSONFormatter writes the flat monthly records of every result
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

// ResultRecord is the serialized form of one simulation run
type ResultRecord struct {
	Plan     string              `json:"plan"`
	Scenario string              `json:"scenario"`
	Months   []domain.PlanRecord `json:"months"`
}

// Records flattens results for JSON consumers
func Records(results []domain.SimulationResult) []ResultRecord {
	records := make([]ResultRecord, len(results))
	for i, r := range results {
		records[i] = ResultRecord{Plan: r.PlanName, Scenario: r.ScenarioName, Months: r.Records()}
	}
	return records
}

func (j JSONFormatter) Format(results []domain.SimulationResult) ([]byte, error) {
	return json.MarshalIndent(Records(results), "", "  ")
}
