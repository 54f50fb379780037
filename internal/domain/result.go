package domain

import "github.com/shopspring/decimal"

// SimulationResult holds one plan's month-by-month trajectory for one scenario
type SimulationResult struct {
	PlanName     string      `json:"planName"`
	ScenarioName string      `json:"scenarioName"`
	States       []PlanState `json:"states"`
}

// Final returns the year-end cumulative snapshot, or the zero state for an empty run
func (r SimulationResult) Final() PlanState {
	if len(r.States) == 0 {
		return PlanState{}
	}
	return r.States[len(r.States)-1]
}

// Records flattens every monthly state
func (r SimulationResult) Records() []PlanRecord {
	records := make([]PlanRecord, len(r.States))
	for i, s := range r.States {
		records[i] = s.Record()
	}
	return records
}

// YearTotals returns the cumulative cost after each month, for charting
func (r SimulationResult) YearTotals() []decimal.Decimal {
	totals := make([]decimal.Decimal, len(r.States))
	for i, s := range r.States {
		totals[i] = s.YearTotal
	}
	return totals
}
