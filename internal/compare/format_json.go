package compare

import (
	"encoding/json"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty       bool // If true, format with indentation
	Trajectories bool // If true, include the month-by-month cumulative cost of every plan
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	out := compSet
	if !jf.Trajectories {
		out = withoutTrajectories(compSet)
	}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(out, "", "  ")
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// withoutTrajectories returns a copy of compSet with every trajectory dropped
func withoutTrajectories(compSet *ComparisonSet) *ComparisonSet {
	trimmed := *compSet
	trimmed.Scenarios = make([]ScenarioComparison, len(compSet.Scenarios))
	for i, sc := range compSet.Scenarios {
		if sc.BaseResult != nil {
			base := *sc.BaseResult
			base.Trajectory = nil
			sc.BaseResult = &base
		}
		alts := make([]ComparisonResult, len(sc.AlternativeResults))
		for j, alt := range sc.AlternativeResults {
			alt.Trajectory = nil
			alts[j] = alt
		}
		sc.AlternativeResults = alts
		trimmed.Scenarios[i] = sc
	}
	return &trimmed
}
