package compare

import (
	"fmt"

	"github.com/rgehrsitz/healthsim/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one plan's year-end outcome for one scenario
type ComparisonResult struct {
	PlanName     string `json:"planName"`
	ScenarioName string `json:"scenarioName"`
	Description  string `json:"description,omitempty"`
	Months       int    `json:"months"`

	// Key Metrics
	YearTotal         decimal.Decimal `json:"yearTotal"`         // Cost to the employee including premiums
	YearService       decimal.Decimal `json:"yearService"`       // Cost less premiums
	YearPremiums      decimal.Decimal `json:"yearPremiums"`
	CoverageRemaining decimal.Decimal `json:"coverageRemaining"` // Unused employer contribution
	InNetworkPaid     decimal.Decimal `json:"inNetworkPaid"`     // Before the employer contribution
	OutOfNetworkPaid  decimal.Decimal `json:"outOfNetworkPaid"`

	// Comparison to Base
	CostDiffFromBase    decimal.Decimal `json:"costDiffFromBase"`
	CostPctFromBase     decimal.Decimal `json:"costPctFromBase"`
	ServiceDiffFromBase decimal.Decimal `json:"serviceDiffFromBase"`

	// Cumulative cost after each month
	Trajectory []decimal.Decimal `json:"trajectory,omitempty"`
}

// ScenarioComparison holds every compared plan's outcome for one scenario
type ScenarioComparison struct {
	ScenarioName       string             `json:"scenarioName"`
	Description        string             `json:"description,omitempty"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
}

// Results returns the base result followed by the alternatives
func (sc *ScenarioComparison) Results() []ComparisonResult {
	results := make([]ComparisonResult, 0, len(sc.AlternativeResults)+1)
	if sc.BaseResult != nil {
		results = append(results, *sc.BaseResult)
	}
	return append(results, sc.AlternativeResults...)
}

// Cheapest returns the result with the lowest year total; ties keep the earlier plan
func (sc *ScenarioComparison) Cheapest() *ComparisonResult {
	results := sc.Results()
	if len(results) == 0 {
		return nil
	}
	best := 0
	for i := range results {
		if results[i].YearTotal.LessThan(results[best].YearTotal) {
			best = i
		}
	}
	return &results[best]
}

// ComparisonSet represents a full plan comparison across scenarios
type ComparisonSet struct {
	RunID           string               `json:"runId,omitempty"`
	BasePlanName    string               `json:"basePlanName"`
	PlanNames       []string             `json:"planNames"`
	Scenarios       []ScenarioComparison `json:"scenarios"`
	Recommendations []string             `json:"recommendations"`
	ConfigPath      string               `json:"configPath,omitempty"`
}

// PlanTotals sums each plan's year total across every compared scenario, in plan order
func (cs *ComparisonSet) PlanTotals() []decimal.Decimal {
	totals := make([]decimal.Decimal, len(cs.PlanNames))
	index := make(map[string]int, len(cs.PlanNames))
	for i, name := range cs.PlanNames {
		index[name] = i
	}
	for i := range cs.Scenarios {
		for _, r := range cs.Scenarios[i].Results() {
			if j, ok := index[r.PlanName]; ok {
				totals[j] = totals[j].Add(r.YearTotal)
			}
		}
	}
	return totals
}

// MetricsCalculator extracts key metrics from simulation results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the year-end metrics of a simulation
func (mc *MetricsCalculator) CalculateMetrics(result *domain.SimulationResult) ComparisonResult {
	final := result.Final()
	return ComparisonResult{
		PlanName:          result.PlanName,
		ScenarioName:      result.ScenarioName,
		Months:            len(result.States),
		YearTotal:         final.YearTotal,
		YearService:       final.YearService,
		YearPremiums:      final.YearPremiums(),
		CoverageRemaining: final.CoverageRemaining,
		InNetworkPaid:     final.InNetwork.YearTotal,
		OutOfNetworkPaid:  final.OutOfNetwork.YearTotal,
		Trajectory:        result.YearTotals(),
	}
}

// CalculateComparison computes comparison metrics between a plan and the base plan
func (mc *MetricsCalculator) CalculateComparison(plan, base ComparisonResult) ComparisonResult {
	plan.CostDiffFromBase = plan.YearTotal.Sub(base.YearTotal)

	if !base.YearTotal.IsZero() {
		plan.CostPctFromBase = plan.CostDiffFromBase.
			Div(base.YearTotal).
			Mul(decimal.NewFromInt(100))
	}

	plan.ServiceDiffFromBase = plan.YearService.Sub(base.YearService)

	return plan
}

// GenerateRecommendations names the cheapest plan for every scenario and overall
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	for i := range compSet.Scenarios {
		sc := &compSet.Scenarios[i]
		best := sc.Cheapest()
		if best == nil || sc.BaseResult == nil {
			continue
		}
		if best.PlanName == sc.BaseResult.PlanName {
			if len(sc.AlternativeResults) > 0 {
				recommendations = append(recommendations,
					fmt.Sprintf("%s: %s (base) is the cheapest plan at $%s", sc.ScenarioName, best.PlanName, best.YearTotal.StringFixed(2)))
			}
			continue
		}
		savings := sc.BaseResult.YearTotal.Sub(best.YearTotal)
		recommendations = append(recommendations,
			fmt.Sprintf("%s: %s saves $%s over %s", sc.ScenarioName, best.PlanName, savings.StringFixed(2), sc.BaseResult.PlanName))
	}

	if len(compSet.Scenarios) > 1 && len(compSet.PlanNames) > 1 {
		totals := compSet.PlanTotals()
		best := 0
		for i := range totals {
			if totals[i].LessThan(totals[best]) {
				best = i
			}
		}
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest total across all scenarios: %s ($%s)", compSet.PlanNames[best], totals[best].StringFixed(2)))
	}

	return recommendations
}
