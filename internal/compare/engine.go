package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/healthsim/internal/calculation"
	"github.com/rgehrsitz/healthsim/internal/domain"
)

// CompareEngine orchestrates plan comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BasePlanName string   // Plan the others are compared against; defaults to the first compared plan
	Plans        []string // Plans to compare; empty means every configured plan
	Scenarios    []string // Scenarios to run; empty means every configured scenario
}

// Compare runs every selected scenario under every selected plan and measures
// each plan against the base plan
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {

	plans, err := selectPlans(config, options.Plans)
	if err != nil {
		return nil, err
	}
	scenarios, err := selectScenarios(config, options.Scenarios)
	if err != nil {
		return nil, err
	}

	baseName := options.BasePlanName
	if baseName == "" {
		baseName = plans[0].Name
	}
	baseIndex := -1
	for i, plan := range plans {
		if plan.Name == baseName {
			baseIndex = i
			break
		}
	}
	if baseIndex < 0 {
		return nil, fmt.Errorf("base plan %s %w in configuration", baseName, domain.ErrNotFound)
	}

	compSet := &ComparisonSet{
		BasePlanName: baseName,
		PlanNames:    make([]string, len(plans)),
		Scenarios:    make([]ScenarioComparison, 0, len(scenarios)),
	}
	for i, plan := range plans {
		compSet.PlanNames[i] = plan.Name
	}

	for _, scenario := range scenarios {
		baseRun, err := ce.CalcEngine.RunScenario(ctx, plans[baseIndex], scenario)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate base plan: %w", err)
		}
		baseResult := ce.MetricsCalculator.CalculateMetrics(baseRun)
		baseResult.Description = plans[baseIndex].Description

		sc := ScenarioComparison{
			ScenarioName:       scenario.Name,
			Description:        scenario.Description,
			BaseResult:         &baseResult,
			AlternativeResults: []ComparisonResult{},
		}

		for i, plan := range plans {
			if i == baseIndex {
				continue
			}
			run, err := ce.CalcEngine.RunScenario(ctx, plan, scenario)
			if err != nil {
				return nil, fmt.Errorf("failed to calculate plan %s: %w", plan.Name, err)
			}
			altResult := ce.MetricsCalculator.CalculateMetrics(run)
			altResult.Description = plan.Description
			altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
			sc.AlternativeResults = append(sc.AlternativeResults, altResult)
		}

		compSet.Scenarios = append(compSet.Scenarios, sc)
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func selectPlans(config *domain.Configuration, names []string) ([]*domain.Plan, error) {
	if len(names) == 0 {
		names = config.PlanNames()
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no plans to compare")
	}
	plans := make([]*domain.Plan, 0, len(names))
	for _, name := range names {
		plan, ok := config.FindPlan(name)
		if !ok {
			return nil, fmt.Errorf("plan %s %w in configuration", name, domain.ErrNotFound)
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func selectScenarios(config *domain.Configuration, names []string) ([]*domain.Scenario, error) {
	if len(names) == 0 {
		names = config.ScenarioNames()
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no scenarios to compare")
	}
	scenarios := make([]*domain.Scenario, 0, len(names))
	for _, name := range names {
		scenario, ok := config.FindScenario(name)
		if !ok {
			return nil, fmt.Errorf("scenario %s %w in configuration", name, domain.ErrNotFound)
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios, nil
}
