package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/healthsim/internal/domain"
)

// Observer is notified after every simulation run, successful or not
type Observer interface {
	ObserveSimulation(planName, scenarioName string, months int, elapsed time.Duration, err error)
}

// CalculationEngine orchestrates plan simulations over configured scenarios
type CalculationEngine struct {
	Logger   Logger
	Observer Observer
	Debug    bool // Log every monthly snapshot
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Logger: NopLogger{},
	}
}

// SetLogger replaces the engine's logger; nil installs a no-op logger
func (ce *CalculationEngine) SetLogger(logger Logger) {
	if logger == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = logger
}

// initialStates caps the up-front allocation for a result; longer runs grow by append
const initialStates = 120

// RunScenario simulates one scenario under one plan and collects every monthly state.
// The whole scenario is validated before any month is accounted for.
func (ce *CalculationEngine) RunScenario(ctx context.Context, plan *domain.Plan, scenario *domain.Scenario) (result *domain.SimulationResult, err error) {
	if plan == nil || scenario == nil {
		return nil, fmt.Errorf("plan and scenario are required")
	}

	start := time.Now()
	defer func() {
		if ce.Observer != nil {
			months := 0
			if result != nil {
				months = len(result.States)
			}
			ce.Observer.ObserveSimulation(plan.Name, scenario.Name, months, time.Since(start), err)
		}
	}()

	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	sim, err := NewPlanSimulation(*plan)
	if err != nil {
		return nil, err
	}

	ce.Logger.Infof("simulating plan=%s scenario=%s months=%d", plan.Name, scenario.Name, scenario.MonthCount())

	result = &domain.SimulationResult{
		PlanName:     plan.Name,
		ScenarioName: scenario.Name,
		States:       make([]domain.PlanState, 0, min(scenario.MonthCount(), initialStates)),
	}

	for state := range sim.Run(scenario.ServiceMonths()) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("simulation %s/%s interrupted: %w", plan.Name, scenario.Name, err)
		}
		result.States = append(result.States, state)
		if ce.Debug {
			ce.Logger.Debugf("plan=%s scenario=%s month=%d month_total=%s year_total=%s coverage_remaining=%s in_deductible=%s in_oop=%s out_deductible=%s out_oop=%s",
				plan.Name, scenario.Name, len(result.States),
				state.MonthTotal.StringFixed(2), state.YearTotal.StringFixed(2),
				state.CoverageRemaining.StringFixed(2),
				state.InNetwork.Deductible.StringFixed(2), state.InNetwork.OOPMaximum.StringFixed(2),
				state.OutOfNetwork.Deductible.StringFixed(2), state.OutOfNetwork.OOPMaximum.StringFixed(2))
		}
	}
	if err := sim.Err(); err != nil {
		return nil, fmt.Errorf("simulation %s/%s: %w", plan.Name, scenario.Name, err)
	}

	final := result.Final()
	ce.Logger.Infof("plan=%s scenario=%s year_total=%s year_service=%s coverage_remaining=%s",
		plan.Name, scenario.Name, final.YearTotal.StringFixed(2), final.YearService.StringFixed(2), final.CoverageRemaining.StringFixed(2))

	return result, nil
}

// RunByName looks up a plan and scenario in the configuration and simulates them
func (ce *CalculationEngine) RunByName(ctx context.Context, config *domain.Configuration, planName, scenarioName string) (*domain.SimulationResult, error) {
	plan, ok := config.FindPlan(planName)
	if !ok {
		return nil, fmt.Errorf("plan %s %w in configuration", planName, domain.ErrNotFound)
	}
	scenario, ok := config.FindScenario(scenarioName)
	if !ok {
		return nil, fmt.Errorf("scenario %s %w in configuration", scenarioName, domain.ErrNotFound)
	}
	return ce.RunScenario(ctx, plan, scenario)
}

// RunScenarios simulates every configured scenario under every configured plan,
// scenario by scenario
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) ([]domain.SimulationResult, error) {
	if len(config.Plans) == 0 {
		return nil, fmt.Errorf("no plans configured")
	}
	if len(config.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios configured")
	}

	results := make([]domain.SimulationResult, 0, len(config.Plans)*len(config.Scenarios))
	for i := range config.Scenarios {
		for j := range config.Plans {
			result, err := ce.RunScenario(ctx, &config.Plans[j], &config.Scenarios[i])
			if err != nil {
				return nil, err
			}
			results = append(results, *result)
		}
	}
	return results, nil
}
