package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/healthsim/internal/calculation"
	"github.com/rgehrsitz/healthsim/internal/domain"
	"github.com/rgehrsitz/healthsim/internal/transform"
	"github.com/shopspring/decimal"
)

// Solver finds the usage level at which two plans cost the same
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

var two = decimal.NewFromInt(2)

// Solve scans the factor range on a grid and bisects the first interval
// where the cheaper plan changes.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	s.applyDefaults(&req)
	if req.MinFactor.GreaterThanOrEqual(req.MaxFactor) {
		return nil, &BreakEvenError{Operation: "solve", Message: "min factor must be below max factor", Cause: ErrInvalidRequest}
	}

	planA, ok := req.Config.FindPlan(req.PlanA)
	if !ok {
		return nil, &BreakEvenError{Operation: "solve", Message: "plan " + req.PlanA, Cause: domain.ErrNotFound}
	}
	planB, ok := req.Config.FindPlan(req.PlanB)
	if !ok {
		return nil, &BreakEvenError{Operation: "solve", Message: "plan " + req.PlanB, Cause: domain.ErrNotFound}
	}
	scenario, ok := req.Config.FindScenario(req.ScenarioName)
	if !ok {
		return nil, &BreakEvenError{Operation: "solve", Message: "scenario " + req.ScenarioName, Cause: domain.ErrNotFound}
	}

	result := &Result{
		ScenarioName: req.ScenarioName,
		PlanA:        req.PlanA,
		PlanB:        req.PlanB,
	}

	evaluate := func(factor decimal.Decimal) (Sample, error) {
		if err := ctx.Err(); err != nil {
			return Sample{}, err
		}
		result.Iterations++
		return s.sample(ctx, planA, planB, scenario, factor)
	}

	step := req.MaxFactor.Sub(req.MinFactor).Div(decimal.NewFromInt(int64(req.GridPoints)))
	var lo, hi *Sample
	for i := 0; i <= req.GridPoints; i++ {
		factor := req.MinFactor.Add(step.Mul(decimal.NewFromInt(int64(i))))
		sample, err := evaluate(factor)
		if err != nil {
			return nil, err
		}
		result.Samples = append(result.Samples, sample)
		if hi != nil {
			continue
		}
		if n := len(result.Samples); n > 1 && crosses(result.Samples[n-2], sample) {
			prev := result.Samples[n-2]
			lo, hi = &prev, &sample
		}
	}

	first := result.Samples[0]
	last := result.Samples[len(result.Samples)-1]
	if hi == nil {
		result.CheaperBelow = first.Cheaper(req.PlanA, req.PlanB)
		result.CheaperAbove = last.Cheaper(req.PlanA, req.PlanB)
		result.TotalA, result.TotalB = last.TotalA, last.TotalB
		result.ConvergenceInfo = fmt.Sprintf("No break-even between %s and %s", req.MinFactor.String(), req.MaxFactor.String())
		return result, nil
	}

	result.CheaperBelow = lo.Cheaper(req.PlanA, req.PlanB)
	result.CheaperAbove = hi.Cheaper(req.PlanA, req.PlanB)
	if lo.Diff().IsZero() {
		// The grid landed exactly on the break-even point.
		result.CheaperBelow = ""
		for _, prev := range result.Samples {
			if prev.Factor.GreaterThanOrEqual(lo.Factor) {
				break
			}
			if c := prev.Cheaper(req.PlanA, req.PlanB); c != "" {
				result.CheaperBelow = c
			}
		}
		return s.found(result, *lo, "Exact match on grid"), nil
	}

	steps := 0
	for steps < req.MaxIterations && hi.Factor.Sub(lo.Factor).GreaterThan(req.Tolerance) {
		steps++
		mid, err := evaluate(lo.Factor.Add(hi.Factor).Div(two))
		if err != nil {
			return nil, err
		}
		if mid.Diff().IsZero() {
			return s.found(result, mid, "Exact match during bisection"), nil
		}
		if mid.Diff().Sign() == lo.Diff().Sign() {
			lo = &mid
		} else {
			hi = &mid
		}
	}

	mid, err := evaluate(lo.Factor.Add(hi.Factor).Div(two))
	if err != nil {
		return nil, err
	}
	info := fmt.Sprintf("Bisection converged within %s", req.Tolerance.String())
	if steps >= req.MaxIterations {
		info = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	}
	return s.found(result, mid, info), nil
}

func (s *Solver) found(result *Result, at Sample, info string) *Result {
	factor := at.Factor
	result.Found = true
	result.Factor = &factor
	result.TotalA, result.TotalB = at.TotalA, at.TotalB
	result.ConvergenceInfo = info
	return result
}

func (s *Solver) applyDefaults(req *Request) {
	if req.MaxFactor.IsZero() {
		req.MaxFactor = s.Options.MaxFactor
		if req.MinFactor.IsZero() {
			req.MinFactor = s.Options.MinFactor
		}
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.GridPoints <= 0 {
		req.GridPoints = s.Options.GridPoints
	}
	if req.GridPoints <= 0 {
		req.GridPoints = 1
	}
}

// sample runs the scenario with every cost scaled by factor under both plans
func (s *Solver) sample(ctx context.Context, planA, planB *domain.Plan, scenario *domain.Scenario, factor decimal.Decimal) (Sample, error) {
	scaled, err := transform.ApplyTransforms(scenario, []transform.ScenarioTransform{&transform.ScaleCosts{Factor: factor}})
	if err != nil {
		return Sample{}, &BreakEvenError{Operation: "sample", Message: "failed to scale scenario", Cause: err}
	}
	runA, err := s.CalcEngine.RunScenario(ctx, planA, scaled)
	if err != nil {
		return Sample{}, &BreakEvenError{Operation: "sample", Message: "failed to simulate " + planA.Name, Cause: err}
	}
	runB, err := s.CalcEngine.RunScenario(ctx, planB, scaled)
	if err != nil {
		return Sample{}, &BreakEvenError{Operation: "sample", Message: "failed to simulate " + planB.Name, Cause: err}
	}
	return Sample{
		Factor: factor,
		TotalA: runA.Final().YearTotal,
		TotalB: runB.Final().YearTotal,
	}, nil
}

// crosses reports whether the cheaper plan changes between two samples.
// A tie at prev counts as a crossing only if next breaks it.
func crosses(prev, next Sample) bool {
	p, n := prev.Diff().Sign(), next.Diff().Sign()
	if p == 0 {
		return n != 0
	}
	return n != 0 && p != n
}
