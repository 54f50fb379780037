package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/healthsim/internal/domain"
)

// SolveAll finds the break-even factor of two plans for every configured scenario
func (s *Solver) SolveAll(
	ctx context.Context,
	config *domain.Configuration,
	planA, planB string,
) (*MultiResult, error) {

	if config == nil {
		return nil, &BreakEvenError{Operation: "solve_all", Message: "configuration is required"}
	}

	multi := &MultiResult{PlanA: planA, PlanB: planB}
	for _, name := range config.ScenarioNames() {
		result, err := s.Solve(ctx, Request{
			Config:       config,
			ScenarioName: name,
			PlanA:        planA,
			PlanB:        planB,
		})
		if err != nil {
			return nil, &BreakEvenError{
				Operation: "solve_all",
				Message:   fmt.Sprintf("scenario %s", name),
				Cause:     err,
			}
		}
		multi.Results = append(multi.Results, *result)
	}

	if len(multi.Results) == 0 {
		return nil, &BreakEvenError{
			Operation: "solve_all",
			Message:   "no scenarios to solve",
		}
	}

	multi.Recommendations = generateRecommendations(multi)
	return multi, nil
}

// generateRecommendations turns each scenario's break-even into a sentence
func generateRecommendations(multi *MultiResult) []string {
	var recommendations []string
	for _, r := range multi.Results {
		switch {
		case r.Found && r.CheaperBelow != "" && r.CheaperAbove != "":
			recommendations = append(recommendations, fmt.Sprintf(
				"%s: %s is cheaper below %sx usage, %s above it",
				r.ScenarioName, r.CheaperBelow, r.Factor.StringFixed(2), r.CheaperAbove))
		case r.Found:
			recommendations = append(recommendations, fmt.Sprintf(
				"%s: plans cost the same at %sx usage", r.ScenarioName, r.Factor.StringFixed(2)))
		case r.CheaperBelow != "" && r.CheaperBelow == r.CheaperAbove:
			recommendations = append(recommendations, fmt.Sprintf(
				"%s: %s is cheaper at every usage level scanned", r.ScenarioName, r.CheaperBelow))
		default:
			recommendations = append(recommendations, fmt.Sprintf(
				"%s: no single break-even point found", r.ScenarioName))
		}
	}
	return recommendations
}
