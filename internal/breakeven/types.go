package breakeven

import (
	"errors"

	"github.com/rgehrsitz/healthsim/internal/domain"
	"github.com/shopspring/decimal"
)

// Request asks at what usage level two plans cost the same for a scenario.
// Usage is expressed as a factor applied to every service cost in the scenario.
type Request struct {
	Config        *domain.Configuration
	ScenarioName  string
	PlanA         string
	PlanB         string
	MinFactor     decimal.Decimal
	MaxFactor     decimal.Decimal
	Tolerance     decimal.Decimal // Width of the final factor interval
	MaxIterations int             // Bisection steps after the grid scan
	GridPoints    int
}

// Sample is both plans' year totals at one usage factor
type Sample struct {
	Factor decimal.Decimal `json:"factor"`
	TotalA decimal.Decimal `json:"total_a"`
	TotalB decimal.Decimal `json:"total_b"`
}

// Diff returns TotalA - TotalB
func (s Sample) Diff() decimal.Decimal {
	return s.TotalA.Sub(s.TotalB)
}

// Cheaper names the cheaper plan at this sample, or "" on a tie
func (s Sample) Cheaper(planA, planB string) string {
	switch s.Diff().Sign() {
	case 1:
		return planB
	case -1:
		return planA
	}
	return ""
}

// Result holds the break-even point, if any, and the scan behind it
type Result struct {
	ScenarioName    string           `json:"scenario"`
	PlanA           string           `json:"plan_a"`
	PlanB           string           `json:"plan_b"`
	Found           bool             `json:"found"`
	Factor          *decimal.Decimal `json:"factor,omitempty"`
	TotalA          decimal.Decimal  `json:"total_a"`
	TotalB          decimal.Decimal  `json:"total_b"`
	CheaperBelow    string           `json:"cheaper_below,omitempty"`
	CheaperAbove    string           `json:"cheaper_above,omitempty"`
	Iterations      int              `json:"iterations"`
	ConvergenceInfo string           `json:"convergence_info"`
	Samples         []Sample         `json:"samples"`
}

// MultiResult holds break-even results for every scenario of a configuration
type MultiResult struct {
	PlanA           string   `json:"plan_a"`
	PlanB           string   `json:"plan_b"`
	Results         []Result `json:"results"`
	Recommendations []string `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	GridPoints    int             // Samples across the factor range before bisecting
	MinFactor     decimal.Decimal // Default lower bound of the scan
	MaxFactor     decimal.Decimal // Default upper bound of the scan
	Tolerance     decimal.Decimal // Convergence tolerance on the factor
	MaxIterations int             // Maximum bisection steps
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		GridPoints:    20,
		MinFactor:     decimal.Zero,
		MaxFactor:     decimal.NewFromInt(3),
		Tolerance:     decimal.NewFromFloat(0.0001),
		MaxIterations: 50,
	}
}

// Validate checks that the request names two distinct plans and a sane range
func (r *Request) Validate() error {
	if r.Config == nil {
		return &BreakEvenError{Operation: "validate_request", Message: "configuration is required", Cause: ErrInvalidRequest}
	}
	if r.PlanA == "" || r.PlanB == "" {
		return &BreakEvenError{Operation: "validate_request", Message: "two plan names are required", Cause: ErrInvalidRequest}
	}
	if r.PlanA == r.PlanB {
		return &BreakEvenError{Operation: "validate_request", Message: "plans must differ", Cause: ErrInvalidRequest}
	}
	if r.ScenarioName == "" {
		return &BreakEvenError{Operation: "validate_request", Message: "scenario name is required", Cause: ErrInvalidRequest}
	}
	if r.MinFactor.IsNegative() {
		return &BreakEvenError{Operation: "validate_request", Message: "min factor cannot be negative", Cause: domain.ErrNegativeAmount}
	}
	if !r.MaxFactor.IsZero() && r.MinFactor.GreaterThanOrEqual(r.MaxFactor) {
		return &BreakEvenError{Operation: "validate_request", Message: "min factor must be below max factor", Cause: ErrInvalidRequest}
	}
	if r.Tolerance.IsNegative() {
		return &BreakEvenError{Operation: "validate_request", Message: "tolerance cannot be negative", Cause: ErrInvalidRequest}
	}
	return nil
}

// ErrInvalidRequest marks a break-even request that cannot be solved as given
var ErrInvalidRequest = errors.New("invalid break-even request")

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
