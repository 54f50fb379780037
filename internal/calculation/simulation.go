package calculation

import (
	"fmt"
	"iter"

	"github.com/rgehrsitz/healthsim/internal/domain"
)

// PlanSimulation runs raw monthly service requests through a plan
type PlanSimulation struct {
	plan domain.Plan
	err  error
}

// NewPlanSimulation creates a simulation for a validated plan
func NewPlanSimulation(plan domain.Plan) (*PlanSimulation, error) {
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("plan %s: %w", plan.Name, err)
	}
	return &PlanSimulation{plan: plan}, nil
}

// Plan returns the simulated plan
func (ps *PlanSimulation) Plan() domain.Plan {
	return ps.plan
}

// Err returns the error that ended the most recent Run early, if any
func (ps *PlanSimulation) Err() error {
	return ps.err
}

// Run lazily yields one plan state per month of services. Every Run starts a
// fresh year with new trackers.
//
// The month stream is read once and split between the in-network and
// out-of-network sides without buffering it up front, so unbounded horizons
// run in bounded memory. A malformed service ends the sequence before its month
// is accounted for; check Err afterwards. States already yielded before the
// failure are not a partial result and must be discarded when Err is non-nil.
// CalculationEngine.RunScenario validates the whole scenario up front instead.
func (ps *PlanSimulation) Run(months iter.Seq[[]domain.Service]) iter.Seq[domain.PlanState] {
	return func(yield func(domain.PlanState) bool) {
		ps.err = nil

		tracker, err := NewPlanTracker(
			ps.plan.Premium,
			ps.plan.EmployerContribution,
			ps.plan.InNetwork.NetworkLimits,
			ps.plan.OutOfNetwork.NetworkLimits)
		if err != nil {
			ps.err = err
			return
		}

		inMonths, outMonths, stop := Tee(ps.validated(months))
		defer stop()

		states := tracker.Track(
			convertServices(inMonths, true, ps.plan.InNetwork.Services),
			convertServices(outMonths, false, ps.plan.OutOfNetwork.Services))

		for state := range states {
			if !yield(state) {
				return
			}
		}
	}
}

// validated passes months through until one contains a malformed service
func (ps *PlanSimulation) validated(months iter.Seq[[]domain.Service]) iter.Seq[[]domain.Service] {
	return func(yield func([]domain.Service) bool) {
		month := 0
		for services := range months {
			month++
			for _, service := range services {
				if err := service.Validate(); err != nil {
					ps.err = fmt.Errorf("month %d: %w", month, err)
					return
				}
			}
			if !yield(services) {
				return
			}
		}
	}
}

// convertServices keeps each month's services on one network and resolves them against its coverage
func convertServices(months iter.Seq[[]domain.Service], inNetwork bool, details domain.PlanServiceDetails) iter.Seq[[]domain.LiteralService] {
	return func(yield func([]domain.LiteralService) bool) {
		for services := range months {
			if !yield(ResolveMonth(services, inNetwork, details)) {
				return
			}
		}
	}
}
