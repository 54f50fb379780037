package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/healthsim/internal/domain"
	"github.com/shopspring/decimal"
)

// ScaleCosts multiplies the sticker price of every service (or of one service type)
type ScaleCosts struct {
	Factor  decimal.Decimal
	Service string // empty scales every service
}

func (t *ScaleCosts) Name() string { return "scale_costs" }

func (t *ScaleCosts) Description() string {
	if t.Service == "" {
		return fmt.Sprintf("Scale every service cost by %s", t.Factor.String())
	}
	return fmt.Sprintf("Scale %s costs by %s", t.Service, t.Factor.String())
}

func (t *ScaleCosts) Validate(base *domain.Scenario) error {
	if t.Factor.IsNegative() {
		return NewTransformError(t.Name(), "validate", "factor cannot be negative", domain.ErrNegativeAmount)
	}
	return nil
}

func (t *ScaleCosts) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	out := cloneScenario(base)
	eachService(out, func(s *domain.Service) {
		if t.Service == "" || s.Name == t.Service {
			s.Cost = s.Cost.Mul(t.Factor)
		}
	})
	return out, nil
}

// ShiftNetwork bills every service (or one service type) in or out of network
type ShiftNetwork struct {
	InNetwork bool
	Service   string // empty shifts every service
}

func (t *ShiftNetwork) Name() string { return "shift_network" }

func (t *ShiftNetwork) Description() string {
	side := "out of network"
	if t.InNetwork {
		side = "in network"
	}
	if t.Service == "" {
		return "Receive all care " + side
	}
	return fmt.Sprintf("Receive %s %s", t.Service, side)
}

func (t *ShiftNetwork) Validate(*domain.Scenario) error { return nil }

func (t *ShiftNetwork) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	out := cloneScenario(base)
	eachService(out, func(s *domain.Service) {
		if t.Service == "" || s.Name == t.Service {
			s.InNetwork = t.InNetwork
		}
	})
	return out, nil
}

// RemoveService drops every request for one service type
type RemoveService struct {
	Service string
}

func (t *RemoveService) Name() string { return "remove_service" }

func (t *RemoveService) Description() string { return "Never use " + t.Service }

func (t *RemoveService) Validate(*domain.Scenario) error {
	if strings.TrimSpace(t.Service) == "" {
		return NewTransformError(t.Name(), "validate", "service is required", domain.ErrInvalidTransform)
	}
	return nil
}

func (t *RemoveService) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	out := cloneScenario(base)
	keep := func(services []domain.Service) []domain.Service {
		kept := services[:0]
		for _, s := range services {
			if s.Name != t.Service {
				kept = append(kept, s)
			}
		}
		return kept
	}
	for i := range out.Months {
		out.Months[i] = keep(out.Months[i])
	}
	out.YearlyServices = keep(out.YearlyServices)
	out.MonthlyServices = keep(out.MonthlyServices)
	return out, nil
}

// AddRecurringService adds a service every month, or once in the first month when Yearly is set
type AddRecurringService struct {
	Service domain.Service
	Yearly  bool
}

func (t *AddRecurringService) Name() string { return "add_service" }

func (t *AddRecurringService) Description() string {
	when := "every month"
	if t.Yearly {
		when = "once a year"
	}
	return fmt.Sprintf("Add %s ($%s) %s", t.Service.Name, t.Service.Cost.StringFixed(2), when)
}

func (t *AddRecurringService) Validate(*domain.Scenario) error {
	if err := t.Service.Validate(); err != nil {
		return NewTransformError(t.Name(), "validate", "invalid service", err)
	}
	return nil
}

func (t *AddRecurringService) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	out := cloneScenario(base)
	// A scenario with only explicit months has no recurring horizon yet; keep its length.
	if out.Horizon == 0 && len(out.YearlyServices) == 0 && len(out.MonthlyServices) == 0 && len(out.Months) > 0 {
		out.Horizon = len(out.Months)
	}
	if t.Yearly {
		out.YearlyServices = append(out.YearlyServices, t.Service)
	} else {
		out.MonthlyServices = append(out.MonthlyServices, t.Service)
	}
	return out, nil
}

// SetHorizon changes how many months the scenario spans, dropping explicit months past the end
type SetHorizon struct {
	Months int
}

func (t *SetHorizon) Name() string { return "set_horizon" }

func (t *SetHorizon) Description() string { return fmt.Sprintf("Simulate %d months", t.Months) }

func (t *SetHorizon) Validate(*domain.Scenario) error {
	if t.Months <= 0 {
		return NewTransformError(t.Name(), "validate", "months must be positive", domain.ErrInvalidTransform)
	}
	if t.Months > domain.MaxMonths {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("months cannot exceed %d", domain.MaxMonths), domain.ErrHorizonTooLong)
	}
	return nil
}

func (t *SetHorizon) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	out := cloneScenario(base)
	out.Horizon = t.Months
	if len(out.Months) > t.Months {
		out.Months = out.Months[:t.Months]
	}
	return out, nil
}
