package calculation

import "github.com/rgehrsitz/healthsim/internal/domain"

// Resolve pairs a requested service with the plan's coverage for it.
// Services missing from details resolve to NotCovered with the deductible
// applied: the insured is liable for the full sticker price. This is a
// deliberate simplification rather than an error.
func Resolve(service domain.Service, details domain.PlanServiceDetails) domain.LiteralService {
	coverage := details.Lookup(service.Name)
	return domain.LiteralService{
		Cost:             service.Cost,
		Modifier:         coverage.Modifier,
		IgnoreDeductible: coverage.IgnoreDeductible,
	}
}

// ResolveMonth filters a month's services to one network and resolves each in order
func ResolveMonth(services []domain.Service, inNetwork bool, details domain.PlanServiceDetails) []domain.LiteralService {
	literal := make([]domain.LiteralService, 0, len(services))
	for _, service := range services {
		if service.InNetwork != inNetwork {
			continue
		}
		literal = append(literal, Resolve(service, details))
	}
	return literal
}
