package calculation

import (
	"fmt"
	"iter"

	"github.com/rgehrsitz/healthsim/internal/domain"
	"github.com/shopspring/decimal"
)

// NetworkTracker folds monthly batches of resolved services through one
// network's deductible and out-of-pocket maximum.
//
// The tracker carries its thresholds and year total forward as it is fed, so
// replaying a year requires a new tracker.
type NetworkTracker struct {
	deductible decimal.Decimal
	oopMaximum decimal.Decimal
	yearTotal  decimal.Decimal
}

// NewNetworkTracker creates a tracker starting from the network's annual limits
func NewNetworkTracker(limits domain.NetworkLimits) (*NetworkTracker, error) {
	if err := limits.Validate(); err != nil {
		return nil, fmt.Errorf("network tracker: %w", err)
	}
	return &NetworkTracker{
		deductible: limits.Deductible,
		oopMaximum: limits.OutOfPocketMax,
		yearTotal:  decimal.Zero,
	}, nil
}

// Step accounts for one month of services, in encounter order, and returns the
// network state at the end of the month
func (nt *NetworkTracker) Step(month []domain.LiteralService) domain.NetworkState {
	monthTotal := decimal.Zero

	for _, service := range month {
		cost := service.Cost

		if !service.IgnoreDeductible {
			// prePaid goes to the deductible and counts toward the out-of-pocket
			// maximum; what is left over is what the modifier sees.
			var prePaid, leftover, paid decimal.Decimal
			prePaid, nt.deductible, leftover = ApplyToThreshold(nt.deductible, cost)
			paid, nt.oopMaximum = AtThreshold(nt.oopMaximum, prePaid)
			monthTotal = monthTotal.Add(paid)
			cost = leftover
		}
		// When the deductible is ignored the modifier applies to the full sticker price.

		paid, remaining := AtThreshold(nt.oopMaximum, service.Modifier.Apply(cost))
		nt.oopMaximum = remaining
		monthTotal = monthTotal.Add(paid)
	}

	nt.yearTotal = nt.yearTotal.Add(monthTotal)

	return domain.NetworkState{
		MonthTotal: monthTotal,
		YearTotal:  nt.yearTotal,
		Deductible: nt.deductible,
		OOPMaximum: nt.oopMaximum,
	}
}

// Track lazily yields one state per month. Month n+1 is not read from months
// until the consumer has taken the state for month n.
func (nt *NetworkTracker) Track(months iter.Seq[[]domain.LiteralService]) iter.Seq[domain.NetworkState] {
	return func(yield func(domain.NetworkState) bool) {
		for month := range months {
			if !yield(nt.Step(month)) {
				return
			}
		}
	}
}
