package calculation

import (
	"fmt"
	"iter"

	"github.com/rgehrsitz/healthsim/internal/domain"
	"github.com/shopspring/decimal"
)

// PlanTracker combines the in-network and out-of-network trackers of a plan
// with its employer/HSA contribution and monthly premium
type PlanTracker struct {
	premium              decimal.Decimal
	employerContribution decimal.Decimal
	yearTotal            decimal.Decimal
	yearService          decimal.Decimal

	inNetwork    *NetworkTracker
	outOfNetwork *NetworkTracker
}

// NewPlanTracker creates a tracker for a plan's first month
func NewPlanTracker(premium, employerContribution decimal.Decimal, in, out domain.NetworkLimits) (*PlanTracker, error) {
	if premium.IsNegative() {
		return nil, fmt.Errorf("premium %s: %w", premium.String(), domain.ErrNegativeAmount)
	}
	if employerContribution.IsNegative() {
		return nil, fmt.Errorf("employer contribution %s: %w", employerContribution.String(), domain.ErrNegativeAmount)
	}
	inTracker, err := NewNetworkTracker(in)
	if err != nil {
		return nil, fmt.Errorf("in-network: %w", err)
	}
	outTracker, err := NewNetworkTracker(out)
	if err != nil {
		return nil, fmt.Errorf("out-of-network: %w", err)
	}
	return &PlanTracker{
		premium:              premium,
		employerContribution: employerContribution,
		inNetwork:            inTracker,
		outOfNetwork:         outTracker,
	}, nil
}

// combine folds one month of network states into a plan state
func (pt *PlanTracker) combine(in, out domain.NetworkState) domain.PlanState {
	// The contribution absorbs service costs first; the overflow is owed by the employee.
	var monthService decimal.Decimal
	pt.employerContribution, monthService = ThresholdOverflow(
		pt.employerContribution,
		in.MonthTotal.Add(out.MonthTotal))

	monthTotal := monthService.Add(pt.premium)
	pt.yearTotal = pt.yearTotal.Add(monthTotal)
	pt.yearService = pt.yearService.Add(monthService)

	return domain.PlanState{
		MonthTotal:        monthTotal,
		MonthService:      monthService,
		YearTotal:         pt.yearTotal,
		YearService:       pt.yearService,
		CoverageRemaining: pt.employerContribution,
		InNetwork:         in,
		OutOfNetwork:      out,
	}
}

// Track pairs the two month streams positionally and yields one plan state per
// month. When the streams differ in length the output stops with the shorter one.
func (pt *PlanTracker) Track(inMonths, outMonths iter.Seq[[]domain.LiteralService]) iter.Seq[domain.PlanState] {
	return func(yield func(domain.PlanState) bool) {
		nextIn, stopIn := iter.Pull(pt.inNetwork.Track(inMonths))
		defer stopIn()
		nextOut, stopOut := iter.Pull(pt.outOfNetwork.Track(outMonths))
		defer stopOut()

		for {
			in, ok := nextIn()
			if !ok {
				return
			}
			out, ok := nextOut()
			if !ok {
				return
			}
			if !yield(pt.combine(in, out)) {
				return
			}
		}
	}
}
