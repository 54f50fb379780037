package calculation

import "github.com/shopspring/decimal"

// ApplyToThreshold applies cost against a depleting threshold. It returns the
// amount absorbed by the threshold, what is left of the threshold, and the part
// of the cost that spilled past it.
//
//	100, 10 -> 10, 90, 0
//	60, 100 -> 60, 0, 40
func ApplyToThreshold(threshold, cost decimal.Decimal) (applied, remaining, overflow decimal.Decimal) {
	applied = decimal.Min(threshold, cost)
	return applied, threshold.Sub(applied), cost.Sub(applied)
}

// ThresholdOverflow applies cost and returns the remaining threshold and the overflow
func ThresholdOverflow(threshold, cost decimal.Decimal) (remaining, overflow decimal.Decimal) {
	_, remaining, overflow = ApplyToThreshold(threshold, cost)
	return remaining, overflow
}

// AtThreshold applies cost and returns the amount absorbed and the remaining threshold
func AtThreshold(threshold, cost decimal.Decimal) (applied, remaining decimal.Decimal) {
	applied, remaining, _ = ApplyToThreshold(threshold, cost)
	return applied, remaining
}
