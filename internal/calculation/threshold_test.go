package calculation

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func assertDecimal(t *testing.T, expected float64, actual decimal.Decimal, label ...string) {
	t.Helper()
	assert.Truef(t, d(expected).Equal(actual), "%s: expected %v, got %s", strings.Join(label, " "), expected, actual.String())
}

func TestApplyToThreshold(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		cost      float64
		applied   float64
		remaining float64
		overflow  float64
	}{
		{"cost below threshold", 100, 10, 10, 90, 0},
		{"cost above threshold", 60, 100, 60, 0, 40},
		{"cost equals threshold", 50, 50, 50, 0, 0},
		{"exhausted threshold", 0, 75, 0, 0, 75},
		{"zero cost", 80, 0, 0, 80, 0},
		{"fractional amounts", 12.5, 20.25, 12.5, 0, 7.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			applied, remaining, overflow := ApplyToThreshold(d(tt.threshold), d(tt.cost))
			assertDecimal(t, tt.applied, applied, "applied")
			assertDecimal(t, tt.remaining, remaining, "remaining")
			assertDecimal(t, tt.overflow, overflow, "overflow")
		})
	}
}

func TestApplyToThreshold_Identities(t *testing.T) {
	amounts := []float64{0, 0.01, 1, 15, 99.99, 100, 150, 625, 1000, 2500}

	for _, threshold := range amounts {
		for _, cost := range amounts {
			th, c := d(threshold), d(cost)
			applied, remaining, overflow := ApplyToThreshold(th, c)

			assert.True(t, applied.Equal(decimal.Min(th, c)), "applied = min(%v, %v)", threshold, cost)
			assert.False(t, remaining.IsNegative(), "remaining >= 0 for %v, %v", threshold, cost)
			assert.False(t, overflow.IsNegative(), "overflow >= 0 for %v, %v", threshold, cost)
			assert.True(t, applied.Add(remaining).Equal(th), "applied + remaining = threshold for %v, %v", threshold, cost)
			assert.True(t, applied.Add(overflow).Equal(c), "applied + overflow = cost for %v, %v", threshold, cost)
		}
	}
}

func TestThresholdProjections(t *testing.T) {
	remaining, overflow := ThresholdOverflow(d(625), d(700))
	assertDecimal(t, 0, remaining)
	assertDecimal(t, 75, overflow)

	applied, remaining := AtThreshold(d(1000), d(100))
	assertDecimal(t, 100, applied)
	assertDecimal(t, 900, remaining)
}
