package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ModifierKind identifies one of the cost-sharing policies a plan applies to a service
type ModifierKind string

const (
	ModifierCopay       ModifierKind = "copay"
	ModifierCoinsurance ModifierKind = "coinsurance"
	ModifierCovered     ModifierKind = "covered"
	ModifierNotCovered  ModifierKind = "not_covered"
)

var hundred = decimal.NewFromInt(100)

// Modifier transforms the sticker price of a service into the amount billed to the insured.
// Value is the copay amount for copays and the percent billed for coinsurance; it is
// ignored by the other kinds.
type Modifier struct {
	Kind  ModifierKind    `yaml:"kind" json:"kind"`
	Value decimal.Decimal `yaml:"value,omitempty" json:"value,omitempty"`
}

// Copay caps the billed cost at amount
func Copay(amount decimal.Decimal) Modifier {
	return Modifier{Kind: ModifierCopay, Value: amount}
}

// Coinsurance bills percent/100 of the cost. Percentages above 100 are not rejected.
func Coinsurance(percent decimal.Decimal) Modifier {
	return Modifier{Kind: ModifierCoinsurance, Value: percent}
}

// Covered bills nothing
func Covered() Modifier {
	return Modifier{Kind: ModifierCovered}
}

// NotCovered bills the full cost
func NotCovered() Modifier {
	return Modifier{Kind: ModifierNotCovered}
}

// Apply returns the billed cost for a service costing cost.
// The zero Modifier behaves as NotCovered.
func (m Modifier) Apply(cost decimal.Decimal) decimal.Decimal {
	switch m.Kind {
	case ModifierCopay:
		return decimal.Min(cost, m.Value)
	case ModifierCoinsurance:
		return cost.Mul(m.Value).Div(hundred)
	case ModifierCovered:
		return decimal.Zero
	default:
		return cost
	}
}

// Validate checks the kind is known and the parameter is usable
func (m Modifier) Validate() error {
	switch m.Kind {
	case ModifierCopay, ModifierCoinsurance:
		if m.Value.IsNegative() {
			return fmt.Errorf("%s value %s: %w", m.Kind, m.Value.String(), ErrNegativeAmount)
		}
	case ModifierCovered, ModifierNotCovered:
	default:
		return fmt.Errorf("unknown modifier kind %q (valid: copay, coinsurance, covered, not_covered)", m.Kind)
	}
	return nil
}

// String renders the modifier for reports, e.g. "copay $15" or "coinsurance 20%"
func (m Modifier) String() string {
	switch m.Kind {
	case ModifierCopay:
		return "copay $" + m.Value.StringFixed(2)
	case ModifierCoinsurance:
		return "coinsurance " + m.Value.String() + "%"
	case ModifierCovered:
		return "covered"
	default:
		return "not covered"
	}
}

// ServiceCoverage is a plan's treatment of one service type on one network
type ServiceCoverage struct {
	Modifier         `yaml:",inline"`
	IgnoreDeductible bool `yaml:"ignore_deductible,omitempty" json:"ignore_deductible,omitempty"`
}

// PlanServiceDetails maps a service-type identifier to its coverage on one network
type PlanServiceDetails map[string]ServiceCoverage

// Lookup returns the coverage for name. Services the plan does not list are
// not covered and go through the deductible, so the insured pays sticker price
// until the out-of-pocket maximum is reached.
func (d PlanServiceDetails) Lookup(name string) ServiceCoverage {
	if coverage, ok := d[name]; ok {
		return coverage
	}
	return ServiceCoverage{Modifier: NotCovered()}
}
