package calculation

import (
	"testing"

	"github.com/rgehrsitz/healthsim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	details := domain.PlanServiceDetails{
		"pcp": {Modifier: domain.Copay(d(15))},
		"er":  {Modifier: domain.Copay(d(75)), IgnoreDeductible: true},
	}

	pcp := Resolve(domain.NewService("pcp", d(200)), details)
	assertDecimal(t, 200, pcp.Cost)
	assert.Equal(t, domain.ModifierCopay, pcp.Modifier.Kind)
	assertDecimal(t, 15, pcp.Modifier.Value)
	assert.False(t, pcp.IgnoreDeductible)

	er := Resolve(domain.NewService("er", d(1200)), details)
	assert.True(t, er.IgnoreDeductible)

	unknown := Resolve(domain.NewService("mri", d(900)), details)
	assertDecimal(t, 900, unknown.Cost)
	assert.Equal(t, domain.ModifierNotCovered, unknown.Modifier.Kind)
	assert.False(t, unknown.IgnoreDeductible, "unknown services go through the deductible")
}

func TestResolve_NilDetails(t *testing.T) {
	literal := Resolve(domain.NewService("pcp", d(50)), nil)
	assert.Equal(t, domain.ModifierNotCovered, literal.Modifier.Kind)
	assertDecimal(t, 50, literal.Modifier.Apply(literal.Cost))
}

func TestResolveMonth_FiltersByNetworkAndKeepsOrder(t *testing.T) {
	details := domain.PlanServiceDetails{"pcp": {Modifier: domain.Copay(d(15))}}
	month := []domain.Service{
		domain.NewService("pcp", d(100)),
		domain.NewService("er", d(500)).OutOfNetwork(),
		domain.NewService("lab", d(40)),
		domain.NewService("pcp", d(120)).OutOfNetwork(),
	}

	in := ResolveMonth(month, true, details)
	require.Len(t, in, 2)
	assertDecimal(t, 100, in[0].Cost)
	assertDecimal(t, 40, in[1].Cost)

	out := ResolveMonth(month, false, details)
	require.Len(t, out, 2)
	assertDecimal(t, 500, out[0].Cost)
	assertDecimal(t, 120, out[1].Cost)

	assert.Empty(t, ResolveMonth(nil, true, details))
}
