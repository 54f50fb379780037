package components

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/healthsim/internal/domain"
)

func result(plan string, total int64) domain.SimulationResult {
	return domain.SimulationResult{
		PlanName: plan,
		States:   []domain.PlanState{{YearTotal: decimal.NewFromInt(total)}},
	}
}

func TestPlanCardsMarkCheapest(t *testing.T) {
	cards := PlanCards([]domain.SimulationResult{result("POS", 915), result("HDHP", 2055)}, 1)
	require.Len(t, cards, 2)

	assert.Nil(t, cards[0].Delta)
	require.NotNil(t, cards[1].Delta)
	assert.Equal(t, "1140", cards[1].Delta.String())
	assert.True(t, cards[1].Selected)
	assert.False(t, cards[0].Selected)

	assert.Contains(t, cards[0].Render(), "cheapest")
	assert.Contains(t, cards[1].Render(), "$1140.00 more")
}

func TestCardGrid(t *testing.T) {
	assert.Empty(t, CardGrid(nil, 3))
	grid := CardGrid(PlanCards([]domain.SimulationResult{result("POS", 1), result("HDHP", 2)}, 0), 3)
	assert.Contains(t, grid, "POS")
	assert.Contains(t, grid, "HDHP")
}
