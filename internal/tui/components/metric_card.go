package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/healthsim/internal/domain"
	"github.com/rgehrsitz/healthsim/internal/tui/tuistyles"
)

// PlanCard summarizes one plan's year-end outcome for a scenario
type PlanCard struct {
	Plan      string
	YearTotal decimal.Decimal
	Lines     []string
	// Difference from the cheapest plan; nil when this is the cheapest
	Delta    *decimal.Decimal
	Selected bool
	Width    int
}

// NewPlanCard builds a card from a simulation result
func NewPlanCard(result domain.SimulationResult) *PlanCard {
	final := result.Final()
	return &PlanCard{
		Plan:      result.PlanName,
		YearTotal: final.YearTotal,
		Lines: []string{
			"Less premiums " + tuistyles.FormatCurrency(final.YearService),
			"Contribution left " + tuistyles.FormatCurrency(final.CoverageRemaining),
		},
		Width: 30,
	}
}

// WithDelta records how much more this plan costs than the cheapest one
func (c *PlanCard) WithDelta(delta decimal.Decimal) *PlanCard {
	if delta.IsPositive() {
		c.Delta = &delta
	}
	return c
}

// Render returns the styled card
func (c *PlanCard) Render() string {
	label := tuistyles.MetricLabelStyle.Render(c.Plan)
	value := tuistyles.MetricValueStyle.Render(tuistyles.FormatCurrency(c.YearTotal))

	trend := tuistyles.MetricTrendStyle(true).Render(tuistyles.TrendIndicator(true) + " cheapest")
	if c.Delta != nil {
		trend = tuistyles.MetricTrendStyle(false).Render(
			fmt.Sprintf("%s %s more", tuistyles.TrendIndicator(false), tuistyles.FormatCurrency(*c.Delta)))
	}

	content := label + "\n" + value + "\n" + trend
	for _, line := range c.Lines {
		content += "\n" + tuistyles.SubtitleStyle.Render(line)
	}

	border := tuistyles.ColorBorder
	if c.Selected {
		border = tuistyles.ColorPrimary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(c.Width).
		Render(content)
}

// PlanCards builds a card per result, flagging each plan's distance from the cheapest
func PlanCards(results []domain.SimulationResult, selected int) []*PlanCard {
	if len(results) == 0 {
		return nil
	}
	cheapest := results[0].Final().YearTotal
	for _, r := range results[1:] {
		if total := r.Final().YearTotal; total.LessThan(cheapest) {
			cheapest = total
		}
	}
	cards := make([]*PlanCard, len(results))
	for i, r := range results {
		card := NewPlanCard(r)
		card.WithDelta(card.YearTotal.Sub(cheapest))
		card.Selected = i == selected
		cards[i] = card
	}
	return cards
}

// CardGrid renders cards in rows of columns
func CardGrid(cards []*PlanCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
