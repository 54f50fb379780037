package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/healthsim/internal/compare"
	"github.com/rgehrsitz/healthsim/internal/tui/tuimsg"
	"github.com/rgehrsitz/healthsim/internal/tui/tuistyles"
)

// CompareModel shows every plan against a base plan across all scenarios
type CompareModel struct {
	plans     []string
	baseIndex int
	set       *compare.ComparisonSet
	width     int
	height    int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	return &CompareModel{}
}

// SetPlans sets the plans the base can be chosen from
func (m *CompareModel) SetPlans(plans []string) {
	m.plans = plans
	if m.baseIndex >= len(plans) {
		m.baseIndex = 0
	}
}

// SetComparison replaces the displayed comparison
func (m *CompareModel) SetComparison(set *compare.ComparisonSet) {
	m.set = set
}

// SetSize updates the scene dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// BasePlan returns the plan the others are measured against
func (m *CompareModel) BasePlan() string {
	if m.baseIndex < len(m.plans) {
		return m.plans[m.baseIndex]
	}
	return ""
}

// Request returns a command asking for a comparison against the current base plan
func (m *CompareModel) Request() tea.Cmd {
	base := m.BasePlan()
	return func() tea.Msg { return tuimsg.CompareRequestedMsg{BasePlanName: base} }
}

// Update switches the base plan with tab and reruns the comparison
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.plans) == 0 {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, keyNext):
		m.baseIndex = (m.baseIndex + 1) % len(m.plans)
		return m, m.Request()
	case key.Matches(keyMsg, keyPrev):
		m.baseIndex = (m.baseIndex + len(m.plans) - 1) % len(m.plans)
		return m, m.Request()
	}
	return m, nil
}

// View renders the comparison table and recommendations
func (m *CompareModel) View() string {
	if m.set == nil {
		return "No comparison yet.\n\nPress c to compare every plan across every scenario."
	}

	table := (&compare.TableFormatter{}).Format(m.set)
	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.BorderStyle.Render(strings.TrimRight(table, "\n")),
		"",
		tuistyles.HelpStyle.Render("tab next base plan • esc scenarios"),
	)
}
