package scenes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/healthsim/internal/domain"
	"github.com/rgehrsitz/healthsim/internal/output"
	"github.com/rgehrsitz/healthsim/internal/tui/components"
	"github.com/rgehrsitz/healthsim/internal/tui/tuistyles"
)

// ResultsModel shows one scenario's results: a card per plan, the selected
// plan's monthly states and the cumulative cost chart
type ResultsModel struct {
	scenarioName string
	results      []domain.SimulationResult
	selectedPlan int
	table        table.Model
	width        int
	height       int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	t := table.New(
		table.WithColumns(monthColumns()),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(tuistyles.ColorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(tuistyles.ColorForeground).
		Background(tuistyles.ColorPrimary)
	t.SetStyles(styles)
	return &ResultsModel{table: t}
}

func monthColumns() []table.Column {
	return []table.Column{
		{Title: "Month", Width: 5},
		{Title: "Paid", Width: 10},
		{Title: "Year Total", Width: 11},
		{Title: "Contrib Left", Width: 12},
		{Title: "In Ded", Width: 10},
		{Title: "In OOP", Width: 10},
		{Title: "Out Ded", Width: 10},
		{Title: "Out OOP", Width: 10},
	}
}

// SetResults replaces the displayed scenario
func (m *ResultsModel) SetResults(scenarioName string, results []domain.SimulationResult) {
	m.scenarioName = scenarioName
	m.results = results
	m.selectedPlan = 0
	m.refreshTable()
}

// SelectedPlan returns the plan whose months are shown
func (m *ResultsModel) SelectedPlan() string {
	if m.selectedPlan < len(m.results) {
		return m.results[m.selectedPlan].PlanName
	}
	return ""
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if height > 30 {
		m.table.SetHeight(min(13, height-24))
	}
}

func (m *ResultsModel) refreshTable() {
	var rows []table.Row
	if m.selectedPlan < len(m.results) {
		for i, s := range m.results[m.selectedPlan].States {
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", i+1),
				s.MonthTotal.StringFixed(2),
				s.YearTotal.StringFixed(2),
				s.CoverageRemaining.StringFixed(2),
				s.InNetwork.Deductible.StringFixed(2),
				s.InNetwork.OOPMaximum.StringFixed(2),
				s.OutOfNetwork.Deductible.StringFixed(2),
				s.OutOfNetwork.OOPMaximum.StringFixed(2),
			})
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Update cycles plans with tab and scrolls the monthly table
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && len(m.results) > 0 {
		switch {
		case key.Matches(keyMsg, keyNext):
			m.selectedPlan = (m.selectedPlan + 1) % len(m.results)
			m.refreshTable()
			return m, nil
		case key.Matches(keyMsg, keyPrev):
			m.selectedPlan = (m.selectedPlan + len(m.results) - 1) % len(m.results)
			m.refreshTable()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if len(m.results) == 0 {
		return `No results to display.

Pick a scenario and press Enter to simulate it.`
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.SelectedItemStyle.Render("Simulation Results"),
		tuistyles.SubtitleStyle.Render("Scenario: "+m.scenarioName),
	)
	cards := components.CardGrid(components.PlanCards(m.results, m.selectedPlan), 3)
	monthly := tuistyles.BorderStyle.Padding(0, 1).Render(
		tuistyles.MetricLabelStyle.Render(m.SelectedPlan()+" by month") + "\n" + m.table.View())

	sections := []string{header, "", cards, "", monthly}
	if chart := output.CumulativeChart(m.results, 60, 8); chart != "" {
		sections = append(sections, "", chart)
	}
	sections = append(sections, "", tuistyles.HelpStyle.Render("tab next plan • ↑/↓ months • esc scenarios"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
