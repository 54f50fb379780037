package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/healthsim/internal/domain"
	"github.com/rgehrsitz/healthsim/internal/tui/tuimsg"
	"github.com/rgehrsitz/healthsim/internal/tui/tuistyles"
)

var (
	keyUp     = key.NewBinding(key.WithKeys("up", "k"))
	keyDown   = key.NewBinding(key.WithKeys("down", "j"))
	keyTop    = key.NewBinding(key.WithKeys("g"))
	keyBottom = key.NewBinding(key.WithKeys("G"))
	keyEnter  = key.NewBinding(key.WithKeys("enter"))
	keyNext   = key.NewBinding(key.WithKeys("tab", "right", "l"))
	keyPrev   = key.NewBinding(key.WithKeys("shift+tab", "left"))
)

// ScenariosModel lists the configured scenarios
type ScenariosModel struct {
	scenarios     []domain.Scenario
	displayName   func(string) string
	selectedIndex int
	width         int
	height        int
}

// NewScenariosModel creates a new scenarios scene model
func NewScenariosModel() *ScenariosModel {
	return &ScenariosModel{displayName: func(s string) string { return s }}
}

// SetScenarios replaces the scenario list; displayName maps service identifiers for the details pane
func (m *ScenariosModel) SetScenarios(scenarios []domain.Scenario, displayName func(string) string) {
	m.scenarios = scenarios
	if displayName != nil {
		m.displayName = displayName
	}
	if m.selectedIndex >= len(m.scenarios) {
		m.selectedIndex = 0
	}
}

// SetSize updates the scene dimensions
func (m *ScenariosModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedScenario returns the currently selected scenario name
func (m *ScenariosModel) SelectedScenario() string {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.scenarios) {
		return m.scenarios[m.selectedIndex].Name
	}
	return ""
}

// Update handles messages for the scenarios scene
func (m *ScenariosModel) Update(msg tea.Msg) (*ScenariosModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, keyUp):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, keyDown):
		if m.selectedIndex < len(m.scenarios)-1 {
			m.selectedIndex++
		}
	case key.Matches(keyMsg, keyTop):
		m.selectedIndex = 0
	case key.Matches(keyMsg, keyBottom):
		m.selectedIndex = max(0, len(m.scenarios)-1)
	case key.Matches(keyMsg, keyEnter):
		name := m.SelectedScenario()
		if name == "" {
			return m, nil
		}
		return m, func() tea.Msg { return tuimsg.ScenarioSelectedMsg{ScenarioName: name} }
	}
	return m, nil
}

// View renders the scenarios scene
func (m *ScenariosModel) View() string {
	if len(m.scenarios) == 0 {
		return `No scenarios available.

Load a catalog with scenarios defined.`
	}

	var list strings.Builder
	list.WriteString(tuistyles.SelectedItemStyle.Render("Scenarios"))
	list.WriteString("\n\n")
	for i, s := range m.scenarios {
		if i == m.selectedIndex {
			list.WriteString(tuistyles.SelectedItemStyle.Render("▸ " + s.Name))
		} else {
			list.WriteString(tuistyles.UnselectedItemStyle.Render("  " + s.Name))
		}
		list.WriteString("\n")
	}

	left := tuistyles.BorderStyle.Width(30).Render(list.String())
	right := tuistyles.BorderStyle.
		BorderForeground(tuistyles.ColorPrimary).
		Width(60).
		Render(m.renderDetails(m.scenarios[m.selectedIndex]))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right) + "\n\n" +
		tuistyles.HelpStyle.Render("↑/k up • ↓/j down • Enter simulate • g top • G bottom")
}

func (m *ScenariosModel) renderDetails(s domain.Scenario) string {
	var b strings.Builder
	b.WriteString(tuistyles.SelectedItemStyle.Render(s.Name))
	b.WriteString("\n")
	if s.Description != "" {
		b.WriteString(tuistyles.SubtitleStyle.Render(s.Description))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n%s %d\n", tuistyles.MetricLabelStyle.Render("Months:"), s.MonthCount())

	writeServices := func(label string, services []domain.Service) {
		if len(services) == 0 {
			return
		}
		b.WriteString("\n" + tuistyles.MetricLabelStyle.Render(label) + "\n")
		for _, svc := range services {
			b.WriteString("  • " + m.describe(svc) + "\n")
		}
	}
	writeServices("Once a year:", s.YearlyServices)
	writeServices("Every month:", s.MonthlyServices)

	if len(s.Months) > 0 {
		b.WriteString("\n" + tuistyles.MetricLabelStyle.Render("Scheduled:") + "\n")
		for i, month := range s.Months {
			for _, svc := range month {
				fmt.Fprintf(&b, "  Month %-3d %s\n", i+1, m.describe(svc))
			}
		}
	}

	b.WriteString("\n" + lipgloss.NewStyle().Foreground(tuistyles.ColorInfo).Italic(true).Render("Press Enter to simulate this scenario"))
	return b.String()
}

func (m *ScenariosModel) describe(svc domain.Service) string {
	text := fmt.Sprintf("%s $%s", m.displayName(svc.Name), svc.Cost.StringFixed(2))
	if !svc.InNetwork {
		text += " (out of network)"
	}
	return text
}
