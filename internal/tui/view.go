package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), m.loadingText())))
	}
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err)))
	}

	var content string
	switch m.currentScene {
	case SceneScenarios:
		content = m.scenariosModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneHelp:
		content = BorderStyle.Render(helpText)
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

func (m Model) loadingText() string {
	if m.loadingMessage == "" {
		return "Loading..."
	}
	return m.loadingMessage
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("healthsim - Health Plan Cost Simulator")

	breadcrumb := m.currentScene.String()
	if m.currentScene == SceneResults && m.selectedScenario != "" {
		breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, m.selectedScenario)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(breadcrumb))
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("s", "scenarios"),
		formatShortcut("r", "results"),
		formatShortcut("c", "compare"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	statusText := strings.Join(shortcuts, " • ")

	if m.config != nil {
		loaded := SubtitleStyle.Render(fmt.Sprintf("%d plans · %s", len(m.config.Plans), m.configPath))
		spacer := strings.Repeat(" ", max(0, m.width-lipgloss.Width(statusText)-lipgloss.Width(loaded)-4))
		statusText = statusText + spacer + loaded
	}
	return StatusBarStyle.Width(m.width).Render(statusText)
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

const helpText = `healthsim - Health Plan Cost Simulator

KEYBOARD SHORTCUTS:
  s        Scenarios
  r        Results of the last simulated scenario
  c        Compare every plan across every scenario
  ?        Show this help
  ESC      Go back
  q/Ctrl+C Quit

SCENARIOS:
  ↑/↓      Move selection
  Enter    Simulate the scenario under every plan

RESULTS:
  Tab      Show the next plan's months
  ↑/↓      Scroll months

COMPARE:
  Tab      Use the next plan as the base`
