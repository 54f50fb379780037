package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/healthsim/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scenariosModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		m.config = msg.Config
		m.loading = false
		m.scenariosModel.SetScenarios(msg.Config.Scenarios, msg.Config.DisplayName)
		m.compareModel.SetPlans(msg.Config.PlanNames())
		return m, nil

	case tuimsg.ScenarioSelectedMsg:
		if m.config == nil {
			return m, nil
		}
		m.selectedScenario = msg.ScenarioName
		m.loading = true
		m.loadingMessage = "Simulating " + msg.ScenarioName + "..."
		return m, tea.Batch(m.spinner.Tick, simulateScenarioCmd(m.engine, m.config, msg.ScenarioName))

	case tuimsg.SimulationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.resultsModel.SetResults(msg.ScenarioName, msg.Results)
		m.previousScene = m.currentScene
		m.currentScene = SceneResults
		return m, nil

	case tuimsg.CompareRequestedMsg:
		if m.config == nil {
			return m, nil
		}
		m.loading = true
		m.loadingMessage = "Comparing plans..."
		return m, tea.Batch(m.spinner.Tick, compareCmd(m.engine, m.config, msg.BasePlanName))

	case tuimsg.ComparisonCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.compareModel.SetComparison(msg.Set)
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.err = nil
		return m, nil
	}
	if m.loading {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		return m.navigate(SceneHelp), nil

	case "esc":
		if m.currentScene == SceneHelp && m.previousScene != SceneHelp {
			return m.navigate(m.previousScene), nil
		}
		return m.navigate(SceneScenarios), nil

	case "s":
		return m.navigate(SceneScenarios), nil

	case "r":
		return m.navigate(SceneResults), nil

	case "c":
		if m.currentScene == SceneCompare {
			return m, m.compareModel.Request()
		}
		m = m.navigate(SceneCompare)
		return m, m.compareModel.Request()
	}

	return m.updateCurrentScene(msg)
}

func (m Model) navigate(scene Scene) Model {
	if scene != m.currentScene {
		m.previousScene = m.currentScene
		m.currentScene = scene
	}
	return m
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneScenarios:
		m.scenariosModel, cmd = m.scenariosModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	}
	return m, cmd
}
