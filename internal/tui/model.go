package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/healthsim/internal/calculation"
	"github.com/rgehrsitz/healthsim/internal/compare"
	"github.com/rgehrsitz/healthsim/internal/config"
	"github.com/rgehrsitz/healthsim/internal/domain"
	"github.com/rgehrsitz/healthsim/internal/tui/scenes"
	"github.com/rgehrsitz/healthsim/internal/tui/tuimsg"
	"github.com/rgehrsitz/healthsim/internal/tui/tuistyles"
)

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	configPath string
	config     *domain.Configuration
	engine     *calculation.CalculationEngine

	selectedScenario string

	scenariosModel *scenes.ScenariosModel
	resultsModel   *scenes.ResultsModel
	compareModel   *scenes.CompareModel

	err error

	loading        bool
	loadingMessage string
	spinner        spinner.Model
}

// NewModel creates a new application model
func NewModel(configPath string, engine *calculation.CalculationEngine) Model {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = s.Style.Foreground(tuistyles.ColorAccent)
	return Model{
		currentScene:   SceneScenarios,
		configPath:     configPath,
		engine:         engine,
		scenariosModel: scenes.NewScenariosModel(),
		resultsModel:   scenes.NewResultsModel(),
		compareModel:   scenes.NewCompareModel(),
		spinner:        s,
		loading:        true,
		width:          80,
		height:         24,
	}
}

// Init loads the configuration (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadConfigCmd(m.configPath))
}

// loadConfigCmd returns a command that loads the configuration file
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

// simulateScenarioCmd runs one scenario under every plan
func simulateScenarioCmd(engine *calculation.CalculationEngine, cfg *domain.Configuration, scenarioName string) tea.Cmd {
	return func() tea.Msg {
		results := make([]domain.SimulationResult, 0, len(cfg.Plans))
		for _, plan := range cfg.PlanNames() {
			result, err := engine.RunByName(context.Background(), cfg, plan, scenarioName)
			if err != nil {
				return tuimsg.SimulationCompleteMsg{ScenarioName: scenarioName, Err: err}
			}
			results = append(results, *result)
		}
		return tuimsg.SimulationCompleteMsg{ScenarioName: scenarioName, Results: results}
	}
}

// compareCmd compares every plan across every scenario against base
func compareCmd(engine *calculation.CalculationEngine, cfg *domain.Configuration, base string) tea.Cmd {
	return func() tea.Msg {
		set, err := compare.NewCompareEngine(engine).Compare(context.Background(), cfg, compare.CompareOptions{BasePlanName: base})
		return tuimsg.ComparisonCompleteMsg{Set: set, Err: err}
	}
}

func (s Scene) String() string {
	switch s {
	case SceneScenarios:
		return "Scenarios"
	case SceneResults:
		return "Results"
	case SceneCompare:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
