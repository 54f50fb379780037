package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/healthsim/internal/calculation"
	"github.com/rgehrsitz/healthsim/internal/config"
	"github.com/rgehrsitz/healthsim/internal/logger"
	"github.com/rgehrsitz/healthsim/internal/tui"
)

func main() {
	runtime := config.LoadRuntime()

	configPath := runtime.PlansPath
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Error: Config file not found: %s\n", configPath)
		fmt.Println("Usage: healthsim-tui [config-file]")
		os.Exit(1)
	}

	// Logs would corrupt the alternate screen; send them to a file when asked for.
	engine := calculation.NewCalculationEngine()
	if logPath := os.Getenv("HEALTHSIM_TUI_LOG"); logPath != "" {
		f, err := tea.LogToFile(logPath, "healthsim")
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		level, err := logger.ParseLevel(runtime.LogLevel)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		logger.Configure(f, level, false)
		engine.SetLogger(logger.Printf{})
	}

	p := tea.NewProgram(
		tui.NewModel(configPath, engine),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
