package tui

import (
	"github.com/rgehrsitz/healthsim/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneScenarios Scene = iota
	SceneResults
	SceneCompare
	SceneHelp
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ConfigLoadedMsg signals configuration has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}
