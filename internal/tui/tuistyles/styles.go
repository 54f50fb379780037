// Package tuistyles holds the colors and lipgloss styles shared by the TUI
// scenes and components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#3C9EE7")
	ColorAccent    = lipgloss.Color("#F2A541")
	ColorSuccess   = lipgloss.Color("#3FB950")
	ColorDanger    = lipgloss.Color("#F85149")
	ColorInfo      = lipgloss.Color("#58A6FF")

	ColorForeground = lipgloss.Color("#E6EDF3")
	ColorMuted      = lipgloss.Color("#8B949E")
	ColorBorder     = lipgloss.Color("#30363D")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true).
			Padding(1, 2)

	HelpStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)

// MetricTrendStyle colors savings green and extra cost red
func MetricTrendStyle(cheaper bool) lipgloss.Style {
	if cheaper {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator points down for savings and up for extra cost
func TrendIndicator(cheaper bool) string {
	if cheaper {
		return "▼"
	}
	return "▲"
}

// FormatCurrency renders whole-cent dollars
func FormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + amount.Neg().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}
