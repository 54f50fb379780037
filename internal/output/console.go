package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/healthsim/internal/domain"
)

// ConsoleFormatter prints the year-end outcome of every plan, grouped by scenario
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results []domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	for _, group := range groupByScenario(results) {
		fmt.Fprintf(&buf, "For the %s simulation:\n", group[0].ScenarioName)
		for _, result := range group {
			final := result.Final()
			fmt.Fprintf(&buf, "  %s Plan results:\n", result.PlanName)
			fmt.Fprintf(&buf, "  Net cost to employee over year: %s\n", FormatCurrency(final.YearTotal))
			fmt.Fprintf(&buf, "  Net cost less premiums over year: %s\n", FormatCurrency(final.YearService))
			fmt.Fprintf(&buf, "  Remaining employer contribution: %s\n\n", FormatCurrency(final.CoverageRemaining))
		}
	}
	return buf.Bytes(), nil
}

// ConsoleVerboseFormatter prints a month-by-month table and a cumulative cost chart per scenario
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console-verbose" }

func (c ConsoleVerboseFormatter) Format(results []domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	for _, group := range groupByScenario(results) {
		buf.WriteString(strings.Repeat("=", 80) + "\n")
		fmt.Fprintf(&buf, "SCENARIO: %s\n", group[0].ScenarioName)
		buf.WriteString(strings.Repeat("=", 80) + "\n")

		for _, result := range group {
			fmt.Fprintf(&buf, "\n%s\n", result.PlanName)
			fmt.Fprintf(&buf, "%5s %12s %12s %12s %12s %12s %12s\n",
				"Month", "Paid", "Year Total", "Contrib Left", "In Ded", "In OOP", "Out OOP")
			buf.WriteString(strings.Repeat("-", 80) + "\n")
			for i, s := range result.States {
				fmt.Fprintf(&buf, "%5d %12s %12s %12s %12s %12s %12s\n",
					i+1,
					s.MonthTotal.StringFixed(2),
					s.YearTotal.StringFixed(2),
					s.CoverageRemaining.StringFixed(2),
					s.InNetwork.Deductible.StringFixed(2),
					s.InNetwork.OOPMaximum.StringFixed(2),
					s.OutOfNetwork.OOPMaximum.StringFixed(2))
			}
		}

		if chart := CumulativeChart(group, 60, 10); chart != "" {
			buf.WriteString("\n" + chart + "\n")
		}
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// groupByScenario keeps first-seen scenario order and plan order within a scenario
func groupByScenario(results []domain.SimulationResult) [][]domain.SimulationResult {
	index := make(map[string]int)
	var groups [][]domain.SimulationResult
	for _, r := range results {
		i, ok := index[r.ScenarioName]
		if !ok {
			i = len(groups)
			index[r.ScenarioName] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], r)
	}
	return groups
}
