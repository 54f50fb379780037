package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing plans for each scenario
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("HEALTH PLAN COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Plan: %s\n", compSet.BasePlanName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}

	nameWidth := 20
	numWidth := 14

	for i := range compSet.Scenarios {
		sc := &compSet.Scenarios[i]
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Scenario: %s\n", sc.ScenarioName))
		if sc.Description != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", sc.Description))
		}
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
			nameWidth, "Plan",
			numWidth, "Year Total",
			numWidth, "Less Premiums",
			numWidth, "Contribution",
			numWidth, "vs Base"))
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		if sc.BaseResult != nil {
			sb.WriteString(tf.formatRow(sc.BaseResult, nameWidth, numWidth, true))
		}
		for _, alt := range sc.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Recommendations
	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single plan row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.PlanName
	diff := tf.deltaSymbol(result.CostDiffFromBase) + "$" + tf.formatDecimal(result.CostDiffFromBase.Abs())
	if isBase {
		name += " (base)"
		diff = "-"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "$"+tf.formatDecimal(result.YearTotal),
		numWidth, "$"+tf.formatDecimal(result.YearService),
		numWidth, "$"+tf.formatDecimal(result.CoverageRemaining),
		numWidth, diff)
}

// formatDecimal formats a decimal for display, in thousands above 10K
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(10000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(2)
}

// deltaSymbol returns the sign shown in front of a cost difference
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary per scenario naming the cheapest plan
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BasePlanName))

	for i := range compSet.Scenarios {
		if i > 0 {
			sb.WriteString(" | ")
		}
		sc := &compSet.Scenarios[i]
		best := sc.Cheapest()
		if best == nil {
			sb.WriteString(sc.ScenarioName + ": -")
			continue
		}
		sb.WriteString(fmt.Sprintf("%s: %s $%s", sc.ScenarioName, best.PlanName, tf.formatDecimal(best.YearTotal)))
	}

	return sb.String()
}
