package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/shopspring/decimal"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct {
	Chart bool // Plot both plans' totals across the scanned range
}

// Format generates a formatted table for one break-even result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Scenario:     %s\n", result.ScenarioName))
	sb.WriteString(fmt.Sprintf("Plans:        %s vs %s\n", result.PlanA, result.PlanB))
	sb.WriteString(fmt.Sprintf("Status:       %s\n", tf.formatStatus(result.Found)))
	sb.WriteString(fmt.Sprintf("Evaluations:  %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:  %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	if result.Found {
		sb.WriteString("BREAK-EVEN POINT\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Usage Factor: %sx scenario costs\n", result.Factor.StringFixed(4)))
		sb.WriteString(fmt.Sprintf("%-12s  $%s\n", tf.truncate(result.PlanA, 12)+":", tf.formatCurrency(result.TotalA)))
		sb.WriteString(fmt.Sprintf("%-12s  $%s\n", tf.truncate(result.PlanB, 12)+":", tf.formatCurrency(result.TotalB)))
		if result.CheaperBelow != "" {
			sb.WriteString(fmt.Sprintf("Below:        %s is cheaper\n", result.CheaperBelow))
		}
		if result.CheaperAbove != "" {
			sb.WriteString(fmt.Sprintf("Above:        %s is cheaper\n", result.CheaperAbove))
		}
		sb.WriteString("\n")
	} else if result.CheaperBelow != "" && result.CheaperBelow == result.CheaperAbove {
		sb.WriteString(fmt.Sprintf("%s is cheaper across the whole range\n\n", result.CheaperBelow))
	}

	sb.WriteString("SCAN\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%8s %14s %14s %14s\n", "Factor",
		tf.truncate(result.PlanA, 14), tf.truncate(result.PlanB, 14), "Difference"))
	for _, s := range result.Samples {
		diff := s.Diff()
		sb.WriteString(fmt.Sprintf("%8s %14s %14s %14s\n",
			s.Factor.StringFixed(2),
			"$"+tf.formatShort(s.TotalA),
			"$"+tf.formatShort(s.TotalB),
			tf.deltaSymbol(diff)+"$"+tf.formatShort(diff)))
	}

	if tf.Chart && len(result.Samples) > 1 {
		sb.WriteString("\n")
		sb.WriteString(tf.chart(result))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatMulti formats break-even results for several scenarios
func (tf *TableFormatter) FormatMulti(result *MultiResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN BY SCENARIO\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-20s %10s %-20s %-20s\n", "Scenario", "Factor", "Cheaper Below", "Cheaper Above"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, r := range result.Results {
		factor := "none"
		if r.Found {
			factor = r.Factor.StringFixed(2) + "x"
		}
		sb.WriteString(fmt.Sprintf("%-20s %10s %-20s %-20s\n",
			tf.truncate(r.ScenarioName, 20), factor,
			tf.truncate(r.CheaperBelow, 20), tf.truncate(r.CheaperAbove, 20)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
	}

	return sb.String()
}

func (tf *TableFormatter) chart(result *Result) string {
	a := make([]float64, len(result.Samples))
	b := make([]float64, len(result.Samples))
	for i, s := range result.Samples {
		a[i] = s.TotalA.InexactFloat64()
		b[i] = s.TotalB.InexactFloat64()
	}
	first := result.Samples[0].Factor
	last := result.Samples[len(result.Samples)-1].Factor
	return asciigraph.PlotMany([][]float64{a, b},
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
		asciigraph.Caption(fmt.Sprintf("year total, %s (red) vs %s (blue), factor %s to %s",
			result.PlanA, result.PlanB, first.StringFixed(2), last.StringFixed(2))),
	)
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	return jf.marshal(result)
}

// FormatMulti generates JSON output for several scenarios
func (jf *JSONFormatter) FormatMulti(result *MultiResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(found bool) string {
	if found {
		return "✓ Break-even found"
	}
	return "⚠ No break-even in range"
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	d = d.Abs()
	if d.GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.GreaterThanOrEqual(decimal.NewFromInt(10000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
