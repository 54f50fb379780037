package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV, one row per plan and scenario
type CSVFormatter struct{}

var csvHeader = []string{
	"Scenario",
	"Plan",
	"Type",
	"Months",
	"Year Total",
	"Year Service",
	"Year Premiums",
	"Coverage Remaining",
	"In-Network Paid",
	"Out-of-Network Paid",
	"Cost Diff from Base",
	"Cost % Change",
	"Service Diff from Base",
}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	if err := writer.Write(csvHeader); err != nil {
		return "", err
	}

	for _, row := range comparisonRows(compSet) {
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// comparisonRows flattens a comparison set into table rows matching csvHeader
func comparisonRows(compSet *ComparisonSet) [][]string {
	var rows [][]string
	for i := range compSet.Scenarios {
		sc := &compSet.Scenarios[i]
		if sc.BaseResult != nil {
			rows = append(rows, formatRow(sc.BaseResult, "base"))
		}
		for j := range sc.AlternativeResults {
			rows = append(rows, formatRow(&sc.AlternativeResults[j], "alternative"))
		}
	}
	return rows
}

// formatRow formats a comparison result as a CSV row
func formatRow(result *ComparisonResult, planType string) []string {
	return []string{
		result.ScenarioName,
		result.PlanName,
		planType,
		formatInt(result.Months),
		result.YearTotal.StringFixed(2),
		result.YearService.StringFixed(2),
		result.YearPremiums.StringFixed(2),
		result.CoverageRemaining.StringFixed(2),
		result.InNetworkPaid.StringFixed(2),
		result.OutOfNetworkPaid.StringFixed(2),
		result.CostDiffFromBase.StringFixed(2),
		result.CostPctFromBase.StringFixed(2),
		result.ServiceDiffFromBase.StringFixed(2),
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
