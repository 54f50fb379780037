package compare

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXFormatter renders a comparison as a workbook with a summary sheet, one
// row per plan and scenario, and a monthly sheet of cumulative costs
type XLSXFormatter struct{}

// Format builds the workbook bytes
func (xf *XLSXFormatter) Format(compSet *ComparisonSet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "summary"
	monthlySheet := "monthly"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(monthlySheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", "Health Plan Comparison")
	_ = f.SetCellValue(summarySheet, "A2", "Base Plan")
	_ = f.SetCellValue(summarySheet, "B2", compSet.BasePlanName)

	const headerRow = 4
	for col, title := range csvHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(summarySheet, cell, title)
	}

	row := headerRow + 1
	monthlyRow := 2
	_ = f.SetCellValue(monthlySheet, "A1", "Scenario")
	_ = f.SetCellValue(monthlySheet, "B1", "Plan")
	_ = f.SetCellValue(monthlySheet, "C1", "Month")
	_ = f.SetCellValue(monthlySheet, "D1", "Year Total")

	for i := range compSet.Scenarios {
		sc := &compSet.Scenarios[i]
		for _, result := range sc.Results() {
			planType := "alternative"
			if result.PlanName == compSet.BasePlanName {
				planType = "base"
			}
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), result.ScenarioName)
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), result.PlanName)
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), planType)
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("D%d", row), result.Months)
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("E%d", row), result.YearTotal.InexactFloat64())
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("F%d", row), result.YearService.InexactFloat64())
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("G%d", row), result.YearPremiums.InexactFloat64())
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("H%d", row), result.CoverageRemaining.InexactFloat64())
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("I%d", row), result.InNetworkPaid.InexactFloat64())
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("J%d", row), result.OutOfNetworkPaid.InexactFloat64())
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("K%d", row), result.CostDiffFromBase.InexactFloat64())
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("L%d", row), result.CostPctFromBase.InexactFloat64())
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("M%d", row), result.ServiceDiffFromBase.InexactFloat64())
			row++

			for month, total := range result.Trajectory {
				_ = f.SetCellValue(monthlySheet, fmt.Sprintf("A%d", monthlyRow), result.ScenarioName)
				_ = f.SetCellValue(monthlySheet, fmt.Sprintf("B%d", monthlyRow), result.PlanName)
				_ = f.SetCellValue(monthlySheet, fmt.Sprintf("C%d", monthlyRow), month+1)
				_ = f.SetCellValue(monthlySheet, fmt.Sprintf("D%d", monthlyRow), total.InexactFloat64())
				monthlyRow++
			}
		}
	}

	if len(compSet.Recommendations) > 0 {
		row++
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Recommendations")
		for _, rec := range compSet.Recommendations {
			row++
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), rec)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
