package compare

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PDFFormatter renders a printable comparison report
type PDFFormatter struct{}

// Format builds the PDF bytes
func (pf *PDFFormatter) Format(compSet *ComparisonSet) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Health Plan Comparison")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Base plan: %s", compSet.BasePlanName))
	pdf.Ln(5)
	if compSet.RunID != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Run: %s", compSet.RunID))
		pdf.Ln(5)
	}

	for i := range compSet.Scenarios {
		sc := &compSet.Scenarios[i]
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 6, fmt.Sprintf("Scenario: %s", sc.ScenarioName))
		pdf.Ln(6)
		if sc.Description != "" {
			pdf.SetFont("Arial", "", 9)
			pdf.Cell(0, 5, sc.Description)
			pdf.Ln(6)
		}

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(40, 6, "Plan", "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, "Year Total", "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, "Less Premiums", "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, "Contribution", "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, "vs Base", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
		for _, result := range sc.Results() {
			diff := result.CostDiffFromBase.StringFixed(2)
			name := result.PlanName
			if result.PlanName == compSet.BasePlanName {
				name += " (base)"
				diff = "-"
			}
			pdf.CellFormat(40, 6, name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 6, result.YearTotal.StringFixed(2), "1", 0, "R", false, 0, "")
			pdf.CellFormat(35, 6, result.YearService.StringFixed(2), "1", 0, "R", false, 0, "")
			pdf.CellFormat(35, 6, result.CoverageRemaining.StringFixed(2), "1", 0, "R", false, 0, "")
			pdf.CellFormat(35, 6, diff, "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
	}

	if len(compSet.Recommendations) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 6, "Recommendations")
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 10)
		for _, rec := range compSet.Recommendations {
			pdf.MultiCell(0, 5, "- "+rec, "", "L", false)
		}
	}

	var buf bytes.Buffer
	err := pdf.Output(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
