package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/healthsim/internal/domain"
)

// CSVFormatter writes one row per plan, scenario and month
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(results []domain.SimulationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"scenario", "plan", "month",
		"month_total", "month_service", "year_total", "year_service", "coverage_remaining",
		"in_network_month_total", "in_network_year_total", "in_network_deductible", "in_network_oop_maximum",
		"out_of_network_month_total", "out_of_network_year_total", "out_of_network_deductible", "out_of_network_oop_maximum",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, result := range results {
		for i, s := range result.States {
			row := []string{
				result.ScenarioName,
				result.PlanName,
				strconv.Itoa(i + 1),
				s.MonthTotal.StringFixed(2),
				s.MonthService.StringFixed(2),
				s.YearTotal.StringFixed(2),
				s.YearService.StringFixed(2),
				s.CoverageRemaining.StringFixed(2),
				s.InNetwork.MonthTotal.StringFixed(2),
				s.InNetwork.YearTotal.StringFixed(2),
				s.InNetwork.Deductible.StringFixed(2),
				s.InNetwork.OOPMaximum.StringFixed(2),
				s.OutOfNetwork.MonthTotal.StringFixed(2),
				s.OutOfNetwork.YearTotal.StringFixed(2),
				s.OutOfNetwork.Deductible.StringFixed(2),
				s.OutOfNetwork.OOPMaximum.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
