package output

import (
	"bytes"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
	"github.com/rgehrsitz/healthsim/internal/domain"
)

// MonthlyRow is the Parquet row for one month of one plan under one scenario
type MonthlyRow struct {
	RunID                  string  `parquet:"run_id"`
	Scenario               string  `parquet:"scenario"`
	Plan                   string  `parquet:"plan"`
	Month                  int32   `parquet:"month"`
	MonthTotal             float64 `parquet:"month_total"`
	MonthService           float64 `parquet:"month_service"`
	YearTotal              float64 `parquet:"year_total"`
	YearService            float64 `parquet:"year_service"`
	CoverageRemaining      float64 `parquet:"coverage_remaining"`
	InNetworkMonthTotal    float64 `parquet:"in_network_month_total"`
	InNetworkDeductible    float64 `parquet:"in_network_deductible"`
	InNetworkOOPMaximum    float64 `parquet:"in_network_oop_maximum"`
	OutOfNetworkMonthTotal float64 `parquet:"out_of_network_month_total"`
	OutOfNetworkDeductible float64 `parquet:"out_of_network_deductible"`
	OutOfNetworkOOPMaximum float64 `parquet:"out_of_network_oop_maximum"`
}

// ParquetWriter streams monthly rows to a Parquet file
type ParquetWriter struct {
	writer *parquet.GenericWriter[MonthlyRow]
	runID  string
	count  int
}

// NewParquetWriter creates a Snappy-compressed writer on w. runID tags every row.
func NewParquetWriter(w io.Writer, runID string) *ParquetWriter {
	return &ParquetWriter{
		writer: parquet.NewGenericWriter[MonthlyRow](w, parquet.Compression(&parquet.Snappy)),
		runID:  runID,
	}
}

// Write appends every month of a simulation result
func (pw *ParquetWriter) Write(result domain.SimulationResult) error {
	rows := make([]MonthlyRow, len(result.States))
	for i, s := range result.States {
		rec := s.Record()
		rows[i] = MonthlyRow{
			RunID:                  pw.runID,
			Scenario:               result.ScenarioName,
			Plan:                   result.PlanName,
			Month:                  int32(i + 1),
			MonthTotal:             rec.MonthTotal,
			MonthService:           rec.MonthService,
			YearTotal:              rec.YearTotal,
			YearService:            rec.YearService,
			CoverageRemaining:      rec.CoverageRemaining,
			InNetworkMonthTotal:    rec.InNetwork.MonthTotal,
			InNetworkDeductible:    rec.InNetwork.Deductible,
			InNetworkOOPMaximum:    rec.InNetwork.OOPMaximum,
			OutOfNetworkMonthTotal: rec.OutOfNetwork.MonthTotal,
			OutOfNetworkDeductible: rec.OutOfNetwork.Deductible,
			OutOfNetworkOOPMaximum: rec.OutOfNetwork.OOPMaximum,
		}
	}
	if _, err := pw.writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet records: %w", err)
	}
	pw.count += len(rows)
	return nil
}

// Close flushes the footer; the underlying writer is left open
func (pw *ParquetWriter) Close() error {
	if err := pw.writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// Count returns the number of rows written
func (pw *ParquetWriter) Count() int {
	return pw.count
}

// ParquetFormatter renders results as an in-memory Parquet file
type ParquetFormatter struct {
	RunID string
}

func (p ParquetFormatter) Name() string { return "parquet" }

func (p ParquetFormatter) Format(results []domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	pw := NewParquetWriter(&buf, p.RunID)
	for _, result := range results {
		if err := pw.Write(result); err != nil {
			return nil, err
		}
	}
	if err := pw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
