package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/rgehrsitz/healthsim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func buildTestResults() []domain.SimulationResult {
	return []domain.SimulationResult{
		{
			PlanName:     "POS",
			ScenarioName: "healthy",
			States: []domain.PlanState{
				{MonthTotal: dec(70), MonthService: dec(15), YearTotal: dec(70), YearService: dec(15),
					InNetwork: domain.NetworkState{MonthTotal: dec(15), YearTotal: dec(15), OOPMaximum: dec(1485)}},
				{MonthTotal: dec(55), YearTotal: dec(125), YearService: dec(15),
					InNetwork: domain.NetworkState{YearTotal: dec(15), OOPMaximum: dec(1485)}},
			},
		},
		{
			PlanName:     "HDHP",
			ScenarioName: "healthy",
			States: []domain.PlanState{
				{MonthTotal: dec(15), YearTotal: dec(15), CoverageRemaining: dec(475),
					InNetwork: domain.NetworkState{MonthTotal: dec(150), YearTotal: dec(150), Deductible: dec(1350), OOPMaximum: dec(2350)}},
				{MonthTotal: dec(15), YearTotal: dec(30), CoverageRemaining: dec(475),
					InNetwork: domain.NetworkState{YearTotal: dec(150), Deductible: dec(1350), OOPMaximum: dec(2350)}},
			},
		},
		{
			PlanName:     "POS",
			ScenarioName: "chronic",
			States:       []domain.PlanState{{MonthTotal: dec(145), YearTotal: dec(145), YearService: dec(90)}},
		},
	}
}

func TestFormatterFunc(t *testing.T) {
	called := false
	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(results []domain.SimulationResult) ([]byte, error) {
			called = true
			return []byte(fmt.Sprintf("%d results", len(results))), nil
		},
	}

	output, err := formatter.Format(buildTestResults())

	assert.NoError(t, err)
	assert.True(t, called, "Should call the function")
	assert.Equal(t, "3 results", string(output))
	assert.Equal(t, "test-formatter", formatter.Name())
}

func TestWriteFormatted(t *testing.T) {
	t.Chdir(t.TempDir())

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(results []domain.SimulationResult) ([]byte, error) {
			return []byte("test output content"), nil
		},
	}

	filename, err := WriteFormatted(formatter, buildTestResults(), "txt")

	require.NoError(t, err)
	assert.Contains(t, filename, "healthsim_report_", "Should have correct prefix")
	assert.True(t, strings.HasSuffix(filename, ".txt"), "Should have correct extension")

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "test output content", string(content))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "error-formatter",
		F: func(results []domain.SimulationResult) ([]byte, error) {
			return nil, fmt.Errorf("formatter error")
		},
	}

	filename, err := WriteFormatted(formatter, buildTestResults(), "txt")

	assert.Error(t, err, "Should error when formatter fails")
	assert.Empty(t, filename, "Should return empty filename on error")
	assert.Contains(t, err.Error(), "formatter error")
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "console-verbose", "csv", "json", "parquet"}, AvailableFormatterNames())
	assert.Equal(t, []string{"monthly", "text", "verbose"}, AvailableFormatAliases())
}

func TestGetFormatterByName(t *testing.T) {
	assert.Equal(t, "console", GetFormatterByName("console").Name())
	assert.Equal(t, "console-verbose", GetFormatterByName("monthly").Name())
	assert.Nil(t, GetFormatterByName("non-existent"))
}

func TestConsoleFormatter_Format(t *testing.T) {
	output, err := ConsoleFormatter{}.Format(buildTestResults())
	require.NoError(t, err)

	content := string(output)
	assert.Contains(t, content, "For the healthy simulation:")
	assert.Contains(t, content, "  POS Plan results:")
	assert.Contains(t, content, "  Net cost to employee over year: $125.00")
	assert.Contains(t, content, "  Net cost less premiums over year: $15.00")
	assert.Contains(t, content, "  Remaining employer contribution: $475.00")
	assert.Less(t, strings.Index(content, "healthy"), strings.Index(content, "chronic"), "Scenario order is kept")
	assert.Equal(t, 1, strings.Count(content, "For the healthy simulation:"))
}

func TestConsoleVerboseFormatter_Format(t *testing.T) {
	output, err := ConsoleVerboseFormatter{}.Format(buildTestResults())
	require.NoError(t, err)

	content := string(output)
	assert.Contains(t, content, "SCENARIO: healthy")
	assert.Contains(t, content, "SCENARIO: chronic")
	assert.Contains(t, content, "cumulative cost: POS, HDHP")
	assert.Contains(t, content, "1350.00")
}

func TestConsoleFormatter_Empty(t *testing.T) {
	output, err := ConsoleFormatter{}.Format(nil)
	require.NoError(t, err)
	assert.Empty(t, output)
}

func TestCSVFormatter_Format(t *testing.T) {
	output, err := CSVFormatter{}.Format(buildTestResults())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(output)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6, "header plus five months")

	assert.Equal(t, []string{"scenario", "plan", "month"}, records[0][:3])
	assert.Equal(t, []string{"healthy", "HDHP", "2"}, records[4][:3])
	assert.Equal(t, "30.00", records[4][5])
	assert.Equal(t, "1350.00", records[4][10])
}

func TestJSONFormatter_Format(t *testing.T) {
	output, err := JSONFormatter{}.Format(buildTestResults())
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(output, &decoded))
	require.Len(t, decoded, 3)

	assert.Equal(t, "POS", decoded[0]["plan"])
	months := decoded[0]["months"].([]any)
	require.Len(t, months, 2)
	first := months[0].(map[string]any)
	assert.Equal(t, 70.0, first["month_total"])
	assert.Equal(t, 1485.0, first["in_network"].(map[string]any)["oop_maximum"])
}

func TestParquetFormatter_Format(t *testing.T) {
	output, err := ParquetFormatter{RunID: "run-42"}.Format(buildTestResults())
	require.NoError(t, err)

	rows, err := parquet.Read[MonthlyRow](bytes.NewReader(output), int64(len(output)))
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, "run-42", rows[0].RunID)
	assert.Equal(t, "POS", rows[0].Plan)
	assert.Equal(t, int32(2), rows[3].Month)
	assert.Equal(t, "HDHP", rows[3].Plan)
	assert.Equal(t, 1350.0, rows[3].InNetworkDeductible)
	assert.Equal(t, "chronic", rows[4].Scenario)
	assert.Equal(t, 145.0, rows[4].YearTotal)
}

func TestParquetWriter_Count(t *testing.T) {
	var buf bytes.Buffer
	pw := NewParquetWriter(&buf, "")
	for _, r := range buildTestResults() {
		require.NoError(t, pw.Write(r))
	}
	require.NoError(t, pw.Close())
	assert.Equal(t, 5, pw.Count())
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PAR1")))
}

func TestCumulativeChart(t *testing.T) {
	results := buildTestResults()[:2]

	chart := CumulativeChart(results, 40, 5)
	assert.Contains(t, chart, "cumulative cost: POS, HDHP")

	single := CumulativeChart(results[:1], 10, 1)
	assert.Contains(t, single, "cumulative cost: POS")

	assert.Empty(t, CumulativeChart(nil, 40, 5))
	assert.Empty(t, CumulativeChart([]domain.SimulationResult{{PlanName: "empty"}}, 40, 5))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "$1500.00", FormatCurrency(dec(1500)))
	assert.Equal(t, "20.00%", FormatPercentage(dec(20)))
}
