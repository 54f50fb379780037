package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rgehrsitz/healthsim/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders simulation results in one output format
type Formatter interface {
	Name() string
	Format(results []domain.SimulationResult) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(results []domain.SimulationResult) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(results []domain.SimulationResult) ([]byte, error) {
	return f.F(results)
}

var formatters = map[string]Formatter{
	"console":         ConsoleFormatter{},
	"console-verbose": ConsoleVerboseFormatter{},
	"csv":             CSVFormatter{},
	"json":            JSONFormatter{},
	"parquet":         ParquetFormatter{},
}

var formatAliases = map[string]string{
	"text":    "console",
	"verbose": "console-verbose",
	"monthly": "console-verbose",
}

// AvailableFormatterNames lists registered formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists accepted aliases, sorted
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// GetFormatterByName resolves a formatter name or alias; nil when unknown
func GetFormatterByName(name string) Formatter {
	if target, ok := formatAliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// WriteFormatted formats results and writes them to a timestamped file in the
// working directory, returning the file name
func WriteFormatted(f Formatter, results []domain.SimulationResult, ext string) (string, error) {
	data, err := f.Format(results)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("healthsim_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}
