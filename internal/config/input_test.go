package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/healthsim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const examplePlans = "../../examples/plans.yaml"

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plans.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()

	config, err := parser.LoadFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, config, "Should return nil config")
	assert.Contains(t, err.Error(), "failed to read file", "Should have specific error message")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "invalid: yaml: content: [unclosed")

	config, err := NewInputParser().LoadFromFile(path)

	assert.Error(t, err, "Should error for invalid YAML")
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestInputParser_LoadFromFile_ExampleCatalog(t *testing.T) {
	config, err := NewInputParser().LoadFromFile(examplePlans)
	require.NoError(t, err)

	assert.Equal(t, []string{"POS", "HDHP"}, config.PlanNames())
	assert.Equal(t, []string{"healthy", "chronic", "traveling"}, config.ScenarioNames())

	pos, ok := config.FindPlan("POS")
	require.True(t, ok)
	assert.True(t, pos.Premium.Equal(decimal.NewFromInt(55)))
	assert.Equal(t, domain.ModifierCoinsurance, pos.OutOfNetwork.Services["pcp"].Kind)

	traveling, ok := config.FindScenario("traveling")
	require.True(t, ok)
	assert.Equal(t, 6, traveling.MonthCount())
	assert.False(t, traveling.Month(0)[0].InNetwork)

	healthy, ok := config.FindScenario("healthy")
	require.True(t, ok)
	assert.Equal(t, 12, healthy.MonthCount())
	assert.True(t, healthy.Month(0)[0].InNetwork, "in_network defaults to true")
}

func TestInputParser_LoadFromReader_JSON(t *testing.T) {
	doc := `{"plans": [{"name": "Basic", "premium": 10, "employer_contribution": 0,
  "in_network": {"deductible": 100, "out_of_pocket_max": 1000, "services": {"pcp": {"kind": "copay", "value": 20}}},
  "out_of_network": {"deductible": 100, "out_of_pocket_max": 1000}}],
  "scenarios": [{"name": "one", "months": [[{"service": "pcp", "cost": 80}]]}]}`

	config, err := NewInputParser().LoadFromReader(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, config.Plans, 1)
	assert.True(t, config.Plans[0].InNetwork.Services["pcp"].Value.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 1, config.Scenarios[0].MonthCount())
}

func TestInputParser_ValidateConfiguration(t *testing.T) {
	plan := `
plans:
  - name: Basic
    premium: 10
    in_network: {deductible: 0, out_of_pocket_max: 100}
    out_of_network: {deductible: 0, out_of_pocket_max: 100}
`
	tests := []struct {
		name    string
		content string
		message string
	}{
		{"no plans", "scenarios: []\n", "at least one plan is required"},
		{"negative premium", strings.Replace(plan, "premium: 10", "premium: -10", 1), "amount cannot be negative"},
		{"duplicate plan", plan + strings.Replace(plan, "plans:\n", "", 1), "duplicate plan name"},
		{"unknown keys ignored", plan + "    extra: 1\n", ""},
		{"unknown modifier kind", strings.Replace(plan, "in_network: {deductible: 0, out_of_pocket_max: 100}",
			"in_network: {deductible: 0, out_of_pocket_max: 100, services: {pcp: {kind: discount}}}", 1), "unknown modifier kind"},
		{"invalid scenario service", plan + "scenarios:\n  - name: s\n    months: [[{service: pcp, cost: -1}]]\n", "invalid service"},
		{"empty scenario", plan + "scenarios:\n  - name: s\n", "no months"},
		{"duplicate scenario", plan + "scenarios:\n  - {name: s, months: [[]]}\n  - {name: s, months: [[]]}\n", "duplicate scenario name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().LoadFromFile(writeConfig(t, tt.content))
			if tt.message == "" {
				assert.NoError(t, err, "unknown keys are ignored")
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestInputParser_CatalogWithoutScenarios(t *testing.T) {
	config, err := NewInputParser().LoadFromFile(writeConfig(t, `
plans:
  - name: Basic
    premium: 10
    in_network: {deductible: 0, out_of_pocket_max: 100}
    out_of_network: {deductible: 0, out_of_pocket_max: 100}
`))
	require.NoError(t, err)
	assert.Empty(t, config.Scenarios)
}

func TestInputParser_LoadScenarios(t *testing.T) {
	path := writeConfig(t, `
scenarios:
  - name: surgery
    months:
      - [{service: surgery, cost: 12000}]
      - [{service: pt, cost: 150}, {service: pt, cost: 150}]
`)
	scenarios, err := NewInputParser().LoadScenarios(path)
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Equal(t, 2, scenarios[0].MonthCount())
	assert.Len(t, scenarios[0].Month(1), 2)

	_, err = NewInputParser().LoadScenarios(writeConfig(t, "plans: []\n"))
	assert.Error(t, err)
}
