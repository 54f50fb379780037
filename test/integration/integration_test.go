package integration

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/healthsim/internal/breakeven"
	"github.com/rgehrsitz/healthsim/internal/calculation"
	"github.com/rgehrsitz/healthsim/internal/compare"
	"github.com/rgehrsitz/healthsim/internal/config"
	"github.com/rgehrsitz/healthsim/internal/domain"
	"github.com/rgehrsitz/healthsim/internal/output"
	"github.com/rgehrsitz/healthsim/internal/store"
	"github.com/rgehrsitz/healthsim/internal/transform"
)

const examplePlans = "../../examples/plans.yaml"

func loadExample(t *testing.T) *domain.Configuration {
	t.Helper()
	cfg, err := config.NewInputParser().LoadFromFile(examplePlans)
	require.NoError(t, err)
	return cfg
}

func find(results []domain.SimulationResult, plan, scenario string) *domain.SimulationResult {
	for i := range results {
		if results[i].PlanName == plan && results[i].ScenarioName == scenario {
			return &results[i]
		}
	}
	return nil
}

// setupTestEnvironment points runtime settings at a scratch directory
func setupTestEnvironment(t *testing.T) string {
	dir := t.TempDir()
	t.Setenv("HEALTHSIM_LOG_LEVEL", "error")
	t.Setenv("HEALTHSIM_DB", filepath.Join(dir, "healthsim.db"))
	return dir
}

func TestEndToEndSimulation(t *testing.T) {
	setupTestEnvironment(t)
	cfg := loadExample(t)
	require.NoError(t, config.NewInputParser().ValidateConfiguration(cfg))

	results, err := calculation.NewCalculationEngine().RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, results, len(cfg.Plans)*len(cfg.Scenarios))

	expected := []struct {
		plan, scenario string
		months         int
		total          int64
	}{
		{"POS", "healthy", 12, 690},
		{"HDHP", "healthy", 12, 180},
		{"POS", "chronic", 12, 915},
		{"HDHP", "chronic", 12, 2055},
	}
	for _, e := range expected {
		r := find(results, e.plan, e.scenario)
		require.NotNil(t, r, "%s/%s", e.plan, e.scenario)
		assert.Len(t, r.States, e.months)
		assert.True(t, r.Final().YearTotal.Equal(decimal.NewFromInt(e.total)),
			"%s/%s: got %s", e.plan, e.scenario, r.Final().YearTotal.String())
	}

	traveling := find(results, "POS", "traveling")
	require.NotNil(t, traveling)
	assert.Len(t, traveling.States, 6)
}

func TestCalculationConsistency(t *testing.T) {
	cfg := loadExample(t)
	engine := calculation.NewCalculationEngine()

	first, err := engine.RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	second, err := engine.RunScenarios(context.Background(), cfg)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Records(), second[i].Records(), "run %d differs", i)
	}
}

func TestOutputFormats(t *testing.T) {
	cfg := loadExample(t)
	results, err := calculation.NewCalculationEngine().RunScenarios(context.Background(), cfg)
	require.NoError(t, err)

	for _, name := range output.AvailableFormatterNames() {
		t.Run(name, func(t *testing.T) {
			f := output.GetFormatterByName(name)
			require.NotNil(t, f)
			data, err := f.Format(results)
			require.NoError(t, err)
			assert.NotEmpty(t, data)
		})
	}

	var buf bytes.Buffer
	pw := output.NewParquetWriter(&buf, "integration")
	for _, r := range results {
		require.NoError(t, pw.Write(r))
	}
	require.NoError(t, pw.Close())
	assert.Equal(t, 60, pw.Count())
}

func TestStoreRoundTrip(t *testing.T) {
	dir := setupTestEnvironment(t)
	runtime := config.LoadRuntime()
	assert.Equal(t, filepath.Join(dir, "healthsim.db"), runtime.StorePath)

	cfg := loadExample(t)
	st, err := store.Open(runtime.StorePath)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	require.NoError(t, st.ImportCatalog(ctx, cfg))
	stored, err := st.Catalog(ctx)
	require.NoError(t, err)
	stored.Scenarios = cfg.Scenarios

	opts := compare.CompareOptions{BasePlanName: "POS", Plans: []string{"POS", "HDHP"}}
	fromFile, err := compare.NewCompareEngine(calculation.NewCalculationEngine()).Compare(ctx, cfg, opts)
	require.NoError(t, err)
	fromStore, err := compare.NewCompareEngine(calculation.NewCalculationEngine()).Compare(ctx, stored, opts)
	require.NoError(t, err)
	assert.Equal(t, fromFile.Recommendations, fromStore.Recommendations)
	assert.ElementsMatch(t, cfg.PlanNames(), stored.PlanNames())
}

func TestWhatIfAndBreakEven(t *testing.T) {
	cfg := loadExample(t)
	ctx := context.Background()
	engine := calculation.NewCalculationEngine()

	variants, filter, err := transform.WithVariants(cfg, []string{"heavy_use"}, []string{"healthy"})
	require.NoError(t, err)
	set, err := compare.NewCompareEngine(engine).Compare(ctx, variants, compare.CompareOptions{Scenarios: filter})
	require.NoError(t, err)
	require.Len(t, set.Scenarios, 2)
	heavy := set.Scenarios[1]
	assert.Equal(t, "healthy+heavy_use", heavy.ScenarioName)
	// Two 300 checkups: POS copays stay flat while the HDHP contribution still covers them.
	assert.Equal(t, "690.00", heavy.BaseResult.YearTotal.StringFixed(2))
	assert.Equal(t, "180.00", heavy.AlternativeResults[0].YearTotal.StringFixed(2))

	result, err := breakeven.NewDefaultSolver(engine).Solve(ctx, breakeven.Request{
		Config:       cfg,
		ScenarioName: "chronic",
		PlanA:        "POS",
		PlanB:        "HDHP",
	})
	require.NoError(t, err)
	require.True(t, result.Found)

	// At the reported factor both plans should cost about the same.
	scaled, err := transform.ApplyTransforms(&cfg.Scenarios[1], []transform.ScenarioTransform{&transform.ScaleCosts{Factor: *result.Factor}})
	require.NoError(t, err)
	pos, _ := cfg.FindPlan("POS")
	hdhp, _ := cfg.FindPlan("HDHP")
	a, err := engine.RunScenario(ctx, pos, scaled)
	require.NoError(t, err)
	b, err := engine.RunScenario(ctx, hdhp, scaled)
	require.NoError(t, err)
	assert.True(t, a.Final().YearTotal.Sub(b.Final().YearTotal).Abs().LessThan(decimal.NewFromInt(5)))
}

func TestPerformance(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping performance check in short mode")
	}
	cfg := loadExample(t)

	start := time.Now()
	engine := calculation.NewCalculationEngine()
	for range 100 {
		_, err := engine.RunScenarios(context.Background(), cfg)
		require.NoError(t, err)
	}
	duration := time.Since(start)
	assert.Less(t, duration, 10*time.Second)
	t.Logf("100 catalog runs in %v", duration)
}
