package calculation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rgehrsitz/healthsim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfiguration() *domain.Configuration {
	return &domain.Configuration{
		ServiceNames: map[string]string{"pcp": "Primary Care Physician", "er": "Emergency Room"},
		Plans:        []domain.Plan{posPlan(), hdhpPlan()},
		Scenarios: []domain.Scenario{
			{
				Name:   "single visit",
				Months: [][]domain.Service{{domain.NewService("pcp", d(200))}},
			},
			{
				Name:            "chronic",
				MonthlyServices: []domain.Service{domain.NewService("pcp", d(150))},
			},
		},
	}
}

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.Nil(t, engine.Observer)
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCalculationEngine_RunScenario(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)
	engine.Debug = true

	config := testConfiguration()
	result, err := engine.RunScenario(context.Background(), &config.Plans[1], &config.Scenarios[1])
	require.NoError(t, err)

	assert.Equal(t, "HDHP", result.PlanName)
	assert.Equal(t, "chronic", result.ScenarioName)
	require.Len(t, result.States, 12)

	// 1800 of visits: 625 absorbed, the rest owed; deductible left at 0
	final := result.Final()
	assertDecimal(t, 1175, final.YearService)
	assertDecimal(t, 1355, final.YearTotal)
	assertDecimal(t, 0, final.InNetwork.Deductible)
	assertDecimal(t, 700, final.InNetwork.OOPMaximum)

	assert.Len(t, logger.debug, 12, "one debug line per month")
	assert.NotEmpty(t, logger.info)
}

func TestCalculationEngine_RunScenario_InvalidScenario(t *testing.T) {
	engine := NewCalculationEngine()
	config := testConfiguration()

	scenario := domain.Scenario{
		Name: "broken",
		Months: [][]domain.Service{
			{domain.NewService("pcp", d(10))},
			{domain.NewService("pcp", d(-10))},
		},
	}

	result, err := engine.RunScenario(context.Background(), &config.Plans[0], &scenario)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidService)
	assert.Contains(t, err.Error(), "month 2 service 1")
}

func TestCalculationEngine_RunScenario_NilArguments(t *testing.T) {
	engine := NewCalculationEngine()
	_, err := engine.RunScenario(context.Background(), nil, &domain.Scenario{Name: "x"})
	assert.Error(t, err)
}

func TestCalculationEngine_RunScenario_Cancelled(t *testing.T) {
	engine := NewCalculationEngine()
	config := testConfiguration()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := engine.RunScenario(ctx, &config.Plans[0], &config.Scenarios[1])
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculationEngine_RunByName(t *testing.T) {
	engine := NewCalculationEngine()
	config := testConfiguration()

	result, err := engine.RunByName(context.Background(), config, "POS", "single visit")
	require.NoError(t, err)
	require.Len(t, result.States, 1)
	assertDecimal(t, 70, result.Final().YearTotal)

	_, err = engine.RunByName(context.Background(), config, "PPO", "single visit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan PPO not found")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = engine.RunByName(context.Background(), config, "POS", "surgery")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario surgery not found")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCalculationEngine_RunScenarioHorizonLimit(t *testing.T) {
	engine := NewCalculationEngine()
	observer := &recordingObserver{}
	engine.Observer = observer
	plan := posPlan()
	monthly := []domain.Service{domain.NewService("pcp", d(150))}

	_, err := engine.RunScenario(context.Background(), &plan, &domain.Scenario{
		Name:            "forever",
		MonthlyServices: monthly,
		Horizon:         1 << 40,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrHorizonTooLong)

	result, err := engine.RunScenario(context.Background(), &plan, &domain.Scenario{
		Name:            "century",
		MonthlyServices: monthly,
		Horizon:         domain.MaxMonths,
	})
	require.NoError(t, err)
	assert.Len(t, result.States, domain.MaxMonths)

	require.Len(t, observer.calls, 2)
	assert.ErrorIs(t, observer.calls[0].err, domain.ErrHorizonTooLong)
	assert.Equal(t, 0, observer.calls[0].months)
	assert.Equal(t, domain.MaxMonths, observer.calls[1].months)
}

func TestCalculationEngine_RunScenarios(t *testing.T) {
	engine := NewCalculationEngine()
	observer := &recordingObserver{}
	engine.Observer = observer

	results, err := engine.RunScenarios(context.Background(), testConfiguration())
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, "single visit", results[0].ScenarioName)
	assert.Equal(t, "POS", results[0].PlanName)
	assert.Equal(t, "single visit", results[1].ScenarioName)
	assert.Equal(t, "HDHP", results[1].PlanName)
	assert.Equal(t, "chronic", results[2].ScenarioName)

	require.Len(t, observer.calls, 4)
	assert.Equal(t, 12, observer.calls[3].months)
	assert.NoError(t, observer.calls[3].err)
}

func TestCalculationEngine_RunScenarios_Empty(t *testing.T) {
	engine := NewCalculationEngine()

	_, err := engine.RunScenarios(context.Background(), &domain.Configuration{})
	assert.Error(t, err)

	_, err = engine.RunScenarios(context.Background(), &domain.Configuration{Plans: []domain.Plan{posPlan()}})
	assert.Error(t, err)
}

func TestCalculationEngine_ObserverSeesFailures(t *testing.T) {
	engine := NewCalculationEngine()
	observer := &recordingObserver{}
	engine.Observer = observer

	plan := posPlan()
	_, err := engine.RunScenario(context.Background(), &plan, &domain.Scenario{Name: "empty"})
	require.Error(t, err)

	require.Len(t, observer.calls, 1)
	assert.Equal(t, "POS", observer.calls[0].plan)
	assert.Equal(t, 0, observer.calls[0].months)
	assert.Error(t, observer.calls[0].err)
}

type observation struct {
	plan, scenario string
	months         int
	elapsed        time.Duration
	err            error
}

type recordingObserver struct {
	calls []observation
}

func (o *recordingObserver) ObserveSimulation(planName, scenarioName string, months int, elapsed time.Duration, err error) {
	o.calls = append(o.calls, observation{planName, scenarioName, months, elapsed, err})
}

// TestLogger collects formatted log lines per level
type TestLogger struct {
	debug, info, warn, errors []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.debug = append(tl.debug, fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.info = append(tl.info, fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.warn = append(tl.warn, fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.errors = append(tl.errors, fmt.Sprintf(format, args...))
}
