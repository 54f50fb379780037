package compare

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/healthsim/internal/calculation"
	"github.com/rgehrsitz/healthsim/internal/config"
	"github.com/rgehrsitz/healthsim/internal/domain"
)

func loadExampleCatalog(t *testing.T) *ComparisonSet {
	t.Helper()
	cfg, err := config.NewInputParser().LoadFromFile("../../examples/plans.yaml")
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	compSet, err := engine.Compare(context.Background(), cfg, CompareOptions{Scenarios: []string{"healthy", "chronic"}})
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	return compSet
}

func TestCompareEngine_Compare(t *testing.T) {
	compSet := loadExampleCatalog(t)

	if compSet.BasePlanName != "POS" {
		t.Errorf("Expected first plan as base, got %s", compSet.BasePlanName)
	}
	if len(compSet.Scenarios) != 2 {
		t.Fatalf("Expected 2 scenarios, got %d", len(compSet.Scenarios))
	}

	healthy := compSet.Scenarios[0]
	if !healthy.BaseResult.YearTotal.Equal(dec(690)) {
		t.Errorf("Expected POS healthy total 690, got %s", healthy.BaseResult.YearTotal.String())
	}
	hdhp := healthy.AlternativeResults[0]
	if !hdhp.YearTotal.Equal(dec(180)) {
		t.Errorf("Expected HDHP healthy total 180, got %s", hdhp.YearTotal.String())
	}
	if !hdhp.CoverageRemaining.Equal(dec(325)) {
		t.Errorf("Expected HDHP contribution left 325, got %s", hdhp.CoverageRemaining.String())
	}
	if !hdhp.CostDiffFromBase.Equal(dec(-510)) {
		t.Errorf("Expected HDHP diff -510, got %s", hdhp.CostDiffFromBase.String())
	}

	chronic := compSet.Scenarios[1]
	if !chronic.BaseResult.YearTotal.Equal(dec(915)) {
		t.Errorf("Expected POS chronic total 915, got %s", chronic.BaseResult.YearTotal.String())
	}
	if !chronic.AlternativeResults[0].YearTotal.Equal(dec(2055)) {
		t.Errorf("Expected HDHP chronic total 2055, got %s", chronic.AlternativeResults[0].YearTotal.String())
	}
	if !chronic.AlternativeResults[0].YearService.Equal(dec(1875)) {
		t.Errorf("Expected HDHP chronic service 1875, got %s", chronic.AlternativeResults[0].YearService.String())
	}

	if len(compSet.Recommendations) == 0 {
		t.Error("Expected recommendations")
	}
}

func TestCompareEngine_BasePlanOption(t *testing.T) {
	cfg, err := config.NewInputParser().LoadFromFile("../../examples/plans.yaml")
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.Compare(context.Background(), cfg, CompareOptions{BasePlanName: "HDHP", Scenarios: []string{"healthy"}})
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if compSet.Scenarios[0].BaseResult.PlanName != "HDHP" {
		t.Errorf("Expected HDHP base, got %s", compSet.Scenarios[0].BaseResult.PlanName)
	}
	if !compSet.Scenarios[0].AlternativeResults[0].CostDiffFromBase.Equal(dec(510)) {
		t.Errorf("Expected POS diff 510, got %s", compSet.Scenarios[0].AlternativeResults[0].CostDiffFromBase.String())
	}

	_, err = engine.Compare(context.Background(), cfg, CompareOptions{BasePlanName: "PPO"})
	if !errors.Is(err, domain.ErrNotFound) || !strings.Contains(err.Error(), "base plan PPO not found") {
		t.Errorf("Expected missing base plan error, got %v", err)
	}

	_, err = engine.Compare(context.Background(), cfg, CompareOptions{Scenarios: []string{"surgery"}})
	if !errors.Is(err, domain.ErrNotFound) || !strings.Contains(err.Error(), "scenario surgery not found") {
		t.Errorf("Expected missing scenario error, got %v", err)
	}

	_, err = engine.Compare(context.Background(), cfg, CompareOptions{BasePlanName: "POS", Plans: []string{"HDHP"}})
	if err == nil {
		t.Error("Expected error when the base plan is not among the compared plans")
	}
}
