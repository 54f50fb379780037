package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/healthsim/internal/config"
	"github.com/rgehrsitz/healthsim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_CatalogRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	cfg, err := config.NewInputParser().LoadFromFile("../../examples/plans.yaml")
	require.NoError(t, err)
	require.NoError(t, s.ImportCatalog(ctx, cfg))

	catalog, err := s.Catalog(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"POS", "HDHP"}, catalog.PlanNames())
	assert.Equal(t, cfg.ServiceNames, catalog.ServiceNames)
	assert.Empty(t, catalog.Scenarios)

	pos := catalog.Plans[0]
	assert.True(t, pos.Premium.Equal(decimal.NewFromInt(55)))
	assert.True(t, pos.InNetwork.OutOfPocketMax.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, domain.ModifierCoinsurance, pos.OutOfNetwork.Services["pcp"].Kind)
	assert.True(t, pos.OutOfNetwork.Services["pcp"].Value.Equal(decimal.NewFromInt(20)))

	hdhp := catalog.Plans[1]
	assert.True(t, hdhp.EmployerContribution.Equal(decimal.NewFromInt(625)))
	assert.Empty(t, hdhp.InNetwork.Services)
	assert.Equal(t, config.ServiceCatalog(cfg), config.ServiceCatalog(catalog))
}

func TestStore_ReimportKeepsPosition(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	first := &domain.Configuration{Plans: []domain.Plan{
		{Name: "A", Premium: decimal.NewFromInt(10)},
		{Name: "B", Premium: decimal.NewFromInt(20)},
	}}
	require.NoError(t, s.ImportCatalog(ctx, first))

	second := &domain.Configuration{Plans: []domain.Plan{
		{Name: "C", Premium: decimal.NewFromInt(30)},
		{Name: "A", Premium: decimal.NewFromInt(11)},
	}}
	require.NoError(t, s.ImportCatalog(ctx, second))

	plans, err := s.Plans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, "A", plans[0].Name)
	assert.True(t, plans[0].Premium.Equal(decimal.NewFromInt(11)), "payload replaced")
	assert.Equal(t, "B", plans[1].Name)
	assert.Equal(t, "C", plans[2].Name)
}

func TestStore_RejectsInvalidPlans(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	bad := &domain.Configuration{Plans: []domain.Plan{
		{Name: "ok"},
		{Name: "bad", Premium: decimal.NewFromInt(-1)},
	}}
	err := s.ImportCatalog(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)

	plans, err := s.Plans(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans, "nothing is written when any plan is invalid")
}

func TestStore_PlanAndDelete(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.ImportCatalog(ctx, &domain.Configuration{Plans: []domain.Plan{{Name: "A"}}}))

	plan, ok, err := s.Plan(ctx, "A")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "A", plan.Name)

	require.NoError(t, s.DeletePlan(ctx, "A"))
	require.NoError(t, s.DeletePlan(ctx, "A"))

	_, ok, err = s.Plan(ctx, "A")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.ImportCatalog(ctx, &domain.Configuration{
		ServiceNames: map[string]string{"er": "Emergency Room"},
		Plans:        []domain.Plan{{Name: "A"}},
	}))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	names, err := reopened.ServiceNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"er": "Emergency Room"}, names)
	assert.Equal(t, path, reopened.Path())
}
