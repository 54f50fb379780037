package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRuntime_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"HEALTHSIM_ADDR", "HEALTHSIM_PLANS", "HEALTHSIM_LOG_LEVEL", "HEALTHSIM_DB"} {
		t.Setenv(key, "")
	}

	rt := LoadRuntime()

	assert.Equal(t, ":8080", rt.Addr)
	assert.Equal(t, "examples/plans.yaml", rt.PlansPath)
	assert.Equal(t, "info", rt.LogLevel)
	assert.Equal(t, "healthsim.db", rt.StorePath)
}

func TestLoadRuntime_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("HEALTHSIM_ADDR=:9090\nHEALTHSIM_LOG_LEVEL=DEBUG\n"), 0644))

	t.Setenv("HEALTHSIM_ADDR", "")
	t.Setenv("HEALTHSIM_LOG_LEVEL", "")
	os.Unsetenv("HEALTHSIM_ADDR")
	os.Unsetenv("HEALTHSIM_LOG_LEVEL")
	t.Setenv("HEALTHSIM_PLANS", "/srv/plans.yaml")

	rt := LoadRuntime()

	assert.Equal(t, ":9090", rt.Addr)
	assert.Equal(t, "debug", rt.LogLevel)
	assert.Equal(t, "/srv/plans.yaml", rt.PlansPath, "environment wins over .env")
}
