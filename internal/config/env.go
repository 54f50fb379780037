package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Runtime holds process settings for the server and CLI
type Runtime struct {
	Addr      string // HTTP listen address
	PlansPath string // Plan catalog loaded at startup
	LogLevel  string // debug, info, warn or error
	StorePath string // SQLite plan catalog
}

const (
	defaultAddr      = ":8080"
	defaultPlansPath = "examples/plans.yaml"
	defaultLogLevel  = "info"
	defaultStorePath = "healthsim.db"
)

// LoadRuntime reads settings from the first .env file found and the environment.
// Variables already set in the environment win over the .env file.
func LoadRuntime() *Runtime {
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	return &Runtime{
		Addr:      getEnvString("HEALTHSIM_ADDR", defaultAddr),
		PlansPath: getEnvString("HEALTHSIM_PLANS", defaultPlansPath),
		LogLevel:  strings.ToLower(getEnvString("HEALTHSIM_LOG_LEVEL", defaultLogLevel)),
		StorePath: getEnvString("HEALTHSIM_DB", defaultStorePath),
	}
}

// getEnvPaths returns a list of paths to check for .env files
func getEnvPaths() []string {
	var paths []string

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "healthsim", ".env"))
	}

	return paths
}

// getEnvString retrieves a string environment variable or returns the default
func getEnvString(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}
