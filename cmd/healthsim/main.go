package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/healthsim/internal/calculation"
	"github.com/rgehrsitz/healthsim/internal/config"
	"github.com/rgehrsitz/healthsim/internal/domain"
	"github.com/rgehrsitz/healthsim/internal/logger"
	"github.com/rgehrsitz/healthsim/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var runtimeSettings = config.LoadRuntime()

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "healthsim %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "healthsim",
	Short: "Health plan cost simulator",
	Long:  "Simulates what an insured person pays under competing health plans for a sequence of monthly medical services",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		levelName, _ := cmd.Flags().GetString("log-level")
		if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
			levelName = "debug"
		}
		level, err := logger.ParseLevel(levelName)
		if err != nil {
			return err
		}
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		logger.Configure(cmd.ErrOrStderr(), level, jsonLogs)
		return nil
	},
	SilenceUsage: true,
}

// newEngine builds a calculation engine logging through the global logger
func newEngine(cmd *cobra.Command) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	debugMode, _ := cmd.Flags().GetBool("debug")
	if debugMode {
		engine.SetLogger(logger.Printf{})
	}
	engine.Debug = debugMode
	return engine
}

// loadConfiguration reads the catalog named by args (or the configured default),
// swapping in the SQLite catalog's plans with --from-db and the scenarios of
// --scenario-file when given
func loadConfiguration(cmd *cobra.Command, args []string) (*domain.Configuration, string, error) {
	path := runtimeSettings.PlansPath
	if len(args) > 0 {
		path = args[0]
	}
	parser := config.NewInputParser()

	var cfg *domain.Configuration
	fromDB, _ := cmd.Flags().GetBool("from-db")
	if fromDB {
		dbPath, _ := cmd.Flags().GetString("db")
		st, err := store.Open(dbPath)
		if err != nil {
			return nil, "", err
		}
		defer st.Close()
		cfg, err = st.Catalog(cmd.Context())
		if err != nil {
			return nil, "", err
		}
		if len(cfg.Plans) == 0 {
			return nil, "", fmt.Errorf("catalog %s has no plans; run 'healthsim catalog import' first", dbPath)
		}
		path = dbPath
	} else {
		var err error
		cfg, err = parser.LoadFromFile(path)
		if err != nil {
			return nil, "", err
		}
	}

	if scenariosFile, _ := cmd.Flags().GetString("scenario-file"); scenariosFile != "" {
		scenarios, err := parser.LoadScenarios(scenariosFile)
		if err != nil {
			return nil, "", err
		}
		cfg.Scenarios = scenarios
	}
	return cfg, path, nil
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("scenario-file", "", "Scenario file replacing the scenarios of the catalog")
	cmd.Flags().Bool("from-db", false, "Read plans from the SQLite catalog instead of a file")
	cmd.Flags().String("db", runtimeSettings.StorePath, "SQLite catalog path")
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")
	rootCmd.PersistentFlags().String("log-level", runtimeSettings.LogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	addInputFlags(simulateCmd)
	addInputFlags(compareCmd)
	addInputFlags(exportCmd)
	addInputFlags(breakevenCmd)

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(breakevenCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(servicesCmd)
	rootCmd.AddCommand(catalogCmd())
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
