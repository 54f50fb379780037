package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/healthsim/internal/config"
	"github.com/rgehrsitz/healthsim/internal/domain"
	"github.com/rgehrsitz/healthsim/internal/metrics"
	"github.com/rgehrsitz/healthsim/internal/output"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [config-file]",
	Short: "Simulate every scenario under every plan",
	Example: `  healthsim simulate examples/plans.yaml
  healthsim simulate examples/plans.yaml --scenario chronic --format verbose
  healthsim simulate --from-db --scenario-file usage.yaml --format parquet --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfiguration(cmd, args)
		if err != nil {
			return err
		}

		planName, _ := cmd.Flags().GetString("plan")
		scenarioName, _ := cmd.Flags().GetString("scenario")
		if err := narrow(cfg, planName, scenarioName); err != nil {
			return err
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		f := output.GetFormatterByName(outputFormat)
		if f == nil {
			return fmt.Errorf("unknown format %q (available: %s; aliases: %s)", outputFormat,
				strings.Join(output.AvailableFormatterNames(), ", "),
				strings.Join(output.AvailableFormatAliases(), ", "))
		}

		results, err := newEngine(cmd).RunScenarios(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		if save, _ := cmd.Flags().GetBool("save"); save {
			filename, err := output.WriteFormatted(f, results, extension(f.Name()))
			metrics.ObserveExport(f.Name(), err)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
			return nil
		}

		data, err := f.Format(results)
		metrics.ObserveExport(f.Name(), err)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

// narrow restricts the configuration to one plan and/or one scenario
func narrow(cfg *domain.Configuration, planName, scenarioName string) error {
	if planName != "" {
		plan, ok := cfg.FindPlan(planName)
		if !ok {
			return fmt.Errorf("plan %s not found in configuration", planName)
		}
		cfg.Plans = []domain.Plan{*plan}
	}
	if scenarioName != "" {
		scenario, ok := cfg.FindScenario(scenarioName)
		if !ok {
			return fmt.Errorf("scenario %s not found in configuration", scenarioName)
		}
		cfg.Scenarios = []domain.Scenario{*scenario}
	}
	return nil
}

func extension(formatter string) string {
	switch formatter {
	case "console", "console-verbose":
		return "txt"
	default:
		return formatter
	}
}

var validateCmd = &cobra.Command{
	Use:   "validate [config-file]",
	Short: "Validate a plan catalog and its scenarios",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid (%d plans, %d scenarios)\n",
			args[0], len(cfg.Plans), len(cfg.Scenarios))
		return nil
	},
}

var servicesCmd = &cobra.Command{
	Use:   "services [config-file]",
	Short: "List the service types the plans cover",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfiguration(cmd, args)
		if err != nil {
			return err
		}
		entries := config.ServiceCatalog(cfg)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}
		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%-30s %s\n", e.DisplayName, e.ServiceID)
		}
		return nil
	},
}

func init() {
	simulateCmd.Flags().StringP("format", "f", "console", "Output format (console, console-verbose, csv, json, parquet)")
	simulateCmd.Flags().String("plan", "", "Simulate only this plan")
	simulateCmd.Flags().String("scenario", "", "Simulate only this scenario")
	simulateCmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")

	addInputFlags(servicesCmd)
	servicesCmd.Flags().Bool("json", false, "Print the catalog as JSON")
}
