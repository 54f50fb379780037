package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/healthsim/internal/compare"
	"github.com/rgehrsitz/healthsim/internal/logger"
	"github.com/rgehrsitz/healthsim/internal/metrics"
	"github.com/rgehrsitz/healthsim/internal/transform"
)

var compareCmd = &cobra.Command{
	Use:   "compare [config-file]",
	Short: "Compare plans side by side across scenarios",
	Example: `  healthsim compare examples/plans.yaml
  healthsim compare examples/plans.yaml --base HDHP --scenarios healthy,chronic
  healthsim compare examples/plans.yaml --format xlsx --output comparison.xlsx
  healthsim compare examples/plans.yaml --scenarios chronic --with light_use,heavy_use
  healthsim compare examples/plans.yaml --with 'scale_costs:factor=1.5;service=er'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfiguration(cmd, args)
		if err != nil {
			return err
		}

		basePlan, _ := cmd.Flags().GetString("base")
		plans, _ := cmd.Flags().GetStringSlice("plans")
		scenarios, _ := cmd.Flags().GetStringSlice("scenarios")
		outputFormat, _ := cmd.Flags().GetString("format")
		outputFile, _ := cmd.Flags().GetString("output")
		whatIfs, _ := cmd.Flags().GetStringSlice("with")

		cfg, scenarios, err = transform.WithVariants(cfg, whatIfs, scenarios)
		if err != nil {
			return err
		}

		compareEngine := compare.NewCompareEngine(newEngine(cmd))
		comparisonSet, err := compareEngine.Compare(cmd.Context(), cfg, compare.CompareOptions{
			BasePlanName: basePlan,
			Plans:        plans,
			Scenarios:    scenarios,
		})
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}
		comparisonSet.RunID = uuid.NewString()
		comparisonSet.ConfigPath = path

		data, err := renderComparison(comparisonSet, outputFormat)
		metrics.ObserveExport(outputFormat, err)
		if err != nil {
			return err
		}

		if outputFile == "" {
			if outputFormat == "xlsx" || outputFormat == "pdf" {
				outputFile = fmt.Sprintf("healthsim_comparison_%s.%s", comparisonSet.RunID[:8], outputFormat)
			} else {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
		}
		if err := os.WriteFile(outputFile, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outputFile, err)
		}
		logger.Info("comparison written", "file", outputFile, "run_id", comparisonSet.RunID)
		fmt.Fprintf(cmd.OutOrStdout(), "Comparison written to %s\n", outputFile)
		return nil
	},
}

func renderComparison(compSet *compare.ComparisonSet, format string) ([]byte, error) {
	switch format {
	case "table":
		return []byte((&compare.TableFormatter{}).Format(compSet)), nil
	case "compact":
		return []byte((&compare.TableFormatter{}).FormatCompact(compSet)), nil
	case "csv":
		s, err := (&compare.CSVFormatter{}).Format(compSet)
		return []byte(s), err
	case "json":
		s, err := (&compare.JSONFormatter{Pretty: true, Trajectories: true}).Format(compSet)
		return []byte(s), err
	case "xlsx":
		return (&compare.XLSXFormatter{}).Format(compSet)
	case "pdf":
		return (&compare.PDFFormatter{}).Format(compSet)
	}
	return nil, fmt.Errorf("unknown format %q (table, compact, csv, json, xlsx, pdf)", format)
}

func init() {
	compareCmd.Flags().String("base", "", "Plan the others are compared against (default: first plan)")
	compareCmd.Flags().StringSlice("plans", nil, "Comma-separated plans to compare (default: all)")
	compareCmd.Flags().StringSlice("scenarios", nil, "Comma-separated scenarios to run (default: all)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json, xlsx, pdf)")
	compareCmd.Flags().StringP("output", "o", "", "Write the comparison to a file")
	compareCmd.Flags().StringSlice("with", nil, "What-if templates or transforms to add as scenario variants (see 'healthsim templates')")
}
