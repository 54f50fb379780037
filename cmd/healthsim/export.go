package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/healthsim/internal/domain"
	"github.com/rgehrsitz/healthsim/internal/logger"
	"github.com/rgehrsitz/healthsim/internal/metrics"
	"github.com/rgehrsitz/healthsim/internal/output"
	"github.com/rgehrsitz/healthsim/internal/transform"
)

var exportCmd = &cobra.Command{
	Use:   "export [config-file]",
	Short: "Export monthly plan states for every plan and scenario",
	Example: `  healthsim export examples/plans.yaml --output months.parquet
  healthsim export examples/plans.yaml --format csv --output months.csv
  healthsim export examples/plans.yaml --with heavy_use --output months.parquet`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfiguration(cmd, args)
		if err != nil {
			return err
		}
		whatIfs, _ := cmd.Flags().GetStringSlice("with")
		cfg, _, err = transform.WithVariants(cfg, whatIfs, nil)
		if err != nil {
			return err
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		outputFile, _ := cmd.Flags().GetString("output")
		runID := uuid.NewString()
		if outputFile == "" {
			outputFile = fmt.Sprintf("healthsim_export_%s.%s", runID[:8], outputFormat)
		}

		results, err := newEngine(cmd).RunScenarios(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		var rows int
		switch outputFormat {
		case "parquet":
			rows, err = writeParquet(outputFile, runID, results)
		case "csv", "json":
			var data []byte
			data, err = output.GetFormatterByName(outputFormat).Format(results)
			if err == nil {
				err = os.WriteFile(outputFile, data, 0o644)
			}
			for _, r := range results {
				rows += len(r.States)
			}
		default:
			err = fmt.Errorf("unknown export format %q (parquet, csv, json)", outputFormat)
		}
		metrics.ObserveExport(outputFormat, err)
		if err != nil {
			return err
		}

		logger.Info("export written", "file", outputFile, "rows", rows, "run_id", runID)
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d monthly rows to %s (run %s)\n", rows, outputFile, runID)
		return nil
	},
}

// writeParquet streams every result into a Parquet file tagged with runID
func writeParquet(path, runID string, results []domain.SimulationResult) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	pw := output.NewParquetWriter(f, runID)
	for _, r := range results {
		if err := pw.Write(r); err != nil {
			return 0, err
		}
	}
	if err := pw.Close(); err != nil {
		return 0, err
	}
	return pw.Count(), f.Close()
}

func init() {
	exportCmd.Flags().StringP("format", "f", "parquet", "Export format (parquet, csv, json)")
	exportCmd.Flags().StringP("output", "o", "", "Export file (default: healthsim_export_<run>.<format>)")
	exportCmd.Flags().StringSlice("with", nil, "What-if templates or transforms to add as scenario variants")
}
