package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/healthsim/internal/breakeven"
	"github.com/rgehrsitz/healthsim/internal/transform"
)

var breakevenCmd = &cobra.Command{
	Use:   "breakeven [config-file]",
	Short: "Find the usage level at which two plans cost the same",
	Long: `Scales every service cost in a scenario by a usage factor and searches for the
factor at which two plans reach the same year total. Without --scenario every
scenario is solved.`,
	Example: `  healthsim breakeven examples/plans.yaml --plans POS,HDHP --scenario chronic
  healthsim breakeven examples/plans.yaml --plans POS,HDHP --max-factor 5 --chart`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfiguration(cmd, args)
		if err != nil {
			return err
		}

		plans, _ := cmd.Flags().GetStringSlice("plans")
		if len(plans) != 2 {
			return fmt.Errorf("--plans needs exactly two plans, got %d", len(plans))
		}
		scenario, _ := cmd.Flags().GetString("scenario")
		outputFormat, _ := cmd.Flags().GetString("format")
		chart, _ := cmd.Flags().GetBool("chart")
		minStr, _ := cmd.Flags().GetString("min-factor")
		maxStr, _ := cmd.Flags().GetString("max-factor")
		gridPoints, _ := cmd.Flags().GetInt("grid")

		minFactor, err := decimal.NewFromString(minStr)
		if err != nil {
			return fmt.Errorf("invalid --min-factor: %w", err)
		}
		maxFactor, err := decimal.NewFromString(maxStr)
		if err != nil {
			return fmt.Errorf("invalid --max-factor: %w", err)
		}

		options := breakeven.DefaultSolverOptions()
		options.MinFactor = minFactor
		options.MaxFactor = maxFactor
		options.GridPoints = gridPoints
		solver := breakeven.NewSolver(newEngine(cmd), options)

		table := &breakeven.TableFormatter{Chart: chart}
		js := &breakeven.JSONFormatter{Pretty: true}

		if scenario == "" {
			multi, err := solver.SolveAll(cmd.Context(), cfg, plans[0], plans[1])
			if err != nil {
				return err
			}
			if outputFormat == "json" {
				s, err := js.FormatMulti(multi)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), table.FormatMulti(multi))
			return nil
		}

		result, err := solver.Solve(cmd.Context(), breakeven.Request{
			Config:       cfg,
			ScenarioName: scenario,
			PlanA:        plans[0],
			PlanB:        plans[1],
			MinFactor:    minFactor,
			MaxFactor:    maxFactor,
		})
		if err != nil {
			return err
		}
		if outputFormat == "json" {
			s, err := js.Format(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), table.Format(result))
		return nil
	},
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the what-if templates and transforms accepted by --with",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
	},
}

func init() {
	breakevenCmd.Flags().StringSlice("plans", nil, "The two plans to balance, e.g. POS,HDHP")
	breakevenCmd.Flags().String("scenario", "", "Scenario to solve (default: all)")
	breakevenCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	breakevenCmd.Flags().String("min-factor", "0", "Lowest usage factor scanned")
	breakevenCmd.Flags().String("max-factor", "3", "Highest usage factor scanned")
	breakevenCmd.Flags().Int("grid", 20, "Grid intervals scanned before bisecting")
	breakevenCmd.Flags().Bool("chart", false, "Plot both plans' totals across the range")
}
