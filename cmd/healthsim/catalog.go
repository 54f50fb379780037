package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/healthsim/internal/config"
	"github.com/rgehrsitz/healthsim/internal/logger"
	"github.com/rgehrsitz/healthsim/internal/store"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the SQLite plan catalog",
	}
	cmd.PersistentFlags().String("db", runtimeSettings.StorePath, "SQLite catalog path")

	openStore := func(cmd *cobra.Command) (*store.Store, error) {
		path, _ := cmd.Flags().GetString("db")
		return store.Open(path)
	}

	importCmd := &cobra.Command{
		Use:   "import [config-file]",
		Short: "Import or update the plans of a catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.ImportCatalog(cmd.Context(), cfg); err != nil {
				return err
			}
			logger.Info("catalog imported", "file", args[0], "db", st.Path(), "plans", len(cfg.Plans))
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d plans into %s\n", len(cfg.Plans), st.Path())
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			plans, err := st.Plans(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range plans {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s premium %s/month, contribution %s  %s\n",
					p.Name, p.Premium.StringFixed(2), p.EmployerContribution.StringFixed(2), p.Description)
			}
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the stored catalog as YAML (stdout without a file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			cfg, err := st.Catalog(cmd.Context())
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal catalog: %w", err)
			}
			if len(args) == 0 {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Catalog written to %s\n", args[0])
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [plan]",
		Short: "Remove a plan from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.DeletePlan(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted plan %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(importCmd, listCmd, exportCmd, deleteCmd)
	return cmd
}
