package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/uakotik/DB-lab5/cmd/shopgraph/internal"
	"github.com/uakotik/DB-lab5/internal/sample"
	"github.com/uakotik/DB-lab5/internal/store"
)

func (a *app) newSeedCmd() *cobra.Command {
	var skipReport bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the database contents with the sample dataset",
		Long: `Seed deletes every node and relationship, loads the sample shop
(5 items, 3 customers, 4 orders and their BOUGHT, CONTAINS and VIEW links)
and prints the sample report.`,
		Args: cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, s *store.Store, _ []string) error {
			ctx := cmd.Context()
			ds := sample.Default()
			if err := sample.Seed(ctx, s, ds); err != nil {
				return err
			}
			a.logger.Info("sample dataset loaded",
				"items", len(ds.Items),
				"customers", len(ds.Customers),
				"orders", len(ds.Orders),
			)

			if skipReport {
				return a.out.PrintSuccess("sample dataset loaded")
			}
			return a.printReport(cmd, s)
		}),
	}

	cmd.Flags().BoolVar(&skipReport, "no-report", false, "Load the dataset without printing the report")
	return cmd
}

func (a *app) newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Run the sample report queries against the current data",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, s *store.Store, _ []string) error {
			return a.printReport(cmd, s)
		}),
	}
}

func (a *app) printReport(cmd *cobra.Command, s *store.Store) error {
	entries, err := sample.Report(cmd.Context(), s)
	if err != nil {
		return err
	}

	if a.flags.GetOutputFormat() == internal.FormatJSON {
		return a.out.PrintJSON(entries)
	}

	w := cmd.OutOrStdout()
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s: %s\n", e.Label, formatReportValue(e.Value)); err != nil {
			return err
		}
	}
	return nil
}

func formatReportValue(v any) string {
	ranked, ok := v.([]store.ItemCount)
	if !ok {
		return internal.FormatValue(v)
	}
	parts := make([]string, len(ranked))
	for i, ic := range ranked {
		parts[i] = ic.Name + " (" + strconv.FormatInt(ic.Count, 10) + ")"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (a *app) newClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every node and relationship",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return internal.NewCLIError(internal.ExitError, "refusing to clear the database without --yes")
			}
			return nil
		},
		RunE: a.withStore(func(cmd *cobra.Command, s *store.Store, _ []string) error {
			if err := s.ClearDatabase(cmd.Context()); err != nil {
				return err
			}
			return a.out.PrintSuccess("database cleared")
		}),
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deletion of all data")
	return cmd
}

func (a *app) newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create the uniqueness constraints on Item.id, Customer.id and Order.id",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, s *store.Store, _ []string) error {
			if err := s.EnsureSchema(cmd.Context()); err != nil {
				return err
			}
			return a.out.PrintSuccess("schema constraints in place")
		}),
	}
}
