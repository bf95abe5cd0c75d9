package main

import (
	"github.com/spf13/cobra"
	"github.com/uakotik/DB-lab5/cmd/shopgraph/internal"
	"github.com/uakotik/DB-lab5/internal/types"
	"github.com/uakotik/DB-lab5/pkg/version"
)

// statusReport is the JSON shape of the status command.
type statusReport struct {
	URI      string             `json:"uri"`
	Database string             `json:"database,omitempty"`
	Health   types.HealthStatus `json:"health"`
}

func (a *app) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check connectivity to Neo4j",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			report := statusReport{URI: a.cfg.Neo4j.URI, Database: a.cfg.Neo4j.Database}

			s, err := a.Store(ctx)
			if err != nil {
				report.Health = types.Unhealthy(err.Error())
			} else {
				report.Health = s.Health(ctx)
			}

			if err := a.printStatus(report); err != nil {
				return err
			}
			if !report.Health.IsHealthy() {
				return internal.NewCLIError(internal.ExitDatabaseError, "neo4j is "+report.Health.State.String())
			}
			return nil
		},
	}
}

func (a *app) printStatus(r statusReport) error {
	if a.flags.GetOutputFormat() == internal.FormatJSON {
		return a.out.PrintJSON(r)
	}

	database := r.Database
	if database == "" {
		database = "(default)"
	}
	return a.out.PrintTable(
		[]string{"uri", "database", "state", "latency", "message"},
		[][]string{{r.URI, database, r.Health.State.String(), r.Health.Latency.String(), r.Health.Message}},
	)
}

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.flags.GetOutputFormat() == internal.FormatJSON {
				return a.out.PrintJSON(version.Get())
			}
			cmd.Println(version.String())
			return nil
		},
	}
}
