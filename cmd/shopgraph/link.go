package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uakotik/DB-lab5/internal/store"
)

func (a *app) newLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Create relationships between existing nodes",
		Long: `Link creates one relationship between two existing nodes.

When either endpoint is missing nothing is created. The command succeeds with a
warning in the log unless neo4j.strict_relationships is set in the config, in which
case it fails.`,
	}

	cmd.AddCommand(
		a.linkCmd("bought <customer-name> <order-id>", "Record that a customer placed an order",
			"%s bought order %s", (*store.Store).CustomerBoughtOrder),
		a.linkCmd("contains <order-id> <item-name>", "Record that an order contains an item",
			"order %s contains %s", (*store.Store).OrderContainsItem),
		a.linkCmd("viewed <customer-name> <item-id>", "Record that a customer viewed an item",
			"%s viewed item %s", (*store.Store).CustomerViewItem),
	)
	return cmd
}

func (a *app) linkCmd(use, short, done string, link func(*store.Store, context.Context, string, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: a.withStore(func(cmd *cobra.Command, s *store.Store, args []string) error {
			if err := link(s, cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			return a.out.PrintSuccess(fmt.Sprintf(done, args[0], args[1]))
		}),
	}
}
