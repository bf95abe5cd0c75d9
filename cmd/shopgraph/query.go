package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/uakotik/DB-lab5/cmd/shopgraph/internal"
	"github.com/uakotik/DB-lab5/internal/store"
)

func (a *app) newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run analytics queries",
	}

	cmd.AddCommand(
		a.listQuery("items-in-order <order-id>", "Names of the items in an order",
			store.QueryFindItemsInOrder, (*store.Store).FindItemsInOrder),
		a.floatQuery("order-cost <order-id>", "Sum of the prices of the items in an order",
			store.QueryCalculateOrderCost, (*store.Store).CalculateOrderCost),
		a.listQuery("orders-by-customer <customer-name>", "Ids of the orders a customer placed",
			store.QueryFindOrdersByCustomer, (*store.Store).FindOrdersByCustomer),
		a.listQuery("items-bought <customer-name>", "Names of the items a customer bought",
			store.QueryFindItemsBoughtByCustomer, (*store.Store).FindItemsBoughtByCustomer),
		a.countBoughtCmd(),
		a.floatQuery("total-spent <customer-name>", "Total price of everything a customer bought",
			store.QueryTotalAmountSpent, (*store.Store).TotalAmountSpentByCustomer),
		a.mostBoughtCmd(),
		a.listQuery("items-viewed <customer-name>", "Names of the items a customer viewed",
			store.QueryFindItemsViewedByCustomer, (*store.Store).FindItemsViewedByCustomer),
		a.listQuery("bought-together <item-id>", "Other items that share an order with an item",
			store.QueryFindItemsBoughtTogether, (*store.Store).FindItemsBoughtTogether),
		a.listQuery("customers-bought <item-id>", "Names of the customers who bought an item",
			store.QueryFindCustomersBoughtItem, (*store.Store).FindCustomersBoughtItem),
		a.listQuery("viewed-not-bought <customer-name>", "Items a customer viewed but never bought",
			store.QueryFindViewedNotBought, (*store.Store).FindViewedNotBought),
	)
	return cmd
}

func (a *app) listQuery(use, short, name string, run func(*store.Store, context.Context, string) ([]string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, s *store.Store, args []string) error {
			values, err := run(s, cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.out.PrintList(name, values)
		}),
	}
}

func (a *app) floatQuery(use, short, name string, run func(*store.Store, context.Context, string) (float64, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, s *store.Store, args []string) error {
			v, err := run(s, cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.out.PrintValue(name, v)
		}),
	}
}

func (a *app) countBoughtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count-bought <customer-name>",
		Short: "Number of items a customer bought, counting repeats",
		Args:  cobra.ExactArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, s *store.Store, args []string) error {
			n, err := s.CountItemsBoughtByCustomer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.out.PrintValue(store.QueryCountItemsBoughtByCustomer, n)
		}),
	}
}

func (a *app) mostBoughtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "most-bought",
		Short: "Items ranked by how many orders contain them",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, s *store.Store, _ []string) error {
			ranked, err := s.FindMostBoughtItems(cmd.Context())
			if err != nil {
				return err
			}

			if a.flags.GetOutputFormat() == internal.FormatJSON {
				return a.out.PrintValue(store.QueryFindMostBoughtItems, ranked)
			}
			rows := make([][]string, len(ranked))
			for i, ic := range ranked {
				rows[i] = []string{ic.Name, strconv.FormatInt(ic.Count, 10)}
			}
			return a.out.PrintTable([]string{"name", "count"}, rows)
		}),
	}
}
