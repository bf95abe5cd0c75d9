package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/uakotik/DB-lab5/cmd/shopgraph/internal"
	"github.com/uakotik/DB-lab5/internal/store"
)

// orderTimeLayout is the clock format of Order.time.
const orderTimeLayout = "15:04"

// idOrNew returns id, or a fresh random UUID when id is empty.
func idOrNew(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func (a *app) newItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Create and look up items",
	}

	var id string
	create := &cobra.Command{
		Use:   "create <name> <price>",
		Short: "Create an item",
		Args:  cobra.ExactArgs(2),
		RunE: a.withStore(func(cmd *cobra.Command, s *store.Store, args []string) error {
			price, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return internal.WrapError(internal.ExitError, fmt.Sprintf("invalid price %q", args[1]), err)
			}

			item := store.Item{ID: idOrNew(id), Name: args[0], Price: price}
			if err := s.CreateItem(cmd.Context(), item.ID, item.Name, item.Price); err != nil {
				return err
			}
			return a.printCreated("item", item.ID, item)
		}),
	}
	create.Flags().StringVar(&id, "id", "", "Item id (default: random UUID)")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show an item by id",
		Args:  cobra.ExactArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, s *store.Store, args []string) error {
			item, found, err := s.GetItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !found {
				return internal.NewCLIError(internal.ExitError, fmt.Sprintf("item %q not found", args[0]))
			}

			if a.flags.GetOutputFormat() == internal.FormatJSON {
				return a.out.PrintJSON(item)
			}
			return a.out.PrintTable(
				[]string{"id", "name", "price"},
				[][]string{{item.ID, item.Name, internal.FormatValue(item.Price)}},
			)
		}),
	}

	cmd.AddCommand(create, get)
	return cmd
}

func (a *app) newCustomerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Create customers",
	}

	var id string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a customer",
		Args:  cobra.ExactArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, s *store.Store, args []string) error {
			c := store.Customer{ID: idOrNew(id), Name: args[0]}
			if err := s.CreateCustomer(cmd.Context(), c.ID, c.Name); err != nil {
				return err
			}
			return a.printCreated("customer", c.ID, c)
		}),
	}
	create.Flags().StringVar(&id, "id", "", "Customer id (default: random UUID)")

	cmd.AddCommand(create)
	return cmd
}

func (a *app) newOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Create orders",
	}

	var id, at string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an order",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, s *store.Store, _ []string) error {
			if at == "" {
				at = time.Now().Format(orderTimeLayout)
			}
			o := store.Order{ID: idOrNew(id), Time: at}
			if err := s.CreateOrder(cmd.Context(), o.ID, o.Time); err != nil {
				return err
			}
			return a.printCreated("order", o.ID, o)
		}),
	}
	create.Flags().StringVar(&id, "id", "", "Order id (default: random UUID)")
	create.Flags().StringVar(&at, "time", "", "Order time, e.g. 23:04 (default: now)")

	cmd.AddCommand(create)
	return cmd
}

func (a *app) printCreated(kind, id string, v any) error {
	if a.flags.GetOutputFormat() == internal.FormatJSON {
		return a.out.PrintJSON(v)
	}
	return a.out.PrintSuccess(fmt.Sprintf("created %s %s", kind, id))
}
