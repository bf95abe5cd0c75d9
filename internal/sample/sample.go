// Package sample holds the demo catalogue and the labelled report printed by
// the seed command.
package sample

import (
	"context"
	"fmt"

	"github.com/uakotik/DB-lab5/internal/store"
)

// Link is one relationship between two business keys.
type Link struct {
	From string
	To   string
}

// Dataset is a complete set of nodes and relationships to load.
type Dataset struct {
	Items     []store.Item
	Customers []store.Customer
	Orders    []store.Order

	// Bought links customer names to order ids.
	Bought []Link
	// Contains links order ids to item names.
	Contains []Link
	// Viewed links customer names to item ids.
	Viewed []Link
}

// Default returns the demo catalogue.
func Default() Dataset {
	return Dataset{
		Items: []store.Item{
			{ID: "1", Name: "phone", Price: 750},
			{ID: "2", Name: "laptop", Price: 1000},
			{ID: "3", Name: "pc", Price: 1500},
			{ID: "4", Name: "headset", Price: 150},
			{ID: "5", Name: "mouse", Price: 100},
		},
		Customers: []store.Customer{
			{ID: "1", Name: "Bob"},
			{ID: "2", Name: "Mark"},
			{ID: "3", Name: "Amanda"},
		},
		Orders: []store.Order{
			{ID: "1", Time: "23:04"},
			{ID: "2", Time: "23:04"},
			{ID: "3", Time: "23:04"},
			{ID: "4", Time: "23:04"},
		},
		Bought: []Link{
			{"Bob", "1"},
			{"Mark", "2"},
			{"Bob", "3"},
			{"Amanda", "4"},
		},
		Contains: []Link{
			{"1", "phone"},
			{"1", "laptop"},
			{"2", "laptop"},
			{"3", "headset"},
			{"4", "pc"},
		},
		Viewed: []Link{
			{"Bob", "1"},
			{"Bob", "2"},
			{"Bob", "3"},
			{"Bob", "4"},
			{"Mark", "1"},
			{"Mark", "2"},
			{"Mark", "4"},
			{"Mark", "5"},
			{"Amanda", "2"},
			{"Amanda", "4"},
			{"Amanda", "5"},
		},
	}
}

// Seeder is the subset of *store.Store used to load a dataset.
type Seeder interface {
	ClearDatabase(ctx context.Context) error
	CreateItem(ctx context.Context, id, name string, price float64) error
	CreateCustomer(ctx context.Context, id, name string) error
	CreateOrder(ctx context.Context, id, time string) error
	CustomerBoughtOrder(ctx context.Context, customerName, orderID string) error
	OrderContainsItem(ctx context.Context, orderID, itemName string) error
	CustomerViewItem(ctx context.Context, customerName, itemID string) error
}

// Seed wipes the database and loads ds: nodes first, then relationships.
// It stops at the first error.
func Seed(ctx context.Context, s Seeder, ds Dataset) error {
	if err := s.ClearDatabase(ctx); err != nil {
		return fmt.Errorf("clear database: %w", err)
	}

	for _, it := range ds.Items {
		if err := s.CreateItem(ctx, it.ID, it.Name, it.Price); err != nil {
			return fmt.Errorf("create item %s: %w", it.ID, err)
		}
	}
	for _, c := range ds.Customers {
		if err := s.CreateCustomer(ctx, c.ID, c.Name); err != nil {
			return fmt.Errorf("create customer %s: %w", c.ID, err)
		}
	}
	for _, o := range ds.Orders {
		if err := s.CreateOrder(ctx, o.ID, o.Time); err != nil {
			return fmt.Errorf("create order %s: %w", o.ID, err)
		}
	}

	for _, l := range ds.Bought {
		if err := s.CustomerBoughtOrder(ctx, l.From, l.To); err != nil {
			return fmt.Errorf("link %s bought %s: %w", l.From, l.To, err)
		}
	}
	for _, l := range ds.Contains {
		if err := s.OrderContainsItem(ctx, l.From, l.To); err != nil {
			return fmt.Errorf("link order %s contains %s: %w", l.From, l.To, err)
		}
	}
	for _, l := range ds.Viewed {
		if err := s.CustomerViewItem(ctx, l.From, l.To); err != nil {
			return fmt.Errorf("link %s viewed %s: %w", l.From, l.To, err)
		}
	}

	return nil
}
