package sample

import (
	"context"
	"fmt"

	"github.com/uakotik/DB-lab5/internal/store"
)

// Entry is one labelled query result.
type Entry struct {
	Label string `json:"label"`
	Value any    `json:"value"`
}

// Reader is the subset of *store.Store used by Report.
type Reader interface {
	FindItemsInOrder(ctx context.Context, orderID string) ([]string, error)
	CalculateOrderCost(ctx context.Context, orderID string) (float64, error)
	FindOrdersByCustomer(ctx context.Context, customerName string) ([]string, error)
	FindItemsBoughtByCustomer(ctx context.Context, customerName string) ([]string, error)
	CountItemsBoughtByCustomer(ctx context.Context, customerName string) (int64, error)
	TotalAmountSpentByCustomer(ctx context.Context, customerName string) (float64, error)
	FindMostBoughtItems(ctx context.Context) ([]store.ItemCount, error)
	FindItemsViewedByCustomer(ctx context.Context, customerName string) ([]string, error)
	FindItemsBoughtTogether(ctx context.Context, itemID string) ([]string, error)
	FindCustomersBoughtItem(ctx context.Context, itemID string) ([]string, error)
	FindViewedNotBought(ctx context.Context, customerName string) ([]string, error)
}

// Report runs the demo queries against the default dataset's keys.
func Report(ctx context.Context, r Reader) ([]Entry, error) {
	steps := []struct {
		label string
		run   func() (any, error)
	}{
		{"Items in order 1", func() (any, error) { return r.FindItemsInOrder(ctx, "1") }},
		{"Cost of order 2", func() (any, error) { return r.CalculateOrderCost(ctx, "2") }},
		{"Orders of Amanda", func() (any, error) { return r.FindOrdersByCustomer(ctx, "Amanda") }},
		{"Items bought by Mark", func() (any, error) { return r.FindItemsBoughtByCustomer(ctx, "Mark") }},
		{"Number of items bought by Mark", func() (any, error) { return r.CountItemsBoughtByCustomer(ctx, "Mark") }},
		{"Amount spent by Mark", func() (any, error) { return r.TotalAmountSpentByCustomer(ctx, "Mark") }},
		{"Most bought items", func() (any, error) { return r.FindMostBoughtItems(ctx) }},
		{"Items viewed by Bob", func() (any, error) { return r.FindItemsViewedByCustomer(ctx, "Bob") }},
		{"Items bought together with item 1", func() (any, error) { return r.FindItemsBoughtTogether(ctx, "1") }},
		{"Customers who bought item 2", func() (any, error) { return r.FindCustomersBoughtItem(ctx, "2") }},
		{"Items Bob viewed but did not buy", func() (any, error) { return r.FindViewedNotBought(ctx, "Bob") }},
	}

	entries := make([]Entry, 0, len(steps))
	for _, step := range steps {
		v, err := step.run()
		if err != nil {
			return entries, fmt.Errorf("%s: %w", step.label, err)
		}
		entries = append(entries, Entry{Label: step.label, Value: v})
	}
	return entries, nil
}
