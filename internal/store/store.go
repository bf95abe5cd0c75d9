package store

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/uakotik/DB-lab5/internal/graph"
	"github.com/uakotik/DB-lab5/internal/types"
)

// Store is the e-commerce façade over the graph database.
// Each method issues exactly one parameterized query in its own session.
// Store keeps no mutable state and is safe for concurrent use.
type Store struct {
	client graph.Client
	logger *slog.Logger
	strict bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStrictRelationships makes relationship creation fail with
// ErrCodeEndpointNotFound when an endpoint does not match any node.
// By default such calls create nothing and succeed.
func WithStrictRelationships(strict bool) Option {
	return func(s *Store) {
		s.strict = strict
	}
}

// New wraps an already connected client.
func New(client graph.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open connects to Neo4j with cfg and returns a Store that owns the connection.
// Queries are traced through the global OpenTelemetry providers.
func Open(ctx context.Context, cfg graph.Config, opts ...Option) (*Store, error) {
	s := New(nil, opts...)

	neo, err := graph.NewNeo4jClient(cfg, graph.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	traced, err := graph.NewTracedClient(neo)
	if err != nil {
		return nil, fmt.Errorf("failed to instrument graph client: %w", err)
	}
	if err := traced.Connect(ctx); err != nil {
		return nil, err
	}

	s.client = traced
	return s, nil
}

// Close releases the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}

// Health reports the state of the database connection.
func (s *Store) Health(ctx context.Context) types.HealthStatus {
	return s.client.Health(ctx)
}

// CreateItem creates an Item node.
func (s *Store) CreateItem(ctx context.Context, id, name string, price float64) error {
	if err := requireArgs(QueryCreateItem, "id", id, "name", name); err != nil {
		return err
	}
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return types.NewError(ErrCodeInvalidArgument,
			fmt.Sprintf("%s: price must be a non-negative number, got %v", QueryCreateItem, price))
	}

	_, err := s.client.Write(ctx, graph.NewQuery(QueryCreateItem, cypherCreateItem, map[string]any{
		"id":    id,
		"name":  name,
		"price": price,
	}))
	if err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "created item", "id", id, "name", name, "price", price)
	return nil
}

// CreateCustomer creates a Customer node.
func (s *Store) CreateCustomer(ctx context.Context, id, name string) error {
	if err := requireArgs(QueryCreateCustomer, "id", id, "name", name); err != nil {
		return err
	}

	_, err := s.client.Write(ctx, graph.NewQuery(QueryCreateCustomer, cypherCreateCustomer, map[string]any{
		"id":   id,
		"name": name,
	}))
	if err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "created customer", "id", id, "name", name)
	return nil
}

// CreateOrder creates an Order node. time is stored as given.
func (s *Store) CreateOrder(ctx context.Context, id, time string) error {
	if err := requireArgs(QueryCreateOrder, "id", id); err != nil {
		return err
	}

	_, err := s.client.Write(ctx, graph.NewQuery(QueryCreateOrder, cypherCreateOrder, map[string]any{
		"id":   id,
		"time": time,
	}))
	if err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "created order", "id", id, "time", time)
	return nil
}

// CustomerBoughtOrder links (Customer {name})-[:BOUGHT]->(Order {id}).
func (s *Store) CustomerBoughtOrder(ctx context.Context, customerName, orderID string) error {
	return s.link(ctx, QueryCustomerBoughtOrder, cypherCustomerBoughtOrder,
		"customer_name", customerName, "order_id", orderID)
}

// OrderContainsItem links (Order {id})-[:CONTAINS]->(Item {name}).
func (s *Store) OrderContainsItem(ctx context.Context, orderID, itemName string) error {
	return s.link(ctx, QueryOrderContainsItem, cypherOrderContainsItem,
		"order_id", orderID, "item_name", itemName)
}

// CustomerViewItem links (Customer {name})-[:VIEWED]->(Item {id}).
func (s *Store) CustomerViewItem(ctx context.Context, customerName, itemID string) error {
	return s.link(ctx, QueryCustomerViewItem, cypherCustomerViewItem,
		"customer_name", customerName, "item_id", itemID)
}

// link creates one relationship between two nodes matched by business key.
// A missing endpoint matches zero rows; that is logged, and only an error in strict mode.
func (s *Store) link(ctx context.Context, op, cypher, fromKey, fromValue, toKey, toValue string) error {
	if err := requireArgs(op, fromKey, fromValue, toKey, toValue); err != nil {
		return err
	}
	params := map[string]any{fromKey: fromValue, toKey: toValue}

	res, err := s.client.Write(ctx, graph.NewQuery(op, cypher, params))
	if err != nil {
		return err
	}

	if res.Summary.RelationshipsCreated == 0 {
		if s.strict {
			return types.NewError(ErrCodeEndpointNotFound,
				fmt.Sprintf("%s: no match for %s=%q and %s=%q", op, fromKey, fromValue, toKey, toValue))
		}
		s.logger.WarnContext(ctx, "relationship not created, endpoint missing",
			"operation", op, fromKey, fromValue, toKey, toValue)
		return nil
	}

	s.logger.DebugContext(ctx, "created relationship",
		"operation", op, "count", res.Summary.RelationshipsCreated)
	return nil
}

// GetItem looks an item up by id. found is false when no item has that id.
func (s *Store) GetItem(ctx context.Context, id string) (item Item, found bool, err error) {
	if err := requireArgs(QueryGetItem, "id", id); err != nil {
		return Item{}, false, err
	}

	res, err := s.client.Read(ctx, graph.NewQuery(QueryGetItem, cypherGetItem, map[string]any{"id": id}))
	if err != nil {
		return Item{}, false, err
	}
	if len(res.Records) == 0 {
		return Item{}, false, nil
	}

	rec := res.Records[0]
	item.ID, _ = rec["id"].(string)
	item.Name, _ = rec["name"].(string)
	price, ok := toFloat(rec["price"])
	if !ok {
		return Item{}, false, parseError(QueryGetItem, "column %q: want number, got %T", "price", rec["price"])
	}
	item.Price = price
	return item, true, nil
}

// FindItemsInOrder returns the names of the items contained in an order.
func (s *Store) FindItemsInOrder(ctx context.Context, orderID string) ([]string, error) {
	return s.names(ctx, QueryFindItemsInOrder, cypherFindItemsInOrder, "order_id", orderID, "name")
}

// CalculateOrderCost sums the prices of the items contained in an order.
// An unknown or empty order costs zero.
func (s *Store) CalculateOrderCost(ctx context.Context, orderID string) (float64, error) {
	if err := requireArgs(QueryCalculateOrderCost, "order_id", orderID); err != nil {
		return 0, err
	}

	res, err := s.client.Read(ctx, graph.NewQuery(QueryCalculateOrderCost, cypherCalculateOrderCost,
		map[string]any{"order_id": orderID}))
	if err != nil {
		return 0, err
	}
	return singleFloat(QueryCalculateOrderCost, res, "total_cost")
}

// FindOrdersByCustomer returns the ids of the orders a customer bought.
func (s *Store) FindOrdersByCustomer(ctx context.Context, customerName string) ([]string, error) {
	return s.names(ctx, QueryFindOrdersByCustomer, cypherFindOrdersByCustomer, "customer_name", customerName, "id")
}

// FindItemsBoughtByCustomer returns item names across all orders of a customer.
// An item appears once per order containing it.
func (s *Store) FindItemsBoughtByCustomer(ctx context.Context, customerName string) ([]string, error) {
	return s.names(ctx, QueryFindItemsBoughtByCustomer, cypherFindItemsBoughtByCustomer, "customer_name", customerName, "name")
}

// CountItemsBoughtByCustomer counts bought items with multiplicity across orders.
func (s *Store) CountItemsBoughtByCustomer(ctx context.Context, customerName string) (int64, error) {
	if err := requireArgs(QueryCountItemsBoughtByCustomer, "customer_name", customerName); err != nil {
		return 0, err
	}

	res, err := s.client.Read(ctx, graph.NewQuery(QueryCountItemsBoughtByCustomer, cypherCountItemsBoughtByCustomer,
		map[string]any{"customer_name": customerName}))
	if err != nil {
		return 0, err
	}
	return singleInt(QueryCountItemsBoughtByCustomer, res, "item_count")
}

// TotalAmountSpentByCustomer sums item prices over every bought order.
// An item present in two orders is counted twice.
func (s *Store) TotalAmountSpentByCustomer(ctx context.Context, customerName string) (float64, error) {
	if err := requireArgs(QueryTotalAmountSpent, "customer_name", customerName); err != nil {
		return 0, err
	}

	res, err := s.client.Read(ctx, graph.NewQuery(QueryTotalAmountSpent, cypherTotalAmountSpent,
		map[string]any{"customer_name": customerName}))
	if err != nil {
		return 0, err
	}
	return singleFloat(QueryTotalAmountSpent, res, "total_spent")
}

// FindMostBoughtItems ranks items by the number of orders containing them,
// most bought first, ties broken by name.
func (s *Store) FindMostBoughtItems(ctx context.Context) ([]ItemCount, error) {
	res, err := s.client.Read(ctx, graph.NewQuery(QueryFindMostBoughtItems, cypherFindMostBoughtItems, nil))
	if err != nil {
		return nil, err
	}

	out := make([]ItemCount, 0, len(res.Records))
	for _, rec := range res.Records {
		name, ok := rec["name"].(string)
		if !ok {
			return nil, parseError(QueryFindMostBoughtItems, "column %q: want string, got %T", "name", rec["name"])
		}
		count, ok := toInt(rec["purchase_count"])
		if !ok {
			return nil, parseError(QueryFindMostBoughtItems, "column %q: want integer, got %T", "purchase_count", rec["purchase_count"])
		}
		out = append(out, ItemCount{Name: name, Count: count})
	}
	return out, nil
}

// FindItemsViewedByCustomer returns the names of items a customer viewed.
func (s *Store) FindItemsViewedByCustomer(ctx context.Context, customerName string) ([]string, error) {
	return s.names(ctx, QueryFindItemsViewedByCustomer, cypherFindItemsViewedByCustomer, "customer_name", customerName, "name")
}

// FindItemsBoughtTogether returns names of items sharing an order with the
// given item, once per shared order.
func (s *Store) FindItemsBoughtTogether(ctx context.Context, itemID string) ([]string, error) {
	return s.names(ctx, QueryFindItemsBoughtTogether, cypherFindItemsBoughtTogether, "item_id", itemID, "name")
}

// FindCustomersBoughtItem returns names of customers with an order containing the item.
func (s *Store) FindCustomersBoughtItem(ctx context.Context, itemID string) ([]string, error) {
	return s.names(ctx, QueryFindCustomersBoughtItem, cypherFindCustomersBoughtItem, "item_id", itemID, "name")
}

// FindViewedNotBought returns items the customer viewed but never bought in any order.
func (s *Store) FindViewedNotBought(ctx context.Context, customerName string) ([]string, error) {
	return s.names(ctx, QueryFindViewedNotBought, cypherFindViewedNotBought, "customer_name", customerName, "name")
}

// ClearDatabase deletes every node and relationship. It is irreversible.
func (s *Store) ClearDatabase(ctx context.Context) error {
	res, err := s.client.Write(ctx, graph.NewQuery(QueryClearDatabase, cypherClearDatabase, nil))
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "database cleared",
		"nodes_deleted", res.Summary.NodesDeleted,
		"relationships_deleted", res.Summary.RelationshipsDeleted,
	)
	return nil
}

// EnsureSchema declares uniqueness constraints on Item, Customer and Order ids.
// Existing constraints are left untouched.
func (s *Store) EnsureSchema(ctx context.Context) error {
	added := 0
	for _, cypher := range constraints {
		res, err := s.client.Write(ctx, graph.NewQuery(QueryEnsureConstraint, cypher, nil))
		if err != nil {
			return err
		}
		added += res.Summary.ConstraintsAdded
	}
	s.logger.InfoContext(ctx, "schema ensured", "constraints_added", added)
	return nil
}

// names runs a one-parameter read and returns one string column.
func (s *Store) names(ctx context.Context, op, cypher, param, value, column string) ([]string, error) {
	if err := requireArgs(op, param, value); err != nil {
		return nil, err
	}

	res, err := s.client.Read(ctx, graph.NewQuery(op, cypher, map[string]any{param: value}))
	if err != nil {
		return nil, err
	}
	return stringColumn(op, res, column)
}

// requireArgs takes name/value pairs and rejects empty values.
func requireArgs(op string, pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return types.NewError(ErrCodeInvalidArgument,
				fmt.Sprintf("%s: %s cannot be empty", op, pairs[i]))
		}
	}
	return nil
}
