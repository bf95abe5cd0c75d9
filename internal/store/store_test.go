package store

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uakotik/DB-lab5/internal/graph"
	"github.com/uakotik/DB-lab5/internal/types"
)

func newTestStore(t *testing.T, opts ...Option) (*Store, *graph.MockClient) {
	t.Helper()
	mock := graph.NewMockClient()
	require.NoError(t, mock.Connect(context.Background()))
	return New(mock, opts...), mock
}

func linked(n int) graph.QueryResult {
	return graph.QueryResult{Summary: graph.QuerySummary{RelationshipsCreated: n}}
}

func TestStore_CreateNodes(t *testing.T) {
	s, mock := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateItem(ctx, "1", "phone", 750))
	require.NoError(t, s.CreateCustomer(ctx, "1", "Bob"))
	require.NoError(t, s.CreateOrder(ctx, "1", "23:04"))

	items := mock.CallsFor(QueryCreateItem)
	require.Len(t, items, 1)
	assert.Equal(t, "Write", items[0].Method)
	assert.Contains(t, items[0].Query.Cypher, "CREATE (i:Item")
	assert.Equal(t, map[string]any{"id": "1", "name": "phone", "price": 750.0}, items[0].Query.Params)

	customers := mock.CallsFor(QueryCreateCustomer)
	require.Len(t, customers, 1)
	assert.Equal(t, map[string]any{"id": "1", "name": "Bob"}, customers[0].Query.Params)

	orders := mock.CallsFor(QueryCreateOrder)
	require.Len(t, orders, 1)
	assert.Equal(t, map[string]any{"id": "1", "time": "23:04"}, orders[0].Query.Params)
}

func TestStore_CreateItem_InvalidArguments(t *testing.T) {
	s, mock := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		id    string
		item  string
		price float64
	}{
		{"empty id", "", "phone", 1},
		{"empty name", "1", "", 1},
		{"negative price", "1", "phone", -1},
		{"NaN price", "1", "phone", math.NaN()},
		{"infinite price", "1", "phone", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.CreateItem(ctx, tt.id, tt.item, tt.price)
			assert.Equal(t, ErrCodeInvalidArgument, types.CodeOf(err))
		})
	}
	assert.Empty(t, mock.CallsFor(QueryCreateItem), "invalid input must not reach the database")
}

func TestStore_CreateOrder_EmptyTimeAllowed(t *testing.T) {
	s, _ := newTestStore(t)
	assert.NoError(t, s.CreateOrder(context.Background(), "9", ""))
}

func TestStore_Relationships(t *testing.T) {
	s, mock := newTestStore(t)
	ctx := context.Background()

	mock.AddResult(QueryCustomerBoughtOrder, linked(1))
	mock.AddResult(QueryOrderContainsItem, linked(1))
	mock.AddResult(QueryCustomerViewItem, linked(1))

	require.NoError(t, s.CustomerBoughtOrder(ctx, "Bob", "1"))
	require.NoError(t, s.OrderContainsItem(ctx, "1", "phone"))
	require.NoError(t, s.CustomerViewItem(ctx, "Bob", "1"))

	bought := mock.CallsFor(QueryCustomerBoughtOrder)
	require.Len(t, bought, 1)
	assert.Contains(t, bought[0].Query.Cypher, "[:BOUGHT]")
	assert.Equal(t, map[string]any{"customer_name": "Bob", "order_id": "1"}, bought[0].Query.Params)

	contains := mock.CallsFor(QueryOrderContainsItem)
	require.Len(t, contains, 1)
	assert.Contains(t, contains[0].Query.Cypher, "(i:Item {name: $item_name})")
	assert.Equal(t, map[string]any{"order_id": "1", "item_name": "phone"}, contains[0].Query.Params)

	viewed := mock.CallsFor(QueryCustomerViewItem)
	require.Len(t, viewed, 1)
	assert.Contains(t, viewed[0].Query.Cypher, "[:VIEWED]")
	assert.Equal(t, map[string]any{"customer_name": "Bob", "item_id": "1"}, viewed[0].Query.Params)
}

func TestStore_Relationships_MissingEndpoint(t *testing.T) {
	t.Run("lenient by default", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		s, mock := newTestStore(t, WithLogger(logger))

		mock.AddResult(QueryCustomerBoughtOrder, linked(0))

		err := s.CustomerBoughtOrder(context.Background(), "Nobody", "1")
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "endpoint missing")
		assert.Contains(t, buf.String(), "Nobody")
	})

	t.Run("strict mode reports it", func(t *testing.T) {
		s, mock := newTestStore(t, WithStrictRelationships(true))

		mock.AddResult(QueryOrderContainsItem, linked(0))

		err := s.OrderContainsItem(context.Background(), "1", "toaster")
		require.Error(t, err)
		assert.Equal(t, ErrCodeEndpointNotFound, types.CodeOf(err))
		assert.Contains(t, err.Error(), "toaster")
	})
}

func TestStore_Relationships_EmptyKeys(t *testing.T) {
	s, mock := newTestStore(t)
	ctx := context.Background()

	assert.Equal(t, ErrCodeInvalidArgument, types.CodeOf(s.CustomerBoughtOrder(ctx, "", "1")))
	assert.Equal(t, ErrCodeInvalidArgument, types.CodeOf(s.OrderContainsItem(ctx, "1", "")))
	assert.Equal(t, ErrCodeInvalidArgument, types.CodeOf(s.CustomerViewItem(ctx, "", "")))
	assert.Equal(t, 1, mock.CallCount(), "only Connect was called")
}

func TestStore_GetItem(t *testing.T) {
	s, mock := newTestStore(t)
	ctx := context.Background()

	mock.AddRecords(QueryGetItem, map[string]any{"id": "1", "name": "phone", "price": int64(750)})

	item, found, err := s.GetItem(ctx, "1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, Item{ID: "1", Name: "phone", Price: 750}, item)

	_, found, err = s.GetItem(ctx, "404")
	require.NoError(t, err)
	assert.False(t, found)

	mock.AddRecords(QueryGetItem, map[string]any{"id": "1", "name": "phone", "price": "cheap"})
	_, _, err = s.GetItem(ctx, "1")
	assert.Equal(t, graph.ErrCodeGraphResultParsing, types.CodeOf(err))
}

func TestStore_NameLists(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		param  string
		column string
		call   func(*Store, context.Context, string) ([]string, error)
	}{
		{"items in order", QueryFindItemsInOrder, "order_id", "name", (*Store).FindItemsInOrder},
		{"orders by customer", QueryFindOrdersByCustomer, "customer_name", "id", (*Store).FindOrdersByCustomer},
		{"items bought", QueryFindItemsBoughtByCustomer, "customer_name", "name", (*Store).FindItemsBoughtByCustomer},
		{"items viewed", QueryFindItemsViewedByCustomer, "customer_name", "name", (*Store).FindItemsViewedByCustomer},
		{"bought together", QueryFindItemsBoughtTogether, "item_id", "name", (*Store).FindItemsBoughtTogether},
		{"customers bought item", QueryFindCustomersBoughtItem, "item_id", "name", (*Store).FindCustomersBoughtItem},
		{"viewed not bought", QueryFindViewedNotBought, "customer_name", "name", (*Store).FindViewedNotBought},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newTestStore(t)
			ctx := context.Background()

			mock.AddRecords(tt.query,
				map[string]any{tt.column: "a"},
				map[string]any{tt.column: nil},
				map[string]any{tt.column: "b"},
			)

			got, err := tt.call(s, ctx, "key")
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, got)

			calls := mock.CallsFor(tt.query)
			require.Len(t, calls, 1)
			assert.Equal(t, "Read", calls[0].Method)
			assert.Equal(t, map[string]any{tt.param: "key"}, calls[0].Query.Params)

			empty, err := tt.call(s, ctx, "key")
			require.NoError(t, err)
			assert.NotNil(t, empty)
			assert.Empty(t, empty)

			_, err = tt.call(s, ctx, "")
			assert.Equal(t, ErrCodeInvalidArgument, types.CodeOf(err))
		})
	}
}

func TestStore_NameLists_BadColumn(t *testing.T) {
	s, mock := newTestStore(t)

	mock.AddRecords(QueryFindItemsInOrder, map[string]any{"name": 42})
	_, err := s.FindItemsInOrder(context.Background(), "1")
	assert.Equal(t, graph.ErrCodeGraphResultParsing, types.CodeOf(err))

	mock.AddRecords(QueryFindItemsInOrder, map[string]any{"other": "x"})
	_, err = s.FindItemsInOrder(context.Background(), "1")
	assert.Equal(t, graph.ErrCodeGraphResultParsing, types.CodeOf(err))
}

func TestStore_CalculateOrderCost(t *testing.T) {
	s, mock := newTestStore(t)
	ctx := context.Background()

	mock.AddRecords(QueryCalculateOrderCost, map[string]any{"total_cost": 1750.0})
	mock.AddRecords(QueryCalculateOrderCost, map[string]any{"total_cost": int64(1000)})
	mock.AddRecords(QueryCalculateOrderCost, map[string]any{"total_cost": nil})

	cost, err := s.CalculateOrderCost(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 1750.0, cost)

	cost, err = s.CalculateOrderCost(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, cost)

	cost, err = s.CalculateOrderCost(ctx, "missing")
	require.NoError(t, err)
	assert.Zero(t, cost)

	cost, err = s.CalculateOrderCost(ctx, "no rows")
	require.NoError(t, err)
	assert.Zero(t, cost)
}

func TestStore_CustomerAggregates(t *testing.T) {
	s, mock := newTestStore(t)
	ctx := context.Background()

	mock.AddRecords(QueryCountItemsBoughtByCustomer, map[string]any{"item_count": int64(2)})
	mock.AddRecords(QueryTotalAmountSpent, map[string]any{"total_spent": 1000.0})

	count, err := s.CountItemsBoughtByCustomer(ctx, "Mark")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	total, err := s.TotalAmountSpentByCustomer(ctx, "Mark")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, total)

	assert.Equal(t, "Mark", mock.CallsFor(QueryTotalAmountSpent)[0].Query.Params["customer_name"])

	mock.AddRecords(QueryCountItemsBoughtByCustomer, map[string]any{"item_count": "two"})
	_, err = s.CountItemsBoughtByCustomer(ctx, "Mark")
	assert.Equal(t, graph.ErrCodeGraphResultParsing, types.CodeOf(err))
}

func TestStore_FindMostBoughtItems(t *testing.T) {
	s, mock := newTestStore(t)

	mock.AddRecords(QueryFindMostBoughtItems,
		map[string]any{"name": "laptop", "purchase_count": int64(2)},
		map[string]any{"name": "headset", "purchase_count": int64(1)},
		map[string]any{"name": "pc", "purchase_count": int64(1)},
	)

	got, err := s.FindMostBoughtItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []ItemCount{
		{Name: "laptop", Count: 2},
		{Name: "headset", Count: 1},
		{Name: "pc", Count: 1},
	}, got)

	calls := mock.CallsFor(QueryFindMostBoughtItems)
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Query.Cypher, "ORDER BY purchase_count DESC, name ASC")
}

func TestStore_ClearDatabase(t *testing.T) {
	s, mock := newTestStore(t)

	require.NoError(t, s.ClearDatabase(context.Background()))

	calls := mock.CallsFor(QueryClearDatabase)
	require.Len(t, calls, 1)
	assert.Equal(t, "Write", calls[0].Method)
	assert.Equal(t, "MATCH (n) DETACH DELETE n", calls[0].Query.Cypher)
}

func TestStore_EnsureSchema(t *testing.T) {
	s, mock := newTestStore(t)

	require.NoError(t, s.EnsureSchema(context.Background()))

	calls := mock.CallsFor(QueryEnsureConstraint)
	require.Len(t, calls, 3)
	for _, c := range calls {
		assert.Contains(t, c.Query.Cypher, "IF NOT EXISTS")
	}
}

func TestStore_PropagatesClientErrors(t *testing.T) {
	s, mock := newTestStore(t)
	ctx := context.Background()

	cause := errors.New("Neo.ClientError.Schema.ConstraintValidationFailed")
	mock.SetQueryError("", types.WrapError(graph.ErrCodeGraphQueryFailed, "query failed", cause))

	err := s.CreateItem(ctx, "1", "phone", 750)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, graph.ErrCodeGraphQueryFailed, types.CodeOf(err))

	_, err = s.FindMostBoughtItems(ctx)
	assert.ErrorIs(t, err, cause)

	_, err = s.CalculateOrderCost(ctx, "1")
	assert.ErrorIs(t, err, cause)

	assert.ErrorIs(t, s.ClearDatabase(ctx), cause)
	assert.ErrorIs(t, s.EnsureSchema(ctx), cause)
}

func TestStore_ClosedClient(t *testing.T) {
	s, mock := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Close(ctx))
	assert.False(t, mock.IsConnected())

	err := s.CreateItem(ctx, "1", "phone", 750)
	assert.Equal(t, graph.ErrCodeGraphConnectionClosed, types.CodeOf(err))
	assert.True(t, s.Health(ctx).IsUnhealthy())
}
