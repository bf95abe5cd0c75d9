package graph

import (
	"context"
	"sync"
	"time"

	"github.com/uakotik/DB-lab5/internal/types"
)

// MockCall represents a recorded method call on the mock client.
type MockCall struct {
	Method    string
	Query     Query
	Timestamp time.Time
}

// MockClient is an in-memory Client for unit tests.
// Results are scripted per query name and served FIFO; every call is recorded.
type MockClient struct {
	mu sync.Mutex

	connected    bool
	healthStatus types.HealthStatus
	calls        []MockCall

	results      map[string][]QueryResult
	queryErrors  map[string]error
	connectError error
	closeError   error
}

// anyQuery scripts an error for every query name.
const anyQuery = ""

// NewMockClient creates a disconnected mock client.
func NewMockClient() *MockClient {
	return &MockClient{
		healthStatus: types.Healthy("mock graph client"),
		calls:        make([]MockCall, 0),
		results:      make(map[string][]QueryResult),
		queryErrors:  make(map[string]error),
	}
}

// Connect records the call and simulates connection.
func (m *MockClient) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Connect", Query{})
	if m.connectError != nil {
		return m.connectError
	}
	m.connected = true
	return nil
}

// Close records the call and simulates disconnection.
func (m *MockClient) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Close", Query{})
	if m.closeError != nil {
		return m.closeError
	}
	m.connected = false
	return nil
}

// Health records the call and returns the configured health status.
func (m *MockClient) Health(ctx context.Context) types.HealthStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Health", Query{})
	if !m.connected {
		return types.Unhealthy("not connected")
	}
	return m.healthStatus
}

// Read records the call and returns the next scripted result for q.Name.
func (m *MockClient) Read(ctx context.Context, q Query) (QueryResult, error) {
	return m.run("Read", q)
}

// Write records the call and returns the next scripted result for q.Name.
func (m *MockClient) Write(ctx context.Context, q Query) (QueryResult, error) {
	return m.run("Write", q)
}

func (m *MockClient) run(method string, q Query) (QueryResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record(method, q)

	if !m.connected {
		return QueryResult{}, types.NewError(ErrCodeGraphConnectionClosed, "not connected")
	}
	if err, ok := m.queryErrors[q.Name]; ok {
		return QueryResult{}, err
	}
	if err, ok := m.queryErrors[anyQuery]; ok {
		return QueryResult{}, err
	}

	if queue := m.results[q.Name]; len(queue) > 0 {
		m.results[q.Name] = queue[1:]
		return queue[0], nil
	}

	return QueryResult{
		Records: []map[string]any{},
		Columns: []string{},
	}, nil
}

func (m *MockClient) record(method string, q Query) {
	m.calls = append(m.calls, MockCall{
		Method:    method,
		Query:     q,
		Timestamp: time.Now(),
	})
}

// AddResult queues a result for the next call with the given query name.
func (m *MockClient) AddResult(name string, result QueryResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[name] = append(m.results[name], result)
}

// AddRecords queues a result made of the given rows.
func (m *MockClient) AddRecords(name string, records ...map[string]any) {
	m.AddResult(name, QueryResult{Records: records})
}

// SetQueryError makes every call with the given query name fail.
// An empty name applies to all queries.
func (m *MockClient) SetQueryError(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.queryErrors, name)
		return
	}
	m.queryErrors[name] = err
}

// SetConnectError configures the error returned by Connect.
func (m *MockClient) SetConnectError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectError = err
}

// SetCloseError configures the error returned by Close.
func (m *MockClient) SetCloseError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeError = err
}

// SetHealthStatus configures the status returned by Health while connected.
func (m *MockClient) SetHealthStatus(status types.HealthStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthStatus = status
}

// IsConnected reports whether Connect succeeded and Close has not been called since.
func (m *MockClient) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// Calls returns a copy of every recorded call.
func (m *MockClient) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallsFor returns the Read/Write calls made with the given query name.
func (m *MockClient) CallsFor(name string) []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []MockCall
	for _, c := range m.calls {
		if (c.Method == "Read" || c.Method == "Write") && c.Query.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// LastCall returns the most recent call. ok is false if nothing was called.
func (m *MockClient) LastCall() (call MockCall, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return MockCall{}, false
	}
	return m.calls[len(m.calls)-1], true
}

// CallCount returns the number of recorded calls.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Reset clears recorded calls, scripted results and errors. Connection state is kept.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = make([]MockCall, 0)
	m.results = make(map[string][]QueryResult)
	m.queryErrors = make(map[string]error)
	m.connectError = nil
	m.closeError = nil
}
