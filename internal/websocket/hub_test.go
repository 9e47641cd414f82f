package websocket

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient implements ClientInterface for hub tests.
type mockClient struct {
	id       string
	mu       sync.Mutex
	received [][]byte
	sendErr  error
	closed   bool
}

func (m *mockClient) ID() string { return m.id }

func (m *mockClient) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.received = append(m.received, data)
	return nil
}

func (m *mockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockClient) receivedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.received)
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()
	client := &mockClient{id: "c1"}

	hub.Register(client)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(client)
	assert.Equal(t, 0, hub.ClientCount())

	// Unregistering twice is harmless.
	hub.Unregister(client)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHubBroadcast_AllClientsReceive(t *testing.T) {
	hub := NewHub()
	a := &mockClient{id: "a"}
	b := &mockClient{id: "b"}
	hub.Register(a)
	hub.Register(b)

	hub.Broadcast(CacheInvalidated(map[string]any{"prefix": "summary"}))

	// Sends are async; poll briefly.
	require.Eventually(t, func() bool {
		return a.receivedCount() == 1 && b.receivedCount() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestHubBroadcast_FailingClientDoesNotBlockOthers(t *testing.T) {
	hub := NewHub()
	broken := &mockClient{id: "broken", sendErr: ErrClientClosed}
	healthy := &mockClient{id: "healthy"}
	hub.Register(broken)
	hub.Register(healthy)

	hub.Broadcast(BookingsRefreshed(nil))

	require.Eventually(t, func() bool {
		return healthy.receivedCount() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestHubBroadcast_NoClients(t *testing.T) {
	hub := NewHub()
	// Must not panic or block.
	hub.Broadcast(SourceSwitched(map[string]any{"source": "postgres"}))
	assert.Equal(t, 0, hub.ClientCount())
}
