package websocket

// EventPublisher defines the interface for publishing events to WebSocket clients.
type EventPublisher interface {
	// Publish sends an event to all connected clients.
	Publish(event Event)
}

// Ensure Hub implements EventPublisher
var _ EventPublisher = (*Hub)(nil)

// Publish implements EventPublisher by broadcasting the event.
func (h *Hub) Publish(event Event) {
	h.Broadcast(event)
}

// NoOpPublisher is a publisher that does nothing (for testing or when WebSocket is disabled).
type NoOpPublisher struct{}

// Publish does nothing.
func (n *NoOpPublisher) Publish(event Event) {}
