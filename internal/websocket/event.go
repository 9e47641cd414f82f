package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to the entity.
type EventType string

const (
	EventTypeRefreshed   EventType = "refreshed"
	EventTypeInvalidated EventType = "invalidated"
	EventTypeSwitched    EventType = "switched"
)

// EntityType represents what the event is about.
type EntityType string

const (
	EntityTypeBookings EntityType = "bookings"
	EntityTypeCache    EntityType = "cache"
	EntityTypeSource   EntityType = "source"
)

// Event is the message pushed to connected dashboard clients.
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"` // combined, e.g. "bookings.refreshed"
	Entity    EntityType  `json:"entity"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates an event with the combined type string.
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// BookingsRefreshed signals that fresh booking data was pulled from the
// data source and clients should refetch their views.
func BookingsRefreshed(payload interface{}) Event {
	return NewEvent(EventTypeRefreshed, EntityTypeBookings, payload)
}

// CacheInvalidated signals that cached metrics were dropped.
func CacheInvalidated(payload interface{}) Event {
	return NewEvent(EventTypeInvalidated, EntityTypeCache, payload)
}

// SourceSwitched signals that the active booking data source changed.
func SourceSwitched(payload interface{}) Event {
	return NewEvent(EventTypeSwitched, EntityTypeSource, payload)
}
