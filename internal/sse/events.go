// Package sse implements Server-Sent Events for pushing diary changes to
// connected clients.
package sse

import (
	"time"

	"github.com/ElenaBalahnina123/BookDiary/internal/domain"
)

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventBookCreated represents a book creation event.
	EventBookCreated EventType = "book.created"
	// EventBookUpdated represents a book update event.
	EventBookUpdated EventType = "book.updated"
	// EventBookDeleted represents a book deletion event.
	EventBookDeleted EventType = "book.deleted"

	// EventGenresUpdated represents a change to the genre mirror after a
	// catalog sync.
	EventGenresUpdated EventType = "genres.updated"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object for direct deserialization.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`
}

// BookEventData is the data payload for book events.
type BookEventData struct {
	Book *domain.Book `json:"book"`
}

// BookDeletedEventData is the data payload for book delete events.
type BookDeletedEventData struct {
	DeletedAt time.Time `json:"deleted_at"`
	BookID    int64     `json:"book_id"`
}

// GenresUpdatedEventData is the data payload for genre mirror changes.
type GenresUpdatedEventData struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewBookCreatedEvent creates a book.created event.
func NewBookCreatedEvent(book *domain.Book) Event {
	return Event{
		Type:      EventBookCreated,
		Data:      BookEventData{Book: book},
		Timestamp: time.Now(),
	}
}

// NewBookUpdatedEvent creates a book.updated event.
func NewBookUpdatedEvent(book *domain.Book) Event {
	return Event{
		Type:      EventBookUpdated,
		Data:      BookEventData{Book: book},
		Timestamp: time.Now(),
	}
}

// NewBookDeletedEvent creates a book.deleted event.
func NewBookDeletedEvent(bookID int64, deletedAt time.Time) Event {
	return Event{
		Type: EventBookDeleted,
		Data: BookDeletedEventData{
			BookID:    bookID,
			DeletedAt: deletedAt,
		},
		Timestamp: time.Now(),
	}
}

// NewGenresUpdatedEvent creates a genres.updated event.
func NewGenresUpdatedEvent(added, removed int) Event {
	return Event{
		Type: EventGenresUpdated,
		Data: GenresUpdatedEventData{
			Added:   added,
			Removed: removed,
		},
		Timestamp: time.Now(),
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return Event{
		Type: EventHeartbeat,
		Data: HeartbeatEventData{
			ServerTime: time.Now(),
		},
		Timestamp: time.Now(),
	}
}
