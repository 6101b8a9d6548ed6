package store

import "github.com/ElenaBalahnina123/BookDiary/internal/domain"

// BookEventType identifies a book change.
type BookEventType string

// Book change event types.
const (
	BookCreated BookEventType = "book.created"
	BookUpdated BookEventType = "book.updated"
	BookDeleted BookEventType = "book.deleted"
)

// BookEvent is emitted by the store after a book row changes.
// Book is nil for deletions.
type BookEvent struct {
	Type   BookEventType
	BookID int64
	Book   *domain.Book
}

// EventEmitter receives change events from the store.
// Implementations must not block; the store calls Emit inline after commits.
type EventEmitter interface {
	Emit(event BookEvent)
}

// MultiEmitter forwards each event to every wrapped emitter in order.
type MultiEmitter []EventEmitter

// Emit implements EventEmitter.
func (m MultiEmitter) Emit(event BookEvent) {
	for _, e := range m {
		e.Emit(event)
	}
}

// NewMultiEmitter combines several emitters into one.
func NewMultiEmitter(emitters ...EventEmitter) EventEmitter {
	return MultiEmitter(emitters)
}

// NoopEmitter is a no-op implementation of EventEmitter for testing.
type NoopEmitter struct{}

// Emit implements EventEmitter.Emit as a no-op.
func (NoopEmitter) Emit(_ BookEvent) {}

// NewNoopEmitter creates a new no-op emitter for testing.
func NewNoopEmitter() EventEmitter {
	return NoopEmitter{}
}
