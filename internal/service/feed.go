package service

import (
	"sync"

	"github.com/ElenaBalahnina123/BookDiary/internal/store"
)

// BookFeed fans persisted book changes out to in-process watchers. It
// implements store.EventEmitter, so the store pushes events into it after
// every committed write.
type BookFeed struct {
	mu   sync.RWMutex
	subs map[*feedSub]struct{}
}

type feedSub struct {
	bookID int64 // 0 watches every book
	ch     chan store.BookEvent
}

// NewBookFeed creates an empty feed.
func NewBookFeed() *BookFeed {
	return &BookFeed{subs: make(map[*feedSub]struct{})}
}

// Emit implements store.EventEmitter. A subscriber with a full buffer loses
// the event rather than blocking the store.
func (f *BookFeed) Emit(event store.BookEvent) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for sub := range f.subs {
		if sub.bookID != 0 && sub.bookID != event.BookID {
			continue
		}
		select {
		case sub.ch <- event:
		default:
		}
	}
}

func (f *BookFeed) subscribe(bookID int64) *feedSub {
	sub := &feedSub{
		bookID: bookID,
		ch:     make(chan store.BookEvent, 16),
	}
	f.mu.Lock()
	f.subs[sub] = struct{}{}
	f.mu.Unlock()
	return sub
}

func (f *BookFeed) unsubscribe(sub *feedSub) {
	f.mu.Lock()
	delete(f.subs, sub)
	f.mu.Unlock()
}
