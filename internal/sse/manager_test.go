package sse

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElenaBalahnina123/BookDiary/internal/domain"
	"github.com/ElenaBalahnina123/BookDiary/internal/store"
)

func newTestManager(t *testing.T) (*Manager, context.CancelFunc) {
	t.Helper()

	m := NewManager(slog.New(slog.DiscardHandler))
	ctx, cancel := context.WithCancel(context.Background())
	go m.Start(ctx)
	return m, cancel
}

func waitForEvent(t *testing.T, ch chan Event) Event {
	t.Helper()

	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestManagerConnectDisconnect(t *testing.T) {
	m, cancel := newTestManager(t)
	defer cancel()

	client, err := m.Connect()
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.NotEmpty(t, client.ID)
	assert.Equal(t, 1, m.ClientCount())

	m.Disconnect(client.ID)
	assert.Equal(t, 0, m.ClientCount())

	// Disconnecting twice is harmless.
	m.Disconnect(client.ID)
}

func TestManagerBroadcastsToAllClients(t *testing.T) {
	m, cancel := newTestManager(t)
	defer cancel()

	c1, err := m.Connect()
	require.NoError(t, err)
	c2, err := m.Connect()
	require.NoError(t, err)

	m.Emit(NewGenresUpdatedEvent(3, 1))

	for _, c := range []*Client{c1, c2} {
		ev := waitForEvent(t, c.EventChan)
		assert.Equal(t, EventGenresUpdated, ev.Type)
		data, ok := ev.Data.(GenresUpdatedEventData)
		require.True(t, ok)
		assert.Equal(t, 3, data.Added)
		assert.Equal(t, 1, data.Removed)
	}
}

func TestManagerDropsEventsForSlowClient(t *testing.T) {
	m, cancel := newTestManager(t)
	defer cancel()

	client, err := m.Connect()
	require.NoError(t, err)

	// Fill the client buffer well past its capacity without reading.
	for i := 0; i < 150; i++ {
		m.Emit(NewHeartbeatEvent())
	}

	// The manager keeps running; once the client drains its buffer it
	// receives fresh events again. The marker is re-emitted because it may
	// itself be dropped while the buffer is still full.
	deadline := time.After(2 * time.Second)
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case ev := <-client.EventChan:
			if ev.Type == EventGenresUpdated {
				return
			}
		case <-ticker.C:
			m.Emit(NewGenresUpdatedEvent(1, 0))
		case <-deadline:
			t.Fatal("manager stopped delivering after slow-client drops")
		}
	}
}

func TestManagerEmitAfterShutdownIsDropped(t *testing.T) {
	m, cancel := newTestManager(t)
	cancel()

	ctx, stop := context.WithTimeout(context.Background(), time.Second)
	defer stop()
	require.NoError(t, m.Shutdown(ctx))

	// Must not panic on the closed channel.
	m.Emit(NewHeartbeatEvent())
}

func TestManagerShutdownDeliversNoEmptyEvents(t *testing.T) {
	m := NewManager(slog.New(slog.DiscardHandler))
	ctx, cancel := context.WithCancel(context.Background())
	go m.Start(ctx)

	client, err := m.Connect()
	require.NoError(t, err)

	// Queue a burst of events, then shut down while some may still be in
	// flight between the events channel and the client buffer.
	for range 20 {
		m.Emit(NewHeartbeatEvent())
	}

	// The first delivery proves the broadcast loop is running.
	first := waitForEvent(t, client.EventChan)
	assert.Equal(t, EventHeartbeat, first.Type)

	cancel()
	sctx, stop := context.WithTimeout(context.Background(), 2*time.Second)
	defer stop()
	require.NoError(t, m.Shutdown(sctx))

	// The exiting loop closes the client channel; everything received before
	// that must be a real event, never a zero value.
	for ev := range client.EventChan {
		assert.Equal(t, EventHeartbeat, ev.Type)
	}

	// Shutdown is idempotent.
	require.NoError(t, m.Shutdown(sctx))
}

func TestManagerShutdownClosesClients(t *testing.T) {
	m := NewManager(slog.New(slog.DiscardHandler))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		m.Start(ctx)
		close(done)
	}()

	client, err := m.Connect()
	require.NoError(t, err)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("manager did not stop")
	}

	select {
	case <-client.Done:
	case <-time.After(2 * time.Second):
		t.Fatal("client was not closed on shutdown")
	}
	assert.Equal(t, 0, m.ClientCount())
}

func TestStoreEmitterTranslatesEvents(t *testing.T) {
	m, cancel := newTestManager(t)
	defer cancel()

	client, err := m.Connect()
	require.NoError(t, err)

	emitter := NewStoreEmitter(m)
	book := &domain.Book{ID: 7, Title: "Solaris", Author: "Stanislaw Lem"}

	emitter.Emit(store.BookEvent{Type: store.BookCreated, BookID: 7, Book: book})
	ev := waitForEvent(t, client.EventChan)
	assert.Equal(t, EventBookCreated, ev.Type)
	data, ok := ev.Data.(BookEventData)
	require.True(t, ok)
	assert.Equal(t, int64(7), data.Book.ID)

	emitter.Emit(store.BookEvent{Type: store.BookUpdated, BookID: 7, Book: book})
	ev = waitForEvent(t, client.EventChan)
	assert.Equal(t, EventBookUpdated, ev.Type)

	emitter.Emit(store.BookEvent{Type: store.BookDeleted, BookID: 7})
	ev = waitForEvent(t, client.EventChan)
	assert.Equal(t, EventBookDeleted, ev.Type)
	del, ok := ev.Data.(BookDeletedEventData)
	require.True(t, ok)
	assert.Equal(t, int64(7), del.BookID)
}
