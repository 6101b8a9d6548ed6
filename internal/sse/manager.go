package sse

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ElenaBalahnina123/BookDiary/internal/id"
	"github.com/ElenaBalahnina123/BookDiary/internal/store"
)

// Client represents a connected SSE client.
type Client struct {
	ConnectedAt time.Time
	EventChan   chan Event
	Done        chan struct{}
	ID          string
}

// Manager manages SSE connections and broadcasts events.
type Manager struct {
	clients           map[string]*Client
	events            chan Event
	logger            *slog.Logger
	wg                sync.WaitGroup
	heartbeatInterval time.Duration
	mu                sync.RWMutex

	// Shutdown state - protected by shutdownMu
	shutdownMu sync.RWMutex
	shutdown   bool
}

// NewManager creates a new SSE Manager.
func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		clients:           make(map[string]*Client),
		events:            make(chan Event, 1000), // Buffer 1000 events
		logger:            logger,
		heartbeatInterval: 30 * time.Second,
	}
}

// Start begins the event broadcasting loop.
// This should be called once at server startup in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	m.wg.Add(1)
	defer m.wg.Done()

	m.logger.Info("SSE manager starting")

	heartbeatTicker := time.NewTicker(m.heartbeatInterval)
	defer heartbeatTicker.Stop()

	for {
		select {
		case event := <-m.events:
			m.broadcast(event)

		case <-heartbeatTicker.C:
			m.broadcast(NewHeartbeatEvent())

		case <-ctx.Done():
			m.logger.Info("SSE manager stopping")
			m.closeAllClients()
			return
		}
	}
}

// Shutdown gracefully shuts down the manager.
// It stops accepting new events, waits for the broadcast loop to exit, and
// drains whatever is still queued. Safe to call more than once.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.shutdownMu.Lock()
	if m.shutdown {
		m.shutdownMu.Unlock()
		return nil
	}
	m.shutdown = true
	m.shutdownMu.Unlock()

	m.logger.Info("SSE manager shutdown initiated")

	// Wait for the Start loop to observe its context cancellation and exit.
	// The events channel stays open: closing it while the loop still selects
	// on it would make that case permanently ready with zero-value events.
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		m.logger.Warn("SSE broadcast loop did not stop in time")
		return ctx.Err()
	}

	// Drain queued events. Clients are already closed by the exiting loop,
	// so this just empties the buffer.
	for {
		select {
		case event := <-m.events:
			m.broadcast(event)
		default:
			m.logger.Info("SSE manager shutdown complete")
			return nil
		}
	}
}

// broadcast sends an event to every connected client.
func (m *Manager) broadcast(event Event) {
	var delivered, dropped int

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, client := range m.clients {
		// Non-blocking send (drop if client is slow/stuck).
		select {
		case client.EventChan <- event:
			delivered++
		default:
			dropped++
			m.logger.Warn("dropped event for slow client",
				slog.String("client_id", client.ID),
				slog.String("event_type", string(event.Type)))
		}
	}

	if event.Type != EventHeartbeat {
		m.logger.Debug("event broadcast",
			slog.String("event_type", string(event.Type)),
			slog.Int("delivered", delivered),
			slog.Int("dropped", dropped))
	}
}

// Connect registers a new SSE client and returns the client object.
func (m *Manager) Connect() (*Client, error) {
	clientID, err := id.Generate("sse")
	if err != nil {
		return nil, err
	}

	client := &Client{
		ID:          clientID,
		EventChan:   make(chan Event, 100), // Buffer 100 events per client
		Done:        make(chan struct{}),
		ConnectedAt: time.Now(),
	}

	m.mu.Lock()
	m.clients[client.ID] = client
	totalClients := len(m.clients)
	m.mu.Unlock()

	m.logger.Info("SSE client connected",
		slog.String("client_id", clientID),
		slog.Int("total_clients", totalClients))
	return client, nil
}

// Disconnect removes a client and closes its channels.
func (m *Manager) Disconnect(clientID string) {
	m.mu.Lock()
	client, ok := m.clients[clientID]
	if !ok {
		m.mu.Unlock()
		return
	}
	delete(m.clients, clientID)
	totalClients := len(m.clients)
	m.mu.Unlock()

	close(client.Done)
	close(client.EventChan)

	m.logger.Info("SSE client disconnected",
		slog.String("client_id", clientID),
		slog.Duration("duration", time.Since(client.ConnectedAt)),
		slog.Int("total_clients", totalClients))
}

// Emit queues an event for broadcasting to clients.
func (m *Manager) Emit(event Event) {
	// Hold read lock through the entire send operation.
	// This prevents race with Shutdown() which holds write lock when closing channel.
	m.shutdownMu.RLock()
	defer m.shutdownMu.RUnlock()

	if m.shutdown {
		// Silently drop events after shutdown - this is expected during shutdown
		return
	}

	select {
	case m.events <- event:
		// Event queued for broadcast.
	default:
		// Event channel full, log and drop.
		m.logger.Error("SSE event channel full, dropping event",
			slog.String("event_type", string(event.Type)))
	}
}

// ClientCount returns the number of connected clients.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// closeAllClients closes all client connections (used during shutdown).
func (m *Manager) closeAllClients() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, client := range m.clients {
		close(client.Done)
		close(client.EventChan)
	}
	m.clients = make(map[string]*Client) // Clear the map

	m.logger.Info("all SSE clients disconnected")
}

// StoreEmitter adapts the Manager to the store.EventEmitter interface,
// translating persistence events into SSE events.
type StoreEmitter struct {
	manager *Manager
}

// NewStoreEmitter creates a StoreEmitter over the given manager.
func NewStoreEmitter(manager *Manager) *StoreEmitter {
	return &StoreEmitter{manager: manager}
}

// Emit implements store.EventEmitter.
func (s *StoreEmitter) Emit(ev store.BookEvent) {
	switch ev.Type {
	case store.BookCreated:
		s.manager.Emit(NewBookCreatedEvent(ev.Book))
	case store.BookUpdated:
		s.manager.Emit(NewBookUpdatedEvent(ev.Book))
	case store.BookDeleted:
		s.manager.Emit(NewBookDeletedEvent(ev.BookID, time.Now()))
	}
}
