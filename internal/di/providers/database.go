package providers

import (
	"context"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/ElenaBalahnina123/BookDiary/internal/config"
	"github.com/ElenaBalahnina123/BookDiary/internal/logger"
	"github.com/ElenaBalahnina123/BookDiary/internal/service"
	"github.com/ElenaBalahnina123/BookDiary/internal/sse"
	"github.com/ElenaBalahnina123/BookDiary/internal/store"
	"github.com/ElenaBalahnina123/BookDiary/internal/store/sqlite"
)

// SSEManagerHandle wraps the SSE manager with its context for lifecycle management.
type SSEManagerHandle struct {
	*sse.Manager
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SSEManagerHandle) Shutdown() error {
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Manager.Shutdown(ctx)
}

// ProvideSSEManager provides the server-sent events manager.
func ProvideSSEManager(i do.Injector) (*SSEManagerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	manager := sse.NewManager(log.Logger)

	// Start in background
	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	log.Info("SSE manager started")

	return &SSEManagerHandle{
		Manager: manager,
		cancel:  cancel,
	}, nil
}

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store. Change events fan out to the SSE
// manager and the in-process book feed.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	feed := do.MustInvoke[*service.BookFeed](i)

	emitter := store.NewMultiEmitter(sse.NewStoreEmitter(sseHandle.Manager), feed)

	dbPath := filepath.Join(cfg.Data.BasePath, "bookdiary.db")
	db, err := sqlite.Open(dbPath, log.Logger, emitter)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}
