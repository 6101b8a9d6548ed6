package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/ElenaBalahnina123/BookDiary/internal/config"
	"github.com/ElenaBalahnina123/BookDiary/internal/genresync"
	"github.com/ElenaBalahnina123/BookDiary/internal/logger"
	"github.com/ElenaBalahnina123/BookDiary/internal/sse"
)

// GenreSyncJob runs periodic genre catalog reconciliation.
type GenreSyncJob struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (j *GenreSyncJob) Shutdown() error {
	j.cancel()
	return nil
}

// ProvideGenreSyncJob provides the periodic genre sync job. It runs one
// reconciliation at startup and then on every tick; the engine's own rate
// limit decides whether a tick actually hits the network.
func ProvideGenreSyncJob(i do.Injector) (*GenreSyncJob, error) {
	cfg := do.MustInvoke[*config.Config](i)
	engine := do.MustInvoke[*genresync.Engine](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())

	run := func() {
		result, err := engine.Reconcile(ctx)
		if err != nil {
			log.Warn("Genre sync failed", "error", err)
			return
		}
		if result.Added > 0 || result.Removed > 0 {
			sseHandle.Emit(sse.NewGenresUpdatedEvent(result.Added, result.Removed))
		}
	}

	go func() {
		ticker := time.NewTicker(cfg.Catalog.SyncInterval)
		defer ticker.Stop()

		// Initial reconciliation on startup.
		run()

		for {
			select {
			case <-ticker.C:
				run()
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Genre sync job started", "interval", cfg.Catalog.SyncInterval)

	return &GenreSyncJob{cancel: cancel}, nil
}
