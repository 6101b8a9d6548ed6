// Package genresync reconciles the local genre mirror against the remote
// catalog.
package genresync

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/ElenaBalahnina123/BookDiary/internal/domain"
	"github.com/ElenaBalahnina123/BookDiary/internal/store"
)

// lastSyncKey is the preference under which the last successful
// reconciliation time is stored, as milliseconds since the Unix epoch.
const lastSyncKey = "genres_last_update"

// DefaultMinInterval is the minimum time between catalog fetches. A
// reconciliation attempted sooner is a cheap no-op.
const DefaultMinInterval = 24 * time.Hour

// Source fetches the authoritative genre catalog.
type Source interface {
	FetchGenres(ctx context.Context) ([]*domain.Genre, error)
}

// Invalidator is notified after the genre mirror changes, so derived caches
// can drop stale state.
type Invalidator interface {
	InvalidateGenres()
}

// Result describes the outcome of one reconciliation.
type Result struct {
	Skipped bool // true when the rate limit suppressed the fetch
	Added   int
	Removed int
}

// Engine reconciles the local genre mirror against a remote Source. At most
// one reconciliation runs at a time; concurrent calls queue behind the mutex
// and typically return Skipped once the first one advances the timestamp.
type Engine struct {
	mu          sync.Mutex
	store       store.Store
	source      Source
	invalidator Invalidator
	minInterval time.Duration
	now         func() time.Time
	logger      *slog.Logger
}

// New creates an Engine. invalidator may be nil. A nil source means no
// remote catalog is configured; every reconciliation is then a skipped
// no-op. A minInterval of zero disables rate limiting.
func New(st store.Store, source Source, invalidator Invalidator, minInterval time.Duration, logger *slog.Logger) *Engine {
	return &Engine{
		store:       st,
		source:      source,
		invalidator: invalidator,
		minInterval: minInterval,
		now:         time.Now,
		logger:      logger,
	}
}

// Reconcile brings the local mirror up to date with the remote catalog.
//
// When the last successful reconciliation is more recent than the minimum
// interval, nothing is fetched and the result is Skipped. A fetch failure is
// logged and the mirror is left exactly as it was; it is not an error, the
// next attempt will retry. A failure to apply changes to the store is
// returned, and the timestamp does not advance, so the next attempt fetches
// again.
func (e *Engine) Reconcile(ctx context.Context) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.source == nil {
		return Result{Skipped: true}, nil
	}

	now := e.now()

	last, err := e.lastSync(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("read last sync time: %w", err)
	}
	if e.minInterval > 0 && !last.IsZero() && now.Sub(last) < e.minInterval {
		e.logger.Debug("genre sync skipped",
			"last_sync", last,
			"min_interval", e.minInterval,
		)
		return Result{Skipped: true}, nil
	}

	remote, err := e.source.FetchGenres(ctx)
	if err != nil {
		e.logger.Warn("genre catalog fetch failed, keeping local mirror",
			"error", err,
		)
		return Result{}, nil
	}

	local, err := e.store.ListGenres(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list local genres: %w", err)
	}

	additions, removals := diff(local, remote)

	if len(additions) > 0 {
		if err := e.store.InsertGenres(ctx, additions); err != nil {
			return Result{}, fmt.Errorf("insert genres: %w", err)
		}
	}
	if len(removals) > 0 {
		if err := e.store.DeleteGenres(ctx, removals); err != nil {
			return Result{}, fmt.Errorf("delete genres: %w", err)
		}
	}

	if err := e.setLastSync(ctx, now); err != nil {
		return Result{}, fmt.Errorf("record sync time: %w", err)
	}

	if (len(additions) > 0 || len(removals) > 0) && e.invalidator != nil {
		e.invalidator.InvalidateGenres()
	}

	e.logger.Info("genre sync complete",
		"added", len(additions),
		"removed", len(removals),
		"remote_total", len(remote),
	)

	return Result{Added: len(additions), Removed: len(removals)}, nil
}

// diff computes the set difference between the local mirror and the remote
// catalog, keyed by remote id. Ids present on both sides are left untouched,
// whatever their labels say.
func diff(local, remote []*domain.Genre) (additions []*domain.Genre, removals []string) {
	localIDs := make(map[string]struct{}, len(local))
	for _, g := range local {
		localIDs[g.RemoteID] = struct{}{}
	}

	remoteIDs := make(map[string]struct{}, len(remote))
	for _, g := range remote {
		remoteIDs[g.RemoteID] = struct{}{}
		if _, ok := localIDs[g.RemoteID]; !ok {
			additions = append(additions, g)
		}
	}

	for _, g := range local {
		if _, ok := remoteIDs[g.RemoteID]; !ok {
			removals = append(removals, g.RemoteID)
		}
	}

	return additions, removals
}

// lastSync reads the recorded last reconciliation time. An unset or
// malformed value is treated as never synced.
func (e *Engine) lastSync(ctx context.Context) (time.Time, error) {
	raw, err := e.store.GetPreference(ctx, lastSyncKey)
	if err != nil {
		return time.Time{}, err
	}
	if raw == "" {
		return time.Time{}, nil
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		e.logger.Warn("malformed last sync timestamp, treating as never synced",
			"value", raw,
		)
		return time.Time{}, nil
	}
	return time.UnixMilli(ms), nil
}

func (e *Engine) setLastSync(ctx context.Context, t time.Time) error {
	return e.store.SetPreference(ctx, lastSyncKey, strconv.FormatInt(t.UnixMilli(), 10))
}
