package service

import (
	"context"
	"sync"

	"github.com/ElenaBalahnina123/BookDiary/internal/store"
)

// genreDirectory memoizes the genre mirror as an id-to-label map. The mirror
// only changes when the sync engine writes it, so one load serves every join
// until Invalidate is called.
type genreDirectory struct {
	store store.Store

	mu     sync.Mutex
	labels map[string]string
	loaded bool
}

func newGenreDirectory(st store.Store) *genreDirectory {
	return &genreDirectory{store: st}
}

// Load returns the memoized directory, reading it from the store on first
// use. The mutex is held across the read, so concurrent callers share a
// single in-flight load instead of issuing duplicate queries.
func (d *genreDirectory) Load(ctx context.Context) (map[string]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.loaded {
		return d.labels, nil
	}

	genres, err := d.store.ListGenres(ctx)
	if err != nil {
		return nil, err
	}

	labels := make(map[string]string, len(genres))
	for _, g := range genres {
		labels[g.RemoteID] = g.Label
	}

	d.labels = labels
	d.loaded = true
	return labels, nil
}

// Invalidate drops the memo. The next Load reads the store again.
func (d *genreDirectory) Invalidate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.labels = nil
	d.loaded = false
}
