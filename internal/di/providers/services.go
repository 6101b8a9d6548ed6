package providers

import (
	"github.com/samber/do/v2"

	"github.com/ElenaBalahnina123/BookDiary/internal/config"
	"github.com/ElenaBalahnina123/BookDiary/internal/genresync"
	"github.com/ElenaBalahnina123/BookDiary/internal/logger"
	"github.com/ElenaBalahnina123/BookDiary/internal/media/images"
	"github.com/ElenaBalahnina123/BookDiary/internal/service"
	"github.com/ElenaBalahnina123/BookDiary/internal/validation"
)

// ProvideBookFeed provides the in-process book change feed. The store emits
// into it, and the book service serves WatchBook streams from it.
func ProvideBookFeed(i do.Injector) (*service.BookFeed, error) {
	return service.NewBookFeed(), nil
}

// ProvideBookService provides the book service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	imageCache := do.MustInvoke[*images.Cache](i)
	validator := do.MustInvoke[*validation.Validator](i)
	feed := do.MustInvoke[*service.BookFeed](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookService(storeHandle.Store, imageCache, validator, feed, log.Logger), nil
}

// ProvideSyncEngine provides the genre reconciliation engine. The book
// service is wired in as the invalidator so its genre directory drops after
// mirror changes.
func ProvideSyncEngine(i do.Injector) (*genresync.Engine, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	bookService := do.MustInvoke[*service.BookService](i)
	log := do.MustInvoke[*logger.Logger](i)

	// Without a catalog URL the engine has no remote source and every
	// reconciliation is a skipped no-op.
	var source genresync.Source
	if cfg.Catalog.BaseURL != "" {
		source = do.MustInvoke[*CatalogClientHandle](i).Client
	} else {
		log.Warn("No catalog URL configured, genre sync disabled")
	}

	return genresync.New(
		storeHandle.Store,
		source,
		bookService,
		cfg.Catalog.MinUpdateInterval,
		log.Logger,
	), nil
}

// ProvideGenreService provides the genre service.
func ProvideGenreService(i do.Injector) (*service.GenreService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	engine := do.MustInvoke[*genresync.Engine](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewGenreService(storeHandle.Store, engine, log.Logger), nil
}
