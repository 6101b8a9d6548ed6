// Package di provides dependency injection configuration for the book diary server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/ElenaBalahnina123/BookDiary/internal/config"
	"github.com/ElenaBalahnina123/BookDiary/internal/di/providers"
	"github.com/ElenaBalahnina123/BookDiary/internal/genresync"
	"github.com/ElenaBalahnina123/BookDiary/internal/logger"
	"github.com/ElenaBalahnina123/BookDiary/internal/media/images"
	"github.com/ElenaBalahnina123/BookDiary/internal/service"
	"github.com/ElenaBalahnina123/BookDiary/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Database layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideBookFeed)
	do.Provide(injector, providers.ProvideStore)

	// Storage layer
	do.Provide(injector, providers.ProvideImageCache)

	// Catalog layer
	do.Provide(injector, providers.ProvideCatalogClient)

	// Business services
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideSyncEngine)
	do.Provide(injector, providers.ProvideGenreService)

	// Workers
	do.Provide(injector, providers.ProvideGenreSyncJob)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*service.BookFeed](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*images.Cache](injector)
	_ = do.MustInvoke[*providers.CatalogClientHandle](injector)

	// Business services
	_ = do.MustInvoke[*service.BookService](injector)
	_ = do.MustInvoke[*genresync.Engine](injector)
	_ = do.MustInvoke[*service.GenreService](injector)

	// Workers
	_ = do.MustInvoke[*providers.GenreSyncJob](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
