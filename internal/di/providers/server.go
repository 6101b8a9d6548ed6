package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/ElenaBalahnina123/BookDiary/internal/api"
	"github.com/ElenaBalahnina123/BookDiary/internal/config"
	"github.com/ElenaBalahnina123/BookDiary/internal/logger"
	"github.com/ElenaBalahnina123/BookDiary/internal/media/images"
	"github.com/ElenaBalahnina123/BookDiary/internal/service"
	"github.com/ElenaBalahnina123/BookDiary/internal/sse"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	imageCache := do.MustInvoke[*images.Cache](i)
	bookService := do.MustInvoke[*service.BookService](i)
	genreService := do.MustInvoke[*service.GenreService](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Book:  bookService,
		Genre: genreService,
	}

	sseHandler := sse.NewHandler(sseHandle.Manager, log.Logger)

	handler := api.NewServer(storeHandle.Store, services, imageCache, sseHandler, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
