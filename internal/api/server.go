// Package api provides the HTTP API server and handlers for the book diary.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ElenaBalahnina123/BookDiary/internal/media/images"
	"github.com/ElenaBalahnina123/BookDiary/internal/service"
	"github.com/ElenaBalahnina123/BookDiary/internal/sse"
	"github.com/ElenaBalahnina123/BookDiary/internal/store"
)

// Services bundles the business services the handlers depend on.
type Services struct {
	Book  *service.BookService
	Genre *service.GenreService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store      store.Store
	services   *Services
	images     *images.Cache
	sseHandler *sse.Handler
	router     *chi.Mux
	api        huma.API
	logger     *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, imageCache *images.Cache, sseHandler *sse.Handler, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	humaConfig := huma.DefaultConfig("BookDiary API", "1.0.0")
	humaAPI := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:      st,
		services:   services,
		images:     imageCache,
		sseHandler: sseHandler,
		router:     router,
		api:        humaAPI,
		logger:     logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerBookRoutes()
	s.registerGenreRoutes()

	// Raw chi routes for streaming and binary responses.
	s.router.Get("/api/v1/events", s.sseHandler.ServeHTTP)
	s.router.Get("/api/v1/images/{id}", s.handleGetImage)
	s.router.Post("/api/v1/books/{id}/cover", s.handleUploadCover)
}

// === Shared DTOs ===

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}
