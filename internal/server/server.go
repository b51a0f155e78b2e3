// Package server exposes the layout engine and document store over HTTP.
//
// The API serves browser-based editors: responses carry permissive CORS
// headers, bodies are camelCase JSON matching the pkg/tree and pkg/layout
// wire types, and errors use a uniform {"error": {"code", "message"}}
// envelope built from pkg/errors codes.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/sunwheel-labs/sunwheel/pkg/buildinfo"
	"github.com/sunwheel-labs/sunwheel/pkg/cache"
	"github.com/sunwheel-labs/sunwheel/pkg/document"
	"github.com/sunwheel-labs/sunwheel/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// DefaultAddr is the listen address browser editors historically
	// loaded from.
	DefaultAddr = ":8000"

	// shutdownTimeout bounds how long in-flight requests may run once the
	// server begins draining.
	shutdownTimeout = 10 * time.Second

	// maxBodyBytes caps request bodies. Forests are small relative to
	// this; the limit exists to shed accidental uploads.
	maxBodyBytes = 16 << 20 // 16 MiB
)

// =============================================================================
// Server
// =============================================================================

// Server wires the document store, the layout runner, and the HTTP
// handlers. One Server handles concurrent requests; document mutations are
// serialized through an edit lock so the undo history and the store stay
// consistent.
type Server struct {
	store  document.Store
	runner *pipeline.Runner
	logger *log.Logger

	editMu    sync.Mutex
	histories map[string]*document.History
}

// New creates a server.
// If store is nil, an in-memory store is used.
// If runner is nil, a runner without caching is used.
// If logger is nil, the default logger is used.
func New(store document.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if store == nil {
		store = document.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	return &Server{
		store:     store,
		runner:    runner,
		logger:    logger,
		histories: make(map[string]*document.History),
	}
}

// Router builds the HTTP handler with all middleware and routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(s.recoverer)
	r.Use(corsMiddleware)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/hittest", s.handleHitTest)

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", s.handleListDocuments)
			r.Post("/", s.handleCreateDocument)

			r.Route("/{docID}", func(r chi.Router) {
				r.Get("/", s.handleGetDocument)
				r.Put("/", s.handleUpdateDocument)
				r.Delete("/", s.handleDeleteDocument)

				r.Get("/layout", s.handleDocumentLayout)
				r.Post("/undo", s.handleUndo)
				r.Post("/redo", s.handleRedo)

				r.Post("/nodes", s.handleInsertNode)
				r.Route("/nodes/{nodeID}", func(r chi.Router) {
					r.Patch("/", s.handleUpdateNode)
					r.Delete("/", s.handleRemoveNode)
					r.Post("/move", s.handleMoveNode)
				})
			})
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is canceled, then drains
// in-flight requests for up to shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	s.logger.Info("server listening", "addr", addr, "version", buildinfo.Short())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// history returns the undo stack for a document, creating it on first use.
// Callers must hold editMu.
func (s *Server) history(docID string) *document.History {
	h, ok := s.histories[docID]
	if !ok {
		h = document.NewHistory(0)
		s.histories[docID] = h
	}
	return h
}

// documentRunner derives a runner whose cache keys carry the document scope,
// so edits to one document never collide with another's cached layouts.
func (s *Server) documentRunner(docID string) *pipeline.Runner {
	return pipeline.NewRunner(s.runner.Cache, cache.NewScopedKeyer(s.runner.Keyer, "doc:"+docID+":"), s.runner.Logger)
}
