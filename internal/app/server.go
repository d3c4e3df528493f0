package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/otaviofarias/papersynth/internal/api/handlers"
	appMiddleware "github.com/otaviofarias/papersynth/internal/api/middlewares"
	"github.com/otaviofarias/papersynth/internal/config"
	"github.com/otaviofarias/papersynth/internal/core"
	"github.com/otaviofarias/papersynth/internal/services"
	"github.com/otaviofarias/papersynth/internal/session"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
	log        *zap.Logger
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, log *zap.Logger, store *session.Store, ingest *services.IngestService, analysis *services.AnalysisService, manager core.ModelManager) *Server {
	sessionHandler := handlers.NewSessionHandler(store, cfg.SessionSecret, log)
	docHandler := handlers.NewDocumentHandler(store, ingest, cfg.MaxUploadMB, log)
	analysisHandler := handlers.NewAnalysisHandler(store, analysis, log)
	modelHandler := handlers.NewModelHandler(manager, cfg.GenModel, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8888"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Serve the static frontend from the web directory
	fileServer := http.FileServer(http.Dir("./web"))
	r.Handle("/*", fileServer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// API routes
	r.Route("/api", func(api chi.Router) {
		// public endpoints
		api.Post("/sessions", sessionHandler.Create)
		api.Get("/models", modelHandler.List)

		// A pull blocks until the model download completes, which can run
		// far past any sensible request timeout, so the route stays outside
		// the timed groups.
		api.Post("/models/pull", modelHandler.Pull)

		// session-scoped endpoints
		api.Group(func(protected chi.Router) {
			protected.Use(appMiddleware.SessionMiddleware(cfg.SessionSecret))
			// Two sequential model calls can take a while on local
			// hardware; the budget must outlive the 120s per-call client
			// timeout.
			protected.Use(middleware.Timeout(5 * time.Minute))
			protected.Delete("/sessions", sessionHandler.Destroy)
			protected.Get("/session", sessionHandler.State)
			protected.Post("/documents", docHandler.Upload)
			protected.Get("/documents/current", docHandler.Current)
			protected.Post("/analysis", analysisHandler.Generate)
			protected.Get("/analysis", analysisHandler.Result)
			protected.Get("/analysis/download", analysisHandler.Download)
		})
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv, log: log}
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the HTTP server.
func (s *Server) Start() {
	s.log.Info("HTTP server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.log.Fatal("server error", zap.Error(err))
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
