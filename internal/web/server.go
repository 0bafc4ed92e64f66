package web

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"linkwatch/internal/database"
	"linkwatch/internal/escalate"
	"linkwatch/internal/logger"
)

// Server serves the dashboard page and its JSON API
type Server struct {
	log       *slog.Logger
	db        *database.DB
	escalator *escalate.Escalator
	address   string
	static    fs.FS
	server    *http.Server

	cycleMu sync.Mutex
	cycling bool
}

// New creates a web server. staticFS must contain a static/ directory that
// becomes the webroot.
func New(log *slog.Logger, db *database.DB, escalator *escalate.Escalator, address string, staticFS fs.FS) *Server {
	return &Server{
		log:       log,
		db:        db,
		escalator: escalator,
		address:   address,
		static:    staticFS,
	}
}

// Handler builds the router. Split out from Start so tests can drive it
// with httptest.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewRouter()

	r.Get("/api/status", s.handleStatus)
	r.Get("/api/records", s.handleRecords)
	r.Post("/api/power-cycle", s.handlePowerCycle)
	r.Get("/healthz", s.handleHealthz)

	webroot, err := fs.Sub(s.static, "static")
	if err != nil {
		return nil, err
	}
	r.Handle("/*", http.FileServer(http.FS(webroot)))

	return r, nil
}

// Start begins serving in the background
func (s *Server) Start() error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	s.server = &http.Server{
		Addr:         s.address,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.log.Info("web server starting", slog.String("address", s.address))

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("web server error", logger.Err(err))
		}
	}()

	return nil
}

// Stop shuts the server down gracefully
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
